// Package dot exports scenes as Graphviz node-link diagrams.
//
// This is an alternative view of the same narrative: each drawn commit
// becomes a node colored from the palette, sequential history along a
// branch becomes plain edges, and merge arrows become highlighted
// edges. Rendering to SVG or PNG happens in-process via
// [github.com/goccy/go-graphviz].
package dot

import (
	"bytes"
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/branchplot/branchplot/pkg/errors"
	"github.com/branchplot/branchplot/pkg/scene"
)

// ToDOT converts a scene to Graphviz DOT format. Output is
// deterministic: nodes follow the scene's commit order, history edges
// follow branch declaration order.
func ToDOT(story *scene.Story, sc *scene.Scene) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  bgcolor=\"white\";\n")
	fmt.Fprintf(&buf, "  label=%q;\n", sc.Title)
	buf.WriteString("  labelloc=\"t\";\n")
	buf.WriteString("  node [shape=circle, style=filled, fontname=\"Helvetica-Bold\"];\n")
	buf.WriteString("\n")

	for _, cm := range sc.Commits {
		color, _ := story.Color(cm.Label)
		fmt.Fprintf(&buf, "  %q [label=%q, fillcolor=%q];\n", nodeID(cm.Branch, cm.X), cm.Label, color)
	}

	buf.WriteString("\n")
	for _, e := range historyEdges(story, sc) {
		fmt.Fprintf(&buf, "  %q -> %q;\n", e[0], e[1])
	}
	for _, ar := range sc.Arrows {
		fmt.Fprintf(&buf, "  %q -> %q [color=\"red\", penwidth=1.5];\n",
			nodeID(ar.FromBranch, ar.FromX), nodeID(ar.ToBranch, ar.ToX))
	}

	buf.WriteString("}\n")
	return buf.String()
}

// nodeID identifies one drawn commit. Commits repeat across branches
// (the same letter appears on several rows), so the ID carries both
// the branch and the sequence position.
func nodeID(branch string, x float64) string {
	return fmt.Sprintf("%s@%g", branch, x)
}

// historyEdges links successive commits along each branch, in branch
// declaration order.
func historyEdges(story *scene.Story, sc *scene.Scene) [][2]string {
	var edges [][2]string
	for _, b := range story.Branches {
		var xs []float64
		for _, cm := range sc.Commits {
			if cm.Branch == b.Name {
				xs = append(xs, cm.X)
			}
		}
		sort.Float64s(xs)
		for i := 1; i < len(xs); i++ {
			edges = append(edges, [2]string{nodeID(b.Name, xs[i-1]), nodeID(b.Name, xs[i])})
		}
	}
	return edges
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	return render(ctx, dot, graphviz.SVG)
}

// RenderPNG renders a DOT graph to PNG using Graphviz.
func RenderPNG(ctx context.Context, dot string) ([]byte, error) {
	return render(ctx, dot, graphviz.PNG)
}

func render(ctx context.Context, dot string, format graphviz.Format) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeRender, err, "init graphviz")
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeRender, err, "parse DOT")
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, format, &buf); err != nil {
		return nil, errors.Wrap(errors.ErrCodeRender, err, "render %s", strings.ToLower(string(format)))
	}
	return buf.Bytes(), nil
}
