package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/branchplot/branchplot/pkg/errors"
	"github.com/branchplot/branchplot/pkg/render/dot"
	"github.com/branchplot/branchplot/pkg/scene"
)

const (
	formatDOT = "dot"
	formatSVG = "svg"
	formatPNG = "png"
)

// exportOpts holds the command-line flags for the export command.
type exportOpts struct {
	format string // output format: dot, svg, png
	output string // output file (single scene) or base path (all)
}

// exportCommand creates the export command for Graphviz node-link
// views of the scenes.
func (c *CLI) exportCommand() *cobra.Command {
	opts := exportOpts{format: formatDOT}

	cmd := &cobra.Command{
		Use:   fmt.Sprintf("export [%s|all]", describeSceneIDs()),
		Short: "Export a scene as a Graphviz node-link diagram",
		Long: `Export a scene as a Graphviz node-link diagram.

Each drawn commit becomes a node colored from the palette; history
along a branch and merge parentage become edges. SVG and PNG are
rendered in-process via Graphviz.`,
		Args:      cobra.ExactArgs(1),
		ValidArgs: append(sceneIDs(), "all"),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validateExportFormat(opts.format); err != nil {
				return err
			}
			return c.runExport(cmd.Context(), args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.format, "format", "f", opts.format, "output format: dot (default), svg, png")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single scene) or base path (all)")

	return cmd
}

func (c *CLI) runExport(ctx context.Context, arg string, opts exportOpts) error {
	story, err := loadStory()
	if err != nil {
		return err
	}

	var scenes []*scene.Scene
	if arg == "all" {
		for i := range story.Scenes {
			scenes = append(scenes, &story.Scenes[i])
		}
	} else {
		sc, ok := story.Scene(arg)
		if !ok {
			return errors.New(errors.ErrCodeSceneNotFound, "no scene %q (use one of: %s)", arg, describeSceneIDs())
		}
		scenes = append(scenes, sc)
	}

	for _, sc := range scenes {
		path := exportPath(opts.output, sc.ID, opts.format, len(scenes) > 1)

		data, err := c.exportScene(ctx, story, sc, opts.format)
		if err != nil {
			return fmt.Errorf("export %s: %w", sc.ID, err)
		}
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		printFile(path)
	}

	printSuccess("Exported %d scene(s) as %s", len(scenes), opts.format)
	return nil
}

// exportScene produces the bytes for one scene in the requested format.
// Graphviz rendering runs behind a spinner; DOT output is immediate.
func (c *CLI) exportScene(ctx context.Context, story *scene.Story, sc *scene.Scene, format string) ([]byte, error) {
	d := dot.ToDOT(story, sc)
	if format == formatDOT {
		return []byte(d), nil
	}

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Rendering %s...", sc.ID))
	spinner.Start()

	var data []byte
	var err error
	switch format {
	case formatSVG:
		data, err = dot.RenderSVG(ctx, d)
	case formatPNG:
		data, err = dot.RenderPNG(ctx, d)
	}
	if err != nil {
		spinner.StopWithError("Export failed")
		return nil, err
	}
	spinner.Stop()
	return data, nil
}

// exportPath derives the output path for one exported scene.
// With --output and a single scene, the path is used as-is; otherwise
// --output acts as a base directory-or-prefix for <scene>.<format>.
func exportPath(output, sceneID, format string, multi bool) string {
	name := sceneID + "." + format
	if output == "" {
		return name
	}
	if !multi {
		return output
	}
	if strings.HasSuffix(output, string(filepath.Separator)) {
		return filepath.Join(output, name)
	}
	return output + "_" + name
}

// validateExportFormat checks that the format is dot, svg, or png.
func validateExportFormat(f string) error {
	switch f {
	case formatDOT, formatSVG, formatPNG:
		return nil
	}
	return errors.New(errors.ErrCodeInvalidFormat, "invalid format: %s (must be 'dot', 'svg', or 'png')", f)
}
