// Package scene defines the immutable story model for branchplot.
//
// A Story is the declarative description of the diagrams: a fixed
// palette mapping commit labels to fill colors, a fixed branch row
// table, and a list of scenes, each a literal sequence of branch
// lines, commit markers, and merge arrows. The story is decoded once
// from an embedded TOML document via [Load] and never mutated.
package scene

import (
	"github.com/branchplot/branchplot/pkg/errors"
)

// Swatch is one palette entry mapping a commit label to its fill color.
// Palette order is significant: the legend renders entries in order.
type Swatch struct {
	Label string `toml:"label"`
	Color string `toml:"color"` // hex, e.g. "#ADD8E6"
}

// Branch names a branch and pins it to a vertical row on the canvas.
// Rows are constant across all scenes; only line extents vary.
type Branch struct {
	Name string `toml:"name"`
	Row  int    `toml:"row"`
}

// Line is a horizontal branch segment spanning [From, To] at the
// branch's row.
type Line struct {
	Branch string  `toml:"branch"`
	From   float64 `toml:"from"`
	To     float64 `toml:"to"`
}

// Commit is a single commit marker. Its fill color is derived solely
// from Label via the palette, its vertical position solely from Branch
// via the row table.
type Commit struct {
	X      float64 `toml:"x"`
	Branch string  `toml:"branch"`
	Label  string  `toml:"label"`
}

// Arrow is a curved merge arrow between two commit positions.
type Arrow struct {
	FromX      float64 `toml:"from_x"`
	FromBranch string  `toml:"from_branch"`
	ToX        float64 `toml:"to_x"`
	ToBranch   string  `toml:"to_branch"`
}

// Scene is one complete diagram: a titled canvas plus the literal draw
// list for one step of the narrative.
type Scene struct {
	ID      string   `toml:"id"`
	Title   string   `toml:"title"`
	File    string   `toml:"file"`    // output file name, e.g. "git_workflow_step1.png"
	Caption string   `toml:"caption"` // narrative meaning, printed after generation
	Lines   []Line   `toml:"lines"`
	Commits []Commit `toml:"commits"`
	Arrows  []Arrow  `toml:"arrows"`
}

// Story is the full three-scene narrative.
type Story struct {
	Palette  []Swatch `toml:"palette"`
	Branches []Branch `toml:"branches"`
	Scenes   []Scene  `toml:"scenes"`
}

// Row returns the row for a branch name.
func (s *Story) Row(branch string) (int, bool) {
	for _, b := range s.Branches {
		if b.Name == branch {
			return b.Row, true
		}
	}
	return 0, false
}

// Color returns the palette color for a commit label.
func (s *Story) Color(label string) (string, bool) {
	for _, sw := range s.Palette {
		if sw.Label == label {
			return sw.Color, true
		}
	}
	return "", false
}

// Scene returns the scene with the given ID.
func (s *Story) Scene(id string) (*Scene, bool) {
	for i := range s.Scenes {
		if s.Scenes[i].ID == id {
			return &s.Scenes[i], true
		}
	}
	return nil, false
}

// CommitAt returns the commit drawn at (x, branch), if any.
func (sc *Scene) CommitAt(x float64, branch string) (*Commit, bool) {
	for i := range sc.Commits {
		if sc.Commits[i].X == x && sc.Commits[i].Branch == branch {
			return &sc.Commits[i], true
		}
	}
	return nil, false
}

// Validate checks the internal consistency of the story: every commit
// label must exist in the palette, every referenced branch in the row
// table, every arrow endpoint must coincide with a drawn commit, and
// scene IDs and output files must be unique.
func (s *Story) Validate() error {
	if len(s.Palette) == 0 {
		return errors.New(errors.ErrCodeInvalidScene, "palette is empty")
	}
	if len(s.Branches) == 0 {
		return errors.New(errors.ErrCodeInvalidScene, "branch table is empty")
	}

	seenIDs := make(map[string]bool, len(s.Scenes))
	seenFiles := make(map[string]bool, len(s.Scenes))

	for i := range s.Scenes {
		sc := &s.Scenes[i]
		if sc.ID == "" {
			return errors.New(errors.ErrCodeInvalidScene, "scene %d has no id", i)
		}
		if seenIDs[sc.ID] {
			return errors.New(errors.ErrCodeInvalidScene, "duplicate scene id %q", sc.ID)
		}
		seenIDs[sc.ID] = true
		if sc.File == "" {
			return errors.New(errors.ErrCodeInvalidScene, "scene %q has no output file", sc.ID)
		}
		if seenFiles[sc.File] {
			return errors.New(errors.ErrCodeInvalidScene, "duplicate output file %q", sc.File)
		}
		seenFiles[sc.File] = true

		if err := s.validateScene(sc); err != nil {
			return err
		}
	}
	return nil
}

func (s *Story) validateScene(sc *Scene) error {
	for _, ln := range sc.Lines {
		if _, ok := s.Row(ln.Branch); !ok {
			return errors.New(errors.ErrCodeInvalidScene,
				"scene %q: line references unknown branch %q", sc.ID, ln.Branch)
		}
		if ln.From >= ln.To {
			return errors.New(errors.ErrCodeInvalidScene,
				"scene %q: line on %q has non-positive span [%g, %g]", sc.ID, ln.Branch, ln.From, ln.To)
		}
	}

	for _, cm := range sc.Commits {
		if _, ok := s.Row(cm.Branch); !ok {
			return errors.New(errors.ErrCodeInvalidScene,
				"scene %q: commit %q references unknown branch %q", sc.ID, cm.Label, cm.Branch)
		}
		if _, ok := s.Color(cm.Label); !ok {
			return errors.New(errors.ErrCodeInvalidScene,
				"scene %q: commit label %q not in palette", sc.ID, cm.Label)
		}
	}

	for _, ar := range sc.Arrows {
		if _, ok := sc.CommitAt(ar.FromX, ar.FromBranch); !ok {
			return errors.New(errors.ErrCodeInvalidScene,
				"scene %q: arrow starts at (%g, %s) where no commit is drawn", sc.ID, ar.FromX, ar.FromBranch)
		}
		if _, ok := sc.CommitAt(ar.ToX, ar.ToBranch); !ok {
			return errors.New(errors.ErrCodeInvalidScene,
				"scene %q: arrow ends at (%g, %s) where no commit is drawn", sc.ID, ar.ToX, ar.ToBranch)
		}
	}
	return nil
}
