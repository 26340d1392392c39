package scene

import (
	"sort"
	"testing"
)

func TestLoad(t *testing.T) {
	story, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if len(story.Scenes) != 3 {
		t.Fatalf("len(Scenes) = %d, want 3", len(story.Scenes))
	}
}

func TestLoadPaletteOrder(t *testing.T) {
	story, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	want := []string{"A", "B", "C", "D", "M"}
	if len(story.Palette) != len(want) {
		t.Fatalf("len(Palette) = %d, want %d", len(story.Palette), len(want))
	}
	for i, label := range want {
		if story.Palette[i].Label != label {
			t.Errorf("Palette[%d].Label = %q, want %q", i, story.Palette[i].Label, label)
		}
		if story.Palette[i].Color == "" {
			t.Errorf("Palette[%d] has no color", i)
		}
	}
}

func TestLoadBranchRows(t *testing.T) {
	story, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	want := map[string]int{
		"origin/main": 3,
		"local/main":  2,
		"testing":     1,
	}
	for name, row := range want {
		got, ok := story.Row(name)
		if !ok {
			t.Errorf("Row(%q) not found", name)
			continue
		}
		if got != row {
			t.Errorf("Row(%q) = %d, want %d", name, got, row)
		}
	}

	if _, ok := story.Row("feature/x"); ok {
		t.Error("Row() found a branch that should not exist")
	}
}

func TestSceneCommitSets(t *testing.T) {
	story, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	tests := []struct {
		id     string
		file   string
		labels []string // sorted multiset of drawn labels
	}{
		{"step1", "git_workflow_step1.png", []string{"A", "A", "A", "B", "C", "D"}},
		{"step2", "git_workflow_step2.png", []string{"A", "A", "A", "B", "B", "C", "C", "D"}},
		{"step3", "git_workflow_step3.png", []string{"A", "A", "A", "B", "B", "C", "C", "D", "M"}},
	}

	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			sc, ok := story.Scene(tt.id)
			if !ok {
				t.Fatalf("Scene(%q) not found", tt.id)
			}
			if sc.File != tt.file {
				t.Errorf("File = %q, want %q", sc.File, tt.file)
			}

			var labels []string
			for _, cm := range sc.Commits {
				labels = append(labels, cm.Label)
			}
			sort.Strings(labels)

			if len(labels) != len(tt.labels) {
				t.Fatalf("drew %d commits, want %d", len(labels), len(tt.labels))
			}
			for i := range labels {
				if labels[i] != tt.labels[i] {
					t.Errorf("labels[%d] = %q, want %q", i, labels[i], tt.labels[i])
				}
			}
		})
	}
}

func TestMergeArrows(t *testing.T) {
	story, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	// Only the merge scene has arrows.
	for _, id := range []string{"step1", "step2"} {
		sc, _ := story.Scene(id)
		if len(sc.Arrows) != 0 {
			t.Errorf("scene %s has %d arrows, want 0", id, len(sc.Arrows))
		}
	}

	sc, _ := story.Scene("step3")
	if len(sc.Arrows) != 2 {
		t.Fatalf("step3 has %d arrows, want 2", len(sc.Arrows))
	}

	// Both arrows terminate at the merge commit.
	for i, ar := range sc.Arrows {
		cm, ok := sc.CommitAt(ar.ToX, ar.ToBranch)
		if !ok {
			t.Fatalf("arrow %d ends at (%g, %s) with no commit", i, ar.ToX, ar.ToBranch)
		}
		if cm.Label != "M" {
			t.Errorf("arrow %d ends at commit %q, want M", i, cm.Label)
		}
	}
}

func TestValidate(t *testing.T) {
	base := func() *Story {
		return &Story{
			Palette:  []Swatch{{Label: "A", Color: "#ADD8E6"}},
			Branches: []Branch{{Name: "main", Row: 1}},
			Scenes: []Scene{{
				ID:      "s1",
				File:    "s1.png",
				Lines:   []Line{{Branch: "main", From: 1, To: 2}},
				Commits: []Commit{{X: 1, Branch: "main", Label: "A"}},
			}},
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Story)
		wantErr bool
	}{
		{
			name:    "valid story",
			mutate:  func(s *Story) {},
			wantErr: false,
		},
		{
			name:    "empty palette",
			mutate:  func(s *Story) { s.Palette = nil },
			wantErr: true,
		},
		{
			name:    "unknown branch in commit",
			mutate:  func(s *Story) { s.Scenes[0].Commits[0].Branch = "nope" },
			wantErr: true,
		},
		{
			name:    "label missing from palette",
			mutate:  func(s *Story) { s.Scenes[0].Commits[0].Label = "Z" },
			wantErr: true,
		},
		{
			name: "arrow into empty space",
			mutate: func(s *Story) {
				s.Scenes[0].Arrows = []Arrow{{FromX: 1, FromBranch: "main", ToX: 9, ToBranch: "main"}}
			},
			wantErr: true,
		},
		{
			name: "duplicate scene id",
			mutate: func(s *Story) {
				dup := s.Scenes[0]
				dup.File = "other.png"
				s.Scenes = append(s.Scenes, dup)
			},
			wantErr: true,
		},
		{
			name: "duplicate output file",
			mutate: func(s *Story) {
				dup := s.Scenes[0]
				dup.ID = "s2"
				s.Scenes = append(s.Scenes, dup)
			},
			wantErr: true,
		},
		{
			name:    "inverted line span",
			mutate:  func(s *Story) { s.Scenes[0].Lines[0].To = 0.5 },
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := base()
			tt.mutate(s)
			err := s.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestCommitAt(t *testing.T) {
	sc := &Scene{Commits: []Commit{
		{X: 1, Branch: "main", Label: "A"},
		{X: 2, Branch: "main", Label: "B"},
	}}

	cm, ok := sc.CommitAt(2, "main")
	if !ok {
		t.Fatal("CommitAt(2, main) not found")
	}
	if cm.Label != "B" {
		t.Errorf("Label = %q, want B", cm.Label)
	}

	if _, ok := sc.CommitAt(3, "main"); ok {
		t.Error("CommitAt(3, main) found a commit that should not exist")
	}
}
