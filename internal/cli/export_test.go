package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestValidateExportFormat(t *testing.T) {
	for _, f := range []string{"dot", "svg", "png"} {
		if err := validateExportFormat(f); err != nil {
			t.Errorf("validateExportFormat(%q) error: %v", f, err)
		}
	}
	if err := validateExportFormat("pdf"); err == nil {
		t.Error("validateExportFormat(pdf) should fail")
	}
}

func TestExportPath(t *testing.T) {
	tests := []struct {
		name   string
		output string
		multi  bool
		want   string
	}{
		{
			name:   "default name",
			output: "",
			multi:  false,
			want:   "step1.dot",
		},
		{
			name:   "explicit single output",
			output: "out.dot",
			multi:  false,
			want:   "out.dot",
		},
		{
			name:   "prefix for multiple scenes",
			output: "graphs",
			multi:  true,
			want:   "graphs_step1.dot",
		},
		{
			name:   "directory for multiple scenes",
			output: "graphs" + string(filepath.Separator),
			multi:  true,
			want:   filepath.Join("graphs", "step1.dot"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := exportPath(tt.output, "step1", "dot", tt.multi); got != tt.want {
				t.Errorf("exportPath() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestExportDOT(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "merge.dot")

	c := New(io.Discard, LogInfo)
	root := c.RootCommand()
	root.SetOut(io.Discard)
	root.SetErr(io.Discard)
	root.SetArgs([]string{"export", "step3", "-f", "dot", "-o", out})

	if err := root.ExecuteContext(context.Background()); err != nil {
		t.Fatalf("export error: %v", err)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if !strings.HasPrefix(string(data), "digraph G {") {
		t.Error("exported file should be a DOT digraph")
	}
	if !strings.Contains(string(data), `"testing@4"`) {
		t.Error("exported digraph should contain the merge commit node")
	}
}

func TestExportUnknownScene(t *testing.T) {
	c := New(io.Discard, LogInfo)
	root := c.RootCommand()
	root.SetOut(io.Discard)
	root.SetErr(io.Discard)
	root.SetArgs([]string{"export", "step9"})

	if err := root.ExecuteContext(context.Background()); err == nil {
		t.Error("export of unknown scene should fail")
	}
}
