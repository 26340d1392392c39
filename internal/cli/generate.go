package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/branchplot/branchplot/pkg/cache"
	"github.com/branchplot/branchplot/pkg/render/raster"
	"github.com/branchplot/branchplot/pkg/scene"
)

// generateOpts holds the command-line flags for the generate command.
type generateOpts struct {
	output  string  // output directory for the PNG files
	scale   float64 // pixels per scene unit
	noCache bool    // disable the render cache
}

// generateCommand creates the generate command, the tool's main
// operation: render every scene of the story to its fixed-name PNG
// file and print the confirmation lines.
func (c *CLI) generateCommand() *cobra.Command {
	opts := generateOpts{scale: raster.DefaultScale}

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Render the three workflow scenes to PNG files",
		Long: `Render the three workflow scenes to PNG files.

Each scene is written to the working directory (or --output) under its
fixed name: git_workflow_step1.png, git_workflow_step2.png,
git_workflow_step3.png. Output is fully deterministic; repeated runs
produce byte-identical files. Rendered bytes are cached locally so
repeated runs skip the encode work.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runGenerate(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", ".", "output directory")
	cmd.Flags().Float64Var(&opts.scale, "scale", opts.scale, "pixels per scene unit")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching")

	return cmd
}

func (c *CLI) runGenerate(ctx context.Context, opts generateOpts) error {
	story, err := loadStory()
	if err != nil {
		return err
	}

	ca, err := newCache(opts.noCache)
	if err != nil {
		return fmt.Errorf("initialize cache: %w", err)
	}
	defer ca.Close()

	if err := os.MkdirAll(opts.output, 0o755); err != nil {
		return fmt.Errorf("create output dir %s: %w", opts.output, err)
	}

	prog := newProgress(c.Logger)
	for i := range story.Scenes {
		sc := &story.Scenes[i]

		data, hit, err := renderScenePNG(ctx, ca, story, sc, opts.scale)
		if err != nil {
			return fmt.Errorf("render %s: %w", sc.ID, err)
		}

		path := filepath.Join(opts.output, sc.File)
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		c.Logger.Debug("wrote scene", "scene", sc.ID, "path", path, "bytes", len(data), "cached", hit)
		printFile(path + " " + renderStatus(hit))
	}
	prog.done(fmt.Sprintf("Rendered %d scenes", len(story.Scenes)))

	printSuccess("Created three separate visualization images:")
	for i := range story.Scenes {
		sc := &story.Scenes[i]
		printNumbered(i+1, sc.File, sc.Caption)
	}
	return nil
}

// renderScenePNG renders one scene to PNG bytes through the cache.
// The second return reports whether the bytes came from the cache.
func renderScenePNG(ctx context.Context, ca cache.Cache, story *scene.Story, sc *scene.Scene, scale float64) ([]byte, bool, error) {
	key := cache.RenderKey(scene.Source(), sc.ID, "png", scale)

	if data, hit, err := ca.Get(ctx, key); err == nil && hit {
		return data, true, nil
	}

	img, err := raster.Render(story, sc, raster.Options{Scale: scale})
	if err != nil {
		return nil, false, err
	}
	data, err := raster.EncodePNG(img)
	if err != nil {
		return nil, false, err
	}

	// Best effort: a failed cache write never fails the render.
	_ = ca.Set(ctx, key, data, 0)
	return data, false, nil
}
