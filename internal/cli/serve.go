package cli

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/cobra"

	"github.com/branchplot/branchplot/pkg/cache"
	"github.com/branchplot/branchplot/pkg/render/raster"
	"github.com/branchplot/branchplot/pkg/scene"
)

// serveOpts holds the command-line flags for the serve command.
type serveOpts struct {
	addr    string
	scale   float64
	noCache bool
}

// serveCommand creates the serve command: a local HTTP preview of the
// rendered scenes.
func (c *CLI) serveCommand() *cobra.Command {
	opts := serveOpts{addr: "localhost:8329", scale: raster.DefaultScale}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Preview the workflow scenes in a browser",
		Long: `Preview the workflow scenes in a browser.

Serves an index page and one PNG per scene, rendered on demand through
the render cache. This is a read-only preview; the scenes themselves
are fixed.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVar(&opts.addr, "addr", opts.addr, "listen address")
	cmd.Flags().Float64Var(&opts.scale, "scale", opts.scale, "pixels per scene unit")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, opts serveOpts) error {
	story, err := loadStory()
	if err != nil {
		return err
	}

	ca, err := newCache(opts.noCache)
	if err != nil {
		return fmt.Errorf("initialize cache: %w", err)
	}
	defer ca.Close()

	srv := &http.Server{
		Addr:    opts.addr,
		Handler: c.newRouter(story, ca, opts.scale),
	}

	printInfo("Serving scenes on http://%s", opts.addr)
	printDetail("Press Ctrl+C to stop")

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return ctx.Err()
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

// newRouter builds the chi router for the preview server.
func (c *CLI) newRouter(story *scene.Story, ca cache.Cache, scale float64) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(c.logRequests)

	r.Get("/", c.handleIndex(story))
	r.Get("/scenes/{id}.png", c.handleScenePNG(story, ca, scale))

	return r
}

// logRequests attaches the CLI logger to the request context and logs
// each request at debug level.
func (c *CLI) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ctx := withLogger(r.Context(), c.Logger)
		next.ServeHTTP(w, r.WithContext(ctx))
		c.Logger.Debug("request", "method", r.Method, "path", r.URL.Path,
			"id", middleware.GetReqID(ctx), "elapsed", time.Since(start).Round(time.Millisecond))
	})
}

var indexTemplate = template.Must(template.New("index").Parse(`<!doctype html>
<html>
<head><title>branchplot</title></head>
<body style="font-family: sans-serif; max-width: 64rem; margin: 2rem auto;">
<h1>branchplot</h1>
{{range .Scenes}}
<h2>{{.Title}}</h2>
<img src="/scenes/{{.ID}}.png" alt="{{.Caption}}" style="max-width: 100%;">
{{end}}
</body>
</html>
`))

func (c *CLI) handleIndex(story *scene.Story) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := indexTemplate.Execute(w, story); err != nil {
			loggerFromContext(r.Context()).Error("render index", "err", err)
		}
	}
}

func (c *CLI) handleScenePNG(story *scene.Story, ca cache.Cache, scale float64) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		sc, ok := story.Scene(id)
		if !ok {
			http.NotFound(w, r)
			return
		}

		data, hit, err := renderScenePNG(r.Context(), ca, story, sc, scale)
		if err != nil {
			loggerFromContext(r.Context()).Error("render scene", "scene", id, "err", err)
			http.Error(w, "render failed", http.StatusInternalServerError)
			return
		}
		loggerFromContext(r.Context()).Debug("served scene", "scene", id, "cached", hit)

		w.Header().Set("Content-Type", "image/png")
		w.Header().Set("Cache-Control", "no-cache")
		_, _ = w.Write(data)
	}
}
