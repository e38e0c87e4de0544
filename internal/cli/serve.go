package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/cobra"

	"github.com/matzehuels/kicadfp/pkg/observability"
	"github.com/matzehuels/kicadfp/pkg/pipeline"
	"github.com/matzehuels/kicadfp/pkg/series"
)

// defaultAddr is the listen address when --addr and config leave it
// unset.
const defaultAddr = ":8420"

// serveOpts holds the command-line flags for the serve command.
type serveOpts struct {
	addr    string  // listen address
	family  string  // series family, empty means detect from file name
	noCache bool    // disable artifact caching
	scale   float64 // preview pixels per millimetre
	margin  float64 // preview margin in millimetres
}

// serveCommand creates the serve command for the local preview server.
func (c *CLI) serveCommand() *cobra.Command {
	opts := serveOpts{
		addr:   defaultAddr,
		scale:  pipeline.DefaultScale,
		margin: pipeline.DefaultMargin,
	}

	cmd := &cobra.Command{
		Use:   "serve <series.yaml|dir>",
		Short: "Serve footprints and previews over HTTP",
		Long: `Serve generated footprints over HTTP for local review.

Series files are loaded once at startup. Footprint files and previews
are rendered on demand and cached, so repeated requests are cheap and
browser refreshes pick up nothing stale.

Routes:
  GET /footprints             part list (JSON)
  GET /footprints/{name}      the .kicad_mod file
  GET /footprints/{name}/svg  the SVG preview

Examples:
  kicadfp serve examples/series/
  kicadfp serve chip.yaml --addr localhost:9000`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c.Config.applyServe(cmd.Flags(), &opts)
			return c.runServe(cmd.Context(), args[0], &opts)
		},
	}

	cmd.Flags().StringVar(&opts.addr, "addr", opts.addr, "listen address")
	cmd.Flags().StringVar(&opts.family, "family", "", "series family (default: detect from the file name)")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching")
	cmd.Flags().Float64Var(&opts.scale, "scale", opts.scale, "preview pixels per millimetre")
	cmd.Flags().Float64Var(&opts.margin, "margin", opts.margin, "preview margin in millimetres")

	return cmd
}

// runServe loads the series files and serves them until the context is
// cancelled. Interrupting the server is a clean exit.
func (c *CLI) runServe(ctx context.Context, input string, opts *serveOpts) error {
	runner, err := c.newRunner(opts.noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	srv, err := newServer(runner, c.Logger, input, opts)
	if err != nil {
		return err
	}

	httpSrv := &http.Server{
		Addr:              opts.addr,
		Handler:           srv.routes(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	printSuccess("Serving %d parts on %s", len(srv.parts), opts.addr)
	printNextStep("Browse", serveURL(opts.addr)+"/footprints")

	errCh := make(chan error, 1)
	go func() { errCh <- httpSrv.ListenAndServe() }()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpSrv.Shutdown(shutCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	<-errCh
	c.Logger.Info("server stopped")
	return nil
}

// serveURL turns a listen address into something a browser accepts.
func serveURL(addr string) string {
	if strings.HasPrefix(addr, ":") {
		return "http://localhost" + addr
	}
	return "http://" + addr
}

// =============================================================================
// HTTP Server
// =============================================================================

// servedPart ties a loaded part to the series file and family it came
// from, so requests can rebuild it on demand.
type servedPart struct {
	family *series.Family
	spec   series.PartSpec
	input  string
}

// server serves loaded parts over HTTP. Rendering goes through the
// shared pipeline runner, so the artifact cache is reused across
// requests and with the generate command.
type server struct {
	runner *pipeline.Runner
	logger *log.Logger
	opts   *serveOpts
	parts  map[string]servedPart
	order  []string
}

// newServer loads every series file under input and indexes the parts
// by name. Part names must be unique across files since they form the
// URL namespace.
func newServer(runner *pipeline.Runner, logger *log.Logger, input string, opts *serveOpts) (*server, error) {
	inputs, err := resolveInputs(input)
	if err != nil {
		return nil, err
	}

	s := &server{
		runner: runner,
		logger: logger,
		opts:   opts,
		parts:  make(map[string]servedPart),
	}

	prog := newProgress(logger)
	for _, in := range inputs {
		family, specs, err := pipeline.Load(s.pipelineOptions(in))
		if err != nil {
			return nil, err
		}
		for _, spec := range specs {
			if prev, ok := s.parts[spec.Name]; ok {
				return nil, fmt.Errorf("part %s defined in both %s and %s", spec.Name, prev.input, in)
			}
			s.parts[spec.Name] = servedPart{family: family, spec: spec, input: in}
			s.order = append(s.order, spec.Name)
		}
	}
	prog.done(fmt.Sprintf("Loaded %d parts from %d files", len(s.parts), len(inputs)))
	return s, nil
}

// pipelineOptions builds render options for one series file.
func (s *server) pipelineOptions(input string) pipeline.Options {
	return pipeline.Options{
		Input:  input,
		Family: s.opts.family,
		Scale:  s.opts.scale,
		Margin: s.opts.margin,
		Logger: s.logger,
	}
}

// routes builds the router.
func (s *server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(s.logRequests)
	r.Get("/footprints", s.handleList)
	r.Get("/footprints/{name}", s.handleFootprint)
	r.Get("/footprints/{name}/svg", s.handlePreview)
	return r
}

// logRequests reports every request through the serve hooks and logs
// it at debug level.
func (s *server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		observability.Serve().OnRequest(r.Context(), r.Method, r.URL.Path)

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		duration := time.Since(start)

		observability.Serve().OnResponse(r.Context(), r.Method, r.URL.Path, ww.Status(), duration)
		s.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", duration.Round(time.Millisecond))
	})
}

// partListing is one entry in the /footprints response.
type partListing struct {
	Name   string `json:"name"`
	Family string `json:"family"`
	Mod    string `json:"mod"`
	SVG    string `json:"svg"`
}

// handleList returns every loaded part in load order.
func (s *server) handleList(w http.ResponseWriter, r *http.Request) {
	listings := make([]partListing, 0, len(s.order))
	for _, name := range s.order {
		listings = append(listings, partListing{
			Name:   name,
			Family: s.parts[name].family.Name,
			Mod:    "/footprints/" + name,
			SVG:    "/footprints/" + name + "/svg",
		})
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(listings); err != nil {
		s.logger.Error("encode listing", "err", err)
	}
}

// handleFootprint returns the rendered .kicad_mod file.
func (s *server) handleFootprint(w http.ResponseWriter, r *http.Request) {
	s.servePart(w, r, pipeline.FormatMod, "text/plain; charset=utf-8")
}

// handlePreview returns the SVG preview.
func (s *server) handlePreview(w http.ResponseWriter, r *http.Request) {
	s.servePart(w, r, pipeline.FormatSVG, "image/svg+xml")
}

// servePart renders the named part in the requested format.
func (s *server) servePart(w http.ResponseWriter, r *http.Request, format, contentType string) {
	name := chi.URLParam(r, "name")
	part, ok := s.parts[name]
	if !ok {
		http.Error(w, fmt.Sprintf("unknown part %q", name), http.StatusNotFound)
		return
	}

	popts := s.pipelineOptions(part.input)
	popts.Formats = []string{format}
	artifacts, err := s.runner.GeneratePart(r.Context(), part.family, part.spec, popts)
	if err != nil {
		s.logger.Error("generate", "part", name, "err", err)
		http.Error(w, fmt.Sprintf("generating %s failed", name), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", contentType)
	_, _ = w.Write(artifacts[format])
}
