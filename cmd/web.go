package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/klauspost/compress/gzhttp"
	"github.com/rubiojr/fhsearch/cmd/web/components"
	"github.com/rubiojr/fhsearch/cmd/web/components/types"
	"github.com/rubiojr/fhsearch/pkg/api"
	"github.com/rubiojr/fhsearch/pkg/config"
	"github.com/rubiojr/fhsearch/pkg/funeralhomes"
	"github.com/rubiojr/fhsearch/pkg/log"
	"github.com/rubiojr/fhsearch/pkg/render"
	"github.com/rubiojr/fhsearch/pkg/search"
	"github.com/rubiojr/fhsearch/pkg/version"
	"github.com/urfave/cli/v3"
)

// WebCommand creates the web command with both API and UI
func WebCommand() *cli.Command {
	return &cli.Command{
		Name:  "web",
		Usage: "Start web server with both API endpoints and HTML interface",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "port",
				Usage: "Port to listen on (overrides web.port)",
			},
			&cli.StringFlag{
				Name:  "host",
				Usage: "Host to bind to (overrides web.host)",
			},
			&cli.BoolFlag{
				Name:  "watch",
				Usage: "Reload the API base URL when the config file changes",
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			return startWebServer(ctx, c.String("config"), c.String("host"), c.String("port"), c.Bool("watch"))
		},
	}
}

// WebServer holds the server configuration and dependencies
type WebServer struct {
	client    atomic.Pointer[funeralhomes.Client]
	apiServer *api.Server
	logger    *log.Logger
}

func newWebServer(client *funeralhomes.Client) *WebServer {
	s := &WebServer{logger: log.ForService("web")}
	s.client.Store(client)
	s.apiServer = api.NewServer(s.source)
	return s
}

func (s *WebServer) source() search.Source {
	return s.client.Load()
}

// setClient replaces the client used by requests that start afterwards.
func (s *WebServer) setClient(client *funeralhomes.Client) {
	s.client.Store(client)
}

// Handler returns the routes wrapped in the middleware stack.
func (s *WebServer) Handler() http.Handler {
	mux := http.NewServeMux()

	// API routes
	s.apiServer.RegisterRoutes(mux)

	// Web UI routes
	mux.HandleFunc("GET /{$}", s.handleHome)

	handler := api.LoggingMiddleware(s.logger, mux)
	handler = api.CorsMiddleware(handler)
	return gzhttp.GzipHandler(handler)
}

// startWebServer starts the web server with both API and UI
func startWebServer(ctx context.Context, configPath, host, port string, watch bool) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}
	if host != "" {
		cfg.Web.Host = host
	}
	if port != "" {
		cfg.Web.Port = port
	}

	webServer := newWebServer(newClient(cfg))

	server := &http.Server{
		Addr:              cfg.WebAddr(),
		Handler:           webServer.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	if watch {
		go webServer.watchConfig(ctx, configPath)
	}

	errCh := make(chan error, 1)
	go func() {
		logger := webServer.logger
		logger.Infof("Starting web server on http://%s", cfg.WebAddr())
		logger.Infof("Querying API at %q", cfg.APIBaseURL)
		logger.Infof("Available endpoints:")
		logger.Infof("  GET / - Funeral homes search page")
		logger.Infof("  GET /api/search - Search as JSON")
		logger.Infof("  GET /health - Health check")

		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("server failed: %w", err)
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	webServer.logger.Infof("Shutting down web server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	return server.Shutdown(shutdownCtx)
}

// handleHome renders the search page for the filters and page in the URL.
func (s *WebServer) handleHome(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filters := funeralhomes.FiltersFromQuery(q, funeralhomes.FormFields...)

	view := search.NewViewAt(filters, search.ParsePage(q.Get("page")))
	state := search.NewFetcher(s.source()).Run(r.Context(), view, view.Begin())
	if state.Error != "" {
		s.logger.Warnf("Search failed: %s", state.Error)
	}

	data := types.PageData{
		Title:   render.Title,
		State:   state,
		Cards:   render.Cards(state.Rows),
		Version: version.APIVersion(),
	}
	if state.CanPrev {
		data.PrevURL = components.PageURL(state.Submitted, state.Page-1)
	}
	if state.CanNext {
		data.NextURL = components.PageURL(state.Submitted, state.Page+1)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := components.SearchPage(data).Render(r.Context(), w); err != nil {
		http.Error(w, fmt.Sprintf("Template error: %v", err), http.StatusInternalServerError)
	}
}

// watchConfig swaps the API client whenever the config file changes. It
// returns when ctx is done.
func (s *WebServer) watchConfig(ctx context.Context, configPath string) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		s.logger.Warnf("Failed to create config file watcher: %v", err)
		return
	}
	defer func() {
		if err := watcher.Close(); err != nil {
			s.logger.Warnf("Failed to close config file watcher: %v", err)
		}
	}()

	if err := watcher.Add(configPath); err != nil {
		s.logger.Warnf("Failed to watch config file %s: %v", configPath, err)
		return
	}
	s.logger.Infof("Watching config file for changes: %s", configPath)

	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			// Editors often replace the file instead of writing to it
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) && !event.Has(fsnotify.Remove) {
				continue
			}
			s.logger.Infof("Config file changed: %s (event: %s), reloading configuration...", event.Name, event.Op.String())

			if event.Has(fsnotify.Rename) || event.Has(fsnotify.Remove) {
				time.Sleep(200 * time.Millisecond)
				if _, err := os.Stat(configPath); os.IsNotExist(err) {
					s.logger.Warnf("Config file was removed and not replaced, skipping reload")
					continue
				}
				if err := watcher.Add(configPath); err != nil {
					s.logger.Warnf("Failed to re-add config file to watcher after rename/remove: %v", err)
				}
			} else {
				time.Sleep(100 * time.Millisecond)
			}

			if err := s.reload(configPath); err != nil {
				s.logger.Errorf("Failed to reload configuration: %v", err)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			s.logger.Errorf("Config file watcher error: %v", err)
		}
	}
}

// reload re-reads configPath and swaps in a client for its base URL. On
// error the current client is kept.
func (s *WebServer) reload(configPath string) error {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return err
	}
	s.setClient(newClient(cfg))
	s.logger.Infof("Configuration reloaded, querying API at %q", cfg.APIBaseURL)
	return nil
}
