package http

import (
	"io/fs"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/herald/frontend"
	"github.com/secmon-lab/herald/pkg/usecase"
	"github.com/secmon-lab/herald/pkg/utils/safe"
)

type Server struct {
	router   *chi.Mux
	uc       *usecase.UseCases
	staticFS fs.FS
}

type Options func(*Server)

// WithStaticFS replaces the embedded dashboard
func WithStaticFS(staticFS fs.FS) Options {
	return func(s *Server) {
		s.staticFS = staticFS
	}
}

func New(uc *usecase.UseCases, opts ...Options) (*Server, error) {
	if uc == nil {
		return nil, goerr.New("use cases are required")
	}

	r := chi.NewRouter()

	s := &Server{
		router: r,
		uc:     uc,
	}
	for _, opt := range opts {
		opt(s)
	}

	if s.staticFS == nil {
		staticFS, err := fs.Sub(frontend.StaticFiles, "dist")
		if err != nil {
			return nil, goerr.Wrap(err, "failed to bind dist dir for static")
		}
		s.staticFS = staticFS
	}

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(requestLogger)
	r.Use(accessLogger)
	r.Use(middleware.Recoverer)

	// Uptime monitors poll this
	r.Get("/ping", pingHandler)

	r.Route("/api", func(r chi.Router) {
		r.Route("/bot", func(r chi.Router) {
			r.Get("/status", botStatusHandler(uc))
			r.Get("/system", botSystemHandler(uc))
			r.Post("/restart", botRestartHandler(uc))
		})

		r.Get("/logs", logsHandler(uc))
		r.Get("/servers", serversHandler(uc))
		r.Get("/roles", rolesHandler(uc))
		r.Get("/roles/{roleId}/members", roleMembersHandler(uc))
		r.Post("/dm", dmHandler(uc))
		r.Post("/config", configHandler(uc))
	})

	// Static file serving for SPA (catch-all, must be last)
	r.Get("/*", spaHandler(s.staticFS))

	return s, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func pingHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	safe.Write(r.Context(), w, []byte("Bot is online!"))
}

// spaHandler handles SPA routing by serving static files and falling back to index.html
func spaHandler(staticFS fs.FS) http.HandlerFunc {
	fileServer := http.FileServer(http.FS(staticFS))

	return func(w http.ResponseWriter, r *http.Request) {
		urlPath := strings.TrimPrefix(r.URL.Path, "/")

		// Unknown API paths must not be answered with the dashboard
		if strings.HasPrefix(urlPath, "api/") {
			http.NotFound(w, r)
			return
		}

		if urlPath == "" {
			urlPath = "index.html"
		}

		file, err := staticFS.Open(urlPath)
		if err != nil {
			// File not found, serve index.html for SPA routing
			if indexFile, err := staticFS.Open("index.html"); err == nil {
				defer safe.Close(r.Context(), indexFile)
				w.Header().Set("Content-Type", "text/html; charset=utf-8")
				safe.Copy(r.Context(), w, indexFile)
				return
			}

			http.NotFound(w, r)
			return
		}
		safe.Close(r.Context(), file)

		fileServer.ServeHTTP(w, r)
	}
}
