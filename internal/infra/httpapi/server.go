package httpapi

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Server struct {
	srv *http.Server
}

// NewRouter wires the middleware stack and routes. Kept separate from
// New so tests can drive the mux with httptest.
func NewRouter(h *Handler, jwtSecret []byte, lookup UserLookup, exposeMetrics bool) *chi.Mux {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
	}))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})
	if exposeMetrics {
		r.Handle("/metrics", promhttp.Handler())
	}

	r.Route("/api", func(r chi.Router) {
		r.Use(Authenticate(jwtSecret, lookup))

		r.Route("/spareparts", func(r chi.Router) {
			r.Get("/", h.ListSpareparts)
			r.Post("/", h.CreateSparepart)
			r.Get("/{id}", h.GetSparepart)
			r.Patch("/{id}", h.UpdateSparepart)
			r.Delete("/{id}", h.DeleteSparepart)
		})

		r.Route("/movements", func(r chi.Router) {
			r.Get("/", h.ListMovements)
			r.Post("/", h.CreateMovement)
			r.Get("/export", h.ExportMovements)
		})

		r.Get("/dashboard", h.Dashboard)
	})

	return r
}

func New(addr string, handler http.Handler) *Server {
	return &Server{srv: &http.Server{Addr: addr, Handler: handler}}
}

func (s *Server) Start() error {
	return s.srv.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}
