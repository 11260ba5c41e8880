package delivery

import (
	"net/http"

	"github.com/Vovarama1992/visus/internal/ports"
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Handlers bundles everything RegisterRoutes mounts. Media is the static
// file server of the local storage and may be nil.
type Handlers struct {
	Auth     ports.AuthService
	Session  *AuthHandler
	Content  *ContentHandler
	Upload   *UploadHandler
	Callback *CallbackHandler
	WS       http.Handler
	Media    http.Handler
	HealthFn func(r *http.Request) error
}

func RegisterRoutes(r chi.Router, h Handlers) {
	r.Get("/health", func(w http.ResponseWriter, req *http.Request) {
		if h.HealthFn != nil {
			if err := h.HealthFn(req); err != nil {
				writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable", "error": err.Error()})
				return
			}
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Handle("/metrics", promhttp.Handler())

	if h.Media != nil {
		r.Handle("/media/*", http.StripPrefix("/media/", h.Media))
	}

	r.Route("/api", func(r chi.Router) {
		// public
		r.Get("/doctors", h.Content.ListDoctors)
		r.Get("/reviews", h.Content.ListReviews)
		r.Get("/services", h.Content.ListActiveServices)
		r.Get("/media/{category}", h.Content.ListMedia)
		r.Post("/requests/callback", h.Callback.Create)

		// admin
		r.Route("/admin", func(r chi.Router) {
			r.Use(AuthMiddleware(h.Auth))

			r.Get("/session", h.Session.Session)

			r.Get("/doctors", h.Content.ListDoctors)
			r.Post("/doctors", h.Content.CreateDoctor)
			r.Put("/doctors/{id}", h.Content.UpdateDoctor)
			r.Delete("/doctors/{id}", h.Content.DeleteDoctor)

			r.Get("/reviews", h.Content.ListReviews)
			r.Post("/reviews", h.Content.CreateReview)
			r.Put("/reviews/{id}", h.Content.UpdateReview)
			r.Delete("/reviews/{id}", h.Content.DeleteReview)

			r.Get("/services", h.Content.ListAllServices)
			r.Post("/services", h.Content.CreateService)
			r.Put("/services/{id}", h.Content.UpdateService)
			r.Delete("/services/{id}", h.Content.DeleteService)

			r.Get("/media/{category}", h.Content.ListMedia)
			r.Post("/media/{category}", h.Content.CreateMedia)
			r.Put("/media/{category}/{id}", h.Content.UpdateMedia)
			r.Delete("/media/{category}/{id}", h.Content.DeleteMedia)

			r.Post("/upload", h.Upload.Upload)
			r.Delete("/upload", h.Upload.Delete)

			r.Get("/requests", h.Callback.List)
			if h.WS != nil {
				r.Handle("/ws", h.WS)
			}
		})
	})
}
