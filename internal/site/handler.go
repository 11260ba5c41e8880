package site

import (
	"bytes"
	"embed"
	"io/fs"
	"net/http"
	"net/url"
	"strings"

	"github.com/Vovarama1992/go-utils/logger"
	"github.com/go-chi/chi/v5"
)

//go:embed assets
var assetFS embed.FS

// static files referenced by the page: stylesheet and the media placeholder
func assets() http.Handler {
	sub, err := fs.Sub(assetFS, "assets")
	if err != nil {
		panic(err)
	}
	return http.FileServer(http.FS(sub))
}

type Handler struct {
	client   *Client
	bundle   *Bundle
	renderer *Renderer
	log      *logger.ZapLogger
}

func NewHandler(client *Client, bundle *Bundle, renderer *Renderer, log *logger.ZapLogger) *Handler {
	return &Handler{client: client, bundle: bundle, renderer: renderer, log: log}
}

// RegisterRoutes mounts the public pages on r.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.Page)
	r.Post("/booking", h.Book)
	r.Handle("/assets/*", http.StripPrefix("/assets/", assets()))
	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
}

// GET /?lang=ru|kk&booking=ok|error
func (h *Handler) Page(w http.ResponseWriter, r *http.Request) {
	lang := h.bundle.Negotiate(r.URL.Query().Get("lang"), r.Header.Get("Accept-Language"))
	booking := r.URL.Query().Get("booking")
	if booking != BookingOK && booking != BookingError {
		booking = ""
	}

	content := h.client.Load(r.Context())

	var buf bytes.Buffer
	if err := h.renderer.Render(&buf, lang, booking, content); err != nil {
		h.log.Log(logger.LogEntry{
			Level:   "error",
			Message: "render page failed",
			Error:   err,
			Fields:  map[string]any{"lang": lang},
		})
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Content-Language", lang)
	_, _ = buf.WriteTo(w)
}

// POST /booking (form: name, phone, lang)
func (h *Handler) Book(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}
	lang := h.bundle.Negotiate(r.PostForm.Get("lang"), r.Header.Get("Accept-Language"))
	name := strings.TrimSpace(r.PostForm.Get("name"))
	phone := strings.TrimSpace(r.PostForm.Get("phone"))

	outcome := BookingOK
	switch {
	case name == "" || phone == "":
		outcome = BookingError
	default:
		if err := h.client.Book(r.Context(), name, phone); err != nil {
			h.log.Log(logger.LogEntry{
				Level:   "warn",
				Message: "booking failed",
				Error:   err,
			})
			outcome = BookingError
		} else {
			h.log.Log(logger.LogEntry{
				Level:   "info",
				Message: "booking forwarded",
				Fields:  map[string]any{"lang": lang},
			})
		}
	}

	q := url.Values{"lang": {lang}, "booking": {outcome}}
	http.Redirect(w, r, "/?"+q.Encode()+"#booking", http.StatusSeeOther)
}
