package delivery

import (
	"net/http"

	"github.com/Vovarama1992/go-utils/logger"
	"github.com/Vovarama1992/visus/internal/domain"
	"github.com/Vovarama1992/visus/internal/models"
	"github.com/go-chi/chi/v5"
)

type ContentHandler struct {
	content *domain.ContentService
	log     *logger.ZapLogger
}

func NewContentHandler(content *domain.ContentService, log *logger.ZapLogger) *ContentHandler {
	return &ContentHandler{content: content, log: log}
}

func (h *ContentHandler) audit(r *http.Request, action, entity string, id int) {
	h.log.Log(logger.LogEntry{
		Level:   "info",
		Message: "admin " + action,
		Fields: map[string]any{
			"entity":   entity,
			"id":       id,
			"username": AdminUser(r.Context()),
		},
	})
}

// ---------- doctors ----------

// GET /api/doctors, GET /api/admin/doctors
func (h *ContentHandler) ListDoctors(w http.ResponseWriter, r *http.Request) {
	list, err := h.content.ListDoctors(r.Context())
	if err != nil {
		fail(h.log, w, r, "Doctor", err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (h *ContentHandler) CreateDoctor(w http.ResponseWriter, r *http.Request) {
	var in models.Doctor
	if !decodeJSON(w, r, &in) {
		return
	}
	d, err := h.content.CreateDoctor(r.Context(), in)
	if err != nil {
		fail(h.log, w, r, "Doctor", err)
		return
	}
	h.audit(r, "create", "doctor", d.ID)
	writeJSON(w, http.StatusCreated, d)
}

func (h *ContentHandler) UpdateDoctor(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var in models.Doctor
	if !decodeJSON(w, r, &in) {
		return
	}
	d, err := h.content.UpdateDoctor(r.Context(), id, in)
	if err != nil {
		fail(h.log, w, r, "Doctor", err)
		return
	}
	h.audit(r, "update", "doctor", id)
	writeJSON(w, http.StatusOK, d)
}

func (h *ContentHandler) DeleteDoctor(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := h.content.DeleteDoctor(r.Context(), id); err != nil {
		fail(h.log, w, r, "Doctor", err)
		return
	}
	h.audit(r, "delete", "doctor", id)
	w.WriteHeader(http.StatusNoContent)
}

// ---------- reviews ----------

func (h *ContentHandler) ListReviews(w http.ResponseWriter, r *http.Request) {
	list, err := h.content.ListReviews(r.Context())
	if err != nil {
		fail(h.log, w, r, "Review", err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (h *ContentHandler) CreateReview(w http.ResponseWriter, r *http.Request) {
	var in models.Review
	if !decodeJSON(w, r, &in) {
		return
	}
	rv, err := h.content.CreateReview(r.Context(), in)
	if err != nil {
		fail(h.log, w, r, "Review", err)
		return
	}
	h.audit(r, "create", "review", rv.ID)
	writeJSON(w, http.StatusCreated, rv)
}

func (h *ContentHandler) UpdateReview(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var in models.Review
	if !decodeJSON(w, r, &in) {
		return
	}
	rv, err := h.content.UpdateReview(r.Context(), id, in)
	if err != nil {
		fail(h.log, w, r, "Review", err)
		return
	}
	h.audit(r, "update", "review", id)
	writeJSON(w, http.StatusOK, rv)
}

func (h *ContentHandler) DeleteReview(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := h.content.DeleteReview(r.Context(), id); err != nil {
		fail(h.log, w, r, "Review", err)
		return
	}
	h.audit(r, "delete", "review", id)
	w.WriteHeader(http.StatusNoContent)
}

// ---------- services ----------

// GET /api/services: only active ones.
func (h *ContentHandler) ListActiveServices(w http.ResponseWriter, r *http.Request) {
	h.listServices(w, r, true)
}

// GET /api/admin/services
func (h *ContentHandler) ListAllServices(w http.ResponseWriter, r *http.Request) {
	h.listServices(w, r, false)
}

func (h *ContentHandler) listServices(w http.ResponseWriter, r *http.Request, onlyActive bool) {
	list, err := h.content.ListServices(r.Context(), onlyActive)
	if err != nil {
		fail(h.log, w, r, "Service", err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (h *ContentHandler) CreateService(w http.ResponseWriter, r *http.Request) {
	var in models.ServiceItem
	if !decodeJSON(w, r, &in) {
		return
	}
	it, err := h.content.CreateService(r.Context(), in)
	if err != nil {
		fail(h.log, w, r, "Service", err)
		return
	}
	h.audit(r, "create", "service", it.ID)
	writeJSON(w, http.StatusCreated, it)
}

func (h *ContentHandler) UpdateService(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var in models.ServiceItem
	if !decodeJSON(w, r, &in) {
		return
	}
	it, err := h.content.UpdateService(r.Context(), id, in)
	if err != nil {
		fail(h.log, w, r, "Service", err)
		return
	}
	h.audit(r, "update", "service", id)
	writeJSON(w, http.StatusOK, it)
}

func (h *ContentHandler) DeleteService(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := h.content.DeleteService(r.Context(), id); err != nil {
		fail(h.log, w, r, "Service", err)
		return
	}
	h.audit(r, "delete", "service", id)
	w.WriteHeader(http.StatusNoContent)
}

// ---------- media ----------

// GET /api/media/{category}, GET /api/admin/media/{category}
func (h *ContentHandler) ListMedia(w http.ResponseWriter, r *http.Request) {
	list, err := h.content.ListMedia(r.Context(), chi.URLParam(r, "category"))
	if err != nil {
		fail(h.log, w, r, "Media", err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (h *ContentHandler) CreateMedia(w http.ResponseWriter, r *http.Request) {
	var in models.MediaAsset
	if !decodeJSON(w, r, &in) {
		return
	}
	m, err := h.content.CreateMedia(r.Context(), chi.URLParam(r, "category"), in)
	if err != nil {
		fail(h.log, w, r, "Media", err)
		return
	}
	h.audit(r, "create", "media", m.ID)
	writeJSON(w, http.StatusCreated, m)
}

func (h *ContentHandler) UpdateMedia(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var in models.MediaAsset
	if !decodeJSON(w, r, &in) {
		return
	}
	m, err := h.content.UpdateMedia(r.Context(), chi.URLParam(r, "category"), id, in)
	if err != nil {
		fail(h.log, w, r, "Media", err)
		return
	}
	h.audit(r, "update", "media", id)
	writeJSON(w, http.StatusOK, m)
}

func (h *ContentHandler) DeleteMedia(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := h.content.DeleteMedia(r.Context(), chi.URLParam(r, "category"), id); err != nil {
		fail(h.log, w, r, "Media", err)
		return
	}
	h.audit(r, "delete", "media", id)
	w.WriteHeader(http.StatusNoContent)
}
