package delivery

import (
	"net/http"
	"strconv"

	"github.com/Vovarama1992/go-utils/logger"
	"github.com/Vovarama1992/visus/internal/ports"
)

type CallbackHandler struct {
	callbacks ports.CallbackService
	log       *logger.ZapLogger
}

func NewCallbackHandler(callbacks ports.CallbackService, log *logger.ZapLogger) *CallbackHandler {
	return &CallbackHandler{callbacks: callbacks, log: log}
}

// POST /api/requests/callback
func (h *CallbackHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Name  string `json:"name"`
		Phone string `json:"phone"`
	}
	if !decodeJSON(w, r, &in) {
		return
	}

	req, err := h.callbacks.Create(r.Context(), in.Name, in.Phone)
	if err != nil {
		fail(h.log, w, r, "Request", err)
		return
	}
	writeJSON(w, http.StatusCreated, req)
}

// GET /api/admin/requests?limit=
func (h *CallbackHandler) List(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid limit")
			return
		}
		limit = n
	}

	list, err := h.callbacks.List(r.Context(), limit)
	if err != nil {
		fail(h.log, w, r, "Request", err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}
