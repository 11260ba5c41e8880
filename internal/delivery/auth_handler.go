package delivery

import (
	"net/http"

	"github.com/Vovarama1992/go-utils/logger"
)

type AuthHandler struct {
	log *logger.ZapLogger
}

func NewAuthHandler(log *logger.ZapLogger) *AuthHandler {
	return &AuthHandler{log: log}
}

// GET /api/admin/session
// Credentials were already checked by AuthMiddleware; the console calls
// this right after login.
func (h *AuthHandler) Session(w http.ResponseWriter, r *http.Request) {
	user := AdminUser(r.Context())

	h.log.Log(logger.LogEntry{
		Level:   "info",
		Message: "admin session checked",
		Fields:  map[string]any{"username": user},
	})

	writeJSON(w, http.StatusOK, map[string]string{"username": user})
}
