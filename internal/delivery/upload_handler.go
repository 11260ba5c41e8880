package delivery

import (
	"net/http"

	"github.com/Vovarama1992/go-utils/logger"
	"github.com/Vovarama1992/visus/internal/domain"
)

const maxUploadMemory = 32 << 20

type UploadHandler struct {
	uploads *domain.UploadService
	log     *logger.ZapLogger
}

func NewUploadHandler(uploads *domain.UploadService, log *logger.ZapLogger) *UploadHandler {
	return &UploadHandler{uploads: uploads, log: log}
}

// POST /api/admin/upload (multipart: file, folder, objectName)
func (h *UploadHandler) Upload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart form: "+err.Error())
		return
	}
	defer func() {
		if r.MultipartForm != nil {
			_ = r.MultipartForm.RemoveAll()
		}
	}()

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "file is required")
		return
	}
	defer file.Close()

	res, err := h.uploads.Upload(r.Context(), domain.UploadInput{
		Filename:    header.Filename,
		Folder:      r.FormValue("folder"),
		ObjectName:  r.FormValue("objectName"),
		ContentType: header.Header.Get("Content-Type"),
		Size:        header.Size,
		Body:        file,
	})
	if err != nil {
		fail(h.log, w, r, "File", err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// DELETE /api/admin/upload?objectName=
func (h *UploadHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.uploads.Delete(r.Context(), r.URL.Query().Get("objectName")); err != nil {
		fail(h.log, w, r, "File", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
