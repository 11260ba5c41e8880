package domain

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/Vovarama1992/go-utils/logger"
	"github.com/Vovarama1992/visus/internal/mediapath"
	"github.com/Vovarama1992/visus/internal/models"
	"github.com/Vovarama1992/visus/internal/ports"
	"github.com/google/uuid"
)

const DefaultUploadFolder = "media"

// UploadService stores admin uploads. Without an explicit object name the
// key is "<folder>/<uuid hex>_<filename>"; with one the existing object is
// replaced in place.
type UploadService struct {
	storage ports.ObjectStorage
	log     *logger.ZapLogger
}

func NewUploadService(storage ports.ObjectStorage, log *logger.ZapLogger) *UploadService {
	return &UploadService{storage: storage, log: log}
}

type UploadInput struct {
	Filename    string
	Folder      string
	ObjectName  string
	ContentType string
	Size        int64
	Body        io.Reader
}

func (s *UploadService) Upload(ctx context.Context, in UploadInput) (*models.UploadResult, error) {
	key, err := uploadKey(in.Folder, in.ObjectName, in.Filename)
	if err != nil {
		return nil, err
	}
	contentType := in.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	if err := s.storage.Save(ctx, key, in.Body, in.Size, contentType); err != nil {
		return nil, fmt.Errorf("save %s: %w", key, err)
	}

	s.log.Log(logger.LogEntry{
		Level:   "info",
		Message: "file uploaded",
		Fields:  map[string]any{"objectName": key, "size": in.Size, "replace": in.ObjectName != ""},
	})
	return &models.UploadResult{URL: s.storage.PublicURL(key), Path: key}, nil
}

func (s *UploadService) Delete(ctx context.Context, objectName string) error {
	key, err := objectKey(objectName)
	if err != nil {
		return err
	}
	if err := s.storage.Delete(ctx, key); err != nil {
		return fmt.Errorf("delete %s: %w", key, err)
	}
	s.log.Log(logger.LogEntry{
		Level:   "info",
		Message: "file deleted",
		Fields:  map[string]any{"objectName": key},
	})
	return nil
}

func uploadKey(folder, objectName, filename string) (string, error) {
	folder = strings.Trim(strings.TrimSpace(folder), "/")
	if folder == "" {
		folder = DefaultUploadFolder
	}

	if name := strings.TrimSpace(objectName); name != "" {
		key, err := objectKey(name)
		if err != nil {
			return "", err
		}
		// голое имя файла кладём в папку
		if !strings.Contains(key, "/") {
			key = folder + "/" + key
		}
		return key, nil
	}

	base := path.Base(strings.ReplaceAll(strings.TrimSpace(filename), "\\", "/"))
	if base == "." || base == "/" || base == "" {
		return "", fmt.Errorf("%w: file name is required", ErrInvalid)
	}
	return cleanKey(folder + "/" + hexID() + "_" + base)
}

func hexID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}

// objectKey turns a client-supplied name (URL, /media/... or bare key) into a storage key.
func objectKey(name string) (string, error) {
	return cleanKey(mediapath.Strip(mediapath.ObjectName(strings.TrimSpace(name))))
}

// cleanKey normalises a storage key and rejects keys leaving the root.
func cleanKey(key string) (string, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return "", fmt.Errorf("%w: objectName is required", ErrInvalid)
	}
	cleaned := path.Clean(key)
	if cleaned == "." || cleaned == ".." || strings.HasPrefix(cleaned, "../") {
		return "", fmt.Errorf("%w: objectName %q escapes storage root", ErrInvalid, key)
	}
	return cleaned, nil
}
