package domain

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/Vovarama1992/go-utils/logger"
	"github.com/Vovarama1992/visus/internal/mediapath"
	"github.com/Vovarama1992/visus/internal/ports"
)

// ContentService is the CRUD layer behind the public and admin endpoints.
type ContentService struct {
	doctors  ports.DoctorRepository
	reviews  ports.ReviewRepository
	services ports.ServiceRepository
	media    ports.MediaRepository
	storage  ports.ObjectStorage
	log      *logger.ZapLogger
}

func NewContentService(
	doctors ports.DoctorRepository,
	reviews ports.ReviewRepository,
	services ports.ServiceRepository,
	media ports.MediaRepository,
	storage ports.ObjectStorage,
	log *logger.ZapLogger,
) *ContentService {
	return &ContentService{
		doctors:  doctors,
		reviews:  reviews,
		services: services,
		media:    media,
		storage:  storage,
		log:      log,
	}
}

func required(fields map[string]string) error {
	var missing []string
	for name, v := range fields {
		if strings.TrimSpace(v) == "" {
			missing = append(missing, name)
		}
	}
	if len(missing) == 0 {
		return nil
	}
	sort.Strings(missing)
	return fmt.Errorf("%w: missing %s", ErrInvalid, strings.Join(missing, ", "))
}

// purgeFile removes the stored object behind ref. Failures are logged and
// swallowed: the record is already gone and an orphaned file is harmless.
func (s *ContentService) purgeFile(ctx context.Context, ref string) {
	key := mediapath.ObjectName(ref)
	if key == "" || mediapath.IsAbsolute(key) {
		return
	}
	if err := s.storage.Delete(ctx, key); err != nil {
		s.log.Log(logger.LogEntry{
			Level:   "warn",
			Message: "stored file not removed",
			Error:   err,
			Fields:  map[string]any{"objectName": key},
		})
	}
}
