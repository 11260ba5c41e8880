package domain

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Vovarama1992/go-utils/logger"
	"github.com/Vovarama1992/visus/internal/models"
	"github.com/Vovarama1992/visus/internal/ports"
)

// CallbackRoom is the websocket room that receives new booking requests.
const CallbackRoom = "callbacks"

const (
	defaultCallbackLimit = 100
	maxCallbackLimit     = 500
)

type CallbackService struct {
	repo   ports.CallbackRepository
	log    *logger.ZapLogger
	events chan ports.CallbackEvent
	now    func() time.Time
}

func NewCallbackService(repo ports.CallbackRepository, log *logger.ZapLogger) *CallbackService {
	return &CallbackService{
		repo:   repo,
		log:    log,
		events: make(chan ports.CallbackEvent, 100),
		now:    time.Now,
	}
}

func (s *CallbackService) Events() <-chan ports.CallbackEvent { return s.events }

func (s *CallbackService) Create(ctx context.Context, name, phone string) (*models.CallbackRequest, error) {
	name = strings.TrimSpace(name)
	phone = strings.TrimSpace(phone)
	if err := required(map[string]string{"name": name, "phone": phone}); err != nil {
		return nil, err
	}

	req, err := s.repo.InsertCallback(ctx, &models.CallbackRequest{
		Name:      name,
		Phone:     phone,
		Status:    models.CallbackStatusNew,
		CreatedAt: s.now().UTC(),
	})
	if err != nil {
		return nil, fmt.Errorf("store callback: %w", err)
	}

	s.log.Log(logger.LogEntry{
		Level:   "info",
		Message: "new callback request",
		Fields:  map[string]any{"id": req.ID, "name": req.Name},
	})

	// не блокируемся, если никто не читает
	select {
	case s.events <- ports.CallbackEvent{Room: CallbackRoom, Request: *req}:
	default:
		s.log.Log(logger.LogEntry{
			Level:   "warn",
			Message: "callback event dropped",
			Fields:  map[string]any{"id": req.ID},
		})
	}
	return req, nil
}

// List returns the newest requests first. limit <= 0 means the default.
func (s *CallbackService) List(ctx context.Context, limit int) ([]models.CallbackRequest, error) {
	if limit <= 0 {
		limit = defaultCallbackLimit
	}
	if limit > maxCallbackLimit {
		limit = maxCallbackLimit
	}
	return s.repo.ListCallbacks(ctx, limit)
}
