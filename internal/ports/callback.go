package ports

import (
	"context"

	"github.com/Vovarama1992/visus/internal/models"
)

// CallbackEvent is published when a visitor submits the booking form.
type CallbackEvent struct {
	Room    string
	Request models.CallbackRequest
}

type CallbackService interface {
	Create(ctx context.Context, name, phone string) (*models.CallbackRequest, error)
	List(ctx context.Context, limit int) ([]models.CallbackRequest, error)
	Events() <-chan CallbackEvent
}
