package ports

import (
	"context"

	"github.com/Vovarama1992/visus/internal/models"
)

// Get/Update return (nil, nil) when the record does not exist.

type MediaRepository interface {
	ListMedia(ctx context.Context, category string) ([]models.MediaAsset, error)
	GetMedia(ctx context.Context, id int) (*models.MediaAsset, error)
	InsertMedia(ctx context.Context, m *models.MediaAsset) (*models.MediaAsset, error)
	UpdateMedia(ctx context.Context, m *models.MediaAsset) (*models.MediaAsset, error)
	DeleteMedia(ctx context.Context, id int) error
	CountMedia(ctx context.Context) (int, error)
}

type DoctorRepository interface {
	ListDoctors(ctx context.Context) ([]models.Doctor, error)
	GetDoctor(ctx context.Context, id int) (*models.Doctor, error)
	InsertDoctor(ctx context.Context, d *models.Doctor) (*models.Doctor, error)
	UpdateDoctor(ctx context.Context, d *models.Doctor) (*models.Doctor, error)
	DeleteDoctor(ctx context.Context, id int) error
	CountDoctors(ctx context.Context) (int, error)
}

type ReviewRepository interface {
	ListReviews(ctx context.Context) ([]models.Review, error)
	GetReview(ctx context.Context, id int) (*models.Review, error)
	InsertReview(ctx context.Context, r *models.Review) (*models.Review, error)
	UpdateReview(ctx context.Context, r *models.Review) (*models.Review, error)
	DeleteReview(ctx context.Context, id int) error
	CountReviews(ctx context.Context) (int, error)
}

type ServiceRepository interface {
	ListServices(ctx context.Context, onlyActive bool) ([]models.ServiceItem, error)
	GetService(ctx context.Context, id int) (*models.ServiceItem, error)
	InsertService(ctx context.Context, s *models.ServiceItem) (*models.ServiceItem, error)
	UpdateService(ctx context.Context, s *models.ServiceItem) (*models.ServiceItem, error)
	DeleteService(ctx context.Context, id int) error
	CountServices(ctx context.Context) (int, error)
}

type CallbackRepository interface {
	InsertCallback(ctx context.Context, c *models.CallbackRequest) (*models.CallbackRequest, error)
	ListCallbacks(ctx context.Context, limit int) ([]models.CallbackRequest, error)
}
