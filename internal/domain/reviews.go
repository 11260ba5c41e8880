package domain

import (
	"context"
	"fmt"
	"strings"

	"github.com/Vovarama1992/visus/internal/models"
)

func (s *ContentService) ListReviews(ctx context.Context) ([]models.Review, error) {
	return s.reviews.ListReviews(ctx)
}

func validateReview(r *models.Review) error {
	r.PatientName = strings.TrimSpace(r.PatientName)
	if r.Rating == 0 {
		r.Rating = models.DefaultRating
	}
	if r.Rating < 1 || r.Rating > 5 {
		return fmt.Errorf("%w: rating must be between 1 and 5", ErrInvalid)
	}
	return required(map[string]string{"patientName": r.PatientName})
}

func (s *ContentService) CreateReview(ctx context.Context, r models.Review) (*models.Review, error) {
	if err := validateReview(&r); err != nil {
		return nil, err
	}
	return s.reviews.InsertReview(ctx, &r)
}

func (s *ContentService) UpdateReview(ctx context.Context, id int, r models.Review) (*models.Review, error) {
	if err := validateReview(&r); err != nil {
		return nil, err
	}
	r.ID = id
	updated, err := s.reviews.UpdateReview(ctx, &r)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, ErrNotFound
	}
	return updated, nil
}

// DeleteReview leaves the poster in storage.
func (s *ContentService) DeleteReview(ctx context.Context, id int) error {
	r, err := s.reviews.GetReview(ctx, id)
	if err != nil {
		return err
	}
	if r == nil {
		return ErrNotFound
	}
	return s.reviews.DeleteReview(ctx, id)
}
