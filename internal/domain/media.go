package domain

import (
	"context"
	"strings"

	"github.com/Vovarama1992/visus/internal/models"
)

func checkCategory(category string) error {
	if !models.IsMediaCategory(category) {
		return ErrUnknownCategory
	}
	return nil
}

func (s *ContentService) ListMedia(ctx context.Context, category string) ([]models.MediaAsset, error) {
	if err := checkCategory(category); err != nil {
		return nil, err
	}
	return s.media.ListMedia(ctx, category)
}

func validateMedia(m *models.MediaAsset) error {
	m.Title = strings.TrimSpace(m.Title)
	m.PhotoURL = strings.TrimSpace(m.PhotoURL)
	return required(map[string]string{"photoUrl": m.PhotoURL})
}

// CreateMedia stores m under category; a category in the body is ignored.
func (s *ContentService) CreateMedia(ctx context.Context, category string, m models.MediaAsset) (*models.MediaAsset, error) {
	if err := checkCategory(category); err != nil {
		return nil, err
	}
	if err := validateMedia(&m); err != nil {
		return nil, err
	}
	m.Category = category
	return s.media.InsertMedia(ctx, &m)
}

func (s *ContentService) UpdateMedia(ctx context.Context, category string, id int, m models.MediaAsset) (*models.MediaAsset, error) {
	if err := checkCategory(category); err != nil {
		return nil, err
	}
	if err := validateMedia(&m); err != nil {
		return nil, err
	}
	m.ID = id
	m.Category = category
	updated, err := s.media.UpdateMedia(ctx, &m)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, ErrNotFound
	}
	return updated, nil
}

// DeleteMedia removes the record and its file. A record from another
// category is reported as missing.
func (s *ContentService) DeleteMedia(ctx context.Context, category string, id int) error {
	if err := checkCategory(category); err != nil {
		return err
	}
	m, err := s.media.GetMedia(ctx, id)
	if err != nil {
		return err
	}
	if m == nil || m.Category != category {
		return ErrNotFound
	}
	if err := s.media.DeleteMedia(ctx, id); err != nil {
		return err
	}
	s.purgeFile(ctx, m.PhotoURL)
	return nil
}
