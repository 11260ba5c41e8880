package domain

import (
	"context"
	"strings"

	"github.com/Vovarama1992/visus/internal/models"
)

// ListServices returns active services for the public site, all of them
// for the admin.
func (s *ContentService) ListServices(ctx context.Context, onlyActive bool) ([]models.ServiceItem, error) {
	return s.services.ListServices(ctx, onlyActive)
}

func validateService(it *models.ServiceItem) error {
	it.Slug = strings.TrimSpace(it.Slug)
	it.TitleRu = strings.TrimSpace(it.TitleRu)
	it.TitleKk = strings.TrimSpace(it.TitleKk)
	return required(map[string]string{"slug": it.Slug, "titleRu": it.TitleRu, "titleKk": it.TitleKk})
}

func (s *ContentService) CreateService(ctx context.Context, it models.ServiceItem) (*models.ServiceItem, error) {
	if err := validateService(&it); err != nil {
		return nil, err
	}
	return s.services.InsertService(ctx, &it)
}

func (s *ContentService) UpdateService(ctx context.Context, id int, it models.ServiceItem) (*models.ServiceItem, error) {
	if err := validateService(&it); err != nil {
		return nil, err
	}
	it.ID = id
	updated, err := s.services.UpdateService(ctx, &it)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, ErrNotFound
	}
	return updated, nil
}

func (s *ContentService) DeleteService(ctx context.Context, id int) error {
	it, err := s.services.GetService(ctx, id)
	if err != nil {
		return err
	}
	if it == nil {
		return ErrNotFound
	}
	return s.services.DeleteService(ctx, id)
}
