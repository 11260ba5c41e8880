package domain

import (
	"context"
	"fmt"
	"strings"

	"github.com/Vovarama1992/visus/internal/models"
)

func (s *ContentService) ListDoctors(ctx context.Context) ([]models.Doctor, error) {
	return s.doctors.ListDoctors(ctx)
}

func validateDoctor(d *models.Doctor) error {
	d.Name = strings.TrimSpace(d.Name)
	d.Role = strings.TrimSpace(d.Role)
	if d.ExperienceYears < 0 {
		return fmt.Errorf("%w: experienceYears must not be negative", ErrInvalid)
	}
	return required(map[string]string{"name": d.Name, "role": d.Role})
}

func (s *ContentService) CreateDoctor(ctx context.Context, d models.Doctor) (*models.Doctor, error) {
	if err := validateDoctor(&d); err != nil {
		return nil, err
	}
	return s.doctors.InsertDoctor(ctx, &d)
}

func (s *ContentService) UpdateDoctor(ctx context.Context, id int, d models.Doctor) (*models.Doctor, error) {
	if err := validateDoctor(&d); err != nil {
		return nil, err
	}
	d.ID = id
	updated, err := s.doctors.UpdateDoctor(ctx, &d)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, ErrNotFound
	}
	return updated, nil
}

// DeleteDoctor removes the record and then its photo.
func (s *ContentService) DeleteDoctor(ctx context.Context, id int) error {
	d, err := s.doctors.GetDoctor(ctx, id)
	if err != nil {
		return err
	}
	if d == nil {
		return ErrNotFound
	}
	if err := s.doctors.DeleteDoctor(ctx, id); err != nil {
		return err
	}
	s.purgeFile(ctx, d.PhotoURL)
	return nil
}
