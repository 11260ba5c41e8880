package infra

import (
	"context"
	"errors"
	"fmt"

	"github.com/Vovarama1992/visus/internal/models"
	"github.com/Vovarama1992/visus/internal/ports"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresDoctorRepo struct {
	pool *pgxpool.Pool
}

func NewPostgresDoctorRepo(pool *pgxpool.Pool) ports.DoctorRepository {
	return &PostgresDoctorRepo{pool: pool}
}

const doctorColumns = `id, name, role, COALESCE(experience_years, 0),
	COALESCE(description_ru, ''), COALESCE(description_kk, ''), COALESCE(photo_url, '')`

func scanDoctor(row pgx.Row) (*models.Doctor, error) {
	var d models.Doctor
	err := row.Scan(&d.ID, &d.Name, &d.Role, &d.ExperienceYears, &d.DescriptionRu, &d.DescriptionKk, &d.PhotoURL)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *PostgresDoctorRepo) ListDoctors(ctx context.Context) ([]models.Doctor, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+doctorColumns+` FROM doctors ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list doctors: %w", err)
	}
	defer rows.Close()

	out := []models.Doctor{}
	for rows.Next() {
		d, err := scanDoctor(rows)
		if err != nil {
			return nil, fmt.Errorf("scan doctor: %w", err)
		}
		out = append(out, *d)
	}
	return out, rows.Err()
}

func (r *PostgresDoctorRepo) GetDoctor(ctx context.Context, id int) (*models.Doctor, error) {
	d, err := scanDoctor(r.pool.QueryRow(ctx, `SELECT `+doctorColumns+` FROM doctors WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get doctor: %w", err)
	}
	return d, nil
}

func (r *PostgresDoctorRepo) InsertDoctor(ctx context.Context, d *models.Doctor) (*models.Doctor, error) {
	query := `
		INSERT INTO doctors (name, role, experience_years, description_ru, description_kk, photo_url)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`
	err := r.pool.QueryRow(ctx, query,
		d.Name, d.Role, d.ExperienceYears, d.DescriptionRu, d.DescriptionKk, d.PhotoURL,
	).Scan(&d.ID)
	if err != nil {
		return nil, fmt.Errorf("insert doctor: %w", err)
	}
	return d, nil
}

func (r *PostgresDoctorRepo) UpdateDoctor(ctx context.Context, d *models.Doctor) (*models.Doctor, error) {
	query := `
		UPDATE doctors
		SET name = $1, role = $2, experience_years = $3,
		    description_ru = $4, description_kk = $5, photo_url = $6
		WHERE id = $7
		RETURNING ` + doctorColumns
	out, err := scanDoctor(r.pool.QueryRow(ctx, query,
		d.Name, d.Role, d.ExperienceYears, d.DescriptionRu, d.DescriptionKk, d.PhotoURL, d.ID,
	))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("update doctor: %w", err)
	}
	return out, nil
}

func (r *PostgresDoctorRepo) DeleteDoctor(ctx context.Context, id int) error {
	if _, err := r.pool.Exec(ctx, `DELETE FROM doctors WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete doctor: %w", err)
	}
	return nil
}

func (r *PostgresDoctorRepo) CountDoctors(ctx context.Context) (int, error) {
	var n int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM doctors`).Scan(&n)
	return n, err
}
