package infra

import (
	"context"
	"errors"
	"fmt"

	"github.com/Vovarama1992/visus/internal/domain"
	"github.com/Vovarama1992/visus/internal/models"
	"github.com/Vovarama1992/visus/internal/ports"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresServiceRepo struct {
	pool *pgxpool.Pool
}

func NewPostgresServiceRepo(pool *pgxpool.Pool) ports.ServiceRepository {
	return &PostgresServiceRepo{pool: pool}
}

const serviceColumns = `id, slug, title_ru, title_kk,
	COALESCE(short_description_ru, ''), COALESCE(short_description_kk, ''),
	COALESCE(full_description_ru, ''), COALESCE(full_description_kk, ''), is_active`

const uniqueViolation = "23505"

// slugConflict turns a unique violation into a client error.
func slugConflict(err error, slug string) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return fmt.Errorf("%w: slug %q already exists", domain.ErrInvalid, slug)
	}
	return err
}

func scanService(row pgx.Row) (*models.ServiceItem, error) {
	var s models.ServiceItem
	err := row.Scan(&s.ID, &s.Slug, &s.TitleRu, &s.TitleKk,
		&s.ShortDescriptionRu, &s.ShortDescriptionKk,
		&s.FullDescriptionRu, &s.FullDescriptionKk, &s.IsActive)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *PostgresServiceRepo) ListServices(ctx context.Context, onlyActive bool) ([]models.ServiceItem, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+serviceColumns+`
		 FROM services
		 WHERE is_active OR NOT $1
		 ORDER BY id`,
		onlyActive,
	)
	if err != nil {
		return nil, fmt.Errorf("list services: %w", err)
	}
	defer rows.Close()

	out := []models.ServiceItem{}
	for rows.Next() {
		s, err := scanService(rows)
		if err != nil {
			return nil, fmt.Errorf("scan service: %w", err)
		}
		out = append(out, *s)
	}
	return out, rows.Err()
}

func (r *PostgresServiceRepo) GetService(ctx context.Context, id int) (*models.ServiceItem, error) {
	s, err := scanService(r.pool.QueryRow(ctx, `SELECT `+serviceColumns+` FROM services WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get service: %w", err)
	}
	return s, nil
}

func (r *PostgresServiceRepo) InsertService(ctx context.Context, s *models.ServiceItem) (*models.ServiceItem, error) {
	query := `
		INSERT INTO services (slug, title_ru, title_kk, short_description_ru, short_description_kk,
		                      full_description_ru, full_description_kk, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`
	err := r.pool.QueryRow(ctx, query,
		s.Slug, s.TitleRu, s.TitleKk, s.ShortDescriptionRu, s.ShortDescriptionKk,
		s.FullDescriptionRu, s.FullDescriptionKk, s.IsActive,
	).Scan(&s.ID)
	if err != nil {
		return nil, fmt.Errorf("insert service: %w", slugConflict(err, s.Slug))
	}
	return s, nil
}

func (r *PostgresServiceRepo) UpdateService(ctx context.Context, s *models.ServiceItem) (*models.ServiceItem, error) {
	query := `
		UPDATE services
		SET slug = $1, title_ru = $2, title_kk = $3,
		    short_description_ru = $4, short_description_kk = $5,
		    full_description_ru = $6, full_description_kk = $7, is_active = $8
		WHERE id = $9
		RETURNING ` + serviceColumns
	out, err := scanService(r.pool.QueryRow(ctx, query,
		s.Slug, s.TitleRu, s.TitleKk, s.ShortDescriptionRu, s.ShortDescriptionKk,
		s.FullDescriptionRu, s.FullDescriptionKk, s.IsActive, s.ID,
	))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("update service: %w", slugConflict(err, s.Slug))
	}
	return out, nil
}

func (r *PostgresServiceRepo) DeleteService(ctx context.Context, id int) error {
	if _, err := r.pool.Exec(ctx, `DELETE FROM services WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete service: %w", err)
	}
	return nil
}

func (r *PostgresServiceRepo) CountServices(ctx context.Context) (int, error) {
	var n int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM services`).Scan(&n)
	return n, err
}
