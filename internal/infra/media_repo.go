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

type PostgresMediaRepo struct {
	pool *pgxpool.Pool
}

func NewPostgresMediaRepo(pool *pgxpool.Pool) ports.MediaRepository {
	return &PostgresMediaRepo{pool: pool}
}

const mediaColumns = `id, category, COALESCE(title, ''), COALESCE(description, ''), photo_url`

func scanMedia(row pgx.Row) (*models.MediaAsset, error) {
	var m models.MediaAsset
	if err := row.Scan(&m.ID, &m.Category, &m.Title, &m.Description, &m.PhotoURL); err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *PostgresMediaRepo) ListMedia(ctx context.Context, category string) ([]models.MediaAsset, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+mediaColumns+`
		 FROM media_assets
		 WHERE category = $1
		 ORDER BY id`,
		category,
	)
	if err != nil {
		return nil, fmt.Errorf("list media: %w", err)
	}
	defer rows.Close()

	out := []models.MediaAsset{}
	for rows.Next() {
		m, err := scanMedia(rows)
		if err != nil {
			return nil, fmt.Errorf("scan media: %w", err)
		}
		out = append(out, *m)
	}
	return out, rows.Err()
}

func (r *PostgresMediaRepo) GetMedia(ctx context.Context, id int) (*models.MediaAsset, error) {
	m, err := scanMedia(r.pool.QueryRow(ctx,
		`SELECT `+mediaColumns+` FROM media_assets WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get media: %w", err)
	}
	return m, nil
}

func (r *PostgresMediaRepo) InsertMedia(ctx context.Context, m *models.MediaAsset) (*models.MediaAsset, error) {
	query := `
		INSERT INTO media_assets (category, title, description, photo_url)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`
	if err := r.pool.QueryRow(ctx, query, m.Category, m.Title, m.Description, m.PhotoURL).Scan(&m.ID); err != nil {
		return nil, fmt.Errorf("insert media: %w", err)
	}
	return m, nil
}

func (r *PostgresMediaRepo) UpdateMedia(ctx context.Context, m *models.MediaAsset) (*models.MediaAsset, error) {
	query := `
		UPDATE media_assets
		SET title = $1, description = $2, photo_url = $3
		WHERE id = $4 AND category = $5
		RETURNING ` + mediaColumns
	out, err := scanMedia(r.pool.QueryRow(ctx, query, m.Title, m.Description, m.PhotoURL, m.ID, m.Category))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("update media: %w", err)
	}
	return out, nil
}

func (r *PostgresMediaRepo) DeleteMedia(ctx context.Context, id int) error {
	if _, err := r.pool.Exec(ctx, `DELETE FROM media_assets WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete media: %w", err)
	}
	return nil
}

func (r *PostgresMediaRepo) CountMedia(ctx context.Context) (int, error) {
	var n int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM media_assets`).Scan(&n)
	return n, err
}
