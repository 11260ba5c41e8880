package infra

import (
	"context"
	"fmt"

	"github.com/Vovarama1992/visus/internal/models"
	"github.com/Vovarama1992/visus/internal/ports"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresCallbackRepo struct {
	pool *pgxpool.Pool
}

func NewPostgresCallbackRepo(pool *pgxpool.Pool) ports.CallbackRepository {
	return &PostgresCallbackRepo{pool: pool}
}

func (r *PostgresCallbackRepo) InsertCallback(ctx context.Context, c *models.CallbackRequest) (*models.CallbackRequest, error) {
	query := `
		INSERT INTO callback_requests (name, phone, status)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`
	if err := r.pool.QueryRow(ctx, query, c.Name, c.Phone, c.Status).Scan(&c.ID, &c.CreatedAt); err != nil {
		return nil, fmt.Errorf("insert callback: %w", err)
	}
	return c, nil
}

func (r *PostgresCallbackRepo) ListCallbacks(ctx context.Context, limit int) ([]models.CallbackRequest, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, name, phone, status, created_at
		 FROM callback_requests
		 ORDER BY created_at DESC
		 LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("list callbacks: %w", err)
	}
	defer rows.Close()

	out := []models.CallbackRequest{}
	for rows.Next() {
		var c models.CallbackRequest
		if err := rows.Scan(&c.ID, &c.Name, &c.Phone, &c.Status, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan callback: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}
