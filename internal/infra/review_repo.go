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

type PostgresReviewRepo struct {
	pool *pgxpool.Pool
}

func NewPostgresReviewRepo(pool *pgxpool.Pool) ports.ReviewRepository {
	return &PostgresReviewRepo{pool: pool}
}

const reviewColumns = `id, patient_name, rating, COALESCE(text_ru, ''), COALESCE(text_kk, ''),
	COALESCE(video_url, ''), COALESCE(poster_url, '')`

func scanReview(row pgx.Row) (*models.Review, error) {
	var rv models.Review
	err := row.Scan(&rv.ID, &rv.PatientName, &rv.Rating, &rv.TextRu, &rv.TextKk, &rv.VideoURL, &rv.PosterURL)
	if err != nil {
		return nil, err
	}
	return &rv, nil
}

func (r *PostgresReviewRepo) ListReviews(ctx context.Context) ([]models.Review, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+reviewColumns+` FROM reviews ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list reviews: %w", err)
	}
	defer rows.Close()

	out := []models.Review{}
	for rows.Next() {
		rv, err := scanReview(rows)
		if err != nil {
			return nil, fmt.Errorf("scan review: %w", err)
		}
		out = append(out, *rv)
	}
	return out, rows.Err()
}

func (r *PostgresReviewRepo) GetReview(ctx context.Context, id int) (*models.Review, error) {
	rv, err := scanReview(r.pool.QueryRow(ctx, `SELECT `+reviewColumns+` FROM reviews WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get review: %w", err)
	}
	return rv, nil
}

func (r *PostgresReviewRepo) InsertReview(ctx context.Context, rv *models.Review) (*models.Review, error) {
	query := `
		INSERT INTO reviews (patient_name, rating, text_ru, text_kk, video_url, poster_url)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`
	err := r.pool.QueryRow(ctx, query,
		rv.PatientName, rv.Rating, rv.TextRu, rv.TextKk, rv.VideoURL, rv.PosterURL,
	).Scan(&rv.ID)
	if err != nil {
		return nil, fmt.Errorf("insert review: %w", err)
	}
	return rv, nil
}

func (r *PostgresReviewRepo) UpdateReview(ctx context.Context, rv *models.Review) (*models.Review, error) {
	query := `
		UPDATE reviews
		SET patient_name = $1, rating = $2, text_ru = $3, text_kk = $4,
		    video_url = $5, poster_url = $6
		WHERE id = $7
		RETURNING ` + reviewColumns
	out, err := scanReview(r.pool.QueryRow(ctx, query,
		rv.PatientName, rv.Rating, rv.TextRu, rv.TextKk, rv.VideoURL, rv.PosterURL, rv.ID,
	))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("update review: %w", err)
	}
	return out, nil
}

func (r *PostgresReviewRepo) DeleteReview(ctx context.Context, id int) error {
	if _, err := r.pool.Exec(ctx, `DELETE FROM reviews WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete review: %w", err)
	}
	return nil
}

func (r *PostgresReviewRepo) CountReviews(ctx context.Context) (int, error) {
	var n int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM reviews`).Scan(&n)
	return n, err
}
