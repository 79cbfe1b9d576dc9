package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// RecommendationRepository handles recommendation history.
type RecommendationRepository struct {
	pool *pgxpool.Pool
}

// Create inserts a recommendation, assigning an ID and timestamp if unset.
func (r *RecommendationRepository) Create(ctx context.Context, rec *Recommendation) error {
	if rec.ID == uuid.Nil {
		rec.ID = uuid.New()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now()
	}
	if rec.Tracks == nil {
		rec.Tracks = []RecommendedTrack{}
	}

	query := `
		INSERT INTO recommendations (id, mood_text, emotion, confidence, tracks, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := r.pool.Exec(ctx, query,
		rec.ID,
		rec.Text,
		rec.Emotion,
		rec.Confidence,
		rec.Tracks,
		rec.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("inserting recommendation: %w", err)
	}
	return nil
}

// Get retrieves a recommendation by ID.
func (r *RecommendationRepository) Get(ctx context.Context, id uuid.UUID) (*Recommendation, error) {
	query := `
		SELECT id, mood_text, emotion, confidence, tracks, created_at
		FROM recommendations
		WHERE id = $1
	`
	var rec Recommendation
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&rec.ID,
		&rec.Text,
		&rec.Emotion,
		&rec.Confidence,
		&rec.Tracks,
		&rec.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("querying recommendation: %w", err)
	}
	return &rec, nil
}

// Recent returns the newest recommendations first.
func (r *RecommendationRepository) Recent(ctx context.Context, limit int) ([]Recommendation, error) {
	query := `
		SELECT id, mood_text, emotion, confidence, tracks, created_at
		FROM recommendations
		ORDER BY created_at DESC
		LIMIT $1
	`
	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("querying recommendations: %w", err)
	}
	defer rows.Close()

	var recs []Recommendation
	for rows.Next() {
		var rec Recommendation
		if err := rows.Scan(
			&rec.ID,
			&rec.Text,
			&rec.Emotion,
			&rec.Confidence,
			&rec.Tracks,
			&rec.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scanning recommendation: %w", err)
		}
		recs = append(recs, rec)
	}
	return recs, rows.Err()
}
