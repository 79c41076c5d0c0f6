package repository

import (
	"context"
	"fmt"
	"time"
)

// ScoreRepository reads the score history written by the external scoring job
type ScoreRepository interface {
	CountSince(ctx context.Context, since time.Time) (int64, error)
}

type scoreRepository struct {
	db DBTX
}

// NewScoreRepository creates a new ScoreRepository
func NewScoreRepository(db DBTX) ScoreRepository {
	return &scoreRepository{db: db}
}

// CountSince counts score rows calculated at or after since
func (r *scoreRepository) CountSince(ctx context.Context, since time.Time) (int64, error) {
	var n int64
	sql := `SELECT COUNT(*) FROM hasil_perhitungan_probabilitas WHERE calculation_date >= $1`
	if err := r.db.QueryRow(ctx, sql, since).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count score records: %w", err)
	}
	return n, nil
}
