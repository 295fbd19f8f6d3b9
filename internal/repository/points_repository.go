package repository

import (
	"context"
	"fmt"
	"time"

	"clover/internal/models"

	"github.com/jmoiron/sqlx"
)

type PointsRepositoryImpl struct {
	db *sqlx.DB
}

func NewPointsRepository(db *sqlx.DB) *PointsRepositoryImpl {
	return &PointsRepositoryImpl{db: db}
}

// Get returns the balance, creating a zero row on first access.
func (r *PointsRepositoryImpl) Get(ctx context.Context, userID string) (*models.UserPoints, error) {
	query := `
		INSERT INTO user_points (user_id, balance, updated_at)
		VALUES ($1, 0, $2)
		ON CONFLICT (user_id) DO UPDATE SET user_id = EXCLUDED.user_id
		RETURNING *
	`

	var points models.UserPoints
	if err := r.db.GetContext(ctx, &points, query, userID, time.Now()); err != nil {
		return nil, fmt.Errorf("getting points: %w", err)
	}

	return &points, nil
}

// Add increments the balance atomically.
func (r *PointsRepositoryImpl) Add(ctx context.Context, userID string, amount int64) (*models.UserPoints, error) {
	return addPoints(ctx, r.db, userID, amount)
}

func addPoints(ctx context.Context, q sqlx.QueryerContext, userID string, amount int64) (*models.UserPoints, error) {
	query := `
		INSERT INTO user_points (user_id, balance, updated_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id) DO UPDATE SET
			balance = user_points.balance + EXCLUDED.balance,
			updated_at = EXCLUDED.updated_at
		RETURNING *
	`

	var points models.UserPoints
	if err := sqlx.GetContext(ctx, q, &points, query, userID, amount, time.Now()); err != nil {
		return nil, fmt.Errorf("adding points: %w", err)
	}

	return &points, nil
}
