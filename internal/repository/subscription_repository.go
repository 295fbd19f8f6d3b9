package repository

import (
	"context"
	"fmt"
	"time"

	"clover/internal/models"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type SubscriptionRepositoryImpl struct {
	db *sqlx.DB
}

func NewSubscriptionRepository(db *sqlx.DB) *SubscriptionRepositoryImpl {
	return &SubscriptionRepositoryImpl{db: db}
}

func (r *SubscriptionRepositoryImpl) Active(ctx context.Context, userID string) (*models.UserSubscription, error) {
	query := `SELECT * FROM user_subscriptions WHERE user_id = $1 AND status = 'active'`

	var sub models.UserSubscription
	if err := r.db.GetContext(ctx, &sub, query, userID); err != nil {
		return nil, getErr(err, "active subscription")
	}

	return &sub, nil
}

func (r *SubscriptionRepositoryImpl) List(ctx context.Context, userID string) ([]models.UserSubscription, error) {
	query := `SELECT * FROM user_subscriptions WHERE user_id = $1 ORDER BY created_at DESC`

	subs := []models.UserSubscription{}
	if err := r.db.SelectContext(ctx, &subs, query, userID); err != nil {
		return nil, fmt.Errorf("listing subscriptions: %w", err)
	}

	return subs, nil
}

// Subscribe cancels the current active subscription, records sub as the new
// active one and credits its monthly points, all in one transaction. The
// per-user advisory lock serialises concurrent calls for the same user.
func (r *SubscriptionRepositoryImpl) Subscribe(ctx context.Context, sub *models.UserSubscription) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("starting transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `SELECT pg_advisory_xact_lock(hashtext($1))`, sub.UserID); err != nil {
		return fmt.Errorf("locking subscriptions: %w", err)
	}

	cancel := `UPDATE user_subscriptions SET status = 'cancelled' WHERE user_id = $1 AND status = 'active'`
	if _, err := tx.ExecContext(ctx, cancel, sub.UserID); err != nil {
		return fmt.Errorf("cancelling active subscription: %w", err)
	}

	if sub.ID == "" {
		sub.ID = uuid.New().String()
	}
	if sub.CreatedAt.IsZero() {
		sub.CreatedAt = time.Now()
	}
	sub.Status = models.SubscriptionActive

	insert := `
		INSERT INTO user_subscriptions
		(id, user_id, plan_name, billing_period, points_per_month, price, start_date, expiration_date, status, created_at)
		VALUES
		(:id, :user_id, :plan_name, :billing_period, :points_per_month, :price, :start_date, :expiration_date, :status, :created_at)
	`
	if _, err := tx.NamedExecContext(ctx, insert, sub); err != nil {
		return fmt.Errorf("creating subscription: %w", err)
	}

	if _, err := addPoints(ctx, tx, sub.UserID, sub.PointsPerMonth); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing subscription: %w", err)
	}

	return nil
}
