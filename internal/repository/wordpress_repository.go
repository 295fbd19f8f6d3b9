package repository

import (
	"context"
	"fmt"
	"time"

	"clover/internal/models"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type WordPressRepositoryImpl struct {
	db *sqlx.DB
}

func NewWordPressRepository(db *sqlx.DB) *WordPressRepositoryImpl {
	return &WordPressRepositoryImpl{db: db}
}

func (r *WordPressRepositoryImpl) GetByUserID(ctx context.Context, userID string) (*models.WordPressConnection, error) {
	query := `SELECT * FROM wordpress_connections WHERE user_id = $1`

	var conn models.WordPressConnection
	if err := r.db.GetContext(ctx, &conn, query, userID); err != nil {
		return nil, getErr(err, "wordpress connection")
	}

	return &conn, nil
}

// Upsert keeps one connection per user; the stored id and created_at survive
// a re-save and are written back into conn.
func (r *WordPressRepositoryImpl) Upsert(ctx context.Context, conn *models.WordPressConnection) error {
	query := `
		INSERT INTO wordpress_connections (id, user_id, site_url, username, app_password, is_connected, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $7)
		ON CONFLICT (user_id) DO UPDATE SET
			site_url = EXCLUDED.site_url,
			username = EXCLUDED.username,
			app_password = EXCLUDED.app_password,
			is_connected = EXCLUDED.is_connected,
			updated_at = EXCLUDED.updated_at
		RETURNING id, created_at, updated_at
	`

	if conn.ID == "" {
		conn.ID = uuid.New().String()
	}

	row := r.db.QueryRowxContext(ctx, query,
		conn.ID, conn.UserID, conn.SiteURL, conn.Username, conn.AppPassword, conn.IsConnected, time.Now())
	if err := row.Scan(&conn.ID, &conn.CreatedAt, &conn.UpdatedAt); err != nil {
		return fmt.Errorf("saving wordpress connection: %w", err)
	}

	return nil
}

func (r *WordPressRepositoryImpl) SetConnected(ctx context.Context, userID string, connected bool) error {
	query := `UPDATE wordpress_connections SET is_connected = $1, updated_at = $2 WHERE user_id = $3`

	result, err := r.db.ExecContext(ctx, query, connected, time.Now(), userID)
	if err != nil {
		return fmt.Errorf("updating wordpress connection: %w", err)
	}

	return affected(result, "wordpress connection")
}
