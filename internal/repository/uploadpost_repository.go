package repository

import (
	"context"
	"fmt"
	"time"

	"clover/internal/models"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type UploadPostRepositoryImpl struct {
	db *sqlx.DB
}

func NewUploadPostRepository(db *sqlx.DB) *UploadPostRepositoryImpl {
	return &UploadPostRepositoryImpl{db: db}
}

func (r *UploadPostRepositoryImpl) GetByUserID(ctx context.Context, userID string) (*models.UploadPostSettings, error) {
	query := `SELECT * FROM upload_post_settings WHERE user_id = $1`

	var settings models.UploadPostSettings
	if err := r.db.GetContext(ctx, &settings, query, userID); err != nil {
		return nil, getErr(err, "upload-post settings")
	}

	return &settings, nil
}

func (r *UploadPostRepositoryImpl) Upsert(ctx context.Context, settings *models.UploadPostSettings) error {
	query := `
		INSERT INTO upload_post_settings (id, user_id, api_key, managed_user, facebook_page_ids, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (user_id) DO UPDATE SET
			api_key = EXCLUDED.api_key,
			managed_user = EXCLUDED.managed_user,
			facebook_page_ids = EXCLUDED.facebook_page_ids,
			updated_at = EXCLUDED.updated_at
		RETURNING id, updated_at
	`

	if settings.ID == "" {
		settings.ID = uuid.New().String()
	}
	if settings.FacebookPageIDs == nil {
		settings.FacebookPageIDs = []string{}
	}

	row := r.db.QueryRowxContext(ctx, query,
		settings.ID, settings.UserID, settings.APIKey, settings.ManagedUser, settings.FacebookPageIDs, time.Now())
	if err := row.Scan(&settings.ID, &settings.UpdatedAt); err != nil {
		return fmt.Errorf("saving upload-post settings: %w", err)
	}

	return nil
}
