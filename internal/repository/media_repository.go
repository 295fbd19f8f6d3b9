package repository

import (
	"context"
	"fmt"
	"time"

	"clover/internal/models"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type MediaRepositoryImpl struct {
	db *sqlx.DB
}

func NewMediaRepository(db *sqlx.DB) *MediaRepositoryImpl {
	return &MediaRepositoryImpl{db: db}
}

func (r *MediaRepositoryImpl) List(ctx context.Context, userID string) ([]models.MediaFile, error) {
	query := `SELECT * FROM media_files WHERE user_id = $1 ORDER BY created_at DESC`

	files := []models.MediaFile{}
	if err := r.db.SelectContext(ctx, &files, query, userID); err != nil {
		return nil, fmt.Errorf("listing media files: %w", err)
	}

	return files, nil
}

func (r *MediaRepositoryImpl) GetByID(ctx context.Context, userID, id string) (*models.MediaFile, error) {
	query := `SELECT * FROM media_files WHERE id = $1 AND user_id = $2`

	var file models.MediaFile
	if err := r.db.GetContext(ctx, &file, query, id, userID); err != nil {
		return nil, getErr(err, "media file")
	}

	return &file, nil
}

func (r *MediaRepositoryImpl) Create(ctx context.Context, file *models.MediaFile) error {
	query := `
		INSERT INTO media_files (id, user_id, name, storage_path, mime_type, size, created_at)
		VALUES (:id, :user_id, :name, :storage_path, :mime_type, :size, :created_at)
	`

	if file.ID == "" {
		file.ID = uuid.New().String()
	}
	if file.CreatedAt.IsZero() {
		file.CreatedAt = time.Now()
	}

	if _, err := r.db.NamedExecContext(ctx, query, file); err != nil {
		return fmt.Errorf("creating media file: %w", err)
	}

	return nil
}

func (r *MediaRepositoryImpl) Delete(ctx context.Context, userID, id string) error {
	query := `DELETE FROM media_files WHERE id = $1 AND user_id = $2`

	result, err := r.db.ExecContext(ctx, query, id, userID)
	if err != nil {
		return fmt.Errorf("deleting media file: %w", err)
	}

	return affected(result, "media file")
}
