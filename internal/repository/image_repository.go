package repository

import (
	"context"
	"fmt"
	"time"

	"clover/internal/models"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type ImageRepositoryImpl struct {
	db *sqlx.DB
}

func NewImageRepository(db *sqlx.DB) *ImageRepositoryImpl {
	return &ImageRepositoryImpl{db: db}
}

func (r *ImageRepositoryImpl) Create(ctx context.Context, image *models.GeneratedImage) error {
	query := `
		INSERT INTO generated_images (id, user_id, prompt, image_url, style, model, aspect_ratio, is_favorite, is_avatar, created_at)
		VALUES (:id, :user_id, :prompt, :image_url, :style, :model, :aspect_ratio, :is_favorite, :is_avatar, :created_at)
	`

	if image.ID == "" {
		image.ID = uuid.New().String()
	}

	if image.CreatedAt.IsZero() {
		image.CreatedAt = time.Now()
	}

	if _, err := r.db.NamedExecContext(ctx, query, image); err != nil {
		return fmt.Errorf("creating generated image: %w", err)
	}

	return nil
}

func (r *ImageRepositoryImpl) List(ctx context.Context, userID string) ([]models.GeneratedImage, error) {
	query := `SELECT * FROM generated_images WHERE user_id = $1 ORDER BY created_at DESC`

	images := []models.GeneratedImage{}
	if err := r.db.SelectContext(ctx, &images, query, userID); err != nil {
		return nil, fmt.Errorf("listing generated images: %w", err)
	}

	return images, nil
}

func (r *ImageRepositoryImpl) ToggleFavorite(ctx context.Context, userID, id string) (*models.GeneratedImage, error) {
	query := `
		UPDATE generated_images SET is_favorite = NOT is_favorite
		WHERE id = $1 AND user_id = $2
		RETURNING *
	`

	var image models.GeneratedImage
	if err := r.db.GetContext(ctx, &image, query, id, userID); err != nil {
		return nil, getErr(err, "generated image")
	}

	return &image, nil
}

func (r *ImageRepositoryImpl) Delete(ctx context.Context, userID, id string) error {
	query := `DELETE FROM generated_images WHERE id = $1 AND user_id = $2`

	result, err := r.db.ExecContext(ctx, query, id, userID)
	if err != nil {
		return fmt.Errorf("deleting generated image: %w", err)
	}

	return affected(result, "generated image")
}
