package repository

import (
	"context"
	"fmt"
	"time"

	"clover/internal/models"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type PromptRepositoryImpl struct {
	db *sqlx.DB
}

func NewPromptRepository(db *sqlx.DB) *PromptRepositoryImpl {
	return &PromptRepositoryImpl{db: db}
}

func (r *PromptRepositoryImpl) List(ctx context.Context, userID string) ([]models.Prompt, error) {
	query := `SELECT * FROM prompts WHERE user_id = $1 ORDER BY created_at DESC`

	prompts := []models.Prompt{}
	if err := r.db.SelectContext(ctx, &prompts, query, userID); err != nil {
		return nil, fmt.Errorf("listing prompts: %w", err)
	}

	return prompts, nil
}

func (r *PromptRepositoryImpl) GetByID(ctx context.Context, userID, id string) (*models.Prompt, error) {
	query := `SELECT * FROM prompts WHERE id = $1 AND user_id = $2`

	var prompt models.Prompt
	if err := r.db.GetContext(ctx, &prompt, query, id, userID); err != nil {
		return nil, getErr(err, "prompt")
	}

	return &prompt, nil
}

func (r *PromptRepositoryImpl) Create(ctx context.Context, prompt *models.Prompt) error {
	query := `
		INSERT INTO prompts (id, user_id, title, content, category, tags, is_favorite, created_at, updated_at)
		VALUES (:id, :user_id, :title, :content, :category, :tags, :is_favorite, :created_at, :updated_at)
	`

	if prompt.ID == "" {
		prompt.ID = uuid.New().String()
	}
	if prompt.Tags == nil {
		prompt.Tags = []string{}
	}

	now := time.Now()
	prompt.CreatedAt = now
	prompt.UpdatedAt = now

	if _, err := r.db.NamedExecContext(ctx, query, prompt); err != nil {
		return fmt.Errorf("creating prompt: %w", err)
	}

	return nil
}

func (r *PromptRepositoryImpl) Update(ctx context.Context, prompt *models.Prompt) error {
	query := `
		UPDATE prompts SET
			title = :title,
			content = :content,
			category = :category,
			tags = :tags,
			is_favorite = :is_favorite,
			updated_at = :updated_at
		WHERE id = :id AND user_id = :user_id
	`

	if prompt.Tags == nil {
		prompt.Tags = []string{}
	}
	prompt.UpdatedAt = time.Now()

	result, err := r.db.NamedExecContext(ctx, query, prompt)
	if err != nil {
		return fmt.Errorf("updating prompt: %w", err)
	}

	return affected(result, "prompt")
}

// ToggleFavorite flips the flag in SQL and returns the updated row.
func (r *PromptRepositoryImpl) ToggleFavorite(ctx context.Context, userID, id string) (*models.Prompt, error) {
	query := `
		UPDATE prompts SET is_favorite = NOT is_favorite, updated_at = $3
		WHERE id = $1 AND user_id = $2
		RETURNING *
	`

	var prompt models.Prompt
	if err := r.db.GetContext(ctx, &prompt, query, id, userID, time.Now()); err != nil {
		return nil, getErr(err, "prompt")
	}

	return &prompt, nil
}

func (r *PromptRepositoryImpl) Delete(ctx context.Context, userID, id string) error {
	query := `DELETE FROM prompts WHERE id = $1 AND user_id = $2`

	result, err := r.db.ExecContext(ctx, query, id, userID)
	if err != nil {
		return fmt.Errorf("deleting prompt: %w", err)
	}

	return affected(result, "prompt")
}
