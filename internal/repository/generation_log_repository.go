package repository

import (
	"context"
	"fmt"
	"time"

	"clover/internal/models"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type GenerationLogRepositoryImpl struct {
	db *sqlx.DB
}

func NewGenerationLogRepository(db *sqlx.DB) *GenerationLogRepositoryImpl {
	return &GenerationLogRepositoryImpl{db: db}
}

func (r *GenerationLogRepositoryImpl) List(ctx context.Context, userID string, limit int) ([]models.AIGenerationLog, error) {
	query := `SELECT * FROM ai_generation_logs WHERE user_id = $1 ORDER BY created_at DESC LIMIT $2`

	logs := []models.AIGenerationLog{}
	if err := r.db.SelectContext(ctx, &logs, query, userID, limit); err != nil {
		return nil, fmt.Errorf("listing generation logs: %w", err)
	}

	return logs, nil
}

func (r *GenerationLogRepositoryImpl) Create(ctx context.Context, log *models.AIGenerationLog) error {
	query := `
		INSERT INTO ai_generation_logs (id, user_id, prompt, result, tool_type, created_at)
		VALUES (:id, :user_id, :prompt, :result, :tool_type, :created_at)
	`

	if log.ID == "" {
		log.ID = uuid.New().String()
	}
	if log.CreatedAt.IsZero() {
		log.CreatedAt = time.Now()
	}

	if _, err := r.db.NamedExecContext(ctx, query, log); err != nil {
		return fmt.Errorf("creating generation log: %w", err)
	}

	return nil
}
