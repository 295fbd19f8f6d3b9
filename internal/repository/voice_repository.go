package repository

import (
	"context"
	"fmt"
	"time"

	"clover/internal/models"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type VoiceRepositoryImpl struct {
	db *sqlx.DB
}

func NewVoiceRepository(db *sqlx.DB) *VoiceRepositoryImpl {
	return &VoiceRepositoryImpl{db: db}
}

func (r *VoiceRepositoryImpl) List(ctx context.Context, userID string) ([]models.VoiceGeneration, error) {
	query := `SELECT * FROM voice_generations WHERE user_id = $1 ORDER BY created_at DESC`

	voices := []models.VoiceGeneration{}
	if err := r.db.SelectContext(ctx, &voices, query, userID); err != nil {
		return nil, fmt.Errorf("listing voice generations: %w", err)
	}

	return voices, nil
}

func (r *VoiceRepositoryImpl) Create(ctx context.Context, voice *models.VoiceGeneration) error {
	query := `
		INSERT INTO voice_generations
		(id, user_id, text_content, voice_id, voice_name, model, language, speed, volume, pitch,
		 emotion, audio_url, format, sample_rate, bitrate, created_at)
		VALUES
		(:id, :user_id, :text_content, :voice_id, :voice_name, :model, :language, :speed, :volume, :pitch,
		 :emotion, :audio_url, :format, :sample_rate, :bitrate, :created_at)
	`

	if voice.ID == "" {
		voice.ID = uuid.New().String()
	}
	if voice.CreatedAt.IsZero() {
		voice.CreatedAt = time.Now()
	}

	if _, err := r.db.NamedExecContext(ctx, query, voice); err != nil {
		return fmt.Errorf("creating voice generation: %w", err)
	}

	return nil
}

func (r *VoiceRepositoryImpl) Delete(ctx context.Context, userID, id string) error {
	query := `DELETE FROM voice_generations WHERE id = $1 AND user_id = $2`

	result, err := r.db.ExecContext(ctx, query, id, userID)
	if err != nil {
		return fmt.Errorf("deleting voice generation: %w", err)
	}

	return affected(result, "voice generation")
}
