package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"clover/internal/apperr"
	"clover/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var promptColumns = []string{"id", "user_id", "title", "content", "category", "tags", "is_favorite", "created_at", "updated_at"}

func TestPromptRepository_List(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewPromptRepository(db)

	newer := time.Date(2024, 6, 2, 10, 0, 0, 0, time.UTC)
	older := newer.Add(-24 * time.Hour)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM prompts WHERE user_id = $1 ORDER BY created_at DESC`)).
		WithArgs(testUserID).
		WillReturnRows(sqlmock.NewRows(promptColumns).
			AddRow("p2", testUserID, "Second", "body", "", "{seo,blog}", true, newer, newer).
			AddRow("p1", testUserID, "First", "body", "", "{}", false, older, older))

	prompts, err := repo.List(context.Background(), testUserID)

	require.NoError(t, err)
	require.Len(t, prompts, 2)
	assert.Equal(t, "p2", prompts[0].ID)
	assert.Equal(t, []string{"seo", "blog"}, []string(prompts[0].Tags))
	assert.True(t, prompts[0].IsFavorite)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPromptRepository_ListEmpty(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewPromptRepository(db)

	mock.ExpectQuery(`SELECT \* FROM prompts`).
		WithArgs(testUserID).
		WillReturnRows(sqlmock.NewRows(promptColumns))

	prompts, err := repo.List(context.Background(), testUserID)

	require.NoError(t, err)
	assert.NotNil(t, prompts)
	assert.Empty(t, prompts)
}

func TestPromptRepository_Create(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewPromptRepository(db)

	prompt := &models.Prompt{UserID: testUserID, Title: "Hook ideas", Content: "Write five hooks"}

	mock.ExpectExec(`INSERT INTO prompts`).
		WithArgs(sqlmock.AnyArg(), testUserID, "Hook ideas", "Write five hooks", "", sqlmock.AnyArg(), false, sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	err := repo.Create(context.Background(), prompt)

	require.NoError(t, err)
	assert.NotEmpty(t, prompt.ID)
	assert.NotNil(t, prompt.Tags)
	assert.False(t, prompt.CreatedAt.IsZero())
	assert.Equal(t, prompt.CreatedAt, prompt.UpdatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPromptRepository_Update(t *testing.T) {
	tests := []struct {
		name      string
		affected  int64
		expectErr error
	}{
		{name: "owner updates", affected: 1},
		{name: "foreign or missing row", affected: 0, expectErr: apperr.ErrNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock := setupMockDB(t)
			repo := NewPromptRepository(db)

			prompt := &models.Prompt{ID: "p1", UserID: otherUserID, Title: "t", Content: "c"}

			mock.ExpectExec(`UPDATE prompts SET`).
				WillReturnResult(sqlmock.NewResult(0, tt.affected))

			err := repo.Update(context.Background(), prompt)

			if tt.expectErr != nil {
				assert.True(t, errors.Is(err, tt.expectErr))
			} else {
				assert.NoError(t, err)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestPromptRepository_ToggleFavorite(t *testing.T) {
	t.Run("flips the stored flag", func(t *testing.T) {
		db, mock := setupMockDB(t)
		repo := NewPromptRepository(db)
		now := time.Now()

		mock.ExpectQuery(`UPDATE prompts SET is_favorite = NOT is_favorite`).
			WithArgs("p1", testUserID, sqlmock.AnyArg()).
			WillReturnRows(sqlmock.NewRows(promptColumns).
				AddRow("p1", testUserID, "t", "c", "", "{}", true, now, now))

		prompt, err := repo.ToggleFavorite(context.Background(), testUserID, "p1")

		require.NoError(t, err)
		assert.True(t, prompt.IsFavorite)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("row of another user", func(t *testing.T) {
		db, mock := setupMockDB(t)
		repo := NewPromptRepository(db)

		mock.ExpectQuery(`UPDATE prompts SET is_favorite = NOT is_favorite`).
			WithArgs("p1", otherUserID, sqlmock.AnyArg()).
			WillReturnRows(sqlmock.NewRows(promptColumns))

		prompt, err := repo.ToggleFavorite(context.Background(), otherUserID, "p1")

		assert.Nil(t, prompt)
		assert.ErrorIs(t, err, apperr.ErrNotFound)
	})
}

func TestPromptRepository_Delete(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewPromptRepository(db)

	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM prompts WHERE id = $1 AND user_id = $2`)).
		WithArgs("p1", testUserID).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`DELETE FROM prompts`).
		WithArgs("p1", otherUserID).
		WillReturnResult(sqlmock.NewResult(0, 0))

	assert.NoError(t, repo.Delete(context.Background(), testUserID, "p1"))
	assert.ErrorIs(t, repo.Delete(context.Background(), otherUserID, "p1"), apperr.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPromptRepository_DatabaseError(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewPromptRepository(db)

	mock.ExpectQuery(`SELECT \* FROM prompts`).WillReturnError(errors.New("connection reset"))

	_, err := repo.List(context.Background(), testUserID)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "listing prompts")
	assert.NotErrorIs(t, err, apperr.ErrNotFound)
}
