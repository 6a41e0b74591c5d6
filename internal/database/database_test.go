package database

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	pgvector "github.com/pgvector/pgvector-go"

	"github.com/diacare/backend/config"
	"github.com/diacare/backend/internal/models"
	"github.com/diacare/backend/internal/types"
)

func TestNewSQLiteAndMigrate(t *testing.T) {
	cfg := &config.Config{DBDriver: DriverSQLite, SQLitePath: filepath.Join(t.TempDir(), "test.db")}

	db, err := New(cfg, zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = Close(db) })

	require.NoError(t, Migrate(db, zerolog.Nop()))
	assert.NoError(t, HealthCheck(context.Background(), db))

	user := models.User{ID: uuid.New(), Name: "Test User", Username: "tester", Email: "test@example.com", PasswordHash: "hash"}
	require.NoError(t, db.Create(&user).Error)

	recipe := models.SavedRecipe{
		ID:        uuid.New(),
		UserID:    user.ID,
		Title:     "Lentil soup",
		Recipe:    models.JSONB[types.GeneratedRecipe]{Data: types.GeneratedRecipe{Title: "Lentil soup", Tips: []string{"Add lemon"}}},
		Embedding: pgvector.NewVector([]float32{0.1, 0.2}),
	}
	require.NoError(t, db.Create(&recipe).Error)

	var got models.SavedRecipe
	require.NoError(t, db.First(&got, "id = ?", recipe.ID).Error)
	assert.Equal(t, []string{"Add lemon"}, got.Recipe.Data.Tips)
	assert.Equal(t, []float32{0.1, 0.2}, got.Embedding.Slice())
}

func TestNewUnsupportedDriver(t *testing.T) {
	_, err := New(&config.Config{DBDriver: "mysql"}, zerolog.Nop())
	assert.Error(t, err)
}
