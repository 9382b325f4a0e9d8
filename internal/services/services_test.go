package services

import (
	"fmt"
	"testing"

	"github.com/footpoets/claimsdb/internal/config"
	"github.com/footpoets/claimsdb/internal/models"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens an in-memory database with the full schema migrated.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.User{},
		&models.UserMeta{},
		&models.Poet{},
		&models.PoetMeta{},
		&models.Poem{},
		&models.Connection{},
		&models.BatchStep{},
		&models.Message{},
		&models.MessageRecipient{},
	)
	require.NoError(t, err)

	return db
}

// newTestConfig returns a config with the default claim settings.
func newTestConfig() *config.Config {
	return &config.Config{
		DBType:           "sqlite",
		SessionSecret:    "test-secret",
		HoldingUserID:    5,
		NotifyUserIDs:    []uint64{1},
		BatchPageSize:    10,
		BatchStepKey:     "_poets_resolution_step",
		BatchScopedSteps: true,
		Keys:             config.DefaultMetaKeys(),
	}
}

func createUser(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()
	user := models.User{Username: username, DisplayName: username}
	require.NoError(t, db.Create(&user).Error)
	return &user
}

func createPoet(t *testing.T, db *gorm.DB, title string, authorID uint64) *models.Poet {
	t.Helper()
	poet := models.Poet{Title: title, AuthorID: authorID}
	require.NoError(t, db.Create(&poet).Error)
	return &poet
}

func createLinkedPoems(t *testing.T, db *gorm.DB, poetID, authorID uint64, count int) []uint64 {
	t.Helper()
	var ids []uint64
	for i := 0; i < count; i++ {
		poem := models.Poem{
			Title:    fmt.Sprintf("poem %d", i+1),
			AuthorID: authorID,
		}
		require.NoError(t, db.Create(&poem).Error)
		conn := models.Connection{
			ConnType: models.ConnPoetsToPoems,
			FromID:   poetID,
			ToID:     poem.PoemID,
		}
		require.NoError(t, db.Create(&conn).Error)
		ids = append(ids, poem.PoemID)
	}
	return ids
}

func countPoemsOwnedBy(t *testing.T, db *gorm.DB, authorID uint64) int64 {
	t.Helper()
	var count int64
	require.NoError(t, db.Model(&models.Poem{}).
		Where("author_id = ?", authorID).Count(&count).Error)
	return count
}

func testLogger() *zap.Logger {
	return zap.NewNop()
}
