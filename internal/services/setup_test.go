package services

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/bracken1022/prompt-museum/internal/database"
	"github.com/bracken1022/prompt-museum/internal/models"
	"github.com/bracken1022/prompt-museum/internal/utils"

	"github.com/alicebob/miniredis/v2"
	"github.com/glebarez/sqlite"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const testSecret = "test_secret"

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.Open(sqlite.Open(filepath.Join(t.TempDir(), "museum.db")), nil)
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, database.AutoMigrate(db))
	return db
}

func setupTestRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })
	return mr, rdb
}

type testServices struct {
	db      *gorm.DB
	users   *UserService
	auth    *AuthService
	prompts *PromptService
	tokens  *utils.TokenManager
}

// newTestServices wires every service against a fresh database. rdb may be
// nil to run without Redis.
func newTestServices(t *testing.T, rdb *redis.Client) *testServices {
	t.Helper()
	db := setupTestDB(t)
	users := NewUserService(db, rdb)
	tokens := utils.NewTokenManager(testSecret, time.Hour)
	return &testServices{
		db:      db,
		users:   users,
		auth:    NewAuthService(db, users, tokens, NewTokenDenylist(rdb), bcrypt.MinCost),
		prompts: NewPromptService(db, users, rdb),
		tokens:  tokens,
	}
}

func (s *testServices) register(t *testing.T, name, email string) (*models.UserProfile, string) {
	t.Helper()
	result, err := s.auth.RegisterUser(context.Background(), name, email, "password123")
	require.NoError(t, err)
	require.True(t, result.Success)
	return result.User, result.AccessToken
}

func boolPtr(b bool) *bool         { return &b }
func strPtr(s string) *string      { return &s }
func tagsPtr(t []string) *[]string { return &t }
