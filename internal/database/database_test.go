package database

import (
	"context"
	"io/fs"
	"path/filepath"
	"testing"
	"time"

	"github.com/bracken1022/prompt-museum/config"
	"github.com/bracken1022/prompt-museum/internal/models"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(t *testing.T) *config.Config {
	return &config.Config{
		Environment:    config.EnvProduction,
		DBDriver:       config.DriverSQLite,
		DBSQLitePath:   filepath.Join(t.TempDir(), "museum.db"),
		DBAutoMigrate:  true,
		DBMaxOpenConns: 1,
		DBMaxIdleConns: 1,
		JWTExpiresIn:   time.Hour,
	}
}

func TestConnectSQLiteAutoMigrates(t *testing.T) {
	db, err := Connect(testConfig(t))
	require.NoError(t, err)

	assert.True(t, db.Migrator().HasTable(&models.User{}))
	assert.True(t, db.Migrator().HasTable(&models.Prompt{}))
	assert.True(t, db.Migrator().HasIndex(&models.User{}, "Email"))
}

func TestDuplicateEmailIsTranslated(t *testing.T) {
	db, err := Connect(testConfig(t))
	require.NoError(t, err)

	require.NoError(t, db.Create(&models.User{Name: "a", Email: "a@example.com", Password: "x"}).Error)
	err = db.Create(&models.User{Name: "b", Email: "a@example.com", Password: "y"}).Error
	assert.Error(t, err)
}

func TestDialectorRejectsUnknownDriver(t *testing.T) {
	_, err := Dialector(&config.Config{DBDriver: "oracle"})
	assert.Error(t, err)
}

func TestDialectorNames(t *testing.T) {
	tests := []struct {
		cfg  config.Config
		name string
	}{
		{cfg: config.Config{DatabaseURL: "postgres://localhost/museum"}, name: "postgres"},
		{cfg: config.Config{DBDriver: config.DriverMySQL}, name: "mysql"},
		{cfg: config.Config{DBDriver: config.DriverSQLite, DBSQLitePath: ":memory:"}, name: "sqlite"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := Dialector(&tt.cfg)
			require.NoError(t, err)
			assert.Equal(t, tt.name, d.Name())
		})
	}
}

func TestEmbeddedMigrationsArePaired(t *testing.T) {
	ups, err := fs.Glob(migrationsFS, "migrations/*.up.sql")
	require.NoError(t, err)
	downs, err := fs.Glob(migrationsFS, "migrations/*.down.sql")
	require.NoError(t, err)

	assert.NotEmpty(t, ups)
	assert.Len(t, downs, len(ups))
}

func TestNewMigratorRequiresURL(t *testing.T) {
	_, err := NewMigrator("")
	assert.Error(t, err)
}

func TestConnectRedis(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()

	cfg := &config.Config{RedisAddr: mr.Host(), RedisPort: mr.Port()}
	client, err := ConnectRedis(context.Background(), cfg)
	require.NoError(t, err)
	require.NotNil(t, client)
	defer client.Close()
}

func TestConnectRedisDisabled(t *testing.T) {
	client, err := ConnectRedis(context.Background(), &config.Config{})
	assert.NoError(t, err)
	assert.Nil(t, client)
}
