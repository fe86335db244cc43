package config

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("APP_ENV", "docker") // без .env
	t.Setenv("TELEGRAM_TOKEN", "token")
	t.Setenv("SNAPSHOT_BACKEND", "")
	t.Setenv("SESSION_MAILBOX_SIZE", "")
	t.Setenv("SESSION_IDLE_TIMEOUT", "")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "token", cfg.TG.Token)
	assert.Equal(t, 5, cfg.Session.MailboxSize)
	assert.Equal(t, 10*time.Minute, cfg.Session.IdleTimeout)
	assert.Equal(t, BackendFile, cfg.Snapshot.Backend)
	assert.Equal(t, "save_data", cfg.Snapshot.Dir)
	assert.Equal(t, "prod", cfg.Logger.AppEnv)
}

func TestLoadConfig_RequiresToken(t *testing.T) {
	t.Setenv("APP_ENV", "docker")
	t.Setenv("TELEGRAM_TOKEN", "")

	_, err := LoadConfig()
	assert.Error(t, err)
}

func TestGetSessionConfig_Overrides(t *testing.T) {
	t.Setenv("SESSION_MAILBOX_SIZE", "12")
	t.Setenv("SESSION_IDLE_TIMEOUT", "90s")
	t.Setenv("SESSION_MAX", "-3")
	t.Setenv("SESSION_STORE_TIMEOUT", "garbage")

	cfg := GetSessionConfig()
	assert.Equal(t, 12, cfg.MailboxSize)
	assert.Equal(t, 90*time.Second, cfg.IdleTimeout)
	assert.Equal(t, 10000, cfg.MaxSessions)
	assert.Equal(t, 5*time.Second, cfg.StoreTimeout)
}

func TestGetSnapshotConfig(t *testing.T) {
	t.Run("s3 needs bucket", func(t *testing.T) {
		t.Setenv("SNAPSHOT_BACKEND", "s3")
		t.Setenv("S3_BUCKET", "")
		_, err := GetSnapshotConfig()
		assert.Error(t, err)
	})

	t.Run("s3", func(t *testing.T) {
		t.Setenv("SNAPSHOT_BACKEND", "S3")
		t.Setenv("S3_BUCKET", "saves")
		cfg, err := GetSnapshotConfig()
		require.NoError(t, err)
		assert.Equal(t, BackendS3, cfg.Backend)
		assert.Equal(t, "saves", cfg.S3.Bucket)
	})

	t.Run("unknown", func(t *testing.T) {
		t.Setenv("SNAPSHOT_BACKEND", "floppy")
		_, err := GetSnapshotConfig()
		assert.Error(t, err)
	})
}

func TestLoadConfig_PostgresNeedsDb(t *testing.T) {
	t.Setenv("APP_ENV", "docker")
	t.Setenv("TELEGRAM_TOKEN", "token")
	t.Setenv("SNAPSHOT_BACKEND", "postgres")
	t.Setenv("DB_USER", "")
	t.Setenv("DB_HOST", "")

	_, err := LoadConfig()
	assert.Error(t, err)

	t.Setenv("DB_USER", "u")
	t.Setenv("DB_PASSWORD", "p")
	t.Setenv("DB_PORT", "5432")
	t.Setenv("DB_NAME", "quest")
	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "postgres://u:p@postgres:5432/quest?sslmode=disable&TimeZone=UTC", cfg.Db.Dsn)
}

func TestGetAdminConfig(t *testing.T) {
	t.Setenv("ADMINS_ID", " 1, x ,,42")
	assert.Equal(t, []int64{1, 42}, GetAdminConfig().AdminsID)
}

func TestLevelFromEnv(t *testing.T) {
	t.Setenv("LOG_LEVEL", "debug")
	assert.Equal(t, slog.LevelDebug, GetLogConfig().Level)
	t.Setenv("LOG_LEVEL", "")
	assert.Equal(t, slog.LevelInfo, GetLogConfig().Level)
}

func TestGetMetricsConfig(t *testing.T) {
	t.Setenv("METRICS_ADDR", "")
	assert.Equal(t, "", GetMetricsConfig().Addr)
}
