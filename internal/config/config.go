package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	BackendFile     = "file"
	BackendPostgres = "postgres"
	BackendS3       = "s3"
)

type Config struct {
	Db       DbConfig
	TG       TgConfig
	Admin    AdminsConfig
	Bot      BotConfig
	Logger   LogConfig
	Session  SessionConfig
	Snapshot SnapshotConfig
	Metrics  MetricsConfig
}

type DbConfig struct {
	Dsn             string
	MaxAttempts     int
	Delay           time.Duration
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

type TgConfig struct {
	Token string
}

type AdminsConfig struct {
	AdminsID []int64
}

type BotConfig struct {
	DropOldMessagesAfter time.Duration
	PollTimeout          time.Duration
}

type LogConfig struct {
	Level  slog.Level
	AppEnv string
}

type SessionConfig struct {
	MailboxSize  int
	IdleTimeout  time.Duration
	MaxSessions  int
	StoreTimeout time.Duration
}

type SnapshotConfig struct {
	Backend string
	Dir     string
	S3      S3Config
}

type S3Config struct {
	Bucket    string
	Prefix    string
	Region    string
	Endpoint  string
	AccessKey string
	SecretKey string
}

type MetricsConfig struct {
	Addr string
}

// Logging
func GetLogConfig() LogConfig {

	appEnv := os.Getenv("APP_ENV")

	if appEnv != "local" {
		appEnv = "prod"
	}

	return LogConfig{
		Level:  levelFromEnv(),
		AppEnv: appEnv,
	}
}

func levelFromEnv() slog.Level {
	switch os.Getenv("LOG_LEVEL") {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Bot
func GetBotConfig() BotConfig {
	return BotConfig{
		DropOldMessagesAfter: envDuration("BOT_DROP_OLD_TIMEOUT", 10*time.Second),
		PollTimeout:          envDuration("BOT_POLL_TIMEOUT", 10*time.Second),
	}
}

// Sessions. Ящик на 5 сообщений и 10 минут простоя до выгрузки.
func GetSessionConfig() SessionConfig {
	return SessionConfig{
		MailboxSize:  envInt("SESSION_MAILBOX_SIZE", 5),
		IdleTimeout:  envDuration("SESSION_IDLE_TIMEOUT", 10*time.Minute),
		MaxSessions:  envInt("SESSION_MAX", 10000),
		StoreTimeout: envDuration("SESSION_STORE_TIMEOUT", 5*time.Second),
	}
}

func GetSnapshotConfig() (SnapshotConfig, error) {
	backend := strings.ToLower(strings.TrimSpace(os.Getenv("SNAPSHOT_BACKEND")))
	if backend == "" {
		backend = BackendFile
	}

	cfg := SnapshotConfig{
		Backend: backend,
		Dir:     envString("SNAPSHOT_DIR", "save_data"),
		S3: S3Config{
			Bucket:    os.Getenv("S3_BUCKET"),
			Prefix:    envString("S3_PREFIX", "save_data/"),
			Region:    envString("S3_REGION", "us-east-1"),
			Endpoint:  os.Getenv("S3_ENDPOINT"),
			AccessKey: os.Getenv("S3_ACCESS_KEY"),
			SecretKey: os.Getenv("S3_SECRET_KEY"),
		},
	}

	switch backend {
	case BackendFile, BackendPostgres:
	case BackendS3:
		if cfg.S3.Bucket == "" {
			return SnapshotConfig{}, fmt.Errorf("S3_BUCKET is required for SNAPSHOT_BACKEND=s3")
		}
	default:
		return SnapshotConfig{}, fmt.Errorf("unknown SNAPSHOT_BACKEND %q", backend)
	}
	return cfg, nil
}

func GetMetricsConfig() MetricsConfig {
	addr, ok := os.LookupEnv("METRICS_ADDR")
	if !ok {
		addr = ":9090"
	}
	return MetricsConfig{Addr: strings.TrimSpace(addr)}
}

func GetDbConfig() (DbConfig, error) {
	dsn, err := GetDsn()
	if err != nil {
		return DbConfig{}, err
	}

	return DbConfig{
		Dsn:             dsn,
		Delay:           envDuration("DB_DELAY_CONNECTION", 2*time.Second),
		MaxAttempts:     envInt("DB_MAX_ATTEMPTS", 5),
		MaxOpenConns:    envInt("DB_MAX_OPEN_CONN", 10),
		MaxIdleConns:    envInt("DB_MAX_IDLE_CONN", 5),
		ConnMaxLifetime: envDuration("DB_MAX_LIFETIME_CONN", 30*time.Minute),
	}, nil
}

func GetDsn() (string, error) {
	env := os.Getenv("APP_ENV")

	host := os.Getenv("DB_HOST")
	if host == "" {
		host = "localhost"
		if env == "docker" {
			host = "postgres"
		}
	}

	user := os.Getenv("DB_USER")
	pass := os.Getenv("DB_PASSWORD")
	port := os.Getenv("DB_PORT")
	name := os.Getenv("DB_NAME")

	if user == "" || pass == "" || port == "" || name == "" {
		return "", fmt.Errorf("db env is not set: DB_USER, DB_PASSWORD, DB_PORT, DB_NAME are required")
	}

	dsn := fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=disable&TimeZone=UTC",
		user, pass, host, port, name,
	)
	return dsn, nil
}

func GetAdminConfig() AdminsConfig {
	raw := os.Getenv("ADMINS_ID")
	if strings.TrimSpace(raw) == "" {
		return AdminsConfig{AdminsID: nil}
	}

	parts := strings.Split(raw, ",")
	adminsID := make([]int64, 0, len(parts))

	for _, strID := range parts {
		strID = strings.TrimSpace(strID)
		if strID == "" {
			continue
		}
		id, err := strconv.ParseInt(strID, 10, 64)
		if err != nil {
			continue
		}
		adminsID = append(adminsID, id)
	}

	return AdminsConfig{AdminsID: adminsID}
}

// LoadEnv подгружает .env, если он есть. Отсутствие файла - норм.
func LoadEnv() {
	if os.Getenv("APP_ENV") != "docker" {
		_ = godotenv.Load()
	}
}

// LoadConfig - полная конфигурация для запуска бота
func LoadConfig() (*Config, error) {
	LoadEnv()

	token := os.Getenv("TELEGRAM_TOKEN")
	if token == "" {
		return nil, fmt.Errorf("TELEGRAM_TOKEN not set")
	}

	snap, err := GetSnapshotConfig()
	if err != nil {
		return nil, err
	}

	// DB нужна только postgres-хранилищу
	var dbCfg DbConfig
	if snap.Backend == BackendPostgres {
		dbCfg, err = GetDbConfig()
		if err != nil {
			return nil, err
		}
	}

	return &Config{
		TG:       TgConfig{Token: token},
		Db:       dbCfg,
		Admin:    GetAdminConfig(),
		Bot:      GetBotConfig(),
		Logger:   GetLogConfig(),
		Session:  GetSessionConfig(),
		Snapshot: snap,
		Metrics:  GetMetricsConfig(),
	}, nil
}

// helper for duration
func envDuration(key string, def time.Duration) time.Duration {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		return def
	}
	return d
}

func envInt(key string, def int) int {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return def
	}
	return n
}

func envString(key, def string) string {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	return raw
}
