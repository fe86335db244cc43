package db

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/kiselevos/textquest_bot/internal/config"
	"github.com/kiselevos/textquest_bot/migrations"
)

type Db struct {
	*sql.DB
}

// NewDB - создание нового подключения к DB
func NewDB(conf config.DbConfig) (*Db, error) {
	var err error

	for i := 1; i <= conf.MaxAttempts; i++ {
		var sqlDB *sql.DB
		sqlDB, err = sql.Open("pgx", conf.Dsn)
		if err == nil {
			sqlDB.SetMaxOpenConns(conf.MaxOpenConns)
			sqlDB.SetMaxIdleConns(conf.MaxIdleConns)
			sqlDB.SetConnMaxLifetime(conf.ConnMaxLifetime)

			ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
			err = sqlDB.PingContext(ctx)
			cancel()
			if err == nil {
				return &Db{sqlDB}, nil
			}
			_ = sqlDB.Close()
		}

		slog.Warn("database connection failed, retrying...",
			"attempt", i, "error", err)
		time.Sleep(conf.Delay)
	}

	return nil, fmt.Errorf("could not connect to database after %d attempts: %w", conf.MaxAttempts, err)
}

// Migrate накатывает встроенные goose-миграции
func Migrate(db *Db) error {
	goose.SetBaseFS(migrations.FS)
	defer goose.SetBaseFS(nil)

	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("goose dialect: %w", err)
	}
	if err := goose.Up(db.DB, "."); err != nil {
		return fmt.Errorf("goose up: %w", err)
	}
	return nil
}
