package snapshot

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/kiselevos/textquest_bot/internal/db"
	"github.com/kiselevos/textquest_bot/internal/game"
)

type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *db.Db) *PostgresStore {
	return &PostgresStore{
		db: db.DB,
	}
}

func (s *PostgresStore) Load(ctx context.Context, id game.ChannelID) ([]byte, error) {
	var data []byte
	err := s.db.QueryRowContext(ctx, `
SELECT data FROM snapshots WHERE channel_id = $1
`, int64(id)).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("snapshots select %d: %w", id, err)
	}
	return data, nil
}

func (s *PostgresStore) Save(ctx context.Context, id game.ChannelID, data []byte) error {
	_, err := s.db.ExecContext(ctx, `
INSERT INTO snapshots (channel_id, data, updated_at)
VALUES ($1, $2, now())
ON CONFLICT (channel_id) DO UPDATE
SET data = EXCLUDED.data,
    updated_at = now()
`, int64(id), data)
	if err != nil {
		return fmt.Errorf("snapshots upsert %d: %w", id, err)
	}
	return nil
}
