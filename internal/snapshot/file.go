package snapshot

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/natefinch/atomic"

	"github.com/kiselevos/textquest_bot/internal/game"
)

// FileStore - по файлу <dir>/<id>.data на чат
type FileStore struct {
	dir string
}

func NewFileStore(dir string) *FileStore {
	return &FileStore{dir: dir}
}

func (s *FileStore) path(id game.ChannelID) string {
	return filepath.Join(s.dir, id.String()+".data")
}

func (s *FileStore) Load(_ context.Context, id game.ChannelID) ([]byte, error) {
	data, err := os.ReadFile(s.path(id))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("snapshot load %d: %w", id, err)
	}
	return data, nil
}

func (s *FileStore) Save(_ context.Context, id game.ChannelID, data []byte) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("snapshot dir %s: %w", s.dir, err)
	}
	if err := atomic.WriteFile(s.path(id), bytes.NewReader(data)); err != nil {
		return fmt.Errorf("snapshot save %d: %w", id, err)
	}
	return nil
}
