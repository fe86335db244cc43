package snapshot

import (
	"context"
	"errors"

	"github.com/kiselevos/textquest_bot/internal/game"
)

// ErrNotFound - снапшота для чата нет. Это нормальная ситуация: новая игра.
var ErrNotFound = errors.New("snapshot not found")

// Store хранит закодированное состояние по id чата.
// Конкурентный доступ к одному чату сериализует вызывающий код.
type Store interface {
	Load(ctx context.Context, id game.ChannelID) ([]byte, error)
	Save(ctx context.Context, id game.ChannelID, data []byte) error
}
