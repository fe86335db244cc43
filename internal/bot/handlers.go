package bot

import (
	"context"
	"errors"
	"log/slog"

	"github.com/kiselevos/textquest_bot/internal/bot/middleware"
	"github.com/kiselevos/textquest_bot/internal/botinterface"
	"github.com/kiselevos/textquest_bot/internal/game"
	"github.com/kiselevos/textquest_bot/internal/session"

	"gopkg.in/telebot.v3"
)

const BusyMessage = "The realm is crowded right now. Try again in a few minutes."

// Dispatcher - входная дверь реестра сессий
type Dispatcher interface {
	Dispatch(ctx context.Context, id game.ChannelID, text string) error
}

// Handlers структура хранящая в себе bot и реестр для роутинга
type Handlers struct {
	Bot      botinterface.BotInterface
	Sessions Dispatcher
	Log      *slog.Logger
}

func NewHandlers(bot botinterface.BotInterface, sessions Dispatcher, log *slog.Logger) *Handlers {
	if log == nil {
		log = slog.Default()
	}
	return &Handlers{
		Bot:      bot,
		Sessions: sessions,
		Log:      log,
	}
}

func (h *Handlers) Register() {
	h.Bot.Handle(telebot.OnText, h.OnText, middleware.IgnoreBots(), middleware.PrivateOnly())
}

// OnText - каждое текстовое сообщение уходит в сессию своего чата
func (h *Handlers) OnText(c telebot.Context) error {
	id := game.ChannelID(c.Chat().ID)

	err := h.Sessions.Dispatch(context.Background(), id, c.Text())
	if err == nil {
		return nil
	}

	h.Log.Error("dispatch failed", "chat_id", id, "error", err)
	if errors.Is(err, session.ErrTooManySessions) {
		return c.Send(BusyMessage)
	}
	return nil
}
