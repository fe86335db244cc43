package bot

import (
	"context"

	"github.com/kiselevos/textquest_bot/internal/botinterface"
	"github.com/kiselevos/textquest_bot/internal/game"

	"gopkg.in/telebot.v3"
)

// Gateway - исходящая сторона: набор текста и ответы в чат
type Gateway struct {
	Bot botinterface.BotInterface
}

func NewGateway(bot botinterface.BotInterface) *Gateway {
	return &Gateway{Bot: bot}
}

func (g *Gateway) SendTyping(_ context.Context, id game.ChannelID) error {
	return g.Bot.Notify(&telebot.Chat{ID: int64(id)}, telebot.Typing)
}

func (g *Gateway) SendText(_ context.Context, id game.ChannelID, text string) error {
	_, err := g.Bot.Send(&telebot.Chat{ID: int64(id)}, text)
	return err
}
