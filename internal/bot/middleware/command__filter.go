package middleware

import (
	"gopkg.in/telebot.v3"
)

// PrivateOnly - игра идёт только в личных сообщениях
func PrivateOnly() telebot.MiddlewareFunc {
	return func(next telebot.HandlerFunc) telebot.HandlerFunc {
		return func(c telebot.Context) error {
			chat := c.Chat()
			if chat == nil || chat.Type != telebot.ChatPrivate {
				return nil
			}
			return next(c)
		}
	}
}

// IgnoreBots - отбрасываем сообщения от ботов, включая свои
func IgnoreBots() telebot.MiddlewareFunc {
	return func(next telebot.HandlerFunc) telebot.HandlerFunc {
		return func(c telebot.Context) error {
			sender := c.Sender()
			if sender == nil || sender.IsBot {
				return nil
			}
			return next(c)
		}
	}
}
