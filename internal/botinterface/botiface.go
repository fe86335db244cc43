package botinterface

import (
	tb "gopkg.in/telebot.v3"
)

var _ BotInterface = (*tb.Bot)(nil)

type BotInterface interface {
	Send(to tb.Recipient, what interface{}, options ...interface{}) (*tb.Message, error)
	Notify(to tb.Recipient, action tb.ChatAction, threadID ...int) error
	Handle(endpoint interface{}, handler tb.HandlerFunc, middlwear ...tb.MiddlewareFunc)
}
