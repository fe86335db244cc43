package middleware

import (
	"time"

	"gopkg.in/telebot.v3"
)

// Мидлварь для обработки longpoolinga: старые апдейты после простоя не разбираем
func DropOldMessages(pollTimeout, maxAge time.Duration) *telebot.MiddlewarePoller {
	return telebot.NewMiddlewarePoller(
		&telebot.LongPoller{Timeout: pollTimeout},
		FreshUpdate(maxAge),
	)
}

func FreshUpdate(maxAge time.Duration) func(u *telebot.Update) bool {
	return func(u *telebot.Update) bool {
		if u.Message != nil && time.Since(u.Message.Time()) > maxAge {
			return false
		}
		return true
	}
}
