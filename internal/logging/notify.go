package logging

import (
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	tb "gopkg.in/telebot.v3"
)

// Sender - часть бота, через которую уходят алерты
type Sender interface {
	Send(to tb.Recipient, what interface{}, options ...interface{}) (*tb.Message, error)
}

// Notifier шлёт админам алерты не чаще раза в min.
type Notifier struct {
	Bot      Sender
	AdminIDs []int64

	mu   sync.Mutex
	last time.Time
	min  time.Duration
}

func NewNotifier(b Sender, admins []int64) *Notifier {
	return &Notifier{
		Bot:      b,
		AdminIDs: admins,
		min:      30 * time.Second,
	}
}

// Notify не блокирует: отправка идёт в отдельной горутине,
// чтобы логирование под локом не ждало сеть.
func (n *Notifier) Notify(level slog.Level, msg string, attrs ...any) {
	if n == nil || n.Bot == nil || len(n.AdminIDs) == 0 {
		return
	}

	n.mu.Lock()
	if !n.last.IsZero() && time.Since(n.last) < n.min {
		n.mu.Unlock()
		return
	}
	n.last = time.Now()
	n.mu.Unlock()

	var b strings.Builder
	fmt.Fprintf(&b, "🚨 %s: %s", level.String(), msg)
	for i := 0; i+1 < len(attrs); i += 2 {
		fmt.Fprintf(&b, "\n%v=%v", attrs[i], attrs[i+1])
	}
	text := b.String()

	go func() {
		for _, id := range n.AdminIDs {
			_, _ = n.Bot.Send(&tb.User{ID: id}, text)
		}
	}()
}
