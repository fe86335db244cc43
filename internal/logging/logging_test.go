package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	tb "gopkg.in/telebot.v3"

	"github.com/kiselevos/textquest_bot/internal/config"
)

type MockSender struct {
	mock.Mock
	mu   sync.Mutex
	sent []string
}

func (m *MockSender) Send(to tb.Recipient, what interface{}, options ...interface{}) (*tb.Message, error) {
	args := m.Called(to, what)
	m.mu.Lock()
	m.sent = append(m.sent, what.(string))
	m.mu.Unlock()
	return &tb.Message{}, args.Error(1)
}

func (m *MockSender) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sent)
}

func TestNotifier_RateLimited(t *testing.T) {
	sender := new(MockSender)
	sender.On("Send", &tb.User{ID: 1}, mock.Anything).Return(&tb.Message{}, nil)

	n := NewNotifier(sender, []int64{1})
	n.Notify(slog.LevelError, "first", "chat_id", 5)
	n.Notify(slog.LevelError, "second")

	require.Eventually(t, func() bool { return sender.count() == 1 }, time.Second, 5*time.Millisecond)
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, 1, sender.count())

	sender.mu.Lock()
	defer sender.mu.Unlock()
	assert.Contains(t, sender.sent[0], "first")
	assert.Contains(t, sender.sent[0], "chat_id=5")
}

func TestNotifier_NoAdmins(t *testing.T) {
	sender := new(MockSender)
	NewNotifier(sender, nil).Notify(slog.LevelError, "nobody listens")

	var nilNotifier *Notifier
	nilNotifier.Notify(slog.LevelError, "nil is fine")

	sender.AssertNotCalled(t, "Send", mock.Anything, mock.Anything)
}

func TestNewLogger_ForwardsErrorsOnly(t *testing.T) {
	sender := new(MockSender)
	sender.On("Send", mock.Anything, mock.Anything).Return(&tb.Message{}, nil)
	n := NewNotifier(sender, []int64{7})
	n.min = 0

	var buf bytes.Buffer
	log := NewLogger(&buf, config.LogConfig{Level: slog.LevelInfo, AppEnv: "prod"}, n)

	log.Info("just info")
	log.With("chat_id", 42).Error("couldn't save snapshot", "error", "disk full")

	require.Eventually(t, func() bool { return sender.count() == 1 }, time.Second, 5*time.Millisecond)
	sender.mu.Lock()
	msg := sender.sent[0]
	sender.mu.Unlock()
	assert.Contains(t, msg, "couldn't save snapshot")
	assert.Contains(t, msg, "chat_id=42")
	assert.Contains(t, msg, "error=disk full")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	var rec map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[1]), &rec))
	assert.Equal(t, "ERROR", rec["level"])
	assert.EqualValues(t, 42, rec["chat_id"])
}

func TestNewLogger_LocalIsText(t *testing.T) {
	var buf bytes.Buffer
	log := NewLogger(&buf, config.LogConfig{Level: slog.LevelWarn, AppEnv: "local"}, nil)

	log.Info("hidden")
	log.Warn("shown")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "level=WARN")
}
