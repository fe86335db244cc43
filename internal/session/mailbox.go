package session

import (
	"errors"
	"sync"
)

var ErrMailboxClosed = errors.New("mailbox closed")

// Mailbox - ограниченная FIFO-очередь входящих сообщений одного актора.
// Писателей много, читатель один. Полная очередь блокирует писателя.
// Закрывает очередь только читатель, запись после Close возвращает ErrMailboxClosed.
type Mailbox struct {
	ch   chan string
	done chan struct{}

	mu     sync.RWMutex
	closed bool
	once   sync.Once
}

func NewMailbox(size int) *Mailbox {
	if size < 1 {
		size = 1
	}
	return &Mailbox{
		ch:   make(chan string, size),
		done: make(chan struct{}),
	}
}

// Enqueue ждет свободного места или закрытия очереди.
func (m *Mailbox) Enqueue(text string) error {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.closed {
		return ErrMailboxClosed
	}
	select {
	case m.ch <- text:
		return nil
	case <-m.done:
		return ErrMailboxClosed
	}
}

// Close будит заблокированных писателей и ждет, пока они отпустят очередь.
// После возврата буфер больше не пополняется.
func (m *Mailbox) Close() {
	m.once.Do(func() { close(m.done) })

	m.mu.Lock()
	m.closed = true
	m.mu.Unlock()
}

func (m *Mailbox) C() <-chan string {
	return m.ch
}

// TryReceive - неблокирующее чтение, для дренажа после Close
func (m *Mailbox) TryReceive() (string, bool) {
	select {
	case text := <-m.ch:
		return text, true
	default:
		return "", false
	}
}

func (m *Mailbox) Len() int {
	return len(m.ch)
}
