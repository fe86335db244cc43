package session

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMailbox_FIFO(t *testing.T) {
	m := NewMailbox(3)
	require.NoError(t, m.Enqueue("a"))
	require.NoError(t, m.Enqueue("b"))
	require.NoError(t, m.Enqueue("c"))
	assert.Equal(t, 3, m.Len())

	for _, want := range []string{"a", "b", "c"} {
		got, ok := m.TryReceive()
		require.True(t, ok)
		assert.Equal(t, want, got)
	}
	_, ok := m.TryReceive()
	assert.False(t, ok)
}

func TestMailbox_MinimumCapacity(t *testing.T) {
	m := NewMailbox(0)
	require.NoError(t, m.Enqueue("a"))
	assert.Equal(t, 1, cap(m.ch))
}

func TestMailbox_EnqueueAfterClose(t *testing.T) {
	m := NewMailbox(2)
	require.NoError(t, m.Enqueue("kept"))
	m.Close()

	assert.ErrorIs(t, m.Enqueue("late"), ErrMailboxClosed)

	got, ok := m.TryReceive()
	require.True(t, ok)
	assert.Equal(t, "kept", got)

	// повторное закрытие не паникует
	m.Close()
}

func TestMailbox_CloseWakesBlockedProducers(t *testing.T) {
	m := NewMailbox(1)
	require.NoError(t, m.Enqueue("fill"))

	const N = 4
	errs := make(chan error, N)
	var wg sync.WaitGroup
	for i := 0; i < N; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs <- m.Enqueue("blocked")
		}()
	}

	time.Sleep(20 * time.Millisecond)
	m.Close()
	wg.Wait()
	close(errs)

	for err := range errs {
		assert.ErrorIs(t, err, ErrMailboxClosed)
	}
	assert.Equal(t, 1, m.Len())
}
