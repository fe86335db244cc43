package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/kiselevos/textquest_bot/internal/game"
	"github.com/kiselevos/textquest_bot/internal/snapshot"
)

var (
	ErrTooManySessions = errors.New("too many live sessions")
	ErrRegistryClosed  = errors.New("session registry closed")
)

// Outbound - отправка в чат. Ошибки только логируются.
type Outbound interface {
	SendTyping(ctx context.Context, id game.ChannelID) error
	SendText(ctx context.Context, id game.ChannelID, text string) error
}

type Config struct {
	MailboxSize  int
	IdleTimeout  time.Duration
	MaxSessions  int // 0 - без ограничения
	StoreTimeout time.Duration
}

func DefaultConfig() Config {
	return Config{
		MailboxSize:  5,
		IdleTimeout:  10 * time.Minute,
		MaxSessions:  10000,
		StoreTimeout: 5 * time.Second,
	}
}

// Registry - управляет живыми акторами чатов.
//
// Инвариант: если в sessions есть запись для чата, то его актор жив и держит
// самое свежее состояние. Если записи нет - актуален снапшот в store.
type Registry struct {
	mu       sync.RWMutex
	sessions map[game.ChannelID]*actor
	closed   bool
	quit     chan struct{}
	wg       sync.WaitGroup

	cfg     Config
	store   snapshot.Store
	out     Outbound
	engine  game.Engine
	codec   game.Codec
	log     *slog.Logger
	metrics *Metrics
}

type Option func(*Registry)

func WithEngine(e game.Engine) Option {
	return func(r *Registry) { r.engine = e }
}

func WithCodec(c game.Codec) Option {
	return func(r *Registry) { r.codec = c }
}

func WithLogger(l *slog.Logger) Option {
	return func(r *Registry) { r.log = l }
}

func WithMetrics(m *Metrics) Option {
	return func(r *Registry) { r.metrics = m }
}

// NewRegistry создаёт реестр. Движок и кодек по умолчанию - CounterEngine и CBORCodec.
func NewRegistry(cfg Config, store snapshot.Store, out Outbound, opts ...Option) *Registry {
	def := DefaultConfig()
	if cfg.MailboxSize <= 0 {
		cfg.MailboxSize = def.MailboxSize
	}
	if cfg.IdleTimeout <= 0 {
		cfg.IdleTimeout = def.IdleTimeout
	}
	if cfg.StoreTimeout <= 0 {
		cfg.StoreTimeout = def.StoreTimeout
	}

	r := &Registry{
		sessions: make(map[game.ChannelID]*actor),
		quit:     make(chan struct{}),

		cfg:    cfg,
		store:  store,
		out:    out,
		engine: game.CounterEngine{},
		codec:  game.CBORCodec{},
		log:    slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.metrics == nil {
		r.metrics = NewMetrics(prometheus.NewRegistry())
	}
	return r
}

// Dispatch доставляет текст актору чата, при необходимости поднимая его из снапшота.
// Блокируется, пока почтовый ящик актора полон.
func (r *Registry) Dispatch(ctx context.Context, id game.ChannelID, text string) error {
	for {
		a, err := r.lookupOrSpawn(ctx, id, text)
		if err != nil {
			return err
		}
		if a == nil {
			// новый актор, текст уже в ящике
			return nil
		}

		err = a.mailbox.Enqueue(text)
		if err == nil {
			return nil
		}
		if !errors.Is(err, ErrMailboxClosed) {
			return err
		}

		// Актор дренируется. Когда он отпустит реестр, записи уже не будет.
		r.metrics.dispatchRetries.Inc()
		r.log.Debug("mailbox closed, retrying dispatch", "chat_id", id)
	}
}

// lookupOrSpawn возвращает существующий актор, либо nil, если создал новый
// и уже положил text в его ящик.
func (r *Registry) lookupOrSpawn(ctx context.Context, id game.ChannelID, text string) (*actor, error) {
	r.mu.RLock()
	a, ok := r.sessions[id]
	r.mu.RUnlock()
	if ok {
		return a, nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	// Пока ждали write lock, актор мог создать кто-то другой
	if a, ok := r.sessions[id]; ok {
		return a, nil
	}
	if r.closed {
		return nil, ErrRegistryClosed
	}
	if r.cfg.MaxSessions > 0 && len(r.sessions) >= r.cfg.MaxSessions {
		return nil, ErrTooManySessions
	}

	state, err := r.loadState(ctx, id)
	if err != nil {
		return nil, err
	}

	a = newActor(r, id, state)
	// Свежий ящик пуст, запись не блокируется
	if err := a.mailbox.Enqueue(text); err != nil {
		return nil, fmt.Errorf("enqueue into new session %d: %w", id, err)
	}

	r.sessions[id] = a
	r.metrics.sessionsSpawned.Inc()
	r.metrics.sessionsActive.Inc()
	r.wg.Add(1)
	go a.run()

	r.log.Info("session started", "chat_id", id, "messages", state.MessageCount)
	return nil, nil
}

// loadState вызывается под write lock. Отсутствие снапшота и битый снапшот дают
// состояние по умолчанию, остальные ошибки хранилища отдаются наверх.
func (r *Registry) loadState(ctx context.Context, id game.ChannelID) (game.State, error) {
	ctx, cancel := context.WithTimeout(ctx, r.cfg.StoreTimeout)
	defer cancel()

	data, err := r.store.Load(ctx, id)
	if errors.Is(err, snapshot.ErrNotFound) {
		return game.State{}, nil
	}
	if err != nil {
		return game.State{}, fmt.Errorf("load session %d: %w", id, err)
	}

	state, err := r.codec.Decode(data)
	if err != nil {
		r.metrics.decodeErrors.Inc()
		r.log.Warn("couldn't decode snapshot, starting from default state", "chat_id", id, "error", err)
		return game.State{}, nil
	}
	return state, nil
}

// retire - последний шаг актора: под эксклюзивным доступом закрыть ящик,
// обработать всё, что в нём осталось, и удалить запись.
func (r *Registry) retire(a *actor) {
	r.mu.Lock()
	defer r.mu.Unlock()

	a.mailbox.Close()
	for {
		text, ok := a.mailbox.TryReceive()
		if !ok {
			break
		}
		a.handle(text)
	}

	if cur, ok := r.sessions[a.id]; ok && cur == a {
		delete(r.sessions, a.id)
	}
	r.metrics.sessionsActive.Dec()
	r.metrics.sessionsRetired.Inc()
	r.log.Info("session retired", "chat_id", a.id, "messages", a.state.MessageCount)
}

// Len - количество живых сессий
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

// Close останавливает приём новых сессий, просит все акторы
// завершиться и ждёт, пока они сохранятся и выйдут.
func (r *Registry) Close() {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		r.wg.Wait()
		return
	}
	r.closed = true
	close(r.quit)
	r.mu.Unlock()

	r.wg.Wait()
}
