package session

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/kiselevos/textquest_bot/internal/game"
)

var tracer = otel.Tracer("github.com/kiselevos/textquest_bot/internal/session")

// actor - единственный владелец состояния чата, пока он жив
type actor struct {
	id      game.ChannelID
	state   game.State
	mailbox *Mailbox
	reg     *Registry
}

func newActor(r *Registry, id game.ChannelID, state game.State) *actor {
	return &actor{
		id:      id,
		state:   state,
		mailbox: NewMailbox(r.cfg.MailboxSize),
		reg:     r,
	}
}

func (a *actor) run() {
	defer a.reg.wg.Done()

	idle := time.NewTimer(a.reg.cfg.IdleTimeout)
	defer idle.Stop()

	for {
		select {
		case text := <-a.mailbox.C():
			a.handle(text)

			if !idle.Stop() {
				select {
				case <-idle.C:
				default:
				}
			}
			idle.Reset(a.reg.cfg.IdleTimeout)

		case <-idle.C:
			a.reg.retire(a)
			return

		case <-a.reg.quit:
			a.reg.retire(a)
			return
		}
	}
}

// handle обрабатывает одно сообщение. Ошибки отправки и сохранения не
// прерывают сессию, паника движка гасится здесь же.
func (a *actor) handle(text string) {
	r := a.reg
	start := time.Now()

	ctx, span := tracer.Start(context.Background(), "session.handle",
		trace.WithAttributes(attribute.Int64("chat.id", int64(a.id))))
	defer span.End()

	defer func() {
		if p := recover(); p != nil {
			span.SetStatus(codes.Error, "panic")
			r.log.Error("panic while handling message", "chat_id", a.id, "panic", p)
		}
	}()

	// индикатор набора - best effort
	_ = r.out.SendTyping(ctx, a.id)

	next, reply := r.engine.Process(a.state, text)
	a.state = next
	r.metrics.messagesProcessed.Inc()

	if err := r.out.SendText(ctx, a.id, reply); err != nil {
		r.metrics.sendErrors.Inc()
		span.RecordError(err)
		r.log.Error("couldn't send reply", "chat_id", a.id, "error", err)
	}

	a.persist(ctx, span)
	r.metrics.messageDuration.Observe(time.Since(start).Seconds())
}

func (a *actor) persist(ctx context.Context, span trace.Span) {
	r := a.reg

	data, err := r.codec.Encode(a.state)
	if err != nil {
		r.metrics.persistErrors.Inc()
		span.RecordError(err)
		r.log.Error("couldn't serialize game state", "chat_id", a.id, "error", err)
		return
	}

	ctx, cancel := context.WithTimeout(ctx, r.cfg.StoreTimeout)
	defer cancel()

	if err := r.store.Save(ctx, a.id, data); err != nil {
		r.metrics.persistErrors.Inc()
		span.RecordError(err)
		r.log.Error("couldn't save snapshot", "chat_id", a.id, "error", err)
	}
}
