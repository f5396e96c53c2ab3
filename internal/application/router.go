package application

import (
	"context"
	"sync"
	"time"

	"github.com/bnema/matchday-bot/internal/domain"
	"github.com/bnema/matchday-bot/internal/ports"
	"go.uber.org/zap"
)

const inboxSize = 8

// CallbackHandler is what a collector drives. Bot implements it.
type CallbackHandler interface {
	HandleCallback(ctx context.Context, cb domain.Callback) (domain.View, bool)
	CloseSession(id domain.SessionID)
}

// ViewSink receives every view a collector emits for its session.
type ViewSink interface {
	Update(id domain.SessionID, view domain.View)
}

type ViewSinkFunc func(id domain.SessionID, view domain.View)

func (f ViewSinkFunc) Update(id domain.SessionID, view domain.View) { f(id, view) }

// Router runs one collector per open session. A collector serialises the callbacks of its session
// and stops at the session's hard cap or after a close, leaving its last view disabled.
type Router struct {
	handler CallbackHandler
	sink    ViewSink
	clock   ports.Clock
	logger  *zap.Logger

	mu         sync.Mutex
	collectors map[domain.SessionID]*collector
	wg         sync.WaitGroup
}

type collector struct {
	id      domain.SessionID
	inbox   chan domain.Callback
	last    domain.View
	expires time.Time
}

func NewRouter(handler CallbackHandler, sink ViewSink, clock ports.Clock, logger *zap.Logger) *Router {
	if clock == nil {
		clock = ports.SystemClock{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Router{
		handler:    handler,
		sink:       sink,
		clock:      clock,
		logger:     logger,
		collectors: map[domain.SessionID]*collector{},
	}
}

// Open starts listening for the session behind reply. Replies without a session are ignored.
func (r *Router) Open(ctx context.Context, reply Reply) {
	if reply.SessionID == 0 {
		return
	}

	c := &collector{
		id:      reply.SessionID,
		inbox:   make(chan domain.Callback, inboxSize),
		last:    reply.View,
		expires: reply.ExpiresAt,
	}

	r.mu.Lock()
	r.collectors[c.id] = c
	r.mu.Unlock()

	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		r.run(ctx, c)
	}()
}

// Dispatch routes cb to the collector of its session. Callbacks for unknown or finished sessions,
// malformed tokens, and callbacks arriving while the inbox is full are dropped.
func (r *Router) Dispatch(cb domain.Callback) bool {
	token, err := domain.DecodeToken(cb.Token)
	if err != nil {
		r.logger.Debug("callback dropped", zap.Error(err))
		return false
	}

	r.mu.Lock()
	c, ok := r.collectors[token.SessionID]
	r.mu.Unlock()
	if !ok {
		r.logger.Debug("callback for unknown session dropped", zap.Uint64("session_id", uint64(token.SessionID)))
		return false
	}

	select {
	case c.inbox <- cb:
		return true
	default:
		r.logger.Debug("collector busy, callback dropped", zap.Uint64("session_id", uint64(token.SessionID)))
		return false
	}
}

// Active returns the number of running collectors.
func (r *Router) Active() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return len(r.collectors)
}

// Wait blocks until every collector stopped. Cancel the context given to Open first.
func (r *Router) Wait() {
	r.wg.Wait()
}

func (r *Router) run(ctx context.Context, c *collector) {
	defer r.remove(c.id)

	timer := time.NewTimer(max(c.expires.Sub(r.clock.Now()), 0))
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			r.finish(c)
			return
		case <-timer.C:
			r.logger.Debug("session timed out", zap.Uint64("session_id", uint64(c.id)))
			r.finish(c)
			return
		case cb := <-c.inbox:
			view, ok := r.handler.HandleCallback(ctx, cb)
			if !ok {
				continue
			}

			c.last = view
			r.sink.Update(c.id, view)
			if view.Final {
				return
			}
		}
	}
}

// finish disables the visible controls and releases the session.
func (r *Router) finish(c *collector) {
	r.handler.CloseSession(c.id)
	r.sink.Update(c.id, c.last.Disabled())
}

func (r *Router) remove(id domain.SessionID) {
	r.mu.Lock()
	delete(r.collectors, id)
	r.mu.Unlock()
}
