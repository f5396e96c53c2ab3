package application

import (
	"context"
	"fmt"

	"github.com/bnema/matchday-bot/internal/domain"
	"github.com/bnema/matchday-bot/internal/ports"
	"go.uber.org/zap"
)

// Metrics receives command and navigation outcomes.
type Metrics interface {
	Command(command, result string)
	Transition(action, result string)
}

type NoopMetrics struct{}

func (NoopMetrics) Command(string, string)    {}
func (NoopMetrics) Transition(string, string) {}

const detailUnavailable = "Details are unavailable right now, try again later."

// Navigator drives sessions through the navigation state machine. Every callback is applied to a
// copy of the stored session and persisted only once the new view rendered.
type Navigator struct {
	sessions ports.SessionStore
	details  ports.DetailLoader
	clock    ports.Clock
	logger   *zap.Logger
	metrics  Metrics
}

func NewNavigator(sessions ports.SessionStore, details ports.DetailLoader, clock ports.Clock, logger *zap.Logger, metrics Metrics) *Navigator {
	if clock == nil {
		clock = ports.SystemClock{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if metrics == nil {
		metrics = NoopMetrics{}
	}

	return &Navigator{
		sessions: sessions,
		details:  details,
		clock:    clock,
		logger:   logger,
		metrics:  metrics,
	}
}

// Start opens a session on page 1 of listing and renders it.
func (n *Navigator) Start(owner domain.UserID, listing domain.Listing, display domain.Display) (domain.View, domain.Session) {
	created := n.sessions.Create(owner, listing.Kind, listing.Title, listing.Items, display)
	n.logger.Debug("session started",
		zap.Uint64("session_id", uint64(created.ID)),
		zap.String("kind", string(created.Kind)),
		zap.Int("items", len(created.Items)),
	)

	return RenderSession(created), created
}

// Handle applies the control behind cb. Navigation rejections (foreign, expired, stale, malformed,
// out of range) are returned as errors with nothing changed. A failed detail load returns the
// unchanged view annotated with a notice together with the domain.ErrUpstream error.
func (n *Navigator) Handle(ctx context.Context, cb domain.Callback) (domain.View, domain.Session, error) {
	token, err := domain.DecodeToken(cb.Token)
	if err != nil {
		n.metrics.Transition("unknown", "rejected")
		return domain.View{}, domain.Session{}, err
	}

	action := token.Action.String()
	current, err := n.sessions.Get(token.SessionID)
	if err != nil {
		n.metrics.Transition(action, "rejected")
		return domain.View{}, domain.Session{}, err
	}

	step := domain.StepFromToken(current, token, cb.InvokerID, n.clock.Now())
	if err := domain.Check(current, step); err != nil {
		n.metrics.Transition(action, "rejected")
		return domain.View{}, current, err
	}

	if domain.NeedsDetail(current, step) {
		item, err := domain.SelectedItem(current, step.Param)
		if err != nil {
			n.metrics.Transition(action, "rejected")
			return domain.View{}, current, err
		}

		detail, err := n.details.LoadDetail(ctx, current.Kind, item)
		if err != nil {
			n.metrics.Transition(action, "failed")
			if ctxErr := ctx.Err(); ctxErr != nil {
				return domain.View{}, current, ctxErr
			}

			view := RenderSession(current)
			view.Description = detailUnavailable
			return view, current, fmt.Errorf("load detail for %q: %w", item.Key, err)
		}
		step.Detail = &detail
	}

	next, err := domain.Transition(current, step)
	if err != nil {
		n.metrics.Transition(action, "rejected")
		return domain.View{}, current, err
	}

	view := RenderSession(next)

	if next.Closed {
		n.sessions.Delete(next.ID)
	} else if err := n.sessions.Save(next); err != nil {
		n.metrics.Transition(action, "rejected")
		return domain.View{}, current, err
	}

	n.metrics.Transition(action, "ok")
	n.logger.Debug("session transition",
		zap.Uint64("session_id", uint64(next.ID)),
		zap.String("action", action),
		zap.String("view", next.Current().View.String()),
		zap.Int("page", next.Current().Page),
	)

	return view, next, nil
}

// Expire drops a session whose listener stopped. Later callbacks for it are ErrSessionExpired.
func (n *Navigator) Expire(id domain.SessionID) {
	n.sessions.Delete(id)
}
