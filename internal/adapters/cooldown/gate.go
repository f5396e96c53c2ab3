package cooldown

import (
	"context"
	"sync"
	"time"

	"github.com/bnema/matchday-bot/internal/domain"
	"github.com/bnema/matchday-bot/internal/ports"
)

type Metrics interface {
	Rejected(class string)
}

type NoopMetrics struct{}

func (NoopMetrics) Rejected(string) {}

type key struct {
	class   string
	subject string
}

// Gate admits at most one invocation per subject and command class inside a window. Each class has
// its own subject space.
type Gate struct {
	mu      sync.Mutex
	expiry  map[key]time.Time
	metrics Metrics
}

var _ ports.CooldownGate = (*Gate)(nil)

func NewGate(metrics Metrics) *Gate {
	if metrics == nil {
		metrics = NoopMetrics{}
	}

	return &Gate{expiry: map[key]time.Time{}, metrics: metrics}
}

// TryAdmit admits subject when it has no record for class or the record expired at or before now.
// Admission immediately records now+window.
func (g *Gate) TryAdmit(class, subject string, window time.Duration, now time.Time) domain.Admission {
	k := key{class: class, subject: subject}

	g.mu.Lock()
	defer g.mu.Unlock()

	if expiresAt, ok := g.expiry[k]; ok && now.Before(expiresAt) {
		g.metrics.Rejected(class)
		return domain.Admission{RetryAfter: expiresAt.Sub(now)}
	}

	g.expiry[k] = now.Add(window)
	return domain.Admission{Admitted: true}
}

// Sweep drops records that can no longer reject anything.
func (g *Gate) Sweep(now time.Time) int {
	g.mu.Lock()
	defer g.mu.Unlock()

	removed := 0
	for k, expiresAt := range g.expiry {
		if !now.Before(expiresAt) {
			delete(g.expiry, k)
			removed++
		}
	}

	return removed
}

func (g *Gate) Len() int {
	g.mu.Lock()
	defer g.mu.Unlock()

	return len(g.expiry)
}

func (g *Gate) Run(ctx context.Context, interval time.Duration, now func() time.Time) {
	if interval <= 0 {
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			g.Sweep(now())
		}
	}
}
