package ports

import (
	"time"

	"github.com/bnema/matchday-bot/internal/domain"
)

type SessionStore interface {
	Create(owner domain.UserID, kind domain.SessionKind, title string, items []domain.Item, display domain.Display) domain.Session
	Get(id domain.SessionID) (domain.Session, error)
	Save(session domain.Session) error
	Delete(id domain.SessionID)
}

// CooldownGate admits or rejects a command class for a subject.
type CooldownGate interface {
	TryAdmit(class, subject string, window time.Duration, now time.Time) domain.Admission
}
