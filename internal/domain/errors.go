package domain

import (
	"errors"
	"fmt"
	"math"
	"time"
)

var (
	ErrUpstream        = errors.New("upstream temporarily unavailable")
	ErrForbidden       = errors.New("session belongs to another user")
	ErrSessionExpired  = errors.New("session expired")
	ErrIndexOutOfRange = errors.New("index out of range")
	ErrMalformedToken  = errors.New("malformed navigation token")
	ErrStaleControl    = errors.New("control already consumed")
	ErrCooldownActive  = errors.New("cooldown active")
	ErrUnknownCommand  = errors.New("unknown command")
	ErrInvalidArgument = errors.New("invalid argument")
	ErrUnknownFeature  = errors.New("unknown feature")
)

// CooldownError reports how long the caller has to wait before the command is admitted again.
type CooldownError struct {
	Class      string
	RetryAfter time.Duration
}

func (e *CooldownError) Error() string {
	return fmt.Sprintf("%s: %s, retry in %ds", ErrCooldownActive, e.Class, RoundUpSeconds(e.RetryAfter))
}

func (e *CooldownError) Unwrap() error {
	return ErrCooldownActive
}

// Admission is the outcome of a cooldown check.
type Admission struct {
	Admitted   bool
	RetryAfter time.Duration
}

// RetryAfterSeconds is the remaining wait rounded up to whole seconds for display.
func (a Admission) RetryAfterSeconds() int {
	return RoundUpSeconds(a.RetryAfter)
}

// RoundUpSeconds converts a wait into whole seconds for display, never rounding a positive wait down to zero.
func RoundUpSeconds(d time.Duration) int {
	if d <= 0 {
		return 0
	}

	return int(math.Ceil(d.Seconds()))
}

// IsNavigationRejection reports whether err is one of the silent navigation failures that must keep
// the current screen untouched.
func IsNavigationRejection(err error) bool {
	return errors.Is(err, ErrForbidden) ||
		errors.Is(err, ErrSessionExpired) ||
		errors.Is(err, ErrIndexOutOfRange) ||
		errors.Is(err, ErrMalformedToken) ||
		errors.Is(err, ErrStaleControl)
}
