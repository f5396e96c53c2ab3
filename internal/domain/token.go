package domain

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/cespare/xxhash/v2"
)

const (
	tokenVersion   = "m1"
	tokenSeparator = "."
	tokenParts     = 6
	// Chat platforms cap custom control ids at 100 characters.
	maxTokenLength = 100
)

type Action byte

const (
	ActionSelect   Action = 's'
	ActionPaginate Action = 'p'
	ActionBack     Action = 'b'
	ActionClose    Action = 'x'
)

func (a Action) Valid() bool {
	switch a {
	case ActionSelect, ActionPaginate, ActionBack, ActionClose:
		return true
	default:
		return false
	}
}

func (a Action) String() string {
	switch a {
	case ActionSelect:
		return "select"
	case ActionPaginate:
		return "paginate"
	case ActionBack:
		return "back"
	case ActionClose:
		return "close"
	default:
		return fmt.Sprintf("action(%d)", a)
	}
}

// NavigationToken is what a rendered control carries back to the bot when pressed.
type NavigationToken struct {
	Action    Action
	SessionID SessionID
	// View is the frame that rendered the control.
	View  uint32
	Param int
}

// Encode renders the token as "m1.<action>.<session>.<view>.<param>.<checksum>".
func (t NavigationToken) Encode() string {
	payload := t.payload()
	return payload + tokenSeparator + checksum(payload)
}

func (t NavigationToken) payload() string {
	return strings.Join([]string{
		tokenVersion,
		string(t.Action),
		strconv.FormatUint(uint64(t.SessionID), 36),
		strconv.FormatUint(uint64(t.View), 36),
		strconv.Itoa(t.Param),
	}, tokenSeparator)
}

// DecodeToken parses and validates a token produced by Encode. Any deviation is ErrMalformedToken.
func DecodeToken(raw string) (NavigationToken, error) {
	if raw == "" || len(raw) > maxTokenLength {
		return NavigationToken{}, fmt.Errorf("%w: length %d", ErrMalformedToken, len(raw))
	}

	parts := strings.Split(raw, tokenSeparator)
	if len(parts) != tokenParts {
		return NavigationToken{}, fmt.Errorf("%w: expected %d parts, got %d", ErrMalformedToken, tokenParts, len(parts))
	}
	if parts[0] != tokenVersion {
		return NavigationToken{}, fmt.Errorf("%w: unsupported version %q", ErrMalformedToken, parts[0])
	}

	payload := strings.Join(parts[:tokenParts-1], tokenSeparator)
	if checksum(payload) != parts[tokenParts-1] {
		return NavigationToken{}, fmt.Errorf("%w: checksum mismatch", ErrMalformedToken)
	}

	if len(parts[1]) != 1 || !Action(parts[1][0]).Valid() {
		return NavigationToken{}, fmt.Errorf("%w: unknown action %q", ErrMalformedToken, parts[1])
	}

	sessionID, err := strconv.ParseUint(parts[2], 36, 64)
	if err != nil || sessionID == 0 {
		return NavigationToken{}, fmt.Errorf("%w: session id %q", ErrMalformedToken, parts[2])
	}

	view, err := strconv.ParseUint(parts[3], 36, 32)
	if err != nil || view == 0 {
		return NavigationToken{}, fmt.Errorf("%w: view id %q", ErrMalformedToken, parts[3])
	}

	param, err := strconv.Atoi(parts[4])
	if err != nil {
		return NavigationToken{}, fmt.Errorf("%w: param %q", ErrMalformedToken, parts[4])
	}

	return NavigationToken{
		Action:    Action(parts[1][0]),
		SessionID: SessionID(sessionID),
		View:      uint32(view),
		Param:     param,
	}, nil
}

func checksum(payload string) string {
	return strconv.FormatUint(xxhash.Sum64String(payload)&0xffffffff, 36)
}
