package domain

import (
	"fmt"
	"strings"
)

// Provider names an upstream API that authenticates with a token.
type Provider string

const ProviderFootball Provider = "football"

const maskedPrefix = 4

// ParseProvider normalises name. A provider name starts with a letter and holds lower-case letters,
// digits and dashes, so it is safe as a file name and as part of an environment variable.
func ParseProvider(name string) (Provider, error) {
	normalized := strings.ToLower(strings.TrimSpace(name))
	if normalized == "" {
		return "", fmt.Errorf("%w: provider is required", ErrInvalidArgument)
	}

	for i, r := range normalized {
		switch {
		case r >= 'a' && r <= 'z':
		case i > 0 && (r >= '0' && r <= '9' || r == '-'):
		default:
			return "", fmt.Errorf("%w: provider %q", ErrInvalidArgument, name)
		}
	}

	return Provider(normalized), nil
}

// Validate reports whether p is already in the form ParseProvider produces.
func (p Provider) Validate() error {
	parsed, err := ParseProvider(string(p))
	if err != nil {
		return err
	}
	if parsed != p {
		return fmt.Errorf("%w: provider %q is not normalised", ErrInvalidArgument, string(p))
	}
	return nil
}

func (p Provider) String() string {
	return string(p)
}

// MaskToken keeps the first characters of token and hides the rest.
func MaskToken(token string) string {
	if len(token) <= maskedPrefix {
		return strings.Repeat("*", maskedPrefix)
	}
	return token[:maskedPrefix] + strings.Repeat("*", maskedPrefix)
}
