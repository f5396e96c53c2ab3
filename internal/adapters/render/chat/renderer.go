package chat

import (
	"errors"
	"fmt"

	"github.com/bnema/matchday-bot/internal/domain"
)

// ErrControlWithoutToken reports a live control that nothing could ever press.
var ErrControlWithoutToken = errors.New("control has no navigation token")

// Renderer draws views as terminal text.
type Renderer struct {
	styles styles
}

func NewRenderer() *Renderer {
	return &Renderer{styles: newStyles()}
}

// Render refuses views whose enabled controls carry no token; final views are drawn as they are.
func (r *Renderer) Render(view domain.View, opts RenderOptions) (string, error) {
	if !view.Final {
		for i, control := range view.Controls {
			if control.Token == "" && !control.Disabled {
				return "", fmt.Errorf("%w: control #%d %q", ErrControlWithoutToken, i+1, control.Label)
			}
		}
	}

	return renderView(view, opts, r.styles), nil
}

var defaultRenderer = NewRenderer()

// Render draws view with the default styles.
func Render(view domain.View, opts RenderOptions) (string, error) {
	return defaultRenderer.Render(view, opts)
}
