// Package render declares the renderer seam shared by every output format
// (HTML pages, terminal prompts) plus the registry used to discover them.
package render

import (
	"context"

	"github.com/goliatone/go-surveyform/pkg/engine"
)

// Renderer converts a rendered form into a byte representation (HTML for the
// default renderer).
type Renderer interface {
	Name() string
	ContentType() string
	Render(ctx context.Context, form engine.RenderedForm, options Options) ([]byte, error)
}
