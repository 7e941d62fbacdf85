package walker

import (
	"fmt"

	"github.com/erraggy/oascompat/loader"
	"github.com/erraggy/oascompat/tree"
)

// Option configures a Walker.
type Option func(*config)

type config struct {
	filter func(tree.Path) bool
	logger loader.Logger
}

func applyOptions(opts []Option) *config {
	cfg := &config{logger: loader.NopLogger{}}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// WithPathFilter adds a filter consulted before each pair is visited, in
// addition to the Checker's own ShouldWalk when it has one.
func WithPathFilter(fn func(tree.Path) bool) Option {
	return func(cfg *config) {
		cfg.filter = fn
	}
}

// WithLogger sets the logger used for recoverable problems.
func WithLogger(l loader.Logger) Option {
	return func(cfg *config) {
		cfg.logger = loader.OrNop(l)
	}
}

func typeName(v any) string {
	return fmt.Sprintf("%T", v)
}
