package rules

import (
	"context"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/erraggy/oascompat/loader"
	"github.com/erraggy/oascompat/oaserrors"
)

// Option configures CompatibilityStatus.
type Option func(*statusConfig) error

type statusConfig struct {
	rules       []Rule
	concurrency int
	logger      loader.Logger
}

// WithRules selects the rules to evaluate. By default every rule of
// Default() is evaluated.
func WithRules(rules ...Rule) Option {
	return func(cfg *statusConfig) error {
		for _, r := range rules {
			if r == nil {
				return &oaserrors.ConfigError{Option: "WithRules", Message: "rule is nil"}
			}
		}
		cfg.rules = rules
		return nil
	}
}

// WithConcurrency bounds how many rules are evaluated at once.
// The default is runtime.GOMAXPROCS(0).
func WithConcurrency(n int) Option {
	return func(cfg *statusConfig) error {
		if n < 1 {
			return &oaserrors.ConfigError{Option: "WithConcurrency", Value: n, Message: "must be at least 1"}
		}
		cfg.concurrency = n
		return nil
	}
}

// WithLogger sets the logger handed to every rule.
func WithLogger(l loader.Logger) Option {
	return func(cfg *statusConfig) error {
		cfg.logger = loader.OrNop(l)
		return nil
	}
}

// Result holds the messages reported by one rule.
type Result struct {
	Rule     Info
	Messages []ValidationMessage
}

// Status is the outcome of CompatibilityStatus: one Result per evaluated
// rule, sorted by rule code.
type Status struct {
	Results []Result
}

// Messages returns every message, grouped by rule in code order.
func (s *Status) Messages() []ValidationMessage {
	var out []ValidationMessage
	for _, r := range s.Results {
		out = append(out, r.Messages...)
	}
	return out
}

// ByLevel groups the messages by level. Levels without messages are absent.
func (s *Status) ByLevel() map[Level][]ValidationMessage {
	out := make(map[Level][]ValidationMessage)
	for _, m := range s.Messages() {
		out[m.Level] = append(out[m.Level], m)
	}
	return out
}

// HasErrors reports whether any message has LevelError.
func (s *Status) HasErrors() bool {
	for _, m := range s.Messages() {
		if m.Level == LevelError {
			return true
		}
	}
	return false
}

// Count returns the number of messages.
func (s *Status) Count() int {
	n := 0
	for _, r := range s.Results {
		n += len(r.Messages)
	}
	return n
}

// Failed reports whether the checked change should be rejected: on any
// error message, or on any message at all when strict is set.
func (s *Status) Failed(strict bool) bool {
	if strict {
		return s.Count() > 0
	}
	return s.HasErrors()
}

// CompatibilityStatus evaluates rules against a pair of documents and
// reports the backward incompatible changes going from oldSpec to newSpec.
//
// Rules run concurrently; each builds its own walkers, so the specs are only
// read. The first rule failure cancels the others and is returned as an
// oaserrors.RuleError.
func CompatibilityStatus(ctx context.Context, oldSpec, newSpec *loader.Spec, opts ...Option) (*Status, error) {
	if oldSpec == nil || newSpec == nil {
		return nil, &oaserrors.ConfigError{Option: "spec", Message: "both documents are required"}
	}
	cfg := &statusConfig{
		concurrency: runtime.GOMAXPROCS(0),
		logger:      loader.NopLogger{},
	}
	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}
	rules := cfg.rules
	if rules == nil {
		rules = Default().Rules()
	}
	rules = sortedByCode(rules)

	in := Input{Old: oldSpec, New: newSpec, Logger: cfg.logger}
	results := make([]Result, len(rules))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.concurrency)
	for i, rule := range rules {
		info := rule.Info()
		g.Go(func() error {
			start := time.Now()
			messages, err := rule.Validate(gctx, in)
			if err != nil {
				return &oaserrors.RuleError{Code: info.Code, Cause: err}
			}
			cfg.logger.Debug("rule evaluated", "code", info.Code, "messages", len(messages), "elapsed", time.Since(start))
			results[i] = Result{Rule: info, Messages: messages}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &Status{Results: results}, nil
}
