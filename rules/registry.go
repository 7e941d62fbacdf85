package rules

import (
	"slices"
	"sync"

	"github.com/erraggy/oascompat/oaserrors"
)

// Registry holds rules by code. A Registry is not safe for concurrent
// Register calls; lookups may run concurrently once registration is done.
type Registry struct {
	rules map[string]Rule
	codes []string
}

// NewRegistry returns a Registry holding rules. It fails on the first rule
// that Register rejects.
func NewRegistry(rules ...Rule) (*Registry, error) {
	r := &Registry{rules: make(map[string]Rule, len(rules))}
	for _, rule := range rules {
		if err := r.Register(rule); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// MustRegistry is like NewRegistry but panics on error.
func MustRegistry(rules ...Rule) *Registry {
	r, err := NewRegistry(rules...)
	if err != nil {
		panic(err)
	}
	return r
}

// Register adds rule. Rules with incomplete metadata and codes already
// present are rejected with an oaserrors.ConfigError.
func (r *Registry) Register(rule Rule) error {
	if rule == nil {
		return &oaserrors.ConfigError{Option: "rule", Message: "rule is nil"}
	}
	info := rule.Info()
	if err := info.validate(); err != nil {
		return &oaserrors.ConfigError{Option: "rule", Value: info.Code, Message: "invalid rule metadata", Cause: err}
	}
	if _, ok := r.rules[info.Code]; ok {
		return &oaserrors.ConfigError{Option: "rule", Value: info.Code, Message: "rule is already registered"}
	}
	r.rules[info.Code] = rule
	i, _ := slices.BinarySearch(r.codes, info.Code)
	r.codes = slices.Insert(r.codes, i, info.Code)
	return nil
}

// Has reports whether a rule with code is registered.
func (r *Registry) Has(code string) bool {
	_, ok := r.rules[code]
	return ok
}

// Rule returns the rule registered under code.
func (r *Registry) Rule(code string) (Rule, bool) {
	rule, ok := r.rules[code]
	return rule, ok
}

// Codes returns the registered codes in sorted order.
func (r *Registry) Codes() []string {
	return slices.Clone(r.codes)
}

// Rules returns the registered rules sorted by code.
func (r *Registry) Rules() []Rule {
	out := make([]Rule, len(r.codes))
	for i, code := range r.codes {
		out[i] = r.rules[code]
	}
	return out
}

// Len returns the number of registered rules.
func (r *Registry) Len() int {
	return len(r.codes)
}

var defaultRegistry = sync.OnceValue(func() *Registry {
	return MustRegistry(Builtin()...)
})

// Default returns the registry of built-in rules. Callers must not
// Register into it.
func Default() *Registry {
	return defaultRegistry()
}
