package walker

import (
	"errors"
	"fmt"
	"slices"

	"github.com/erraggy/oascompat/loader"
	"github.com/erraggy/oascompat/tree"
)

// ErrNotImplemented is returned by checks a Checker does not provide.
// It is distinct from a check that ran and found nothing.
var ErrNotImplemented = errors.New("walker: check not implemented")

// Checker receives every visited node pair and returns its findings.
//
// Exactly one method is called per pair, chosen by the joint shape of the
// two nodes: DictCheck when both are maps, ListCheck when both are lists,
// and ValueCheck otherwise, including when either side is absent.
type Checker[T any] interface {
	DictCheck(path tree.Path, left, right tree.Node) ([]T, error)
	ListCheck(path tree.Path, left, right tree.Node) ([]T, error)
	ValueCheck(path tree.Path, left, right tree.Node) ([]T, error)
}

// PathFilter may be implemented by a Checker to prune the walk. A pair at a
// path for which ShouldWalk is false contributes nothing, and neither do its
// descendants.
type PathFilter interface {
	ShouldWalk(path tree.Path) bool
}

// Unimplemented can be embedded in a Checker to supply the checks it does
// not override. Each returns an error wrapping ErrNotImplemented.
type Unimplemented[T any] struct{}

// DictCheck implements Checker.
func (Unimplemented[T]) DictCheck(path tree.Path, _, _ tree.Node) ([]T, error) {
	return nil, fmt.Errorf("%w: DictCheck at %s", ErrNotImplemented, path)
}

// ListCheck implements Checker.
func (Unimplemented[T]) ListCheck(path tree.Path, _, _ tree.Node) ([]T, error) {
	return nil, fmt.Errorf("%w: ListCheck at %s", ErrNotImplemented, path)
}

// ValueCheck implements Checker.
func (Unimplemented[T]) ValueCheck(path tree.Path, _, _ tree.Node) ([]T, error) {
	return nil, fmt.Errorf("%w: ValueCheck at %s", ErrNotImplemented, path)
}

// NoChecks can be embedded in a Checker whose unused checks find nothing.
type NoChecks[T any] struct{}

// DictCheck implements Checker.
func (NoChecks[T]) DictCheck(tree.Path, tree.Node, tree.Node) ([]T, error) { return nil, nil }

// ListCheck implements Checker.
func (NoChecks[T]) ListCheck(tree.Path, tree.Node, tree.Node) ([]T, error) { return nil, nil }

// ValueCheck implements Checker.
func (NoChecks[T]) ValueCheck(tree.Path, tree.Node, tree.Node) ([]T, error) { return nil, nil }

type pair struct {
	left, right tree.NodeID
}

// Walker traverses two trees in lock-step and collects the findings of its
// Checker in pre-order. A Walker is not safe for concurrent use.
type Walker[T any] struct {
	left, right tree.Node
	checker     Checker[T]
	filters     []func(tree.Path) bool
	log         loader.Logger
	reindex     bool

	// entered records, per node pair, the paths it was entered at.
	entered   map[pair][]tree.Path
	warnedFix bool

	done   bool
	result []T
	err    error
}

// New returns a Walker over left and right. It panics if checker is nil.
func New[T any](left, right tree.Node, checker Checker[T], opts ...Option) *Walker[T] {
	if checker == nil {
		panic("walker: nil checker")
	}
	cfg := applyOptions(opts)
	w := &Walker[T]{
		left:    left,
		right:   right,
		checker: checker,
		log:     cfg.logger,
	}
	if f, ok := checker.(PathFilter); ok {
		w.filters = append(w.filters, f.ShouldWalk)
	}
	if cfg.filter != nil {
		w.filters = append(w.filters, cfg.filter)
	}
	return w
}

// Walk runs the traversal once and returns its findings. Later calls return
// the same result without walking again.
func (w *Walker[T]) Walk() ([]T, error) {
	if !w.done {
		w.entered = make(map[pair][]tree.Path)
		w.result, w.err = w.walk(tree.Path{}, w.left, w.right)
		w.entered = nil
		w.done = true
	}
	return w.result, w.err
}

func (w *Walker[T]) shouldWalk(path tree.Path) bool {
	for _, f := range w.filters {
		if !f(path) {
			return false
		}
	}
	return true
}

// recursive reports whether the pair was already entered at an ancestor of
// path, and records path otherwise.
func (w *Walker[T]) recursive(path tree.Path, left, right tree.Node) bool {
	key := pair{left.ID(), right.ID()}
	for _, known := range w.entered[key] {
		if path.HasPrefix(known) {
			return true
		}
	}
	w.entered[key] = append(w.entered[key], path)
	return false
}

func (w *Walker[T]) walk(path tree.Path, left, right tree.Node) ([]T, error) {
	if !w.shouldWalk(path) || w.recursive(path, left, right) {
		return nil, nil
	}
	if w.reindex && isParameterList(path) {
		if found, ok, err := w.walkParameters(path, left, right); ok {
			return found, err
		}
	}

	switch {
	case left.IsMap() && right.IsMap():
		found, err := w.checker.DictCheck(path, left, right)
		if err != nil {
			return nil, err
		}
		for _, k := range unionKeys(left, right) {
			sub, err := w.walk(path.ChildKey(k), left.Get(k), right.Get(k))
			if err != nil {
				return nil, err
			}
			found = append(found, sub...)
		}
		return found, nil

	case left.IsList() && right.IsList():
		found, err := w.checker.ListCheck(path, left, right)
		if err != nil {
			return nil, err
		}
		for i := range max(left.Len(), right.Len()) {
			sub, err := w.walk(path.ChildIndex(i), left.Index(i), right.Index(i))
			if err != nil {
				return nil, err
			}
			found = append(found, sub...)
		}
		return found, nil

	default:
		return w.checker.ValueCheck(path, left, right)
	}
}

func unionKeys(left, right tree.Node) []string {
	keys := append(left.Keys(), right.Keys()...)
	slices.Sort(keys)
	return slices.Compact(keys)
}
