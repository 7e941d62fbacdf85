package walker

import (
	"slices"

	"github.com/erraggy/oascompat/loader"
	"github.com/erraggy/oascompat/tree"
)

// PathFixer is implemented by findings whose path can be re-addressed after
// parameter reindexing. FixParameterPath returns a copy of the finding with
// the named prefix of its path replaced by original.
type PathFixer[T any] interface {
	FixParameterPath(named, original tree.Path) T
}

// NewSchema returns a Walker over the roots of two loaded documents.
//
// Parameter lists (paths/{path}/parameters and paths/{path}/{verb}/parameters)
// are matched by parameter name rather than position: each parameter is
// visited at path/<name>, and findings from that subtree are re-addressed to
// path/<index>, the parameter's position in the right document. Findings of
// a parameter only the left document declares keep the name-based path.
//
// It panics if either spec or the checker is nil.
func NewSchema[T any](left, right *loader.Spec, checker Checker[T], opts ...Option) *Walker[T] {
	if left == nil || right == nil {
		panic("walker: nil spec")
	}
	w := New(left.Root(), right.Root(), checker, opts...)
	w.reindex = true
	return w
}

func isParameterList(path tree.Path) bool {
	if len(path) != 3 && len(path) != 4 {
		return false
	}
	if k, _ := path.KeyAt(0); k != "paths" {
		return false
	}
	if _, ok := path.KeyAt(1); !ok {
		return false
	}
	k, _ := path.KeyAt(len(path) - 1)
	return k == "parameters"
}

// walkParameters visits a parameter list by name. ok is false when the pair
// must be walked positionally instead.
func (w *Walker[T]) walkParameters(path tree.Path, left, right tree.Node) (found []T, ok bool, err error) {
	leftIndex, lok := parameterIndex(left)
	rightIndex, rok := parameterIndex(right)
	if !lok || !rok || (!left.Exists() && !right.Exists()) {
		return nil, false, nil
	}

	names := make([]string, 0, len(leftIndex)+len(rightIndex))
	for name := range leftIndex {
		names = append(names, name)
	}
	for name := range rightIndex {
		names = append(names, name)
	}
	slices.Sort(names)
	names = slices.Compact(names)

	for _, name := range names {
		var l, r tree.Node
		if i, ok := leftIndex[name]; ok {
			l = left.Index(i)
		}
		if i, ok := rightIndex[name]; ok {
			r = right.Index(i)
		}
		named := path.ChildKey(name)
		sub, err := w.walk(named, l, r)
		if err != nil {
			return nil, true, err
		}
		if i, ok := rightIndex[name]; ok {
			w.fixPaths(sub, named, path.ChildIndex(i))
		}
		found = append(found, sub...)
	}
	return found, true, nil
}

func (w *Walker[T]) fixPaths(found []T, named, original tree.Path) {
	for i, f := range found {
		fixer, ok := any(f).(PathFixer[T])
		if !ok {
			if !w.warnedFix {
				w.warnedFix = true
				w.log.Warn("finding cannot be re-addressed after parameter reindexing; its path keeps the parameter name",
					"type", typeName(f), "path", named.String())
			}
			continue
		}
		found[i] = fixer.FixParameterPath(named, original)
	}
}

// parameterIndex maps parameter names to their first position. ok is false
// when node is neither absent nor a list of named objects.
func parameterIndex(node tree.Node) (map[string]int, bool) {
	index := make(map[string]int)
	if !node.Exists() {
		return index, true
	}
	if !node.IsList() {
		return nil, false
	}
	for i, item := range node.Elements() {
		name, ok := item.Get("name").StringValue()
		if !ok {
			return nil, false
		}
		if _, dup := index[name]; !dup {
			index[name] = i
		}
	}
	return index, true
}
