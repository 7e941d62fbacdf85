// Package walker traverses two document trees in lock-step.
//
// A [Walker] visits every pair of nodes sharing a path in the left and right
// tree and hands it to a [Checker]. Maps are aligned by key (the union of
// both key sets, in sorted order) and lists by index; a node missing on one
// side is passed as the absent [tree.Node]. Which check runs depends on the
// joint shape of the pair:
//
//   - both maps: DictCheck, then the children
//   - both lists: ListCheck, then the children
//   - anything else: ValueCheck, without descending
//
// Findings are returned in pre-order. A checker that also implements
// [PathFilter] prunes subtrees; [WithPathFilter] adds another filter.
//
// Flattened documents contain cycles wherever a schema refers to itself.
// A node pair entered again below the path where it was first entered
// contributes nothing, so every walk terminates. The same pair met again at
// an unrelated path is walked normally.
//
// [NewSchema] walks two loaded Swagger documents and matches parameter
// lists by parameter name instead of position, so reordering parameters is
// not a change. Findings implementing [PathFixer] are re-addressed to the
// parameter's index in the new document.
//
//	type typeChanges struct {
//	    walker.NoChecks[tree.Path]
//	}
//
//	func (typeChanges) DictCheck(path tree.Path, l, r tree.Node) ([]tree.Path, error) {
//	    lt, _ := l.Get("type").StringValue()
//	    rt, _ := r.Get("type").StringValue()
//	    if lt != rt {
//	        return []tree.Path{path}, nil
//	    }
//	    return nil, nil
//	}
//
//	paths, err := walker.NewSchema(oldSpec, newSpec, typeChanges{}).Walk()
package walker
