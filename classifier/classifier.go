package classifier

import (
	"github.com/erraggy/oascompat/internal/schemautil"
	"github.com/erraggy/oascompat/loader"
	"github.com/erraggy/oascompat/tree"
	"github.com/erraggy/oascompat/walker"
)

// Classifier collects the paths of one kind of object found in either of
// two documents.
type Classifier struct {
	w *walker.Walker[tree.Path]
}

// Walk returns the classified paths. The result is computed once.
func (c *Classifier) Walk() (tree.PathSet, error) {
	paths, err := c.w.Walk()
	if err != nil {
		return nil, err
	}
	return tree.NewPathSet(paths...), nil
}

// NewRequestParameters classifies Parameter Objects declared under paths,
// either for a whole path item or for one operation. Paths of parameters
// the new document declares use its parameter indexes.
func NewRequestParameters(left, right *loader.Spec, opts ...walker.Option) *Classifier {
	return &Classifier{w: walker.NewSchema(left, right, requestParameters{}, opts...)}
}

type requestParameters struct {
	walker.NoChecks[tree.Path]
}

// ShouldWalk limits the walk to
//
//	paths/{path}/parameters/{param}/schema/...
//	paths/{path}/{verb}/parameters/{param}/schema/...
func (requestParameters) ShouldWalk(path tree.Path) bool {
	if len(path) == 0 {
		return true
	}
	if !keyIs(path, 0, "paths") {
		return false
	}
	if len(path) >= 4 && !keyIs(path, 2, "parameters") && !keyIs(path, 3, "parameters") {
		return false
	}
	if len(path) >= 6 && !keyIs(path, 4, "schema") && !keyIs(path, 5, "schema") {
		return false
	}
	return true
}

func (requestParameters) DictCheck(path tree.Path, left, right tree.Node) ([]tree.Path, error) {
	if schemautil.IsParameter(left) || schemautil.IsParameter(right) {
		return []tree.Path{path}, nil
	}
	return nil, nil
}

// NewResponses classifies Response Objects declared by operations.
func NewResponses(left, right *loader.Spec, opts ...walker.Option) *Classifier {
	return &Classifier{w: walker.NewSchema(left, right, responses{}, opts...)}
}

type responses struct {
	walker.NoChecks[tree.Path]
}

// ShouldWalk limits the walk to paths/{path}/{verb}/responses/...
func (responses) ShouldWalk(path tree.Path) bool {
	if len(path) == 0 {
		return true
	}
	if !keyIs(path, 0, "paths") {
		return false
	}
	if len(path) >= 4 {
		return keyIs(path, 3, "responses")
	}
	return true
}

func (responses) DictCheck(path tree.Path, left, right tree.Node) ([]tree.Path, error) {
	if schemautil.IsResponse(left) || schemautil.IsResponse(right) {
		return []tree.Path{path}, nil
	}
	return nil, nil
}

func keyIs(path tree.Path, i int, key string) bool {
	k, ok := path.KeyAt(i)
	return ok && k == key
}
