package tree

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPathString(t *testing.T) {
	tests := []struct {
		name string
		path Path
		want string
	}{
		{"root", Path{}, "#/"},
		{"keys and index", NewPath("paths", "/pets", "get", "parameters", 0), "#/paths//pets/get/parameters/0"},
		{"single key", NewPath("definitions"), "#/definitions"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.path.String())
		})
	}
}

func TestPathMapKeyDistinguishesKeyFromIndex(t *testing.T) {
	a := NewPath("responses", "0")
	b := NewPath("responses", 0)
	assert.Equal(t, a.String(), b.String())
	assert.NotEqual(t, a.MapKey(), b.MapKey())
	assert.False(t, a.Equal(b))
}

func TestPathChildDoesNotAlias(t *testing.T) {
	base := make(Path, 0, 8)
	base = append(base, Key("a"))
	left := base.ChildKey("b")
	right := base.ChildKey("c")
	assert.Equal(t, "#/a/b", left.String())
	assert.Equal(t, "#/a/c", right.String())
	assert.Equal(t, "#/a", base.String())
}

func TestPathHasPrefix(t *testing.T) {
	tests := []struct {
		name   string
		path   Path
		prefix Path
		want   bool
	}{
		{"empty prefix", NewPath("top", "inner"), Path{}, true},
		{"descendant", NewPath("top", "inner", "x"), NewPath("top", "inner"), true},
		{"self", NewPath("top", "inner"), NewPath("top", "inner"), true},
		{"sibling", NewPath("top", "different"), NewPath("top", "inner"), false},
		{"longer prefix", NewPath("top"), NewPath("top", "inner"), false},
		{"index vs key", NewPath("list", 0), NewPath("list", "0"), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.path.HasPrefix(tt.prefix))
		})
	}
}

func TestPathFixParameterPath(t *testing.T) {
	named := NewPath("paths", "/endpoint", "get", "parameters", "param2")
	original := NewPath("paths", "/endpoint", "get", "parameters", 0)

	t.Run("rewrites descendant", func(t *testing.T) {
		p := named.ChildKey("schema").ChildKey("required")
		assert.Equal(t, NewPath("paths", "/endpoint", "get", "parameters", 0, "schema", "required"),
			p.FixParameterPath(named, original))
	})

	t.Run("rewrites self", func(t *testing.T) {
		assert.Equal(t, original, named.FixParameterPath(named, original))
	})

	t.Run("leaves unrelated path", func(t *testing.T) {
		p := NewPath("definitions", "Pet")
		assert.Equal(t, p, p.FixParameterPath(named, original))
	})
}

func TestPathKeyAtAndLast(t *testing.T) {
	p := NewPath("paths", "/a", 3)
	k, ok := p.KeyAt(1)
	assert.True(t, ok)
	assert.Equal(t, "/a", k)

	_, ok = p.KeyAt(2)
	assert.False(t, ok)
	_, ok = p.KeyAt(9)
	assert.False(t, ok)

	last, ok := p.Last()
	assert.True(t, ok)
	assert.Equal(t, 3, last.Pos())
	assert.Equal(t, "", last.Name())

	_, ok = Path{}.Last()
	assert.False(t, ok)
}

func TestNewPathPanicsOnInvalidElement(t *testing.T) {
	assert.Panics(t, func() { NewPath(1.5) })
}

func TestPathSetContainsPrefixOf(t *testing.T) {
	tests := []struct {
		name string
		set  PathSet
		path Path
		want bool
	}{
		{"root member contains everything", NewPathSet(Path{}), NewPath("anything", 1), true},
		{"descendant", NewPathSet(NewPath("top", "inner")), NewPath("top", "inner", "inner_inner"), true},
		{"exact", NewPathSet(NewPath("top", "inner")), NewPath("top", "inner"), true},
		{"sibling", NewPathSet(NewPath("top", "inner")), NewPath("top", "different"), false},
		{"ancestor is not contained", NewPathSet(NewPath("top", "inner")), NewPath("top"), false},
		{"empty set", NewPathSet(), NewPath("top"), false},
		{"nil set", nil, NewPath("top"), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.set.ContainsPrefixOf(tt.path))
		})
	}
}

func TestPathSetUnionAndPaths(t *testing.T) {
	a := NewPathSet(NewPath("b"), NewPath("a"))
	b := NewPathSet(NewPath("a"), NewPath("c", 0))

	u := a.Union(b)
	assert.Len(t, u, 3)
	assert.True(t, u.Has(NewPath("c", 0)))
	assert.False(t, u.Has(NewPath("c")))
	assert.Equal(t, []Path{NewPath("a"), NewPath("b"), NewPath("c", 0)}, u.Paths())
	assert.Len(t, a, 2, "union must not mutate its operands")
}

func TestPathMarshalText(t *testing.T) {
	text, err := NewPath("definitions", "Pet").MarshalText()
	assert.NoError(t, err)
	assert.Equal(t, "#/definitions/Pet", string(text))
}
