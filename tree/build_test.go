package tree

import (
	"errors"
	"testing"

	"github.com/erraggy/oascompat/oaserrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildShapes(t *testing.T) {
	doc := MustBuild(map[string]any{
		"b":    []any{1, "two", nil},
		"a":    map[any]any{200: map[string]any{"description": "ok"}},
		"flag": true,
	})
	root := doc.Root()

	require.True(t, root.IsMap())
	assert.Equal(t, []string{"a", "b", "flag"}, root.Keys())
	assert.Equal(t, 3, root.Len())

	list := root.Get("b")
	require.True(t, list.IsList())
	assert.Equal(t, int64(1), list.Index(0).Value())
	s, ok := list.Index(1).StringValue()
	assert.True(t, ok)
	assert.Equal(t, "two", s)
	assert.True(t, list.Index(2).IsNull())
	assert.True(t, list.Index(2).Exists())
	assert.False(t, list.Index(3).Exists())
	assert.Len(t, list.Elements(), 3)

	resp := root.Get("a").Get("200")
	require.True(t, resp.IsMap(), "non-string YAML keys must be stringified")
	desc, _ := resp.Get("description").StringValue()
	assert.Equal(t, "ok", desc)

	b, ok := root.Get("flag").BoolValue()
	assert.True(t, ok)
	assert.True(t, b)
}

func TestAbsentNode(t *testing.T) {
	var n Node
	assert.False(t, n.Exists())
	assert.Equal(t, KindAbsent, n.Kind())
	assert.Equal(t, NoID, n.ID())
	assert.False(t, n.IsNull())
	assert.Nil(t, n.Value())
	assert.False(t, n.Get("x").Exists())
	assert.False(t, n.Index(0).Exists())
	assert.Zero(t, n.Len())
	assert.Nil(t, n.Keys())
	assert.Equal(t, "tree.Node(absent)", n.GoString())
}

func TestBuildSharesReferenceTargets(t *testing.T) {
	doc := MustBuild(map[string]any{
		"definitions": map[string]any{
			"Pet": map[string]any{"type": "object"},
		},
		"a": map[string]any{"$ref": "#/definitions/Pet"},
		"b": map[string]any{"$ref": "#/definitions/Pet", "description": "ignored sibling"},
	})
	root := doc.Root()

	pet := root.Get("definitions").Get("Pet")
	assert.Equal(t, pet.ID(), root.Get("a").ID())
	assert.Equal(t, pet.ID(), root.Get("b").ID())
	assert.False(t, root.Get("b").Has("description"))
}

func TestBuildSelfReferenceBecomesCycle(t *testing.T) {
	doc := MustBuild(map[string]any{
		"definitions": map[string]any{
			"Node": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"next": map[string]any{"$ref": "#/definitions/Node"},
				},
			},
		},
		"self": map[string]any{"$ref": "#"},
	})
	root := doc.Root()

	n := root.Get("definitions").Get("Node")
	assert.Equal(t, n.ID(), n.Get("properties").Get("next").ID())
	assert.Equal(t, root.ID(), root.Get("self").ID())
}

func TestBuildRefThroughRef(t *testing.T) {
	doc := MustBuild(map[string]any{
		"definitions": map[string]any{
			"Alias": map[string]any{"$ref": "#/definitions/Real"},
			"Real": map[string]any{
				"properties": map[string]any{"id": map[string]any{"type": "integer"}},
			},
		},
		"x": map[string]any{"$ref": "#/definitions/Alias/properties/id"},
	})
	root := doc.Root()
	assert.Equal(t,
		root.Get("definitions").Get("Real").Get("properties").Get("id").ID(),
		root.Get("x").ID())
}

func TestBuildEscapedPointer(t *testing.T) {
	doc := MustBuild(map[string]any{
		"paths": map[string]any{
			"/pets": map[string]any{"get": map[string]any{"operationId": "list"}},
		},
		"alias": map[string]any{"$ref": "#/paths/~1pets/get"},
	})
	root := doc.Root()
	assert.Equal(t, root.Get("paths").Get("/pets").Get("get").ID(), root.Get("alias").ID())
}

func TestBuildReferenceErrors(t *testing.T) {
	tests := []struct {
		name     string
		input    map[string]any
		circular bool
	}{
		{
			name:  "missing target",
			input: map[string]any{"a": map[string]any{"$ref": "#/definitions/Missing"}},
		},
		{
			name: "ref loop",
			input: map[string]any{
				"definitions": map[string]any{
					"A": map[string]any{"$ref": "#/definitions/B"},
					"B": map[string]any{"$ref": "#/definitions/A"},
				},
			},
			circular: true,
		},
		{
			name:  "external without fetcher",
			input: map[string]any{"a": map[string]any{"$ref": "other.yaml#/definitions/X"}},
		},
		{
			name:  "bad fragment",
			input: map[string]any{"a": map[string]any{"$ref": "#definitions"}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Build(tt.input)
			require.Error(t, err)
			assert.ErrorIs(t, err, oaserrors.ErrReference)
			assert.Equal(t, tt.circular, errors.Is(err, oaserrors.ErrCircularReference))
		})
	}
}

type mapFetcher map[string]any

func (m mapFetcher) Fetch(_, location string) (string, any, error) {
	root, ok := m[location]
	if !ok {
		return "", nil, errors.New("not found")
	}
	return location, root, nil
}

func TestBuildExternalReferences(t *testing.T) {
	fetcher := mapFetcher{
		"common.yaml": map[string]any{
			"definitions": map[string]any{
				"Error": map[string]any{
					"type":       "object",
					"properties": map[string]any{"inner": map[string]any{"$ref": "#/definitions/Inner"}},
				},
				"Inner": map[string]any{"type": "string"},
			},
		},
	}
	doc, err := Build(map[string]any{
		"a": map[string]any{"$ref": "common.yaml#/definitions/Error"},
		"b": map[string]any{"$ref": "common.yaml#/definitions/Error"},
	}, WithFetcher(fetcher), WithBaseLocation("api.yaml"))
	require.NoError(t, err)

	root := doc.Root()
	assert.Equal(t, root.Get("a").ID(), root.Get("b").ID())
	inner := root.Get("a").Get("properties").Get("inner")
	typ, _ := inner.Get("type").StringValue()
	assert.Equal(t, "string", typ)

	_, err = Build(map[string]any{"a": map[string]any{"$ref": "missing.yaml"}}, WithFetcher(fetcher))
	require.Error(t, err)
	assert.ErrorIs(t, err, oaserrors.ErrReference)
}

func TestMustBuildPanics(t *testing.T) {
	assert.Panics(t, func() {
		MustBuild(map[string]any{"a": map[string]any{"$ref": "#/nope"}})
	})
}

func TestDocumentNode(t *testing.T) {
	doc := MustBuild(map[string]any{"a": 1})
	assert.True(t, doc.Node(doc.Root().ID()).Exists())
	assert.False(t, doc.Node(NodeID(doc.Len())).Exists())
	assert.False(t, doc.Node(NoID).Exists())

	var nilDoc *Document
	assert.False(t, nilDoc.Root().Exists())
	assert.Zero(t, nilDoc.Len())
}
