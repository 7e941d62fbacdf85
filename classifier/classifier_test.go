package classifier

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erraggy/oascompat/loader"
	"github.com/erraggy/oascompat/tree"
)

func load(t *testing.T, doc string) *loader.Spec {
	t.Helper()
	spec, err := loader.LoadWithOptions(loader.WithBytes([]byte(doc)))
	require.NoError(t, err)
	return spec
}

const oldDoc = `
swagger: "2.0"
paths:
  /pets/{id}:
    parameters:
      - {in: path, name: id, type: string, required: true}
    get:
      parameters:
        - {in: query, name: verbose, type: boolean}
      responses:
        "200":
          description: ok
          schema: {$ref: "#/definitions/Pet"}
        default:
          description: error
    put:
      parameters:
        - in: body
          name: pet
          schema: {$ref: "#/definitions/Pet"}
      responses:
        "204": {description: updated}
definitions:
  Pet:
    type: object
    properties:
      name: {type: string}
      parent: {$ref: "#/definitions/Pet"}
  Unused:
    type: object
    description: not referenced
`

const newDoc = `
swagger: "2.0"
paths:
  /pets/{id}:
    parameters:
      - {in: path, name: id, type: string, required: true}
    get:
      parameters:
        - {in: header, name: trace, type: string}
        - {in: query, name: verbose, type: boolean}
      responses:
        "200":
          description: ok
          schema: {$ref: "#/definitions/Pet"}
    put:
      parameters:
        - in: body
          name: pet
          schema: {$ref: "#/definitions/Pet"}
      responses:
        "204": {description: updated}
definitions:
  Pet:
    type: object
    properties:
      name: {type: string}
      parent: {$ref: "#/definitions/Pet"}
`

func TestRequestParameters(t *testing.T) {
	got, err := NewRequestParameters(load(t, oldDoc), load(t, newDoc)).Walk()
	require.NoError(t, err)
	// trace is only declared by the new document, so there is no pair of
	// objects to classify at its position.
	assert.Equal(t, []tree.Path{
		tree.NewPath("paths", "/pets/{id}", "get", "parameters", 1),
		tree.NewPath("paths", "/pets/{id}", "parameters", 0),
		tree.NewPath("paths", "/pets/{id}", "put", "parameters", 0),
	}, got.Paths())
}

func TestResponses(t *testing.T) {
	got, err := NewResponses(load(t, oldDoc), load(t, newDoc)).Walk()
	require.NoError(t, err)

	assert.True(t, got.Has(tree.NewPath("paths", "/pets/{id}", "get", "responses", "200")))
	assert.False(t, got.Has(tree.NewPath("paths", "/pets/{id}", "get", "responses", "default")), "removed response")
	assert.True(t, got.Has(tree.NewPath("paths", "/pets/{id}", "put", "responses", "204")))
	for _, p := range got.Paths() {
		k, _ := p.KeyAt(3)
		assert.Equal(t, "responses", k, p.String())
	}
	assert.True(t, got.ContainsPrefixOf(tree.NewPath("paths", "/pets/{id}", "get", "responses", "200", "schema", "properties", "name")))
	assert.False(t, got.ContainsPrefixOf(tree.NewPath("definitions", "Pet")))
}

func TestRequestParametersScopeExcludesDefinitions(t *testing.T) {
	params, err := NewRequestParameters(load(t, oldDoc), load(t, newDoc)).Walk()
	require.NoError(t, err)

	body := tree.NewPath("paths", "/pets/{id}", "put", "parameters", 0)
	assert.True(t, params.ContainsPrefixOf(body.ChildKey("schema").ChildKey("properties")))
	assert.False(t, params.ContainsPrefixOf(tree.NewPath("definitions", "Pet")))
	assert.False(t, params.ContainsPrefixOf(tree.NewPath("paths", "/pets/{id}", "get", "responses", "200")))
}

func TestShouldWalk(t *testing.T) {
	tests := []struct {
		name     string
		path     tree.Path
		request  bool
		response bool
	}{
		{"root", tree.Path{}, true, true},
		{"definitions", tree.NewPath("definitions"), false, false},
		{"paths", tree.NewPath("paths"), true, true},
		{"path item", tree.NewPath("paths", "/a"), true, true},
		{"operation", tree.NewPath("paths", "/a", "get"), true, true},
		{"path parameters", tree.NewPath("paths", "/a", "parameters"), true, true},
		{"path parameter", tree.NewPath("paths", "/a", "parameters", "p"), true, false},
		{"operation parameter", tree.NewPath("paths", "/a", "get", "parameters"), true, false},
		{"operation responses", tree.NewPath("paths", "/a", "get", "responses"), false, true},
		{"path parameter schema", tree.NewPath("paths", "/a", "parameters", "p", "schema"), true, false},
		{"path parameter schema child", tree.NewPath("paths", "/a", "parameters", "p", "schema", "properties"), true, false},
		{"operation parameter type", tree.NewPath("paths", "/a", "get", "parameters", "p", "type"), false, false},
		{"operation parameter schema", tree.NewPath("paths", "/a", "get", "parameters", "p", "schema"), true, false},
		{"response schema", tree.NewPath("paths", "/a", "get", "responses", "200", "schema"), false, true},
		{"index is not a key", tree.NewPath("paths", "/a", "get", 0), false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.request, requestParameters{}.ShouldWalk(tt.path), "request")
			assert.Equal(t, tt.response, responses{}.ShouldWalk(tt.path), "response")
		})
	}
}
