package loader

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erraggy/oascompat/oaserrors"
)

const petstore = `
swagger: "2.0"
info: {title: pets, version: "1"}
paths:
  /pets:
    get:
      responses:
        200:
          description: ok
          schema: {$ref: "#/definitions/Pet"}
    post:
      parameters:
        - {in: body, name: body, schema: {$ref: "#/definitions/Pet"}}
      responses:
        201: {description: created}
definitions:
  Pet:
    type: object
    properties:
      name: {type: string}
`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadBytes(t *testing.T) {
	spec, err := LoadWithOptions(WithBytes([]byte(petstore)))
	require.NoError(t, err)

	assert.Equal(t, "<bytes>", spec.SourcePath)
	assert.Equal(t, "2.0", spec.Version)

	pet := spec.Root().Get("definitions").Get("Pet")
	body := spec.Root().Get("paths").Get("/pets").Get("post").Get("parameters").Index(0).Get("schema")
	resp := spec.Root().Get("paths").Get("/pets").Get("get").Get("responses").Get("200").Get("schema")
	assert.Equal(t, pet.ID(), body.ID())
	assert.Equal(t, pet.ID(), resp.ID())
}

func TestLoadJSON(t *testing.T) {
	spec, err := LoadWithOptions(
		WithReader(strings.NewReader(`{"swagger": "2.0", "paths": {}}`)),
		WithSourceName("api.json"),
	)
	require.NoError(t, err)
	assert.Equal(t, "api.json", spec.SourcePath)
	assert.Empty(t, spec.Endpoints())
}

func TestLoadData(t *testing.T) {
	spec, err := LoadWithOptions(
		WithData(map[string]any{"swagger": "2.0", "paths": map[string]any{}}),
		WithDefaultTypeToObject(true),
	)
	require.NoError(t, err)
	assert.Equal(t, "<data>", spec.SourcePath)
	assert.True(t, spec.Config.DefaultTypeToObject)
}

func TestLoadVersion(t *testing.T) {
	tests := []struct {
		name    string
		doc     string
		wantErr bool
	}{
		{"quoted", `swagger: "2.0"`, false},
		{"unquoted number", `swagger: 2.0`, false},
		{"openapi 3", `openapi: 3.0.0`, true},
		{"wrong swagger", `swagger: "1.2"`, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadWithOptions(WithBytes([]byte(tt.doc)))
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.ErrorIs(t, err, oaserrors.ErrUnsupportedVersion)
		})
	}
}

func TestLoadParseErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"invalid yaml", "swagger: [unclosed"},
		{"not a mapping", "- a\n- b\n"},
		{"empty", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadWithOptions(WithBytes([]byte(tt.doc)))
			require.Error(t, err)
			assert.ErrorIs(t, err, oaserrors.ErrParse)
		})
	}
}

func TestLoadOptionValidation(t *testing.T) {
	_, err := LoadWithOptions()
	require.Error(t, err)
	assert.ErrorIs(t, err, oaserrors.ErrConfig)
	assert.Contains(t, err.Error(), "exactly one of WithFilePath, WithReader, WithBytes, or WithData must be provided (got 0)")

	_, err = LoadWithOptions(WithBytes([]byte(petstore)), WithData(map[string]any{}))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "(got 2)")

	_, err = LoadWithOptions(WithReader(nil))
	assert.Error(t, err)
	_, err = LoadWithOptions(WithBytes(nil))
	assert.Error(t, err)
	_, err = LoadWithOptions(WithData(nil))
	assert.Error(t, err)
	_, err = LoadWithOptions(WithBytes([]byte(petstore)), WithMaxFileSize(0))
	assert.Error(t, err)
	_, err = LoadWithOptions(WithBytes([]byte(petstore)), WithMaxCachedDocuments(-1))
	assert.Error(t, err)
}

func TestLoadMaxFileSize(t *testing.T) {
	_, err := LoadWithOptions(WithBytes([]byte(petstore)), WithMaxFileSize(10))
	require.Error(t, err)
	assert.ErrorIs(t, err, oaserrors.ErrResourceLimit)

	path := writeFile(t, t.TempDir(), "api.yaml", petstore)
	_, err = Load(path, WithMaxFileSize(10))
	assert.ErrorIs(t, err, oaserrors.ErrResourceLimit)
}

func TestLoadFileWithExternalRefs(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "defs/common.yaml", `
definitions:
  Error:
    type: object
    properties:
      code: {type: integer}
      detail: {$ref: "#/definitions/Detail"}
  Detail:
    type: string
`)
	path := writeFile(t, dir, "api.yaml", `
swagger: "2.0"
paths:
  /a:
    get:
      responses:
        default: {description: err, schema: {$ref: "defs/common.yaml#/definitions/Error"}}
  /b:
    get:
      responses:
        default: {description: err, schema: {$ref: "./defs/common.yaml#/definitions/Error"}}
`)

	for _, location := range []string{path, "file://" + filepath.ToSlash(path)} {
		spec, err := Load(location)
		require.NoError(t, err, location)

		paths := spec.Root().Get("paths")
		a := paths.Get("/a").Get("get").Get("responses").Get("default").Get("schema")
		b := paths.Get("/b").Get("get").Get("responses").Get("default").Get("schema")
		assert.Equal(t, a.ID(), b.ID())
		typ, _ := a.Get("properties").Get("detail").Get("type").StringValue()
		assert.Equal(t, "string", typ)
	}
}

func TestLoadExternalRefsDisabled(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "common.yaml", "definitions: {X: {type: string}}")
	path := writeFile(t, dir, "api.yaml", `
swagger: "2.0"
definitions:
  Y: {$ref: "common.yaml#/definitions/X"}
`)
	_, err := Load(path, WithExternalRefs(false))
	require.Error(t, err)
	assert.ErrorIs(t, err, oaserrors.ErrReference)
}

func TestLoadPathTraversal(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "secret.yaml", "definitions: {X: {type: string}}")
	path := writeFile(t, root, "api/api.yaml", `
swagger: "2.0"
definitions:
  Y: {$ref: "../secret.yaml#/definitions/X"}
`)
	_, err := Load(path)
	require.Error(t, err)
	assert.ErrorIs(t, err, oaserrors.ErrPathTraversal)
}

func TestLoadMaxCachedDocuments(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "one.yaml", "X: {type: string}")
	writeFile(t, dir, "two.yaml", "X: {type: string}")
	path := writeFile(t, dir, "api.yaml", `
swagger: "2.0"
definitions:
  A: {$ref: "one.yaml#/X"}
  B: {$ref: "two.yaml#/X"}
`)
	_, err := Load(path, WithMaxCachedDocuments(1))
	require.Error(t, err)
	assert.ErrorIs(t, err, oaserrors.ErrResourceLimit)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "loader: failed to read file")
}

func TestLoadURL(t *testing.T) {
	var userAgent string
	mux := http.NewServeMux()
	mux.HandleFunc("/api/swagger.yaml", func(w http.ResponseWriter, r *http.Request) {
		userAgent = r.Header.Get("User-Agent")
		_, _ = w.Write([]byte(`
swagger: "2.0"
definitions:
  Pet: {$ref: "models.yaml#/Pet"}
`))
	})
	mux.HandleFunc("/api/models.yaml", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("Pet: {type: object}"))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	spec, err := Load(srv.URL+"/api/swagger.yaml", WithUserAgent("compat-test/1.0"), WithHTTPClient(srv.Client()))
	require.NoError(t, err)
	assert.Equal(t, "compat-test/1.0", userAgent)
	typ, _ := spec.Root().Get("definitions").Get("Pet").Get("type").StringValue()
	assert.Equal(t, "object", typ)

	_, err = Load(srv.URL + "/missing.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "HTTP 404")
}

func TestLoadHTTPRefsFromFile(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("Pet: {type: object}"))
	}))
	defer srv.Close()

	doc := `
swagger: "2.0"
definitions:
  Pet: {$ref: "` + srv.URL + `/models.yaml#/Pet"}
`
	_, err := LoadWithOptions(WithBytes([]byte(doc)))
	require.Error(t, err)
	assert.ErrorIs(t, err, oaserrors.ErrReference)

	spec, err := LoadWithOptions(WithBytes([]byte(doc)), WithHTTPRefs(true))
	require.NoError(t, err)
	assert.True(t, spec.Root().Get("definitions").Get("Pet").IsMap())
}
