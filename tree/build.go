package tree

import (
	"errors"
	"fmt"
	"math"
	"net/url"
	"sort"
	"strconv"
	"strings"

	"github.com/erraggy/oascompat/oaserrors"
)

// Fetcher loads documents named by external $ref values.
type Fetcher interface {
	// Fetch resolves location against the document identified by base and
	// returns a canonical key for the target document together with its
	// decoded root. Equal keys must denote the same document.
	Fetch(base, location string) (key string, root any, err error)
}

// Option configures Build.
type Option func(*buildConfig)

type buildConfig struct {
	fetcher Fetcher
	base    string
}

// WithFetcher enables external $ref resolution through f.
// Without a fetcher, external references fail with a ReferenceError.
func WithFetcher(f Fetcher) Option {
	return func(c *buildConfig) {
		c.fetcher = f
	}
}

// WithBaseLocation sets the key of the root document, used to resolve
// relative external references.
func WithBaseLocation(loc string) Option {
	return func(c *buildConfig) {
		c.base = loc
	}
}

// Build converts a decoded YAML/JSON value into a Document, replacing every
// {"$ref": ...} object by its target. Sibling keys of $ref are ignored.
//
// Accepted input shapes are map[string]any, map[any]any, []any and scalars;
// anything else is stored as an opaque scalar.
func Build(root any, opts ...Option) (*Document, error) {
	cfg := &buildConfig{}
	for _, opt := range opts {
		opt(cfg)
	}
	b := &builder{
		doc:     &Document{},
		docs:    map[string]any{cfg.base: root},
		memo:    make(map[string]NodeID),
		fetcher: cfg.fetcher,
	}
	id, err := b.build(location{doc: cfg.base}, root)
	if err != nil {
		return nil, err
	}
	b.doc.root = id
	return b.doc, nil
}

// MustBuild is like Build but panics on error. Intended for tests and
// literal trees without references.
func MustBuild(root any, opts ...Option) *Document {
	d, err := Build(root, opts...)
	if err != nil {
		panic(err)
	}
	return d
}

type location struct {
	doc     string
	pointer []string
}

func (l location) child(tok string) location {
	p := make([]string, len(l.pointer), len(l.pointer)+1)
	copy(p, l.pointer)
	return location{doc: l.doc, pointer: append(p, tok)}
}

func (l location) key() string {
	var b strings.Builder
	b.WriteString(l.doc)
	b.WriteByte('#')
	for _, tok := range l.pointer {
		b.WriteByte('/')
		b.WriteString(escapeToken(tok))
	}
	return b.String()
}

type builder struct {
	doc     *Document
	docs    map[string]any
	memo    map[string]NodeID
	fetcher Fetcher
}

func (b *builder) build(loc location, raw any) (NodeID, error) {
	loc, raw, err := b.follow(loc, raw, make(map[string]bool))
	if err != nil {
		return NoID, err
	}
	key := loc.key()
	if id, ok := b.memo[key]; ok {
		return id, nil
	}

	if m, ok := asMap(raw); ok {
		keys := make([]string, 0, len(m))
		for k := range m {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		id := b.doc.alloc(node{kind: KindMap, keys: keys})
		b.memo[key] = id
		values := make([]NodeID, len(keys))
		for i, k := range keys {
			if values[i], err = b.build(loc.child(k), m[k]); err != nil {
				return NoID, err
			}
		}
		b.doc.nodes[id].values = values
		return id, nil
	}

	if l, ok := raw.([]any); ok {
		id := b.doc.alloc(node{kind: KindList})
		b.memo[key] = id
		values := make([]NodeID, len(l))
		for i, v := range l {
			if values[i], err = b.build(loc.child(strconv.Itoa(i)), v); err != nil {
				return NoID, err
			}
		}
		b.doc.nodes[id].values = values
		return id, nil
	}

	id := b.doc.alloc(node{kind: KindScalar, value: normalizeScalar(raw)})
	b.memo[key] = id
	return id, nil
}

// follow resolves raw while it is a $ref object, returning the canonical
// location of the final target.
func (b *builder) follow(loc location, raw any, seen map[string]bool) (location, any, error) {
	for {
		ref, ok := refOf(raw)
		if !ok {
			return loc, raw, nil
		}
		target, err := b.resolveRef(loc.doc, ref)
		if err != nil {
			return loc, nil, err
		}
		k := target.key()
		if seen[k] {
			return loc, nil, &oaserrors.ReferenceError{
				Ref:        ref,
				RefType:    refType(ref),
				IsCircular: true,
				Message:    "reference chain never reaches a value",
			}
		}
		seen[k] = true
		if loc, raw, err = b.lookup(target, ref, seen); err != nil {
			return loc, nil, err
		}
	}
}

// lookup walks target's pointer from its document root, following any $ref
// met on the way.
func (b *builder) lookup(target location, ref string, seen map[string]bool) (location, any, error) {
	cur := location{doc: target.doc}
	raw := b.docs[target.doc]
	for i, tok := range target.pointer {
		var err error
		if cur, raw, err = b.follow(cur, raw, seen); err != nil {
			return cur, nil, err
		}
		next, ok := childOf(raw, tok)
		if !ok {
			return cur, nil, &oaserrors.ReferenceError{
				Ref:     ref,
				RefType: refType(ref),
				Message: fmt.Sprintf("target not found (missing %q at #/%s)", tok, strings.Join(target.pointer[:i+1], "/")),
			}
		}
		cur = cur.child(tok)
		raw = next
	}
	return cur, raw, nil
}

func (b *builder) resolveRef(base, ref string) (location, error) {
	docPart, frag, _ := strings.Cut(ref, "#")
	docKey := base
	if docPart != "" {
		if b.fetcher == nil {
			return location{}, &oaserrors.ReferenceError{
				Ref:     ref,
				RefType: refType(ref),
				Message: "external references are not enabled",
			}
		}
		key, root, err := b.fetcher.Fetch(base, docPart)
		if err != nil {
			var refErr *oaserrors.ReferenceError
			if errors.As(err, &refErr) {
				return location{}, err
			}
			return location{}, &oaserrors.ReferenceError{Ref: ref, RefType: refType(ref), Cause: err}
		}
		if _, ok := b.docs[key]; !ok {
			b.docs[key] = root
		}
		docKey = key
	}

	if frag == "" || frag == "/" {
		return location{doc: docKey}, nil
	}
	if !strings.HasPrefix(frag, "/") {
		return location{}, &oaserrors.ReferenceError{
			Ref:     ref,
			RefType: refType(ref),
			Message: "fragment is not a JSON pointer",
		}
	}
	parts := strings.Split(frag[1:], "/")
	for i, p := range parts {
		parts[i] = unescapeToken(p)
	}
	return location{doc: docKey, pointer: parts}, nil
}

func refOf(raw any) (string, bool) {
	m, ok := asMap(raw)
	if !ok {
		return "", false
	}
	ref, ok := m["$ref"].(string)
	return ref, ok
}

func childOf(raw any, tok string) (any, bool) {
	if m, ok := asMap(raw); ok {
		v, ok := m[tok]
		return v, ok
	}
	if l, ok := raw.([]any); ok {
		i, err := strconv.Atoi(tok)
		if err != nil || strconv.Itoa(i) != tok || i < 0 || i >= len(l) {
			return nil, false
		}
		return l[i], true
	}
	return nil, false
}

// asMap accepts both decoder map shapes. YAML mappings with non-string keys,
// such as unquoted response codes, decode as map[any]any.
func asMap(raw any) (map[string]any, bool) {
	switch m := raw.(type) {
	case map[string]any:
		return m, true
	case map[any]any:
		out := make(map[string]any, len(m))
		for k, v := range m {
			out[fmt.Sprint(k)] = v
		}
		return out, true
	default:
		return nil, false
	}
}

func normalizeScalar(v any) any {
	switch n := v.(type) {
	case int:
		return int64(n)
	case int8:
		return int64(n)
	case int16:
		return int64(n)
	case int32:
		return int64(n)
	case uint:
		return normalizeUint(uint64(n))
	case uint8:
		return int64(n)
	case uint16:
		return int64(n)
	case uint32:
		return int64(n)
	case uint64:
		return normalizeUint(n)
	case float32:
		return float64(n)
	default:
		return v
	}
}

func normalizeUint(n uint64) any {
	if n > math.MaxInt64 {
		return n
	}
	return int64(n)
}

func refType(ref string) string {
	switch {
	case strings.HasPrefix(ref, "#"):
		return "local"
	case strings.HasPrefix(ref, "http://"), strings.HasPrefix(ref, "https://"):
		return "http"
	default:
		return "file"
	}
}

func escapeToken(tok string) string {
	return strings.ReplaceAll(strings.ReplaceAll(tok, "~", "~0"), "/", "~1")
}

func unescapeToken(tok string) string {
	if strings.Contains(tok, "%") {
		if u, err := url.PathUnescape(tok); err == nil {
			tok = u
		}
	}
	return strings.ReplaceAll(strings.ReplaceAll(tok, "~1", "/"), "~0", "~")
}
