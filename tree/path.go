package tree

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Segment is one step of a Path: either a mapping key or a sequence index.
type Segment struct {
	key     string
	index   int
	isIndex bool
}

// Key returns a mapping-key segment.
func Key(k string) Segment {
	return Segment{key: k}
}

// Index returns a sequence-index segment.
func Index(i int) Segment {
	return Segment{index: i, isIndex: true}
}

// IsIndex reports whether the segment addresses a sequence element.
func (s Segment) IsIndex() bool { return s.isIndex }

// Name returns the key of a key segment and "" for index segments.
func (s Segment) Name() string {
	if s.isIndex {
		return ""
	}
	return s.key
}

// Pos returns the index of an index segment and -1 for key segments.
func (s Segment) Pos() int {
	if !s.isIndex {
		return -1
	}
	return s.index
}

// String renders the segment as it appears in a formatted path.
func (s Segment) String() string {
	if s.isIndex {
		return strconv.Itoa(s.index)
	}
	return s.key
}

// Path is the address of a node, from the document root.
//
// Paths are treated as immutable: every method that extends a path returns a
// fresh copy, so a Path can be stored in findings while traversal continues.
type Path []Segment

// NewPath builds a Path from strings (keys) and ints (indexes).
// It panics on any other element type.
func NewPath(elems ...any) Path {
	p := make(Path, 0, len(elems))
	for _, e := range elems {
		switch v := e.(type) {
		case string:
			p = append(p, Key(v))
		case int:
			p = append(p, Index(v))
		case Segment:
			p = append(p, v)
		default:
			panic(fmt.Sprintf("tree: invalid path element %T", e))
		}
	}
	return p
}

// Child returns a copy of p extended with s.
func (p Path) Child(s Segment) Path {
	out := make(Path, len(p), len(p)+1)
	copy(out, p)
	return append(out, s)
}

// ChildKey returns a copy of p extended with a key segment.
func (p Path) ChildKey(k string) Path { return p.Child(Key(k)) }

// ChildIndex returns a copy of p extended with an index segment.
func (p Path) ChildIndex(i int) Path { return p.Child(Index(i)) }

// HasPrefix reports whether prefix is equal to p or an ancestor of p.
func (p Path) HasPrefix(prefix Path) bool {
	if len(prefix) > len(p) {
		return false
	}
	for i := range prefix {
		if p[i] != prefix[i] {
			return false
		}
	}
	return true
}

// Equal reports whether both paths address the same node.
func (p Path) Equal(o Path) bool {
	return len(p) == len(o) && p.HasPrefix(o)
}

// Last returns the final segment, if any.
func (p Path) Last() (Segment, bool) {
	if len(p) == 0 {
		return Segment{}, false
	}
	return p[len(p)-1], true
}

// KeyAt returns the key at position i when that segment is a key segment.
func (p Path) KeyAt(i int) (string, bool) {
	if i < 0 || i >= len(p) || p[i].isIndex {
		return "", false
	}
	return p[i].key, true
}

// String renders the path as "#/seg1/seg2". Keys are not escaped, so a path
// key such as "/pets" renders as "#/paths//pets".
func (p Path) String() string {
	var b strings.Builder
	b.WriteString("#/")
	for i, s := range p {
		if i > 0 {
			b.WriteByte('/')
		}
		b.WriteString(s.String())
	}
	return b.String()
}

// MarshalText implements encoding.TextMarshaler using the String form.
func (p Path) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// MapKey returns an unambiguous encoding of p suitable as a map key.
// Unlike String it distinguishes the key "0" from the index 0.
func (p Path) MapKey() string {
	var b strings.Builder
	for _, s := range p {
		if s.isIndex {
			b.WriteByte('i')
			b.WriteString(strconv.Itoa(s.index))
			b.WriteByte(';')
			continue
		}
		b.WriteByte('k')
		b.WriteString(strconv.Itoa(len(s.key)))
		b.WriteByte(':')
		b.WriteString(s.key)
	}
	return b.String()
}

// FixParameterPath replaces the named prefix of p with original.
// Paths that do not start with named are returned unchanged.
func (p Path) FixParameterPath(named, original Path) Path {
	if !p.HasPrefix(named) {
		return p
	}
	out := make(Path, 0, len(original)+len(p)-len(named))
	out = append(out, original...)
	return append(out, p[len(named):]...)
}

// PathSet is an unordered set of paths.
type PathSet map[string]Path

// NewPathSet returns a set holding paths.
func NewPathSet(paths ...Path) PathSet {
	s := make(PathSet, len(paths))
	for _, p := range paths {
		s.Add(p)
	}
	return s
}

// Add inserts p into the set.
func (s PathSet) Add(p Path) {
	s[p.MapKey()] = p
}

// Has reports whether p itself is a member.
func (s PathSet) Has(p Path) bool {
	_, ok := s[p.MapKey()]
	return ok
}

// ContainsPrefixOf reports whether some member is equal to p or an ancestor of p.
func (s PathSet) ContainsPrefixOf(p Path) bool {
	if len(s) == 0 {
		return false
	}
	for i := 0; i <= len(p); i++ {
		if _, ok := s[p[:i].MapKey()]; ok {
			return true
		}
	}
	return false
}

// Union returns a new set holding the members of s and o.
func (s PathSet) Union(o PathSet) PathSet {
	out := make(PathSet, len(s)+len(o))
	for k, p := range s {
		out[k] = p
	}
	for k, p := range o {
		out[k] = p
	}
	return out
}

// Paths returns the members sorted by their string form.
func (s PathSet) Paths() []Path {
	out := make([]Path, 0, len(s))
	for _, p := range s {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i].String(), out[j].String()
		if a != b {
			return a < b
		}
		return out[i].MapKey() < out[j].MapKey()
	})
	return out
}
