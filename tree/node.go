package tree

import (
	"fmt"
	"slices"
	"sort"
)

// NodeID is the arena index of a node inside its Document.
type NodeID int

// NoID is the ID reported by an absent Node.
const NoID NodeID = -1

// Kind classifies a node's shape.
type Kind uint8

const (
	// KindAbsent is the kind of the zero Node: there is no node at that address.
	KindAbsent Kind = iota
	// KindScalar is a string, number, bool or null.
	KindScalar
	// KindMap is a mapping with string keys.
	KindMap
	// KindList is an ordered sequence.
	KindList
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindAbsent:
		return "absent"
	case KindScalar:
		return "scalar"
	case KindMap:
		return "map"
	case KindList:
		return "list"
	default:
		return "unknown"
	}
}

type node struct {
	kind   Kind
	value  any
	keys   []string
	values []NodeID
}

// Document is an immutable arena holding a flattened, dereferenced tree.
// Every $ref target is stored once, so all references to it share a NodeID
// and self-referencing schemas become cycles in the graph.
type Document struct {
	nodes []node
	root  NodeID
}

// Root returns the root node.
func (d *Document) Root() Node {
	if d == nil || len(d.nodes) == 0 {
		return Node{}
	}
	return Node{doc: d, id: d.root}
}

// Len returns the number of distinct nodes in the arena.
func (d *Document) Len() int {
	if d == nil {
		return 0
	}
	return len(d.nodes)
}

// Node returns a handle for id, or the absent Node when id is out of range.
func (d *Document) Node(id NodeID) Node {
	if d == nil || id < 0 || int(id) >= len(d.nodes) {
		return Node{}
	}
	return Node{doc: d, id: id}
}

func (d *Document) alloc(n node) NodeID {
	d.nodes = append(d.nodes, n)
	return NodeID(len(d.nodes) - 1)
}

// Node is a lightweight handle to a node of a Document.
//
// The zero Node is absent: it stands for "no node at this address", which is
// different from a present node holding null.
type Node struct {
	doc *Document
	id  NodeID
}

func (n Node) raw() *node {
	return &n.doc.nodes[n.id]
}

// Exists reports whether the node is present.
func (n Node) Exists() bool { return n.doc != nil }

// ID returns the arena identity of the node, or NoID when absent.
func (n Node) ID() NodeID {
	if n.doc == nil {
		return NoID
	}
	return n.id
}

// Document returns the owning document, or nil when absent.
func (n Node) Document() *Document { return n.doc }

// Kind returns the node shape.
func (n Node) Kind() Kind {
	if n.doc == nil {
		return KindAbsent
	}
	return n.raw().kind
}

// IsMap reports whether the node is a present mapping.
func (n Node) IsMap() bool { return n.Kind() == KindMap }

// IsList reports whether the node is a present sequence.
func (n Node) IsList() bool { return n.Kind() == KindList }

// IsScalar reports whether the node is a present scalar, null included.
func (n Node) IsScalar() bool { return n.Kind() == KindScalar }

// IsNull reports whether the node is present and holds null.
func (n Node) IsNull() bool { return n.IsScalar() && n.raw().value == nil }

// Value returns the scalar value. Maps, lists and absent nodes return nil.
// Integers are normalized to int64 and floats to float64.
func (n Node) Value() any {
	if !n.IsScalar() {
		return nil
	}
	return n.raw().value
}

// StringValue returns the scalar as a string when it is one.
func (n Node) StringValue() (string, bool) {
	s, ok := n.Value().(string)
	return s, ok
}

// BoolValue returns the scalar as a bool when it is one.
func (n Node) BoolValue() (bool, bool) {
	b, ok := n.Value().(bool)
	return b, ok
}

// Len returns the number of entries of a map or elements of a list.
func (n Node) Len() int {
	switch n.Kind() {
	case KindMap:
		return len(n.raw().keys)
	case KindList:
		return len(n.raw().values)
	default:
		return 0
	}
}

// Keys returns the sorted keys of a map.
func (n Node) Keys() []string {
	if !n.IsMap() {
		return nil
	}
	return slices.Clone(n.raw().keys)
}

// Get returns the child under key, or the absent Node.
func (n Node) Get(key string) Node {
	if !n.IsMap() {
		return Node{}
	}
	r := n.raw()
	i := sort.SearchStrings(r.keys, key)
	if i >= len(r.keys) || r.keys[i] != key {
		return Node{}
	}
	return Node{doc: n.doc, id: r.values[i]}
}

// Has reports whether a map carries key.
func (n Node) Has(key string) bool {
	return n.Get(key).Exists()
}

// Index returns the i-th element of a list, or the absent Node.
func (n Node) Index(i int) Node {
	if !n.IsList() {
		return Node{}
	}
	r := n.raw()
	if i < 0 || i >= len(r.values) {
		return Node{}
	}
	return Node{doc: n.doc, id: r.values[i]}
}

// Elements returns the elements of a list.
func (n Node) Elements() []Node {
	if !n.IsList() {
		return nil
	}
	r := n.raw()
	out := make([]Node, len(r.values))
	for i, id := range r.values {
		out[i] = Node{doc: n.doc, id: id}
	}
	return out
}

// GoString describes the node for debugging.
func (n Node) GoString() string {
	switch n.Kind() {
	case KindAbsent:
		return "tree.Node(absent)"
	case KindScalar:
		return fmt.Sprintf("tree.Node(#%d %v)", n.id, n.raw().value)
	default:
		return fmt.Sprintf("tree.Node(#%d %s len=%d)", n.id, n.Kind(), n.Len())
	}
}
