package schemautil

import (
	"fmt"
	"slices"

	"github.com/erraggy/oascompat/tree"
)

// CollapsedProperties merges the properties of a schema and its allOf
// members. A schema with a non-empty allOf takes its properties from the
// members only, like swagger-spec-validator does. Names listed in required
// but not declared as properties are ignored.
func CollapsedProperties(schema tree.Node) (required, optional map[string]bool) {
	required = make(map[string]bool)
	optional = make(map[string]bool)
	collapse(schema, required, optional, make(map[tree.NodeID]bool))
	return required, optional
}

func collapse(schema tree.Node, required, optional map[string]bool, seen map[tree.NodeID]bool) {
	if !schema.IsMap() || seen[schema.ID()] {
		return
	}
	seen[schema.ID()] = true
	defer delete(seen, schema.ID())

	if allOf := schema.Get("allOf"); allOf.Len() > 0 {
		for _, member := range allOf.Elements() {
			collapse(member, required, optional, seen)
		}
		return
	}

	names := make(map[string]bool)
	for _, r := range schema.Get("required").Elements() {
		if s, ok := r.StringValue(); ok {
			names[s] = true
		}
	}
	for _, p := range schema.Get("properties").Keys() {
		if names[p] {
			required[p] = true
		} else {
			optional[p] = true
		}
	}
}

// RequiredProperties returns the sorted collapsed required property names of
// a Schema Object, and nil for anything else.
func RequiredProperties(schema tree.Node, defaultTypeToObject bool) []string {
	if !IsSchema(schema, defaultTypeToObject) {
		return nil
	}
	required, _ := CollapsedProperties(schema)
	return sortedKeys(required)
}

// Properties returns the sorted collapsed property names, required or not,
// of a Schema Object, and nil for anything else.
func Properties(schema tree.Node, defaultTypeToObject bool) []string {
	if !IsSchema(schema, defaultTypeToObject) {
		return nil
	}
	required, optional := CollapsedProperties(schema)
	for k := range optional {
		required[k] = true
	}
	return sortedKeys(required)
}

// EnumValues returns the sorted enum values of a string schema, rendered as
// strings, and nil when the schema is not a string or has no enum.
func EnumValues(schema tree.Node) []string {
	if !schema.IsMap() || !HasType(schema, "string") || !schema.Has("enum") {
		return nil
	}
	seen := make(map[string]bool)
	for _, v := range schema.Get("enum").Elements() {
		seen[scalarString(v)] = true
	}
	return sortedKeys(seen)
}

func scalarString(n tree.Node) string {
	if n.IsNull() {
		return "null"
	}
	if s, ok := n.StringValue(); ok {
		return s
	}
	return fmt.Sprint(n.Value())
}

// AdditionalProperties is the normalized additionalProperties keyword.
type AdditionalProperties struct {
	// Allowed is false only for additionalProperties: false.
	Allowed bool
	// Schema holds the constraint on additional properties; it is absent for
	// booleans and for the empty schema, which is equivalent to true.
	Schema tree.Node
}

// AdditionalPropertiesOf normalizes the additionalProperties of schema.
// Absent, true and {} all mean additional properties are allowed.
func AdditionalPropertiesOf(schema tree.Node) AdditionalProperties {
	v := schema.Get("additionalProperties")
	if b, ok := v.BoolValue(); ok {
		return AdditionalProperties{Allowed: b}
	}
	if v.IsMap() && v.Len() > 0 {
		return AdditionalProperties{Allowed: true, Schema: v}
	}
	return AdditionalProperties{Allowed: true}
}

// Equal compares two normalized values; schemas compare structurally and
// terminate on cycles.
func (a AdditionalProperties) Equal(b AdditionalProperties) bool {
	return a.Allowed == b.Allowed && tree.Equal(a.Schema, b.Schema)
}

// String renders false, true, or "schema".
func (a AdditionalProperties) String() string {
	switch {
	case !a.Allowed:
		return "false"
	case a.Schema.Exists():
		return "schema"
	default:
		return "true"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (a AdditionalProperties) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

// SymmetricDifference returns the elements only in a and only in b, both
// sorted. Inputs must be sorted and free of duplicates.
func SymmetricDifference(a, b []string) (onlyA, onlyB []string) {
	for _, s := range a {
		if _, found := slices.BinarySearch(b, s); !found {
			onlyA = append(onlyA, s)
		}
	}
	for _, s := range b {
		if _, found := slices.BinarySearch(a, s); !found {
			onlyB = append(onlyB, s)
		}
	}
	return onlyA, onlyB
}

func sortedKeys(m map[string]bool) []string {
	if len(m) == 0 {
		return nil
	}
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
