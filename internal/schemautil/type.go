// Package schemautil classifies Swagger 2.0 objects and reads schema
// keywords from flattened document nodes.
package schemautil

import "github.com/erraggy/oascompat/tree"

// SchemaTypes returns the declared type(s) of a schema, accepting both a
// single string and a list of strings.
//
// Examples:
//   - {"type": "string"} returns ["string"]
//   - {"type": ["string", "null"]} returns ["string", "null"]
func SchemaTypes(schema tree.Node) []string {
	t := schema.Get("type")
	if s, ok := t.StringValue(); ok {
		if s == "" {
			return nil
		}
		return []string{s}
	}
	var result []string
	for _, item := range t.Elements() {
		if s, ok := item.StringValue(); ok {
			result = append(result, s)
		}
	}
	return result
}

// PrimaryType returns the first non-null type of a schema, or "" when it
// declares none.
func PrimaryType(schema tree.Node) string {
	types := SchemaTypes(schema)
	for _, t := range types {
		if t != "null" {
			return t
		}
	}
	if len(types) > 0 {
		return types[0]
	}
	return ""
}

// HasType checks if the schema includes the specified type.
func HasType(schema tree.Node, targetType string) bool {
	for _, t := range SchemaTypes(schema) {
		if t == targetType {
			return true
		}
	}
	return false
}

// TypeOf returns the type a schema is compared by: its primary type, or
// "object" when it declares none and defaultTypeToObject is set.
func TypeOf(schema tree.Node, defaultTypeToObject bool) string {
	t := PrimaryType(schema)
	if t == "" && defaultTypeToObject {
		return "object"
	}
	return t
}

// IsNullable reports whether the schema carries x-nullable: true.
// Absent or non-boolean values count as false.
func IsNullable(schema tree.Node) bool {
	return XNullable(schema.Get("x-nullable"))
}

// XNullable reads an x-nullable value node.
func XNullable(value tree.Node) bool {
	b, ok := value.BoolValue()
	return ok && b
}
