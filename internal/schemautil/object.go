package schemautil

import (
	"strings"

	"github.com/erraggy/oascompat/tree"
)

// ObjectType is the best guess of which Swagger 2.0 object a map is.
type ObjectType int

const (
	// ObjectTypeUnknown is anything not recognized below.
	ObjectTypeUnknown ObjectType = iota
	// ObjectTypeParameter has both "in" and "name".
	ObjectTypeParameter
	// ObjectTypePathItem has at least one operation and at most "parameters" besides.
	ObjectTypePathItem
	// ObjectTypeResponse has a "description" and at most schema, headers and examples.
	ObjectTypeResponse
	// ObjectTypeSchema declares a type, or any map when untyped schemas default to objects.
	ObjectTypeSchema
)

// String returns the name of the object type.
func (t ObjectType) String() string {
	switch t {
	case ObjectTypeParameter:
		return "parameter"
	case ObjectTypePathItem:
		return "path item"
	case ObjectTypeResponse:
		return "response"
	case ObjectTypeSchema:
		return "schema"
	default:
		return "unknown"
	}
}

var operationKeys = map[string]bool{
	"get": true, "put": true, "post": true, "delete": true,
	"options": true, "head": true, "patch": true,
}

var responseKeys = map[string]bool{
	"description": true, "schema": true, "headers": true, "examples": true,
}

// DetermineObjectType classifies node by its keys. Vendor extensions (x-*)
// are ignored when telling path items and responses apart.
func DetermineObjectType(node tree.Node, defaultTypeToObject bool) ObjectType {
	if !node.IsMap() {
		return ObjectTypeUnknown
	}
	if node.Has("in") && node.Has("name") {
		return ObjectTypeParameter
	}

	var keys []string
	hasOperation := false
	for _, k := range node.Keys() {
		if strings.HasPrefix(k, "x-") {
			continue
		}
		keys = append(keys, k)
		if operationKeys[k] {
			hasOperation = true
		}
	}

	if hasOperation {
		for _, k := range keys {
			if !operationKeys[k] && k != "parameters" {
				return schemaOrUnknown(node, defaultTypeToObject)
			}
		}
		return ObjectTypePathItem
	}

	if node.Has("description") {
		response := true
		for _, k := range keys {
			if !responseKeys[k] {
				response = false
				break
			}
		}
		if response {
			return ObjectTypeResponse
		}
	}
	return schemaOrUnknown(node, defaultTypeToObject)
}

func schemaOrUnknown(node tree.Node, defaultTypeToObject bool) ObjectType {
	if defaultTypeToObject || node.Has("type") {
		return ObjectTypeSchema
	}
	return ObjectTypeUnknown
}

// IsParameter reports whether node is a Parameter Object.
func IsParameter(node tree.Node) bool {
	return DetermineObjectType(node, false) == ObjectTypeParameter
}

// IsResponse reports whether node is a Response Object.
func IsResponse(node tree.Node) bool {
	return DetermineObjectType(node, false) == ObjectTypeResponse
}

// IsSchema reports whether node is a Schema Object.
func IsSchema(node tree.Node, defaultTypeToObject bool) bool {
	return DetermineObjectType(node, defaultTypeToObject) == ObjectTypeSchema
}
