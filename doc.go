// Package oascompat detects backward incompatible changes between two versions
// of a Swagger 2.0 (OpenAPI 2.0) document.
//
// Given the document a service is deployed with today and the one it will be
// deployed with next, oascompat reports the changes that break existing
// clients: a removed endpoint, a new required request property, an enum value
// a client may now receive but cannot decode, and so on. Each kind of change
// is a rule with a stable code such as REQ-E001.
//
// # Overview
//
// The library is organized in layers, each usable on its own:
//
//   - loader: Load a document from a file, URL, reader or bytes and resolve
//     every $ref, producing an immutable tree
//   - tree: The resolved document: nodes shared by reference, path values
//     and path sets
//   - walker: Walk two documents side by side, with schema-aware handling
//     of parameters, properties and allOf
//   - classifier: Find the document paths that belong to request parameters
//     and to responses
//   - differ: Per-node change facts (required properties, enums, types,
//     additionalProperties, x-nullable)
//   - rules: The compatibility rules, their registry, and
//     CompatibilityStatus, which runs them concurrently
//
// # Quick Start
//
// Compare two documents with every built-in rule:
//
//	import (
//		"github.com/erraggy/oascompat/loader"
//		"github.com/erraggy/oascompat/rules"
//	)
//
//	oldSpec, err := loader.Load("api-v1.yaml")
//	if err != nil {
//		log.Fatal(err)
//	}
//	newSpec, err := loader.Load("api-v2.yaml")
//	if err != nil {
//		log.Fatal(err)
//	}
//	status, err := rules.CompatibilityStatus(ctx, oldSpec, newSpec)
//	if err != nil {
//		log.Fatal(err)
//	}
//	for _, m := range status.Messages() {
//		fmt.Println(m)
//	}
//	if status.HasErrors() {
//		os.Exit(1)
//	}
//
// Run a subset of the rules:
//
//	selected, err := rules.SelectRules(rules.Default(), []string{"REQ-E001", "RES-E002"}, nil)
//	if err != nil {
//		log.Fatal(err)
//	}
//	status, err := rules.CompatibilityStatus(ctx, oldSpec, newSpec, rules.WithRules(selected...))
//
// # Rules
//
// Rule codes start with the contract they protect:
//
//   - MIS-*: changes to the document as a whole, such as deleted endpoints
//   - REQ-*: changes to what a client may send
//   - RES-*: changes to what a client may receive
//
// Run "oascompat explain" for the description of every rule, or see
// [rules.Builtin].
//
// # Error Handling
//
// Errors are typed and live in package oaserrors. Use errors.Is with the
// sentinel values (oaserrors.ErrParse, oaserrors.ErrReference,
// oaserrors.ErrConfig, oaserrors.ErrRule, ...) or errors.As with the
// structured types to get details. A reported incompatibility is not an
// error: it is a message in the returned status.
//
// # Command-Line Interface
//
// The oascompat command wraps the library:
//
//	# Check two documents, exit 1 on incompatible changes
//	oascompat run api-v1.yaml api-v2.yaml
//
//	# Skip a rule and print JSON
//	oascompat run -b MIS-E001 --json-output api-v1.yaml api-v2.yaml
//
//	# Describe the rules
//	oascompat explain -r REQ-E001
//
//	# Serve the checks to MCP clients over stdio
//	oascompat mcp
//
// Install the CLI:
//
//	go install github.com/erraggy/oascompat/cmd/oascompat@latest
package oascompat
