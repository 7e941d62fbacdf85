// Package oaserrors provides structured error types for the oascompat library.
//
// Callers distinguish error categories with [errors.Is] and [errors.As]:
//
//   - [ParseError]: YAML/JSON decoding failures
//   - [ReferenceError]: $ref resolution failures, $ref loops, path traversal
//   - [VersionError]: documents that are not Swagger 2.0
//   - [ResourceLimitError]: oversized documents or too many external documents
//   - [RuleError]: a compatibility rule failed while evaluating
//   - [ConfigError]: invalid options, unknown rule codes, conflicting flags
//
// Each type has a matching sentinel ([ErrParse], [ErrReference],
// [ErrCircularReference], [ErrPathTraversal], [ErrUnsupportedVersion],
// [ErrResourceLimit], [ErrRule], [ErrConfig]).
//
//	spec, err := loader.Load("api.yaml")
//	if errors.Is(err, oaserrors.ErrCircularReference) {
//	    // the document contains a $ref that only points at other $refs
//	}
//
//	var refErr *oaserrors.ReferenceError
//	if errors.As(err, &refErr) {
//	    fmt.Printf("failed to resolve %s\n", refErr.Ref)
//	}
package oaserrors
