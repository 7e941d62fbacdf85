// Package rules detects backward incompatible changes between two versions
// of a Swagger 2.0 document.
//
// Each Rule combines the facts reported by package differ with the request
// and response locations found by package classifier, and reports a
// ValidationMessage per incompatible change. The built-in rules are
// available through Default:
//
//	status, err := rules.CompatibilityStatus(ctx, oldSpec, newSpec)
//	if err != nil {
//	    return err
//	}
//	for _, msg := range status.Messages() {
//	    fmt.Println(msg)
//	}
//	if status.HasErrors() {
//	    os.Exit(1)
//	}
//
// Built-in rule codes are grouped by prefix:
//
//	MIS-*  miscellaneous
//	REQ-*  request contract
//	RES-*  response contract
//
// Custom rules implement Rule and are evaluated through WithRules or a
// Registry of their own.
package rules
