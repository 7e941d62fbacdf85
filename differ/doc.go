/*
Package differ computes per-node changes between two Swagger 2.0 documents.

Each constructor returns a schema-aware [walker.Walker] whose findings are
one kind of diff fact:

  - [NewRequiredProperties]: required property names added or removed
  - [NewEnumValues]: enum values added or removed from string schemas
  - [NewAdditionalProperties]: additionalProperties changes, and property
    changes of objects that forbid additional properties
  - [NewChangedTypes]: schema type changes
  - [NewChangedXNullable]: x-nullable flips

A fact describes exactly one node: the change of a nested schema is reported
at the nested path, never folded into its parent. Facts are raw material for
compatibility rules, which decide whether a path matters by intersecting it
with the request and response paths found by package classifier.

	facts, err := differ.NewRequiredProperties(oldSpec, newSpec).Walk()
	if err != nil {
		return err
	}
	for _, f := range facts {
		fmt.Printf("%s: removed %v, added %v\n", f.Path, f.Mapping.Old, f.Mapping.New)
	}

All fact types implement [walker.PathFixer], so a change inside a parameter
is addressed by the parameter's index in the new document even when the
parameter list was reordered.
*/
package differ
