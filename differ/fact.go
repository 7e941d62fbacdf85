package differ

import (
	"github.com/erraggy/oascompat/internal/schemautil"
	"github.com/erraggy/oascompat/tree"
	"github.com/erraggy/oascompat/walker"
)

// Kind identifies the differ that produced a fact
type Kind string

const (
	// KindRequiredProperties is produced by NewRequiredProperties
	KindRequiredProperties Kind = "required_properties"
	// KindEnumValues is produced by NewEnumValues
	KindEnumValues Kind = "enum_values"
	// KindAdditionalProperties is produced by NewAdditionalProperties
	KindAdditionalProperties Kind = "additional_properties"
	// KindChangedTypes is produced by NewChangedTypes
	KindChangedTypes Kind = "changed_types"
	// KindChangedXNullable is produced by NewChangedXNullable
	KindChangedXNullable Kind = "changed_x_nullable"
)

// Fact is a change found at one node. The set of facts is closed: only the
// diff types of this package implement it.
type Fact interface {
	Kind() Kind
	// At returns the path of the node the fact describes.
	At() tree.Path
	sealed()
}

// RequiredPropertiesDiff lists the required property names only the old
// schema (Old) or only the new schema (New) declares.
type RequiredPropertiesDiff struct {
	Path    tree.Path                      `json:"path"`
	Mapping walker.EntityMapping[[]string] `json:"mapping"`
}

// EnumValuesDiff lists the enum values only the old or only the new string
// schema declares.
type EnumValuesDiff struct {
	Path    tree.Path                      `json:"path"`
	Mapping walker.EntityMapping[[]string] `json:"mapping"`
}

// DiffType tells the two additionalProperties checks apart
type DiffType string

const (
	// DiffTypeValue means the additionalProperties value changed
	DiffTypeValue DiffType = "value"
	// DiffTypeProperties means declared properties changed while
	// additionalProperties is false on either side
	DiffTypeProperties DiffType = "properties"
)

// AdditionalPropertiesValue is the normalized additionalProperties keyword.
type AdditionalPropertiesValue = schemautil.AdditionalProperties

// AdditionalPropertiesDiff carries either the value change (DiffTypeValue)
// or the declared property names only one side has (DiffTypeProperties).
type AdditionalPropertiesDiff struct {
	Path                 tree.Path                                       `json:"path"`
	Type                 DiffType                                        `json:"diff_type"`
	AdditionalProperties *walker.EntityMapping[AdditionalPropertiesValue] `json:"additional_properties,omitempty"`
	Properties           *walker.EntityMapping[[]string]                 `json:"properties,omitempty"`
}

// ChangedTypesDiff holds the old and new schema type; "" means untyped.
type ChangedTypesDiff struct {
	Path    tree.Path                    `json:"path"`
	Mapping walker.EntityMapping[string] `json:"mapping"`
}

// ChangedXNullableDiff holds the old and new effective x-nullable flag.
// Path addresses the x-nullable key itself.
type ChangedXNullableDiff struct {
	Path    tree.Path                  `json:"path"`
	Mapping walker.EntityMapping[bool] `json:"mapping"`
}

// Kind implements Fact.
func (RequiredPropertiesDiff) Kind() Kind { return KindRequiredProperties }

// Kind implements Fact.
func (EnumValuesDiff) Kind() Kind { return KindEnumValues }

// Kind implements Fact.
func (AdditionalPropertiesDiff) Kind() Kind { return KindAdditionalProperties }

// Kind implements Fact.
func (ChangedTypesDiff) Kind() Kind { return KindChangedTypes }

// Kind implements Fact.
func (ChangedXNullableDiff) Kind() Kind { return KindChangedXNullable }

// At implements Fact.
func (d RequiredPropertiesDiff) At() tree.Path { return d.Path }

// At implements Fact.
func (d EnumValuesDiff) At() tree.Path { return d.Path }

// At implements Fact.
func (d AdditionalPropertiesDiff) At() tree.Path { return d.Path }

// At implements Fact.
func (d ChangedTypesDiff) At() tree.Path { return d.Path }

// At implements Fact.
func (d ChangedXNullableDiff) At() tree.Path { return d.Path }

func (RequiredPropertiesDiff) sealed()   {}
func (EnumValuesDiff) sealed()           {}
func (AdditionalPropertiesDiff) sealed() {}
func (ChangedTypesDiff) sealed()         {}
func (ChangedXNullableDiff) sealed()     {}

// FixParameterPath implements walker.PathFixer.
func (d RequiredPropertiesDiff) FixParameterPath(named, original tree.Path) RequiredPropertiesDiff {
	d.Path = d.Path.FixParameterPath(named, original)
	return d
}

// FixParameterPath implements walker.PathFixer.
func (d EnumValuesDiff) FixParameterPath(named, original tree.Path) EnumValuesDiff {
	d.Path = d.Path.FixParameterPath(named, original)
	return d
}

// FixParameterPath implements walker.PathFixer.
func (d AdditionalPropertiesDiff) FixParameterPath(named, original tree.Path) AdditionalPropertiesDiff {
	d.Path = d.Path.FixParameterPath(named, original)
	return d
}

// FixParameterPath implements walker.PathFixer.
func (d ChangedTypesDiff) FixParameterPath(named, original tree.Path) ChangedTypesDiff {
	d.Path = d.Path.FixParameterPath(named, original)
	return d
}

// FixParameterPath implements walker.PathFixer.
func (d ChangedXNullableDiff) FixParameterPath(named, original tree.Path) ChangedXNullableDiff {
	d.Path = d.Path.FixParameterPath(named, original)
	return d
}

var (
	_ Fact = RequiredPropertiesDiff{}
	_ Fact = EnumValuesDiff{}
	_ Fact = AdditionalPropertiesDiff{}
	_ Fact = ChangedTypesDiff{}
	_ Fact = ChangedXNullableDiff{}

	_ walker.PathFixer[RequiredPropertiesDiff]   = RequiredPropertiesDiff{}
	_ walker.PathFixer[EnumValuesDiff]           = EnumValuesDiff{}
	_ walker.PathFixer[AdditionalPropertiesDiff] = AdditionalPropertiesDiff{}
	_ walker.PathFixer[ChangedTypesDiff]         = ChangedTypesDiff{}
	_ walker.PathFixer[ChangedXNullableDiff]     = ChangedXNullableDiff{}
)

// Facts converts a slice of one diff type to a slice of Fact.
func Facts[T Fact](diffs []T) []Fact {
	out := make([]Fact, len(diffs))
	for i, d := range diffs {
		out[i] = d
	}
	return out
}
