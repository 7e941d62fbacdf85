package differ

import (
	"github.com/erraggy/oascompat/internal/schemautil"
	"github.com/erraggy/oascompat/loader"
	"github.com/erraggy/oascompat/tree"
	"github.com/erraggy/oascompat/walker"
)

// pairConfig holds the load-time settings of both documents.
type pairConfig struct {
	left, right loader.Config
}

func configs(left, right *loader.Spec) pairConfig {
	if left == nil || right == nil {
		panic("differ: nil spec")
	}
	return pairConfig{left: left.Config, right: right.Config}
}

// NewRequiredProperties reports, for each pair of schemas, the collapsed
// required property names only one side declares.
func NewRequiredProperties(left, right *loader.Spec, opts ...walker.Option) *walker.Walker[RequiredPropertiesDiff] {
	return walker.NewSchema(left, right, &requiredProperties{cfg: configs(left, right)}, opts...)
}

type requiredProperties struct {
	walker.NoChecks[RequiredPropertiesDiff]
	cfg pairConfig
}

func (c *requiredProperties) DictCheck(path tree.Path, left, right tree.Node) ([]RequiredPropertiesDiff, error) {
	removed, added := schemautil.SymmetricDifference(
		schemautil.RequiredProperties(left, c.cfg.left.DefaultTypeToObject),
		schemautil.RequiredProperties(right, c.cfg.right.DefaultTypeToObject),
	)
	if len(removed) == 0 && len(added) == 0 {
		return nil, nil
	}
	return []RequiredPropertiesDiff{{
		Path:    path,
		Mapping: walker.NewEntityMapping(removed, added),
	}}, nil
}

// NewEnumValues reports, for each pair of string schemas, the enum values
// only one side declares.
func NewEnumValues(left, right *loader.Spec, opts ...walker.Option) *walker.Walker[EnumValuesDiff] {
	configs(left, right)
	return walker.NewSchema(left, right, enumValues{}, opts...)
}

type enumValues struct {
	walker.NoChecks[EnumValuesDiff]
}

func (enumValues) DictCheck(path tree.Path, left, right tree.Node) ([]EnumValuesDiff, error) {
	removed, added := schemautil.SymmetricDifference(schemautil.EnumValues(left), schemautil.EnumValues(right))
	if len(removed) == 0 && len(added) == 0 {
		return nil, nil
	}
	return []EnumValuesDiff{{
		Path:    path,
		Mapping: walker.NewEntityMapping(removed, added),
	}}, nil
}

// NewAdditionalProperties reports changed additionalProperties values, and
// changed declared properties of schemas where either side forbids
// additional properties.
func NewAdditionalProperties(left, right *loader.Spec, opts ...walker.Option) *walker.Walker[AdditionalPropertiesDiff] {
	return walker.NewSchema(left, right, &additionalProperties{cfg: configs(left, right)}, opts...)
}

type additionalProperties struct {
	walker.NoChecks[AdditionalPropertiesDiff]
	cfg pairConfig
}

func (c *additionalProperties) DictCheck(path tree.Path, left, right tree.Node) ([]AdditionalPropertiesDiff, error) {
	var found []AdditionalPropertiesDiff

	leftValue := schemautil.AdditionalPropertiesOf(left)
	rightValue := schemautil.AdditionalPropertiesOf(right)
	if !leftValue.Equal(rightValue) {
		m := walker.NewEntityMapping(leftValue, rightValue)
		found = append(found, AdditionalPropertiesDiff{
			Path:                 path,
			Type:                 DiffTypeValue,
			AdditionalProperties: &m,
		})
	}

	if !leftValue.Allowed || !rightValue.Allowed {
		removed, added := schemautil.SymmetricDifference(
			schemautil.Properties(left, c.cfg.left.DefaultTypeToObject),
			schemautil.Properties(right, c.cfg.right.DefaultTypeToObject),
		)
		if len(removed) > 0 || len(added) > 0 {
			m := walker.NewEntityMapping(removed, added)
			found = append(found, AdditionalPropertiesDiff{
				Path:       path,
				Type:       DiffTypeProperties,
				Properties: &m,
			})
		}
	}
	return found, nil
}

// NewChangedTypes reports schemas whose type changed. An untyped schema
// counts as "object" when its document was loaded with
// loader.WithDefaultTypeToObject.
func NewChangedTypes(left, right *loader.Spec, opts ...walker.Option) *walker.Walker[ChangedTypesDiff] {
	return walker.NewSchema(left, right, &changedTypes{cfg: configs(left, right)}, opts...)
}

type changedTypes struct {
	walker.NoChecks[ChangedTypesDiff]
	cfg pairConfig
}

func (c *changedTypes) DictCheck(path tree.Path, left, right tree.Node) ([]ChangedTypesDiff, error) {
	leftType := schemautil.TypeOf(left, c.cfg.left.DefaultTypeToObject)
	rightType := schemautil.TypeOf(right, c.cfg.right.DefaultTypeToObject)
	if leftType == rightType {
		return nil, nil
	}
	return []ChangedTypesDiff{{
		Path:    path,
		Mapping: walker.NewEntityMapping(leftType, rightType),
	}}, nil
}

// NewChangedXNullable reports x-nullable flags whose effective value
// flipped. A missing flag counts as false.
func NewChangedXNullable(left, right *loader.Spec, opts ...walker.Option) *walker.Walker[ChangedXNullableDiff] {
	configs(left, right)
	return walker.NewSchema(left, right, changedXNullable{}, opts...)
}

type changedXNullable struct {
	walker.NoChecks[ChangedXNullableDiff]
}

func (changedXNullable) ValueCheck(path tree.Path, left, right tree.Node) ([]ChangedXNullableDiff, error) {
	if last, ok := path.Last(); !ok || last.IsIndex() || last.Name() != "x-nullable" {
		return nil, nil
	}
	leftValue, rightValue := schemautil.XNullable(left), schemautil.XNullable(right)
	if leftValue == rightValue {
		return nil, nil
	}
	return []ChangedXNullableDiff{{
		Path:    path,
		Mapping: walker.NewEntityMapping(leftValue, rightValue),
	}}, nil
}
