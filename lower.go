// Copyright 2011 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// File contains lowering: projecting a Filter AST onto a schema-validated
// filter, by resolving attribute descriptions and matching-rule identifiers
// through an external Schema collaborator.
package ldapfilter

// AttributeDescription is an opaque handle for a schema-resolved attribute
// description. This package never inspects it beyond String(); a real
// implementation is supplied by whatever schema subsystem a caller has.
type AttributeDescription interface {
	String() string
}

// MatchingRule is an opaque handle for a schema-resolved matching rule.
type MatchingRule interface {
	String() string
}

// Schema resolves the textual identifiers a Filter AST carries into
// schema-aware handles. Production callers supply their own Schema backed by
// a real directory schema; directoryschema.go supplies one small in-memory
// implementation this package's tests use.
type Schema interface {
	ParseAttributeDescription(text string) (AttributeDescription, error)
	LookupMatchingRule(identifier string) (MatchingRule, error)
}

// SchemaFilter is the schema-validated counterpart of Filter: the same
// shape, with attribute descriptions and matching-rule identifiers resolved
// to handles instead of raw text.
type SchemaFilter interface {
	Kind() Kind
}

type SchemaCompoundFilter struct {
	kind     Kind
	Children []SchemaFilter
}

func (f *SchemaCompoundFilter) Kind() Kind { return f.kind }

type SchemaNotFilter struct {
	Child SchemaFilter
}

func (f *SchemaNotFilter) Kind() Kind { return KindNot }

type SchemaAttributeAssertionFilter struct {
	kind      Kind
	Attribute AttributeDescription
	Value     []byte
}

func (f *SchemaAttributeAssertionFilter) Kind() Kind { return f.kind }

type SchemaPresentFilter struct {
	Attribute AttributeDescription
}

func (f *SchemaPresentFilter) Kind() Kind { return KindPresent }

type SchemaSubstringFilter struct {
	Attribute AttributeDescription
	Initial   []byte
	SubAny    [][]byte
	Final     []byte
}

func (f *SchemaSubstringFilter) Kind() Kind { return KindSubstring }

// SchemaExtensibleMatchFilter mirrors ExtensibleMatchFilter with resolved
// handles. Attribute and MatchingRule are nil exactly when the source
// Filter's corresponding field was nil.
type SchemaExtensibleMatchFilter struct {
	Attribute    AttributeDescription
	MatchingRule MatchingRule
	DNAttributes bool
	Value        []byte
}

func (f *SchemaExtensibleMatchFilter) Kind() Kind { return KindExtensibleMatch }

// Lower projects f onto a schema-validated filter. An And/Or node with
// exactly one child is replaced by that child's lowering, per spec.
func Lower(f Filter, schema Schema) (SchemaFilter, error) {
	switch v := f.(type) {
	case *CompoundFilter:
		children := make([]SchemaFilter, 0, len(v.Children))
		for _, child := range v.Children {
			lowered, err := Lower(child, schema)
			if err != nil {
				return nil, err
			}
			children = append(children, lowered)
		}
		if len(children) == 1 {
			return children[0], nil
		}
		return &SchemaCompoundFilter{kind: v.kind, Children: children}, nil

	case *NotFilter:
		child, err := Lower(v.Child, schema)
		if err != nil {
			return nil, err
		}
		return &SchemaNotFilter{Child: child}, nil

	case *AttributeAssertionFilter:
		attr, err := resolveAttribute(schema, v.Attribute)
		if err != nil {
			return nil, err
		}
		return &SchemaAttributeAssertionFilter{kind: v.kind, Attribute: attr, Value: v.Value}, nil

	case *PresentFilter:
		attr, err := resolveAttribute(schema, v.Attribute)
		if err != nil {
			return nil, err
		}
		return &SchemaPresentFilter{Attribute: attr}, nil

	case *SubstringFilter:
		attr, err := resolveAttribute(schema, v.Attribute)
		if err != nil {
			return nil, err
		}
		return &SchemaSubstringFilter{Attribute: attr, Initial: v.Initial, SubAny: v.SubAny, Final: v.Final}, nil

	case *ExtensibleMatchFilter:
		var attr AttributeDescription
		var rule MatchingRule
		if v.Attribute != nil {
			a, err := resolveAttribute(schema, *v.Attribute)
			if err != nil {
				return nil, err
			}
			attr = a
		}
		if v.MatchingRule != nil {
			r, err := schema.LookupMatchingRule(*v.MatchingRule)
			if err != nil {
				return nil, &InappropriateMatchingError{Identifier: *v.MatchingRule, Cause: err}
			}
			rule = r
		}
		if attr == nil && rule == nil {
			return nil, newError(ErrValueWithNoAttributeOrMatchingRule,
				"extensible match has neither attribute description nor matching rule")
		}
		return &SchemaExtensibleMatchFilter{Attribute: attr, MatchingRule: rule, DNAttributes: v.DNAttributes, Value: v.Value}, nil

	default:
		return nil, newError(ErrUncaughtException, "unrecognized Filter implementation during lowering")
	}
}

func resolveAttribute(schema Schema, text string) (AttributeDescription, error) {
	attr, err := schema.ParseAttributeDescription(text)
	if err != nil {
		return nil, newWrappedError(ErrAttributeDescriptionInvalid, err,
			"schema rejected attribute description "+text)
	}
	return attr, nil
}
