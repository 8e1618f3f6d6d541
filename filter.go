// Copyright 2011 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// File contains the Filter AST: a tagged variant with one case per LDAP
// search-filter kind, as defined in RFC 4515.
package ldapfilter

import "sync"

// Kind identifies which case of the Filter variant a value holds.
type Kind int

const (
	KindAnd Kind = iota
	KindOr
	KindNot
	KindEquality
	KindGreaterOrEqual
	KindLessOrEqual
	KindApproximateMatch
	KindSubstring
	KindPresent
	KindExtensibleMatch
)

var kindNames = map[Kind]string{
	KindAnd:              "And",
	KindOr:               "Or",
	KindNot:              "Not",
	KindEquality:         "Equality",
	KindGreaterOrEqual:   "GreaterOrEqual",
	KindLessOrEqual:      "LessOrEqual",
	KindApproximateMatch: "ApproximateMatch",
	KindSubstring:        "Substring",
	KindPresent:          "Present",
	KindExtensibleMatch:  "ExtensibleMatch",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "Unknown"
}

// Filter is a node of the filter AST. Each concrete type below carries only
// the fields relevant to its own Kind; there is no shared nullable-field
// struct behind the interface.
type Filter interface {
	Kind() Kind
}

// CompoundFilter is the And/Or case: an ordered sequence of child filters,
// possibly empty (the LDAP absolute-true/absolute-false filter).
type CompoundFilter struct {
	kind     Kind
	Children []Filter
}

func (f *CompoundFilter) Kind() Kind { return f.kind }

// NotFilter negates exactly one child filter.
type NotFilter struct {
	Child Filter
}

func (f *NotFilter) Kind() Kind { return KindNot }

// AttributeAssertionFilter is the shape shared by Equality, GreaterOrEqual,
// LessOrEqual and ApproximateMatch: an attribute description and an
// assertion value (an arbitrary, possibly empty, octet string).
type AttributeAssertionFilter struct {
	kind      Kind
	Attribute string
	Value     []byte
}

func (f *AttributeAssertionFilter) Kind() Kind { return f.kind }

// PresentFilter matches any entry that has a value for Attribute.
type PresentFilter struct {
	Attribute string
}

func (f *PresentFilter) Kind() Kind { return KindPresent }

// SubstringFilter matches values that begin with, contain, and/or end with
// given fragments. Initial and Final are nil when absent; SubAny holds one
// entry per pair of consecutive asterisks in the source, including
// zero-length ones (see the open question in DESIGN.md).
type SubstringFilter struct {
	Attribute string
	Initial   []byte
	SubAny    [][]byte
	Final     []byte
}

func (f *SubstringFilter) Kind() Kind { return KindSubstring }

// ExtensibleMatchFilter is the `[attr][:dn][:rule]:=value` form. Attribute
// and MatchingRule are nil when absent; at least one of the two is always
// non-nil in a Filter produced by Decode.
type ExtensibleMatchFilter struct {
	Attribute    *string
	MatchingRule *string
	DNAttributes bool
	Value        []byte
}

func (f *ExtensibleMatchFilter) Kind() Kind { return KindExtensibleMatch }

// NewAndFilter builds an And filter. A nil or empty children slice is the
// LDAP absolute-true filter.
func NewAndFilter(children ...Filter) Filter {
	return &CompoundFilter{kind: KindAnd, Children: children}
}

// NewOrFilter builds an Or filter. A nil or empty children slice is the LDAP
// absolute-false filter.
func NewOrFilter(children ...Filter) Filter {
	return &CompoundFilter{kind: KindOr, Children: children}
}

// NewNotFilter builds a Not filter negating child.
func NewNotFilter(child Filter) Filter {
	return &NotFilter{Child: child}
}

// NewEqualityFilter builds an Equality filter.
func NewEqualityFilter(attribute string, value []byte) Filter {
	return &AttributeAssertionFilter{kind: KindEquality, Attribute: attribute, Value: value}
}

// NewGreaterOrEqualFilter builds a GreaterOrEqual filter.
func NewGreaterOrEqualFilter(attribute string, value []byte) Filter {
	return &AttributeAssertionFilter{kind: KindGreaterOrEqual, Attribute: attribute, Value: value}
}

// NewLessOrEqualFilter builds a LessOrEqual filter.
func NewLessOrEqualFilter(attribute string, value []byte) Filter {
	return &AttributeAssertionFilter{kind: KindLessOrEqual, Attribute: attribute, Value: value}
}

// NewApproximateMatchFilter builds an ApproximateMatch filter.
func NewApproximateMatchFilter(attribute string, value []byte) Filter {
	return &AttributeAssertionFilter{kind: KindApproximateMatch, Attribute: attribute, Value: value}
}

// NewPresentFilter builds a Present filter for attribute.
func NewPresentFilter(attribute string) Filter {
	return &PresentFilter{Attribute: attribute}
}

// NewSubstringFilter builds a Substring filter. Pass nil for an absent
// initial or final fragment.
func NewSubstringFilter(attribute string, initial []byte, subAny [][]byte, final []byte) Filter {
	return &SubstringFilter{Attribute: attribute, Initial: initial, SubAny: subAny, Final: final}
}

// NewExtensibleMatchFilter builds an ExtensibleMatch filter. Pass nil for an
// absent attribute description or matching-rule identifier.
func NewExtensibleMatchFilter(attribute, matchingRule *string, dnAttributes bool, value []byte) Filter {
	return &ExtensibleMatchFilter{
		Attribute:    attribute,
		MatchingRule: matchingRule,
		DNAttributes: dnAttributes,
		Value:        value,
	}
}

var (
	objectClassPresentOnce   sync.Once
	objectClassPresentFilter Filter
)

// PresentFilterFor is a pure construction helper returning a fresh Present
// filter for attribute.
func PresentFilterFor(attribute string) Filter {
	return NewPresentFilter(attribute)
}

// ObjectClassPresentFilter returns a cached (objectclass=*) filter, lazily
// built on first use. The source interned this single filter in process-wide
// state as a caching optimization; ObjectClassPresentFilter preserves the
// caching without the rest of the process-wide state.
func ObjectClassPresentFilter() Filter {
	objectClassPresentOnce.Do(func() {
		objectClassPresentFilter = NewPresentFilter("objectclass")
	})
	return objectClassPresentFilter
}
