// Copyright 2011 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ldapfilter

import (
	"errors"
	"testing"
)

func TestLowerEquality(t *testing.T) {
	schema := NewDirectorySchema()
	f, err := Decode("(cn=Jane Doe)")
	if err != nil {
		t.Fatalf("Decode returned error: %v", err)
	}
	lowered, err := Lower(f, schema)
	if err != nil {
		t.Fatalf("Lower returned error: %v", err)
	}
	a, ok := lowered.(*SchemaAttributeAssertionFilter)
	if !ok {
		t.Fatalf("Lower() = %#v, want *SchemaAttributeAssertionFilter", lowered)
	}
	if a.Attribute.String() != "cn" || string(a.Value) != "Jane Doe" {
		t.Errorf("got %#v", a)
	}
}

func TestLowerUnknownAttribute(t *testing.T) {
	schema := NewDirectorySchema()
	f, err := Decode("(nosuchattr=a)")
	if err != nil {
		t.Fatalf("Decode returned error: %v", err)
	}
	_, err = Lower(f, schema)
	pe, ok := err.(*ProtocolError)
	if !ok {
		t.Fatalf("error = %v, want *ProtocolError", err)
	}
	if pe.Kind != ErrAttributeDescriptionInvalid {
		t.Errorf("Kind = %v, want ErrAttributeDescriptionInvalid", pe.Kind)
	}
	if !errors.As(err, &pe) || pe.Cause == nil {
		t.Errorf("expected a wrapped Cause from the schema")
	}
}

func TestLowerCompoundSingleChildSimplification(t *testing.T) {
	schema := NewDirectorySchema()
	f, err := Decode("(&(cn=a))")
	if err != nil {
		t.Fatalf("Decode returned error: %v", err)
	}
	lowered, err := Lower(f, schema)
	if err != nil {
		t.Fatalf("Lower returned error: %v", err)
	}
	if _, ok := lowered.(*SchemaAttributeAssertionFilter); !ok {
		t.Errorf("Lower(single-child And) = %T, want the bare child, not *SchemaCompoundFilter", lowered)
	}
}

func TestLowerCompoundMultiChildPreserved(t *testing.T) {
	schema := NewDirectorySchema()
	f, err := Decode("(&(cn=a)(sn=b))")
	if err != nil {
		t.Fatalf("Decode returned error: %v", err)
	}
	lowered, err := Lower(f, schema)
	if err != nil {
		t.Fatalf("Lower returned error: %v", err)
	}
	c, ok := lowered.(*SchemaCompoundFilter)
	if !ok || len(c.Children) != 2 {
		t.Fatalf("got %#v", lowered)
	}
}

func TestLowerNot(t *testing.T) {
	schema := NewDirectorySchema()
	f, err := Decode("(!(cn=a))")
	if err != nil {
		t.Fatalf("Decode returned error: %v", err)
	}
	lowered, err := Lower(f, schema)
	if err != nil {
		t.Fatalf("Lower returned error: %v", err)
	}
	n, ok := lowered.(*SchemaNotFilter)
	if !ok {
		t.Fatalf("got %#v", lowered)
	}
	if _, ok := n.Child.(*SchemaAttributeAssertionFilter); !ok {
		t.Errorf("Child = %T, want *SchemaAttributeAssertionFilter", n.Child)
	}
}

func TestLowerPresent(t *testing.T) {
	schema := NewDirectorySchema()
	f, err := Decode("(objectclass=*)")
	if err != nil {
		t.Fatalf("Decode returned error: %v", err)
	}
	lowered, err := Lower(f, schema)
	if err != nil {
		t.Fatalf("Lower returned error: %v", err)
	}
	p, ok := lowered.(*SchemaPresentFilter)
	if !ok || p.Attribute.String() != "objectclass" {
		t.Errorf("got %#v", lowered)
	}
}

func TestLowerSubstring(t *testing.T) {
	schema := NewDirectorySchema()
	f, err := Decode("(cn=Jo*n*)")
	if err != nil {
		t.Fatalf("Decode returned error: %v", err)
	}
	lowered, err := Lower(f, schema)
	if err != nil {
		t.Fatalf("Lower returned error: %v", err)
	}
	s, ok := lowered.(*SchemaSubstringFilter)
	if !ok || s.Attribute.String() != "cn" || string(s.Initial) != "Jo" {
		t.Errorf("got %#v", lowered)
	}
}

func TestLowerExtensibleMatchWithKnownRule(t *testing.T) {
	schema := NewDirectorySchema()
	f, err := Decode("(cn:caseExactMatch:=Foo)")
	if err != nil {
		t.Fatalf("Decode returned error: %v", err)
	}
	lowered, err := Lower(f, schema)
	if err != nil {
		t.Fatalf("Lower returned error: %v", err)
	}
	e, ok := lowered.(*SchemaExtensibleMatchFilter)
	if !ok {
		t.Fatalf("got %#v", lowered)
	}
	if e.Attribute.String() != "cn" {
		t.Errorf("Attribute = %v, want cn", e.Attribute)
	}
	if e.MatchingRule.String() != matchingRuleCaseExactMatch {
		t.Errorf("MatchingRule = %v, want %v", e.MatchingRule, matchingRuleCaseExactMatch)
	}
}

func TestLowerExtensibleMatchUnknownRule(t *testing.T) {
	schema := NewDirectorySchema()
	f, err := Decode("(cn:bogusMatch:=Foo)")
	if err != nil {
		t.Fatalf("Decode returned error: %v", err)
	}
	_, err = Lower(f, schema)
	ime, ok := err.(*InappropriateMatchingError)
	if !ok {
		t.Fatalf("error = %v (%T), want *InappropriateMatchingError", err, err)
	}
	if ime.Identifier != "bogusMatch" {
		t.Errorf("Identifier = %q, want %q", ime.Identifier, "bogusMatch")
	}
	if ime.Cause == nil {
		t.Errorf("Cause = nil, want the schema's underlying error")
	}
}

func TestLowerExtensibleMatchDNOnly(t *testing.T) {
	// ":dn:2.5.13.5:=Foo" has no attribute description, only a dn flag and an
	// OID matching rule; Lower must resolve the rule alone without requiring
	// an attribute.
	schema := NewDirectorySchema()
	f, err := Decode("(:dn:2.5.13.5:=Foo)")
	if err != nil {
		t.Fatalf("Decode returned error: %v", err)
	}
	lowered, err := Lower(f, schema)
	if err != nil {
		t.Fatalf("Lower returned error: %v", err)
	}
	e, ok := lowered.(*SchemaExtensibleMatchFilter)
	if !ok {
		t.Fatalf("got %#v", lowered)
	}
	if e.Attribute != nil {
		t.Errorf("Attribute = %v, want nil", e.Attribute)
	}
	if !e.DNAttributes {
		t.Errorf("DNAttributes = false, want true")
	}
	if e.MatchingRule == nil || e.MatchingRule.String() != matchingRuleCaseExactMatch {
		t.Errorf("MatchingRule = %v, want %v", e.MatchingRule, matchingRuleCaseExactMatch)
	}
}

func TestDirectorySchemaParseAttributeDescriptionStripsOptions(t *testing.T) {
	schema := NewDirectorySchema()
	attr, err := schema.ParseAttributeDescription("cn;lang-fr")
	if err != nil {
		t.Fatalf("ParseAttributeDescription returned error: %v", err)
	}
	if attr.String() != "cn" {
		t.Errorf("String() = %q, want %q", attr.String(), "cn")
	}
}

func TestDirectorySchemaLookupMatchingRuleByOID(t *testing.T) {
	schema := NewDirectorySchema()
	rule, err := schema.LookupMatchingRule(matchingRuleCaseIgnoreMatch)
	if err != nil {
		t.Fatalf("LookupMatchingRule returned error: %v", err)
	}
	if rule.String() != matchingRuleCaseIgnoreMatch {
		t.Errorf("String() = %q, want %q", rule.String(), matchingRuleCaseIgnoreMatch)
	}
}
