// Copyright 2012 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// File contains a minimal, in-memory Schema implementation used by this
// package's own tests. The source's Entry/EntryAttribute pair modeled a
// directory entry fetched over the wire; repurposed here, the same shape —
// a name plus a fixed set of known attributes — models a known attribute
// type instead.
package ldapfilter

import "strings"

// Known matching-rule OIDs, in the dotted-decimal style the source used for
// its LDAP control OIDs (control.go's ControlTypePaging and friends).
const (
	matchingRuleCaseIgnoreMatch   = "2.5.13.2"
	matchingRuleCaseExactMatch    = "2.5.13.5"
	matchingRuleDistinguishedName = "2.5.13.1"
)

// AttributeType is a concrete AttributeDescription handle naming a known
// directory attribute type.
type AttributeType struct {
	Name string
}

func (a *AttributeType) String() string { return a.Name }

// MatchingRuleDescription is a concrete MatchingRule handle naming a known
// matching rule by OID or short name.
type MatchingRuleDescription struct {
	OID string
}

func (m *MatchingRuleDescription) String() string { return m.OID }

// DirectorySchema is a small, fixed Schema backed by in-memory tables of
// known attribute types and matching-rule OIDs. It exists for this
// package's own tests; production callers are expected to supply a Schema
// backed by a real schema subsystem.
type DirectorySchema struct {
	attributeTypes map[string]*AttributeType
	matchingRules  map[string]*MatchingRuleDescription
}

// NewDirectorySchema builds a DirectorySchema seeded with a small set of
// attribute types commonly seen in LDAP search filters (cn, sn, uid,
// objectclass, ou, mail, uniqueMember) and matching rules named by OID
// (caseIgnoreMatch, caseExactMatch, distinguishedNameMatch) and by their
// short names.
func NewDirectorySchema() *DirectorySchema {
	s := &DirectorySchema{
		attributeTypes: make(map[string]*AttributeType),
		matchingRules:  make(map[string]*MatchingRuleDescription),
	}
	for _, name := range []string{"cn", "sn", "uid", "objectclass", "ou", "mail", "uniqueMember"} {
		s.attributeTypes[strings.ToLower(name)] = &AttributeType{Name: name}
	}
	rules := map[string]string{
		"caseignorematch":             matchingRuleCaseIgnoreMatch,
		matchingRuleCaseIgnoreMatch:   matchingRuleCaseIgnoreMatch,
		"caseexactmatch":              matchingRuleCaseExactMatch,
		matchingRuleCaseExactMatch:    matchingRuleCaseExactMatch,
		"distinguishednamematch":      matchingRuleDistinguishedName,
		matchingRuleDistinguishedName: matchingRuleDistinguishedName,
	}
	for key, oid := range rules {
		s.matchingRules[key] = &MatchingRuleDescription{OID: oid}
	}
	return s
}

// ParseAttributeDescription implements Schema. It strips any attribute
// options (the part from the first ';' onward) before lookup, since options
// select a subtype of a known attribute rather than naming a new one.
func (s *DirectorySchema) ParseAttributeDescription(text string) (AttributeDescription, error) {
	if text == "" {
		return nil, newError(ErrAttributeDescriptionInvalid, "attribute description is empty")
	}
	base := text
	if idx := strings.IndexByte(text, ';'); idx >= 0 {
		base = text[:idx]
	}
	if at, ok := s.attributeTypes[strings.ToLower(base)]; ok {
		return at, nil
	}
	return nil, newError(ErrAttributeDescriptionInvalid, "unknown attribute type "+base)
}

// LookupMatchingRule implements Schema.
func (s *DirectorySchema) LookupMatchingRule(identifier string) (MatchingRule, error) {
	if rule, ok := s.matchingRules[strings.ToLower(identifier)]; ok {
		return rule, nil
	}
	return nil, newError(ErrAttributeDescriptionInvalid, "unknown matching rule "+identifier)
}
