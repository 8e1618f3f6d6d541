// Copyright 2011 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// File contains the recursive-descent filter decoder (RFC 4515 §4.2).
package ldapfilter

import (
	"fmt"
	"log"
	"strings"
)

// Decode parses an RFC 4515 textual search filter into a Filter AST.
func Decode(filter string) (f Filter, err error) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("ldapfilter: recovered from panic while decoding %q: %v", filter, r)
			f = nil
			err = newWrappedError(ErrUncaughtException, fmt.Errorf("%v", r), fmt.Sprintf("uncaught exception decoding %q", filter))
		}
	}()

	data := []byte(filter)
	if len(data) == 0 {
		return nil, newError(ErrEmptyFilter, "filter is empty")
	}
	if len(data) > 1 && data[0] == '\'' && data[len(data)-1] == '\'' {
		return nil, newError(ErrEnclosedInApostrophes, "filter is enclosed in apostrophes")
	}
	return decodeRange(data, 0, len(data))
}

// decodeRange decodes the filter in data[start:end]. It is the per-invocation
// recursive step: strip one layer of parentheses, then dispatch on the first
// byte.
func decodeRange(data []byte, start, end int) (Filter, error) {
	if start < end && data[start] == '(' {
		if data[end-1] != ')' {
			return nil, newPosError(ErrMismatchedParentheses, start, "filter opens with '(' but does not close with ')'")
		}
		start++
		end--
	}

	if start >= end {
		return nil, newPosError(ErrEmptyFilter, start, "empty filter")
	}

	switch data[start] {
	case '&':
		return decodeCompound(KindAnd, data, start+1, end)
	case '|':
		return decodeCompound(KindOr, data, start+1, end)
	case '!':
		return decodeCompound(KindNot, data, start+1, end)
	default:
		return decodeSimple(data, start, end)
	}
}

// decodeCompound decodes the body of an And/Or/Not filter: a concatenation
// of zero or more parenthesised sub-filters.
func decodeCompound(kind Kind, data []byte, start, end int) (Filter, error) {
	if start == end {
		if kind == KindNot {
			return nil, newPosError(ErrNotRequiresExactlyOne, start, "'!' requires exactly one child filter")
		}
		return &CompoundFilter{kind: kind, Children: nil}, nil
	}

	var children []Filter
	depth := 0
	openPos := -1
	for i := start; i < end; i++ {
		switch data[i] {
		case '(':
			if depth == 0 {
				openPos = i
			}
			depth++
		case ')':
			depth--
			if depth < 0 {
				return nil, newPosError(ErrNoCorrespondingOpenParenthesis, i, "')' has no matching '('")
			}
			if depth == 0 {
				child, err := decodeRange(data, openPos, i+1)
				if err != nil {
					return nil, err
				}
				children = append(children, child)
				openPos = -1
			}
		default:
			if depth == 0 {
				return nil, newPosError(ErrCompoundMissingParentheses, i, "byte outside any parenthesised sub-filter")
			}
		}
	}
	if depth != 0 {
		return nil, newPosError(ErrNoCorrespondingCloseParenthesis, end, "'(' has no matching ')'")
	}

	if kind == KindNot {
		if len(children) != 1 {
			return nil, newPosError(ErrNotRequiresExactlyOne, start, "'!' requires exactly one child filter")
		}
		return &NotFilter{Child: children[0]}, nil
	}
	return &CompoundFilter{kind: kind, Children: children}, nil
}

func isAttrChar(b byte) bool {
	switch {
	case b >= 'A' && b <= 'Z', b >= 'a' && b <= 'z', b >= '0' && b <= '9':
		return true
	case b == '-' || b == '_' || b == ';' || b == '=':
		return true
	default:
		return false
	}
}

func containsAsterisk(data []byte) bool {
	for _, b := range data {
		if b == '*' {
			return true
		}
	}
	return false
}

func buildAssertion(kind Kind, attribute string, value []byte) Filter {
	if value == nil {
		value = []byte{}
	}
	return &AttributeAssertionFilter{kind: kind, Attribute: attribute, Value: value}
}

// decodeSimple decodes a non-compound filter: an attribute/operator/value
// triple, a presence test, a substring filter, or an extensible match.
func decodeSimple(data []byte, start, end int) (Filter, error) {
	equalPos := -1
	for i := start; i < end; i++ {
		if data[i] == '=' {
			equalPos = i
			break
		}
	}
	if equalPos == -1 || equalPos == start {
		return nil, newPosError(ErrNoEqualSign, start, "filter has no '=' operator")
	}

	var kind Kind
	attrEnd := equalPos
	switch data[equalPos-1] {
	case '~':
		kind = KindApproximateMatch
		attrEnd = equalPos - 1
	case '>':
		kind = KindGreaterOrEqual
		attrEnd = equalPos - 1
	case '<':
		kind = KindLessOrEqual
		attrEnd = equalPos - 1
	case ':':
		return decodeExtensibleMatch(data, start, equalPos, end)
	default:
		kind = KindEquality
		attrEnd = equalPos
	}

	for i := start; i < attrEnd; i++ {
		if !isAttrChar(data[i]) {
			return nil, newPosError(ErrInvalidCharInAttrType, i,
				fmt.Sprintf("invalid character %q in attribute type %q", data[i], string(data[start:attrEnd])))
		}
	}
	attribute := string(data[start:attrEnd])

	rawValue := data[equalPos+1 : end]

	if kind != KindEquality {
		// Only a bare '=' ever triggers the presence/substring dispatch
		// below; relational operators always carry their value literally,
		// asterisks included. See DESIGN.md's open-question decision.
		value, err := decodeEscapes(rawValue, equalPos+1)
		if err != nil {
			return nil, err
		}
		return buildAssertion(kind, attribute, value), nil
	}

	switch {
	case len(rawValue) == 0:
		return buildAssertion(KindEquality, attribute, nil), nil
	case len(rawValue) == 1 && rawValue[0] == '*':
		return NewPresentFilter(attribute), nil
	case containsAsterisk(rawValue):
		return decodeSubstring(attribute, rawValue, equalPos+1)
	default:
		value, err := decodeEscapes(rawValue, equalPos+1)
		if err != nil {
			return nil, err
		}
		return buildAssertion(KindEquality, attribute, value), nil
	}
}

// decodeSubstring decodes the value of an equality filter that contains at
// least one asterisk but is not itself a single asterisk.
func decodeSubstring(attribute string, value []byte, base int) (Filter, error) {
	var asteriskPositions []int
	for i, b := range value {
		if b == '*' {
			asteriskPositions = append(asteriskPositions, i)
		}
	}
	if len(asteriskPositions) == 0 {
		return nil, newPosError(ErrSubstringNoAsterisks, base, "substring value has no '*'")
	}

	var initial []byte
	var subAny [][]byte
	var final []byte

	segStart := 0
	for idx, pos := range asteriskPositions {
		segment := value[segStart:pos]
		decoded, err := decodeEscapes(segment, base+segStart)
		if err != nil {
			return nil, err
		}
		if idx == 0 {
			if len(segment) > 0 {
				initial = decoded
			}
		} else {
			subAny = append(subAny, decoded)
		}
		segStart = pos + 1
	}

	tail := value[segStart:]
	if len(tail) > 0 {
		decoded, err := decodeEscapes(tail, base+segStart)
		if err != nil {
			return nil, err
		}
		final = decoded
	}

	return &SubstringFilter{Attribute: attribute, Initial: initial, SubAny: subAny, Final: final}, nil
}

// decodeExtensibleMatch decodes the `[attr][:dn][:rule]:=value` form. equalPos
// is the index of '=' and data[equalPos-1] is the ':' of the ":=" operator.
func decodeExtensibleMatch(data []byte, start, equalPos, end int) (Filter, error) {
	prefix := string(data[start : equalPos-1])
	lower := strings.ToLower(prefix)

	var attr, rule *string
	var dn bool

	if strings.HasPrefix(prefix, ":") {
		dn, rule = parseDNAndRule(prefix[1:], lower[1:])
	} else if colonIdx := strings.IndexByte(prefix, ':'); colonIdx == -1 {
		// No second colon: prefix is a bare attribute description with
		// neither ":dn" nor a matching rule, e.g. "cn:=Foo".
		if prefix != "" {
			attrText := prefix
			attr = &attrText
		}
	} else {
		if attrText := prefix[:colonIdx]; attrText != "" {
			attr = &attrText
		}
		dn, rule = parseDNAndRule(prefix[colonIdx+1:], lower[colonIdx+1:])
	}

	if attr == nil && rule == nil {
		return nil, newPosError(ErrExtensibleMatchNoAttributeOrRule, start, "extensible match has neither attribute description nor matching rule")
	}

	rawValue := data[equalPos+1 : end]
	value, err := decodeEscapes(rawValue, equalPos+1)
	if err != nil {
		return nil, err
	}

	return &ExtensibleMatchFilter{Attribute: attr, MatchingRule: rule, DNAttributes: dn, Value: value}, nil
}

// parseDNAndRule splits the text following the attribute description (or
// following the leading ':' when there is no attribute description) into
// the dnAttributes flag and an optional matching-rule identifier. lowerS
// must be the ASCII-lowercased form of s, used only for structural matching.
func parseDNAndRule(s, lowerS string) (dnAttributes bool, rule *string) {
	switch {
	case lowerS == "dn":
		return true, nil
	case strings.HasPrefix(lowerS, "dn:"):
		if r := s[3:]; r != "" {
			return true, &r
		}
		return true, nil
	case s == "":
		return false, nil
	default:
		r := s
		return false, &r
	}
}
