// Copyright 2011 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// File contains the printer: the inverse of decode.go for every filter the
// decoder can produce (RFC 4515 §4.3).
package ldapfilter

import "strings"

// Print renders f as an RFC 4515 textual search filter. For every f
// produced by Decode, Decode(Print(f)) reproduces f structurally, and
// Print is idempotent over that round trip.
func Print(f Filter) string {
	var b strings.Builder
	printTo(&b, f)
	return b.String()
}

func printTo(b *strings.Builder, f Filter) {
	switch v := f.(type) {
	case *CompoundFilter:
		b.WriteByte('(')
		switch v.kind {
		case KindAnd:
			b.WriteByte('&')
		case KindOr:
			b.WriteByte('|')
		}
		for _, child := range v.Children {
			printTo(b, child)
		}
		b.WriteByte(')')
	case *NotFilter:
		b.WriteString("(!")
		printTo(b, v.Child)
		b.WriteByte(')')
	case *AttributeAssertionFilter:
		b.WriteByte('(')
		b.WriteString(v.Attribute)
		b.WriteString(operatorFor(v.kind))
		b.WriteString(escapeValue(v.Value))
		b.WriteByte(')')
	case *PresentFilter:
		b.WriteByte('(')
		b.WriteString(v.Attribute)
		b.WriteString("=*)")
	case *SubstringFilter:
		b.WriteByte('(')
		b.WriteString(v.Attribute)
		b.WriteByte('=')
		if v.Initial != nil {
			b.WriteString(escapeValue(v.Initial))
		}
		for _, any := range v.SubAny {
			b.WriteByte('*')
			b.WriteString(escapeValue(any))
		}
		b.WriteByte('*')
		if v.Final != nil {
			b.WriteString(escapeValue(v.Final))
		}
		b.WriteByte(')')
	case *ExtensibleMatchFilter:
		b.WriteByte('(')
		if v.Attribute != nil {
			b.WriteString(*v.Attribute)
		}
		if v.DNAttributes {
			b.WriteString(":dn")
		}
		if v.MatchingRule != nil {
			b.WriteByte(':')
			b.WriteString(*v.MatchingRule)
		}
		b.WriteString(":=")
		b.WriteString(escapeValue(v.Value))
		b.WriteByte(')')
	}
}

func operatorFor(kind Kind) string {
	switch kind {
	case KindGreaterOrEqual:
		return ">="
	case KindLessOrEqual:
		return "<="
	case KindApproximateMatch:
		return "~="
	default:
		return "="
	}
}
