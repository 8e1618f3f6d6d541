// Copyright 2011 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// File contains the \HH escape codec used by filter values (RFC 4515 §3).
// The source carried this as two single-line TODO stubs ("Really unescape" /
// "Really escape"); this is the real implementation.
package ldapfilter

const hexDigits = "0123456789ABCDEF"

func isHexDigit(b byte) bool {
	return (b >= '0' && b <= '9') || (b >= 'a' && b <= 'f') || (b >= 'A' && b <= 'F')
}

func hexNibble(b byte) byte {
	switch {
	case b >= '0' && b <= '9':
		return b - '0'
	case b >= 'a' && b <= 'f':
		return b - 'a' + 10
	default: // 'A'..'F'
		return b - 'A' + 10
	}
}

// decodeEscapes decodes every \HH escape in data into its octet, copying
// every other byte verbatim. base is the byte offset of data[0] within the
// original filter string, used to report absolute error positions.
//
// If data contains no backslash, the returned slice aliases data directly
// (the fast path): the caller must not hold onto data and later mutate it
// through another reference, and the returned Filter's lifetime pins data's
// backing array alive, which is always true since data itself is a slice of
// the private byte copy of the filter string that Decode makes.
func decodeEscapes(data []byte, base int) ([]byte, error) {
	firstBackslash := -1
	for i, b := range data {
		if b == '\\' {
			firstBackslash = i
			break
		}
	}
	if firstBackslash == -1 {
		return data, nil
	}

	out := make([]byte, 0, len(data))
	out = append(out, data[:firstBackslash]...)

	for i := firstBackslash; i < len(data); i++ {
		if data[i] != '\\' {
			out = append(out, data[i])
			continue
		}
		if i+2 >= len(data) {
			return nil, newPosError(ErrInvalidEscapedByte, base+i+1, "truncated escape sequence")
		}
		hi, lo := data[i+1], data[i+2]
		if !isHexDigit(hi) {
			return nil, newPosError(ErrInvalidEscapedByte, base+i+1, "invalid hex digit in escape sequence")
		}
		if !isHexDigit(lo) {
			return nil, newPosError(ErrInvalidEscapedByte, base+i+2, "invalid hex digit in escape sequence")
		}
		out = append(out, hexNibble(hi)<<4|hexNibble(lo))
		i += 2
	}
	return out, nil
}

// escapeValue re-escapes the bytes in value that would otherwise be
// misinterpreted when printed inside a filter: NUL, '(', ')', '*' and '\'.
// Every other byte, including invalid UTF-8, is emitted verbatim.
func escapeValue(value []byte) string {
	needsEscape := false
	for _, b := range value {
		if mustEscape(b) {
			needsEscape = true
			break
		}
	}
	if !needsEscape {
		return string(value)
	}

	out := make([]byte, 0, len(value)+4)
	for _, b := range value {
		if mustEscape(b) {
			out = append(out, '\\', hexDigits[b>>4], hexDigits[b&0x0f])
			continue
		}
		out = append(out, b)
	}
	return string(out)
}

func mustEscape(b byte) bool {
	switch b {
	case 0x00, '(', ')', '*', '\\':
		return true
	default:
		return false
	}
}
