// Copyright 2011 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package ldapfilter implements a codec for RFC 4515 LDAP search filters: a
// recursive-descent decoder from text to an in-memory Filter AST, a printer
// back to text, and a lowering step onto a schema-validated filter supplied
// by an external Schema collaborator.
//
// The package is purely synchronous and does no I/O; two goroutines may
// decode or print distinct filters concurrently without coordination, and a
// Filter returned by Decode is safe to share across goroutines so long as it
// is not mutated.
package ldapfilter
