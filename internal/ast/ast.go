// Copyright 2018 The Solid Core Data Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package ast holds the one parsed fragment the parser can't hand off to
// engine.Service directly: a CREATE TABLE column list. The other three
// statement forms carry no shape beyond what engine.CreateTableRequest/
// InsertRequest/SelectRequest already express, so the parser builds those
// directly instead of going through an intermediate statement value.
package ast

// DataType is the closed set of column types a CREATE TABLE column can
// declare.
type DataType int

const (
	Int DataType = iota
	String
)

// ColumnDef is one parsed "<ident> (INT|STRING)" entry from a CREATE TABLE
// column list.
type ColumnDef struct {
	Name     string
	DataType DataType
}
