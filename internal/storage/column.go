// Copyright 2018 The Solid Core Data Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package storage implements the paged, row-oriented table engine: fixed-
// size pages over an append-only region of a backing file, with demand-load
// from disk, in-place writes, and durable flush after every insert.
//
// The binary layout here is generalized from the teacher's table
// serialization package (ts.Col / ts.FieldCoder): a small coder keyed by
// DataType, each knowing its own fixed width and how to encode/decode a
// value into a byte slot.
package storage

import (
	"fmt"
	"unicode/utf8"

	"github.com/google/uuid"
)

// DataType is the closed set of physical encodings a column can have.
// UUID exists only for the auto-injected id column — no CREATE TABLE
// grammar can declare one.
type DataType int

const (
	UUIDType DataType = iota
	IntType
	StringType
)

// Byte widths are fixed per DataType and never vary at runtime.
const (
	UUIDSize   = 16
	IntSize    = 4
	StringSize = 200
)

// Size returns the fixed byte width for t.
func (t DataType) Size() int {
	switch t {
	case UUIDType:
		return UUIDSize
	case IntType:
		return IntSize
	case StringType:
		return StringSize
	default:
		return 0
	}
}

// Tag is the on-disk byte identifying a DataType in a column entry
// (spec §6.1): 0=UUID, 1=STRING, 2=INT.
func (t DataType) Tag() byte {
	switch t {
	case UUIDType:
		return 0
	case StringType:
		return 1
	case IntType:
		return 2
	default:
		return 0
	}
}

// DataTypeFromTag is the inverse of Tag.
func DataTypeFromTag(tag byte) (DataType, error) {
	switch tag {
	case 0:
		return UUIDType, nil
	case 1:
		return StringType, nil
	case 2:
		return IntType, nil
	default:
		return 0, fmt.Errorf("storage: unknown data type tag %d", tag)
	}
}

// ColumnType distinguishes the synthetic row identifier from user-visible
// columns.
type ColumnType int

const (
	FieldColumn ColumnType = iota
	IDColumn
)

// Column is one slot in a table's row layout. Size is always
// DataType.Size(); there is no independent size field to get out of sync.
type Column struct {
	Name     string
	ColType  ColumnType
	DataType DataType
}

// Size is the fixed byte width of this column's slot.
func (c Column) Size() int {
	return c.DataType.Size()
}

// MaxNameBytes is the longest a table or column name may be once UTF-8
// encoded (spec §3 invariants); longer names are silently truncated.
const MaxNameBytes = 32

// TruncateName truncates s to at most MaxNameBytes UTF-8 bytes without
// splitting a multi-byte rune.
func TruncateName(s string) string {
	if len(s) <= MaxNameBytes {
		return s
	}
	b := []byte(s)[:MaxNameBytes]
	start := len(b) - 1
	for start > 0 && !utf8.RuneStart(b[start]) {
		start--
	}
	// start is the first byte of the last rune; drop that rune if the cut
	// left it incomplete.
	if !utf8.FullRune(b[start:]) {
		b = b[:start]
	}
	return string(b)
}

// defaultValue is the type default used by match_columns for a column the
// caller did not mention.
func defaultValue(dt DataType) string {
	switch dt {
	case IntType:
		return "0"
	default:
		return ""
	}
}

// encodeInto writes value's textual form into a zero-filled, column-sized
// buffer, truncating silently on overflow (spec §4.4 construct_row).
func encodeInto(col Column, buf []byte, value string) {
	switch col.DataType {
	case UUIDType:
		// The ID column is never populated from user text; construct_row
		// fills it directly with fresh UUID bytes.
	default:
		b := []byte(value)
		n := len(b)
		if n > len(buf) {
			n = len(buf)
		}
		copy(buf, b[:n])
	}
}

// decodeField renders a row's raw column bytes back into display text
// (spec §4.4 print_table decoding policy).
func decodeField(col Column, raw []byte) string {
	switch col.ColType {
	case IDColumn:
		id, err := uuid.FromBytes(raw)
		if err != nil {
			return ""
		}
		return id.String()
	default:
		trimmed := trimTrailingZero(raw)
		return string(trimmed)
	}
}

func trimTrailingZero(b []byte) []byte {
	end := len(b)
	for end > 0 && b[end-1] == 0 {
		end--
	}
	return b[:end]
}
