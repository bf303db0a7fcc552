// Copyright 2018 The Solid Core Data Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package storage

import (
	"fmt"
	"io"

	"github.com/google/uuid"
)

// FileHandle is the capability a Table needs to read and write its row
// data. *os.File satisfies it. Tables never hold one of these themselves —
// per the catalog's ownership model, the caller (internal/catalog.Database)
// passes it into every call that touches disk, so there is no reference
// cycle between a table and its owning catalog.
type FileHandle interface {
	io.ReaderAt
	io.WriterAt
	Sync() error
}

// ResultSink is where a SELECT's rendered rows go. internal/repl implements
// this over the REPL's stdout.
type ResultSink interface {
	WriteTable(name string, rowCount int, header []string, rows [][]string)
}

// Table is a schema plus row count plus a lazily-materialized page array
// over a region of the backing file starting at StartOffset.
type Table struct {
	Name        string
	Schema      []Column // Schema[0] is always the auto-injected id column.
	TotalRows   int
	StartOffset int64

	pages []*Page
}

// New builds a table from user-declared columns, auto-injecting the id
// column ahead of them unconditionally — matching the original engine's
// behavior even when the user already named a column "id" (spec §9: two
// id columns can coexist). Name lookups do not resolve to the first one:
// MatchColumns fills the user-declared "id" from a value named "id", and
// PrintTable renders every column whose name was requested.
func New(name string, userColumns []Column, startOffset int64) *Table {
	schema := make([]Column, 0, len(userColumns)+1)
	schema = append(schema, Column{Name: "id", ColType: IDColumn, DataType: UUIDType})
	schema = append(schema, userColumns...)
	return &Table{Name: name, Schema: schema, StartOffset: startOffset}
}

// FromSchema reconstructs a table whose full on-disk schema (id column
// included) and row count are already known — used when the catalog
// replays its metadata header on open.
func FromSchema(name string, schema []Column, totalRows int, startOffset int64) *Table {
	return &Table{Name: name, Schema: schema, TotalRows: totalRows, StartOffset: startOffset}
}

// RowSize is the sum of every column's fixed width.
func (t *Table) RowSize() int {
	size := 0
	for _, c := range t.Schema {
		size += c.Size()
	}
	return size
}

func (t *Table) rowsPerPage() int {
	return rowsPerPage(t.RowSize())
}

// getPage returns the materialized page at index i, loading it from disk on
// first touch if the table already has rows living there. Exceeding
// TableMaxPages is fatal by design (spec §5 resource policy), not a regular
// error: a table that needs a 101st page has outgrown what this engine can
// hold in memory at all.
func (t *Table) getPage(f FileHandle, i int) (*Page, error) {
	if i >= TableMaxPages {
		panic(fmt.Sprintf("storage: table %q exceeded TABLE_MAX_PAGES (%d)", t.Name, TableMaxPages))
	}
	if len(t.pages) <= i {
		grown := make([]*Page, i+1)
		copy(grown, t.pages)
		t.pages = grown
	}
	if t.pages[i] == nil {
		rowSize := t.RowSize()
		t.pages[i] = newPage(rowSize)
		if t.TotalRows > i*t.rowsPerPage() {
			if err := t.fillPageFromDisk(f, i); err != nil {
				return nil, err
			}
		}
	}
	return t.pages[i], nil
}

func (t *Table) fillPageFromDisk(f FileHandle, i int) error {
	page := t.pages[i]
	n, err := f.ReadAt(page.data[:], t.StartOffset+int64(i)*PageSize)
	if err != nil && err != io.EOF {
		return fmt.Errorf("storage: reading page %d of table %q: %w", i, t.Name, err)
	}
	page.nextRowSlot = n / page.rowSize
	return nil
}

func (t *Table) flushPage(f FileHandle, i int) error {
	page := t.pages[i]
	if page == nil {
		return nil
	}
	written := page.writtenBytes()
	if _, err := f.WriteAt(written, t.StartOffset+int64(i)*PageSize); err != nil {
		return fmt.Errorf("storage: writing page %d of table %q: %w", i, t.Name, err)
	}
	if err := f.Sync(); err != nil {
		return fmt.Errorf("storage: syncing page %d of table %q: %w", i, t.Name, err)
	}
	return nil
}

// InsertRows appends each row blob in order. Every insert is flushed to
// disk immediately — no page ever persists dirty across calls.
func (t *Table) InsertRows(f FileHandle, rows [][]byte) error {
	rpp := t.rowsPerPage()
	for _, row := range rows {
		pageIndex := t.TotalRows / rpp
		page, err := t.getPage(f, pageIndex)
		if err != nil {
			return err
		}
		page.writeRow(row)
		if err := t.flushPage(f, pageIndex); err != nil {
			return err
		}
		t.TotalRows++
	}
	return nil
}

// ConstructRow builds the physical row for a fresh insert: a new
// time-ordered id in slot 0, then values (already ordered to match
// Schema[1:] by MatchColumns) copied into their column slots, truncating
// silently on overflow.
func (t *Table) ConstructRow(values []string) ([]byte, error) {
	buffers := make([][]byte, len(t.Schema))
	for i, col := range t.Schema {
		buffers[i] = make([]byte, col.Size())
	}
	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("storage: generating row id: %w", err)
	}
	copy(buffers[0], id[:])
	for i, v := range values {
		encodeInto(t.Schema[i+1], buffers[i+1], v)
	}
	row := make([]byte, 0, t.RowSize())
	for _, b := range buffers {
		row = append(row, b...)
	}
	return row, nil
}

// MatchColumns orders the caller's column->value map to the table's
// declared non-id column order, substituting the type default for any
// column the caller left unspecified.
func (t *Table) MatchColumns(values map[string]string) []string {
	out := make([]string, 0, len(t.Schema)-1)
	for _, col := range t.Schema[1:] {
		if v, ok := values[col.Name]; ok {
			out = append(out, v)
			continue
		}
		out = append(out, defaultValue(col.DataType))
	}
	return out
}

// PrintTable reads every row and renders the columns named in requested
// (or all of them, when requested contains "*") to sink.
func (t *Table) PrintTable(f FileHandle, sink ResultSink, requested map[string]struct{}) error {
	rowSize := t.RowSize()
	if rowSize == 0 || PageSize < rowSize {
		return nil
	}
	_, all := requested["*"]

	header := make([]string, 0, len(t.Schema))
	for _, col := range t.Schema {
		if all || wants(requested, col.Name) {
			header = append(header, col.Name)
		}
	}

	rpp := t.rowsPerPage()
	rows := make([][]string, 0, t.TotalRows)
	for rowNumber := 0; rowNumber < t.TotalRows; rowNumber++ {
		pageNumber := rowNumber / rpp
		rowIndex := rowNumber % rpp
		page, err := t.getPage(f, pageNumber)
		if err != nil {
			return err
		}
		raw := page.readRow(rowIndex)

		offset := 0
		fields := make([]string, 0, len(header))
		for _, col := range t.Schema {
			end := offset + col.Size()
			if end > len(raw) {
				break
			}
			fieldBytes := raw[offset:end]
			offset = end
			if !all && !wants(requested, col.Name) {
				continue
			}
			fields = append(fields, decodeField(col, fieldBytes))
		}
		rows = append(rows, fields)
	}
	sink.WriteTable(t.Name, t.TotalRows, header, rows)
	return nil
}

func wants(requested map[string]struct{}, name string) bool {
	_, ok := requested[name]
	return ok
}
