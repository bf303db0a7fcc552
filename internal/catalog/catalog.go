// Copyright 2018 The Solid Core Data Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package catalog is the on-disk metadata header and its in-memory
// counterpart: the exclusive owner of the backing file handle and of every
// table reconstructed from it.
//
// The header format is generalized from the teacher's ts.Writer file
// framing (a fixed marker followed by packed, length-prefixed records) down
// to a single fixed-size region instead of a growing chunk stream, because
// the catalog here is a small, rewritten-whole header rather than an
// append-only log.
package catalog

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"

	"github.com/tinytable/rowdb/internal/storage"
)

// MetaSize is the fixed size of the metadata header occupying the first
// bytes of the file.
const MetaSize = 4096

// maxColumnsPerTable is the on-disk limit: column_count is a single byte.
const maxColumnsPerTable = 255

// Database is the exclusive owner of the backing file and of every table
// reconstructed from its metadata header.
type Database struct {
	file       *os.File
	tableCount int
	tables     map[string]*storage.Table
	// order preserves insertion order so Flush always serializes tables in
	// a stable sequence, matching how they were declared.
	order []string

	log *zap.SugaredLogger
}

// Open opens (creating if necessary) path read+write, and — if the file
// already has a header — replays it into an in-memory catalog. No row data
// is read until a query demands a page.
func Open(path string, log *zap.SugaredLogger) (*Database, error) {
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0o644)
	if err != nil {
		return nil, fmt.Errorf("catalog: opening %q: %w", path, err)
	}
	db := &Database{
		file:   f,
		tables: make(map[string]*storage.Table),
		log:    log,
	}

	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("catalog: statting %q: %w", path, err)
	}
	if info.Size() == 0 {
		if err := db.flushLocked(); err != nil {
			f.Close()
			return nil, err
		}
		return db, nil
	}

	if err := db.load(); err != nil {
		f.Close()
		return nil, err
	}
	return db, nil
}

// load reads the first MetaSize bytes and reconstructs every table entry.
func (db *Database) load() error {
	header := make([]byte, MetaSize)
	if _, err := db.file.ReadAt(header, 0); err != nil && err != io.EOF {
		return fmt.Errorf("catalog: reading metadata header: %w", err)
	}
	r := bytes.NewReader(header)

	var numTables uint8
	if err := binary.Read(r, binary.LittleEndian, &numTables); err != nil {
		return fmt.Errorf("catalog: decoding table count: %w", err)
	}

	for i := 0; i < int(numTables); i++ {
		name, columns, totalRows, startOffset, err := readTableEntry(r)
		if err != nil {
			return fmt.Errorf("catalog: decoding table entry %d: %w", i, err)
		}
		t := storage.FromSchema(name, columns, int(totalRows), int64(startOffset))
		db.tables[name] = t
		db.order = append(db.order, name)
		db.tableCount++
	}
	if db.log != nil {
		db.log.Infow("catalog opened", "tables", db.tableCount)
	}
	return nil
}

// Table looks up a table by name. ok is false when no such table exists —
// callers render that as the "Table not found" error (spec §7).
func (db *Database) Table(name string) (*storage.Table, bool) {
	t, ok := db.tables[name]
	return t, ok
}

// File returns the backing file handle for storage.Table's I/O calls.
func (db *Database) File() storage.FileHandle {
	return db.file
}

// CreateTable allocates a new table with an auto-injected id column,
// assigns it a start offset, and flushes the updated header.
func (db *Database) CreateTable(name string, userColumns []storage.Column) (*storage.Table, error) {
	name = storage.TruncateName(name)
	if _, exists := db.tables[name]; exists {
		return nil, fmt.Errorf("catalog: table %q already exists", name)
	}
	if len(userColumns)+1 > maxColumnsPerTable {
		return nil, fmt.Errorf("catalog: table %q declares too many columns", name)
	}
	for i, c := range userColumns {
		userColumns[i] = storage.Column{
			Name:     storage.TruncateName(c.Name),
			ColType:  c.ColType,
			DataType: c.DataType,
		}
	}

	startOffset := db.nextStartOffset()
	t := storage.New(name, userColumns, startOffset)
	db.tables[name] = t
	db.order = append(db.order, name)
	db.tableCount++

	if err := db.flushLocked(); err != nil {
		return nil, err
	}
	if db.log != nil {
		db.log.Infow("table created", "table", name, "columns", len(t.Schema), "start_offset", startOffset)
	}
	return t, nil
}

// nextStartOffset reproduces the documented allocator (spec §4.5, §9):
// it intends to paginate by total bytes (total_rows * row_size) but as
// written paginates by row *count* alone. That is kept here verbatim —
// see DESIGN.md Open Question O1 — rather than "corrected," since it is a
// named, observable behavior of the system under spec, not an accident of
// this port.
func (db *Database) nextStartOffset() int64 {
	offset := int64(MetaSize)
	for _, name := range db.order {
		t := db.tables[name]
		pages := (t.TotalRows + storage.PageSize - 1) / storage.PageSize
		offset += int64(pages) * storage.PageSize
	}
	return offset
}

// Flush rewrites the metadata header in a single write.
func (db *Database) Flush() error {
	return db.flushLocked()
}

func (db *Database) flushLocked() error {
	buf := make([]byte, MetaSize)
	w := bytes.NewBuffer(buf[:0])
	if err := binary.Write(w, binary.LittleEndian, uint8(db.tableCount)); err != nil {
		return fmt.Errorf("catalog: encoding table count: %w", err)
	}
	for _, name := range db.order {
		t := db.tables[name]
		if err := writeTableEntry(w, t); err != nil {
			return fmt.Errorf("catalog: encoding table %q: %w", name, err)
		}
	}
	out := make([]byte, MetaSize)
	copy(out, w.Bytes())
	if _, err := db.file.WriteAt(out, 0); err != nil {
		return fmt.Errorf("catalog: writing metadata header: %w", err)
	}
	if err := db.file.Sync(); err != nil {
		return fmt.Errorf("catalog: syncing metadata header: %w", err)
	}
	return nil
}

// Close flushes the header one last time and releases the file handle.
func (db *Database) Close() error {
	if err := db.flushLocked(); err != nil {
		_ = db.file.Close()
		return err
	}
	return db.file.Close()
}

// TableNames returns every table name in declaration order, for the
// ".tables" REPL meta-command.
func (db *Database) TableNames() []string {
	out := make([]string, len(db.order))
	copy(out, db.order)
	return out
}
