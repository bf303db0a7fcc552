// Copyright 2018 The Solid Core Data Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package catalog

import (
	"path/filepath"
	"testing"

	"github.com/tinytable/rowdb/internal/storage"
)

func TestCreateTableAndReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rowdb.db")

	db, err := Open(path, nil)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := db.CreateTable("users", []storage.Column{
		{Name: "age", ColType: storage.FieldColumn, DataType: storage.IntType},
		{Name: "name", ColType: storage.FieldColumn, DataType: storage.StringType},
	}); err != nil {
		t.Fatal(err)
	}
	if err := db.Close(); err != nil {
		t.Fatal(err)
	}

	db2, err := Open(path, nil)
	if err != nil {
		t.Fatal(err)
	}
	defer db2.Close()

	tbl, ok := db2.Table("users")
	if !ok {
		t.Fatal("table users not found after reopen")
	}
	if len(tbl.Schema) != 3 {
		t.Fatalf("got %d columns, want 3 (id + 2 declared)", len(tbl.Schema))
	}
	if tbl.Schema[0].DataType != storage.UUIDType || tbl.Schema[0].ColType != storage.IDColumn {
		t.Fatalf("schema[0] = %+v, want the id column", tbl.Schema[0])
	}
}

func TestTableNotFound(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rowdb.db")
	db, err := Open(path, nil)
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	if _, ok := db.Table("ghost"); ok {
		t.Fatal("expected ghost table to be absent")
	}
}

func TestDuplicateTableNameRejected(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rowdb.db")
	db, err := Open(path, nil)
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	cols := []storage.Column{{Name: "a", ColType: storage.FieldColumn, DataType: storage.IntType}}
	if _, err := db.CreateTable("t", cols); err != nil {
		t.Fatal(err)
	}
	if _, err := db.CreateTable("t", cols); err == nil {
		t.Fatal("expected an error creating a duplicate table")
	}
}

func TestNextStartOffsetReproducesRowCountPagination(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rowdb.db")
	db, err := Open(path, nil)
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	cols := []storage.Column{{Name: "big", ColType: storage.FieldColumn, DataType: storage.StringType}}
	tbl, err := db.CreateTable("t1", cols)
	if err != nil {
		t.Fatal(err)
	}
	tbl.TotalRows = storage.PageSize + 1

	second, err := db.CreateTable("t2", cols)
	if err != nil {
		t.Fatal(err)
	}
	// The allocator paginates by row count alone, not row count * row size,
	// so a table with PageSize+1 rows (however wide each row is) pushes the
	// next table's offset forward by exactly two pages, not by however many
	// pages its actual byte size would occupy.
	want := int64(MetaSize) + 2*storage.PageSize
	if second.StartOffset != want {
		t.Fatalf("got start offset %d, want %d", second.StartOffset, want)
	}
}
