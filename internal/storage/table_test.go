// Copyright 2018 The Solid Core Data Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package storage

import (
	"os"
	"testing"
)

func openTempFile(t *testing.T) *os.File {
	t.Helper()
	f, err := os.CreateTemp(t.TempDir(), "rowdb-table-*.db")
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { f.Close() })
	return f
}

func TestInsertAndReadRoundTrip(t *testing.T) {
	f := openTempFile(t)
	tbl := New("users", []Column{
		{Name: "age", ColType: FieldColumn, DataType: IntType},
		{Name: "name", ColType: FieldColumn, DataType: StringType},
	}, 0)

	row, err := tbl.ConstructRow(tbl.MatchColumns(map[string]string{"age": "30", "name": "ada"}))
	if err != nil {
		t.Fatal(err)
	}
	if err := tbl.InsertRows(f, [][]byte{row}); err != nil {
		t.Fatal(err)
	}
	if tbl.TotalRows != 1 {
		t.Fatalf("got %d rows, want 1", tbl.TotalRows)
	}

	var sink recordingSink
	if err := tbl.PrintTable(f, &sink, map[string]struct{}{"*": {}}); err != nil {
		t.Fatal(err)
	}
	if len(sink.rows) != 1 {
		t.Fatalf("got %d rows printed, want 1", len(sink.rows))
	}
	got := sink.rows[0]
	if got[1] != "30" || got[2] != "ada" {
		t.Fatalf("got row %v, want [<id> 30 ada]", got)
	}
}

func TestMatchColumnsFillsDefaults(t *testing.T) {
	tbl := New("t", []Column{
		{Name: "age", ColType: FieldColumn, DataType: IntType},
		{Name: "name", ColType: FieldColumn, DataType: StringType},
	}, 0)
	out := tbl.MatchColumns(map[string]string{"name": "bob"})
	if out[0] != "0" || out[1] != "bob" {
		t.Fatalf("got %v, want [0 bob]", out)
	}
}

func TestDuplicateIDColumnWhenUserDeclaresOne(t *testing.T) {
	tbl := New("t", []Column{
		{Name: "id", ColType: FieldColumn, DataType: StringType},
		{Name: "name", ColType: FieldColumn, DataType: StringType},
	}, 0)
	if len(tbl.Schema) != 3 {
		t.Fatalf("got %d schema columns, want 3", len(tbl.Schema))
	}
	if tbl.Schema[0].Name != "id" || tbl.Schema[0].ColType != IDColumn {
		t.Fatalf("schema[0] = %+v, want the auto-injected id column", tbl.Schema[0])
	}
	if tbl.Schema[1].Name != "id" || tbl.Schema[1].ColType != FieldColumn {
		t.Fatalf("schema[1] = %+v, want the user-declared id column", tbl.Schema[1])
	}
}

func TestTruncateNameIsUTF8Safe(t *testing.T) {
	long := ""
	for i := 0; i < 40; i++ {
		long += "é"
	}
	out := TruncateName(long)
	if len(out) > MaxNameBytes {
		t.Fatalf("got %d bytes, want <= %d", len(out), MaxNameBytes)
	}
	if len(out)%2 != 0 {
		t.Fatalf("truncation split a multi-byte rune: %q", out)
	}
}

type recordingSink struct {
	name   string
	count  int
	header []string
	rows   [][]string
}

func (s *recordingSink) WriteTable(name string, rowCount int, header []string, rows [][]string) {
	s.name = name
	s.count = rowCount
	s.header = header
	s.rows = rows
}
