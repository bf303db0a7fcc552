// Copyright 2018 The Solid Core Data Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package catalog

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/tinytable/rowdb/internal/storage"
)

const (
	nameFieldBytes   = 32
	columnEntryBytes = nameFieldBytes + 1 // name + data type tag
)

// writeTableEntry encodes one table's metadata entry per the bit-exact
// layout in spec §6.1: a 32-byte zero-padded name, a 1-byte column count, a
// 2-byte row count, an 8-byte start offset, then that many 33-byte column
// entries.
func writeTableEntry(w io.Writer, t *storage.Table) error {
	if err := writeFixedName(w, t.Name); err != nil {
		return err
	}
	if len(t.Schema) > 255 {
		return fmt.Errorf("too many columns (%d)", len(t.Schema))
	}
	if err := binary.Write(w, binary.LittleEndian, uint8(len(t.Schema))); err != nil {
		return err
	}
	if t.TotalRows > 0xFFFF {
		return fmt.Errorf("row count %d exceeds header capacity", t.TotalRows)
	}
	if err := binary.Write(w, binary.LittleEndian, uint16(t.TotalRows)); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, uint64(t.StartOffset)); err != nil {
		return err
	}
	for _, col := range t.Schema {
		if err := writeFixedName(w, col.Name); err != nil {
			return err
		}
		if err := binary.Write(w, binary.LittleEndian, col.DataType.Tag()); err != nil {
			return err
		}
	}
	return nil
}

// readTableEntry is the inverse of writeTableEntry.
func readTableEntry(r io.Reader) (name string, columns []storage.Column, totalRows uint16, startOffset uint64, err error) {
	name, err = readFixedName(r)
	if err != nil {
		return "", nil, 0, 0, err
	}
	var columnCount uint8
	if err = binary.Read(r, binary.LittleEndian, &columnCount); err != nil {
		return "", nil, 0, 0, err
	}
	if err = binary.Read(r, binary.LittleEndian, &totalRows); err != nil {
		return "", nil, 0, 0, err
	}
	if err = binary.Read(r, binary.LittleEndian, &startOffset); err != nil {
		return "", nil, 0, 0, err
	}
	columns = make([]storage.Column, columnCount)
	for i := range columns {
		colName, nameErr := readFixedName(r)
		if nameErr != nil {
			return "", nil, 0, 0, nameErr
		}
		var tag [1]byte
		if _, tagErr := io.ReadFull(r, tag[:]); tagErr != nil {
			return "", nil, 0, 0, tagErr
		}
		dt, dtErr := storage.DataTypeFromTag(tag[0])
		if dtErr != nil {
			return "", nil, 0, 0, dtErr
		}
		colType := storage.FieldColumn
		if i == 0 && dt == storage.UUIDType {
			colType = storage.IDColumn
		}
		columns[i] = storage.Column{Name: colName, ColType: colType, DataType: dt}
	}
	return name, columns, totalRows, startOffset, nil
}

func writeFixedName(w io.Writer, name string) error {
	buf := make([]byte, nameFieldBytes)
	copy(buf, storage.TruncateName(name))
	_, err := w.Write(buf)
	return err
}

func readFixedName(r io.Reader) (string, error) {
	buf := make([]byte, nameFieldBytes)
	if _, err := io.ReadFull(r, buf); err != nil {
		return "", err
	}
	end := len(buf)
	for end > 0 && buf[end-1] == 0 {
		end--
	}
	return string(buf[:end]), nil
}
