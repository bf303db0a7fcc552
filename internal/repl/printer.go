// Copyright 2018 The Solid Core Data Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package repl

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// TablePrinter renders a SELECT's rows as a header line followed by one
// tab-separated line per row. It implements storage.ResultSink.
type TablePrinter struct {
	w *bufio.Writer
}

// NewTablePrinter wraps w for buffered table output.
func NewTablePrinter(w io.Writer) *TablePrinter {
	return &TablePrinter{w: bufio.NewWriter(w)}
}

// WriteTable prints "Table: <name> [<n> rows]" followed by the header and
// every row, tab-separated.
func (p *TablePrinter) WriteTable(name string, rowCount int, header []string, rows [][]string) {
	fmt.Fprintf(p.w, "Table: %s [%d rows]\n", name, rowCount)
	fmt.Fprintln(p.w, strings.Join(header, "\t"))
	for _, row := range rows {
		fmt.Fprintln(p.w, strings.Join(row, "\t"))
	}
	p.w.Flush()
}
