// Copyright 2018 The Solid Core Data Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package repl is the interactive command source: it reads one line at a
// time, recognizes the two meta-commands (".exit", ".tables"), and hands
// everything else to the parser.
package repl

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"

	"github.com/tinytable/rowdb/internal/catalog"
	"github.com/tinytable/rowdb/internal/parser"
)

const prompt = "rowdb> "

// REPL drives the parser off of in, writing query results and errors to out.
type REPL struct {
	in     *bufio.Scanner
	out    io.Writer
	parser *parser.Parser
	db     *catalog.Database
	log    *zap.SugaredLogger
}

// New builds a REPL reading lines from in, writing to out, dispatching
// statements to p, and consulting db for the ".tables" meta-command.
func New(in io.Reader, out io.Writer, p *parser.Parser, db *catalog.Database, log *zap.SugaredLogger) *REPL {
	return &REPL{in: bufio.NewScanner(in), out: out, parser: p, db: db, log: log}
}

// Run reads and dispatches lines until EOF, ".exit", or ctx cancellation.
// Cancellation is only observed between statements — a line already
// blocked on read completes normally, matching the single-threaded engine's
// lack of true suspension points.
func (r *REPL) Run(ctx context.Context) error {
	for {
		if ctx.Err() != nil {
			return nil
		}
		fmt.Fprint(r.out, prompt)
		if !r.in.Scan() {
			return r.in.Err()
		}
		line := strings.TrimSpace(r.in.Text())
		if line == "" {
			continue
		}
		switch line {
		case ".exit":
			return nil
		case ".tables":
			r.printTables()
			continue
		}
		if err := r.parser.Parse(ctx, line); err != nil {
			r.log.Warnw("statement rejected", "input", line, "error", err)
			fmt.Fprintln(r.out, err)
		}
	}
}

func (r *REPL) printTables() {
	for _, name := range r.db.TableNames() {
		t, ok := r.db.Table(name)
		if !ok {
			continue
		}
		fmt.Fprintf(r.out, "%s (%d rows)\n", name, t.TotalRows)
	}
}
