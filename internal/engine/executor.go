// Copyright 2018 The Solid Core Data Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package engine

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/tinytable/rowdb/internal/ast"
	"github.com/tinytable/rowdb/internal/catalog"
	"github.com/tinytable/rowdb/internal/storage"
)

// Executor implements Service against a single catalog.Database.
type Executor struct {
	db  *catalog.Database
	out storage.ResultSink
	log *zap.SugaredLogger
}

// New builds an Executor bound to db, rendering SELECT results to out.
func New(db *catalog.Database, out storage.ResultSink, log *zap.SugaredLogger) *Executor {
	return &Executor{db: db, out: out, log: log}
}

var _ Service = (*Executor)(nil)

// CreateTable allocates a table with an auto-injected id column ahead of
// the caller's declared columns.
func (e *Executor) CreateTable(ctx context.Context, req CreateTableRequest) (CreateTableResponse, error) {
	if err := ctx.Err(); err != nil {
		return CreateTableResponse{}, err
	}
	columns := make([]storage.Column, len(req.Columns))
	for i, c := range req.Columns {
		columns[i] = storage.Column{
			Name:     c.Name,
			ColType:  storage.FieldColumn,
			DataType: toStorageType(c.DataType),
		}
	}
	if _, err := e.db.CreateTable(req.TableName, columns); err != nil {
		return CreateTableResponse{}, err
	}
	return CreateTableResponse{}, nil
}

// Insert locates the table, builds a row from the caller's column->value
// map in declared order, and appends it.
func (e *Executor) Insert(ctx context.Context, req InsertRequest) (InsertResponse, error) {
	if err := ctx.Err(); err != nil {
		return InsertResponse{}, err
	}
	t, ok := e.db.Table(req.TableName)
	if !ok {
		return InsertResponse{}, fmt.Errorf("Table not found")
	}
	ordered := t.MatchColumns(req.Values)
	row, err := t.ConstructRow(ordered)
	if err != nil {
		return InsertResponse{}, fmt.Errorf("Error inserting row: %s", err)
	}
	if err := t.InsertRows(e.db.File(), [][]byte{row}); err != nil {
		return InsertResponse{}, fmt.Errorf("Error inserting row: %s", err)
	}
	return InsertResponse{}, nil
}

// Select locates the table and renders its rows to the result sink,
// filtered to the requested columns.
func (e *Executor) Select(ctx context.Context, req SelectRequest) (SelectResponse, error) {
	if err := ctx.Err(); err != nil {
		return SelectResponse{}, err
	}
	t, ok := e.db.Table(req.TableName)
	if !ok {
		return SelectResponse{}, fmt.Errorf("Table not found")
	}
	if err := t.PrintTable(e.db.File(), e.out, req.Columns); err != nil {
		return SelectResponse{}, err
	}
	return SelectResponse{}, nil
}

func toStorageType(dt ast.DataType) storage.DataType {
	switch dt {
	case ast.String:
		return storage.StringType
	default:
		return storage.IntType
	}
}
