// Copyright 2018 The Solid Core Data Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package engine is the executor: it binds parsed statements to the
// catalog and table engine, and is the only thing the parser ever calls
// directly.
//
// The Service contract here is adapted from the teacher's rpc.ConfigService
// — a narrow interface of context-taking request/response methods — so the
// query pipeline never reaches into internal/catalog or internal/storage
// on its own.
package engine

import (
	"context"

	"github.com/tinytable/rowdb/internal/ast"
)

// CreateTableRequest asks the executor to allocate a new table.
type CreateTableRequest struct {
	TableName string
	Columns   []ast.ColumnDef
}

// CreateTableResponse carries nothing back; a non-nil error means the
// statement was rejected and nothing was committed.
type CreateTableResponse struct{}

// InsertRequest asks the executor to append one row to an existing table.
// Values maps column name to the raw textual value the parser captured;
// columns the statement did not mention are absent, not zero-valued.
type InsertRequest struct {
	TableName string
	Values    map[string]string
}

// InsertResponse carries nothing back.
type InsertResponse struct{}

// SelectRequest asks the executor to render rows from an existing table.
// Columns is a set; it contains "*" to mean every column.
type SelectRequest struct {
	TableName string
	Columns   map[string]struct{}
}

// SelectResponse carries nothing back — a SELECT's effect is writing to
// the result sink, not returning data to the caller.
type SelectResponse struct{}

// Service is the executor's contract: create a table, insert a row, or
// render a query's rows. context.Context is threaded through per the
// teacher's convention even though the engine is synchronous and never
// blocks mid-operation — cancellation is only observed at request entry.
type Service interface {
	CreateTable(ctx context.Context, req CreateTableRequest) (CreateTableResponse, error)
	Insert(ctx context.Context, req InsertRequest) (InsertResponse, error)
	Select(ctx context.Context, req SelectRequest) (SelectResponse, error)
}
