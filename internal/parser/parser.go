// Copyright 2018 The Solid Core Data Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package parser is a hand-written recursive-descent parser over the
// token stream internal/lexer produces. It owns the engine.Service it
// drives — each parse method dispatches to the service directly as soon
// as a statement is fully recognized, instead of building an AST tree
// the caller walks separately afterward.
package parser

import (
	"context"
	"fmt"

	"github.com/tinytable/rowdb/internal/ast"
	"github.com/tinytable/rowdb/internal/engine"
	"github.com/tinytable/rowdb/internal/lexer"
	"github.com/tinytable/rowdb/internal/token"
)

// Parser parses and executes exactly one statement per Parse call.
type Parser struct {
	svc engine.Service
}

// New builds a Parser that dispatches recognized statements to svc.
func New(svc engine.Service) *Parser {
	return &Parser{svc: svc}
}

// Parse tokenizes line and executes the single statement it contains.
func (p *Parser) Parse(ctx context.Context, line string) error {
	lex := lexer.New(line)
	return p.parseCommand(ctx, lex)
}

func (p *Parser) parseCommand(ctx context.Context, lex *lexer.Lexer) error {
	tok := lex.Consume()
	switch tok.Kind {
	case token.Insert:
		return p.parseInsert(ctx, lex)
	case token.Select:
		return p.parseSelect(ctx, lex)
	case token.Update:
		return p.parseUpdate(ctx, lex)
	case token.Create:
		return p.parseCreate(ctx, lex)
	case token.Identifier, token.EOL:
		return fmt.Errorf("Unexpected token")
	default:
		return fmt.Errorf("Unsupported command")
	}
}

func (p *Parser) parseSelect(ctx context.Context, lex *lexer.Lexer) error {
	columns := make(map[string]struct{})
columnLoop:
	for {
		tok := lex.Consume()
		if tok.Kind != token.Identifier {
			break columnLoop
		}
		columns[tok.Value] = struct{}{}
		next := lex.Consume()
		switch next.Kind {
		case token.Comma:
			continue columnLoop
		case token.From:
			break columnLoop
		default:
			return fmt.Errorf("Error parsing Select Statement")
		}
	}

	tableTok := lex.Consume()
	if tableTok.Kind != token.Identifier {
		return fmt.Errorf("Expected table name")
	}
	if len(columns) == 0 {
		return fmt.Errorf("Columns not provided.")
	}

	_, err := p.svc.Select(ctx, engine.SelectRequest{
		TableName: tableTok.Value,
		Columns:   columns,
	})
	return err
}

func (p *Parser) parseInsert(ctx context.Context, lex *lexer.Lexer) error {
	into := lex.Consume()
	if into.Kind != token.Into {
		return fmt.Errorf("Expected INTO keyword")
	}
	tableTok := lex.Consume()
	if tableTok.Kind != token.Identifier {
		return fmt.Errorf("Expected table name")
	}

	if lex.Consume().Kind != token.LeftParen {
		return fmt.Errorf("Expected ( for Columns specifier")
	}
	var columnNames []string
nameLoop:
	for {
		tok := lex.Consume()
		if tok.Kind != token.Identifier {
			break nameLoop
		}
		columnNames = append(columnNames, tok.Value)
		next := lex.Consume()
		switch next.Kind {
		case token.Comma:
			continue nameLoop
		case token.RightParen:
			break nameLoop
		default:
			return fmt.Errorf("Error parsing Select Statement")
		}
	}

	if lex.Consume().Kind != token.Values {
		return fmt.Errorf("Expected Values for Inserting values")
	}
	if lex.Consume().Kind != token.LeftParen {
		return fmt.Errorf("Expected ( for Columns specifier")
	}
	var columnValues []string
valueLoop:
	for {
		tok := lex.Consume()
		if tok.Kind != token.Identifier {
			break valueLoop
		}
		columnValues = append(columnValues, tok.Value)
		next := lex.Consume()
		switch next.Kind {
		case token.Comma:
			continue valueLoop
		case token.RightParen:
			break valueLoop
		default:
			return fmt.Errorf("Error parsing Select Statement")
		}
	}

	if len(columnNames) != len(columnValues) {
		return fmt.Errorf("Colums and values doesn't match")
	}
	values := make(map[string]string, len(columnNames))
	for i, name := range columnNames {
		values[name] = columnValues[i]
	}

	_, err := p.svc.Insert(ctx, engine.InsertRequest{
		TableName: tableTok.Value,
		Values:    values,
	})
	return err
}

// parseUpdate accepts and discards the rest of the line; UPDATE is
// recognized by the grammar but never mutates anything.
func (p *Parser) parseUpdate(ctx context.Context, lex *lexer.Lexer) error {
	return nil
}

func (p *Parser) parseCreate(ctx context.Context, lex *lexer.Lexer) error {
	if lex.Consume().Kind != token.Table {
		return fmt.Errorf("Expected TABLE keyword")
	}
	tableTok := lex.Consume()
	if tableTok.Kind != token.Identifier {
		return fmt.Errorf("Expected table name")
	}
	if lex.Consume().Kind != token.LeftParen {
		return fmt.Errorf("Expected ( for Columns specifier")
	}

	var columns []ast.ColumnDef
columnLoop:
	for {
		nameTok := lex.Consume()
		if nameTok.Kind != token.Identifier {
			return fmt.Errorf("Expected column name")
		}
		var dt ast.DataType
		switch lex.Consume().Kind {
		case token.Int:
			dt = ast.Int
		case token.String:
			dt = ast.String
		default:
			return fmt.Errorf("Expected data type")
		}
		columns = append(columns, ast.ColumnDef{Name: nameTok.Value, DataType: dt})

		next := lex.Consume()
		switch next.Kind {
		case token.Comma:
			continue columnLoop
		case token.RightParen:
			break columnLoop
		default:
			return fmt.Errorf("Error parsing Columns")
		}
	}

	_, err := p.svc.CreateTable(ctx, engine.CreateTableRequest{
		TableName: tableTok.Value,
		Columns:   columns,
	})
	return err
}
