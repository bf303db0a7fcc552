// Copyright 2018 The Solid Core Data Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package lexer

import (
	"testing"

	"github.com/tinytable/rowdb/internal/token"
)

func consumeAll(t *testing.T, l *Lexer) []token.Token {
	t.Helper()
	var out []token.Token
	for {
		tok := l.Consume()
		out = append(out, tok)
		if tok.Kind == token.EOL {
			return out
		}
	}
}

func TestKeywordsCaseInsensitive(t *testing.T) {
	toks := consumeAll(t, New("create SELECT Insert UpDaTe"))
	want := []token.Kind{token.Create, token.Select, token.Insert, token.Update, token.EOL}
	if len(toks) != len(want) {
		t.Fatalf("got %d tokens, want %d", len(toks), len(want))
	}
	for i, k := range want {
		if toks[i].Kind != k {
			t.Fatalf("token %d: got %s, want %s", i, toks[i].Kind, k)
		}
	}
}

func TestIdentifiersAndSymbols(t *testing.T) {
	l := New("CREATE table (id INT, name STRING)")
	expect := []token.Token{
		{Kind: token.Create},
		{Kind: token.Table},
		{Kind: token.LeftParen},
		{Kind: token.Identifier, Value: "id"},
		{Kind: token.Int},
		{Kind: token.Comma},
		{Kind: token.Identifier, Value: "name"},
		{Kind: token.String},
		{Kind: token.RightParen},
		{Kind: token.EOL},
	}
	for i, want := range expect {
		got := l.Consume()
		if got.Kind != want.Kind || got.Value != want.Value {
			t.Fatalf("token %d: got %+v, want %+v", i, got, want)
		}
	}
}

func TestAlphanumericIdentifier(t *testing.T) {
	l := New("user1 col2a")
	if got := l.Consume(); got.Kind != token.Identifier || got.Value != "user1" {
		t.Fatalf("got %+v, want Identifier(user1)", got)
	}
	if got := l.Consume(); got.Kind != token.Identifier || got.Value != "col2a" {
		t.Fatalf("got %+v, want Identifier(col2a)", got)
	}
	if got := l.Consume(); got.Kind != token.EOL {
		t.Fatalf("got %+v, want EOL", got)
	}
}

func TestNumbersIgnoredThenIdentifier(t *testing.T) {
	l := New("123 45a")
	if got := l.Consume(); got.Kind != token.Identifier || got.Value != "a" {
		t.Fatalf("got %+v, want Identifier(a)", got)
	}
	if got := l.Consume(); got.Kind != token.EOL {
		t.Fatalf("got %+v, want EOL", got)
	}
}

func TestSelectStarFromIdentifier(t *testing.T) {
	l := New("SELECT * from test")
	expect := []token.Token{
		{Kind: token.Select},
		{Kind: token.Identifier, Value: "*"},
		{Kind: token.From},
		{Kind: token.Identifier, Value: "test"},
		{Kind: token.EOL},
	}
	for i, want := range expect {
		got := l.Consume()
		if got.Kind != want.Kind || got.Value != want.Value {
			t.Fatalf("token %d: got %+v, want %+v", i, got, want)
		}
	}
}

func TestConsumePastEndReturnsEOL(t *testing.T) {
	l := New("")
	for i := 0; i < 3; i++ {
		if got := l.Consume(); got.Kind != token.EOL {
			t.Fatalf("consume %d: got %+v, want EOL", i, got)
		}
	}
}
