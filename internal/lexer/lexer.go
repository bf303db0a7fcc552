// Copyright 2018 The Solid Core Data Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package lexer turns a single input line into a stream of tokens for the
// parser to consume.
package lexer

import (
	"unicode"

	"github.com/tinytable/rowdb/internal/token"
)

// Lexer tokenizes one line of input eagerly, then serves tokens in order
// via Consume. It does not re-scan: the whole line is tokenized up front.
type Lexer struct {
	tokens []token.Token
}

// New tokenizes input and returns a Lexer ready to serve it via Consume.
func New(input string) *Lexer {
	l := &Lexer{}
	l.tokenize(input)
	return l
}

// Consume removes and returns the token at the head of the stream. Once the
// stream is exhausted it keeps returning EOL.
func (l *Lexer) Consume() token.Token {
	if len(l.tokens) == 0 {
		return token.Token{Kind: token.EOL}
	}
	t := l.tokens[0]
	l.tokens = l.tokens[1:]
	return t
}

func (l *Lexer) tokenize(input string) {
	runes := []rune(input)
	pos := 0
	for pos < len(runes) {
		c := runes[pos]
		switch {
		case unicode.IsSpace(c):
			pos++
		case unicode.IsLetter(c):
			start := pos
			for pos < len(runes) && (unicode.IsLetter(runes[pos]) || unicode.IsDigit(runes[pos])) {
				pos++
			}
			l.emitWord(string(runes[start:pos]))
		case c == ',':
			l.tokens = append(l.tokens, token.Token{Kind: token.Comma})
			pos++
		case c == '(':
			l.tokens = append(l.tokens, token.Token{Kind: token.LeftParen})
			pos++
		case c == ')':
			l.tokens = append(l.tokens, token.Token{Kind: token.RightParen})
			pos++
		case c == '*':
			l.tokens = append(l.tokens, token.Token{Kind: token.Identifier, Value: "*"})
			pos++
		default:
			// Unrecognized character (including any digit that is not part
			// of a letter-led word, e.g. the "45" in "45a"): silently
			// skipped, one rune at a time, emitting no token.
			pos++
		}
	}
	l.tokens = append(l.tokens, token.Token{Kind: token.EOL})
}

// emitWord classifies a maximal letter-led alphanumeric run: a keyword if
// its uppercased spelling matches one, otherwise a case-preserved
// identifier. A run that never saw the dispatch in tokenize because it was
// pure digits never reaches here at all (see the unicode.IsLetter case
// guard above), which is how a leading digit run like "123" in "123 45a"
// is dropped instead of becoming an identifier.
func (l *Lexer) emitWord(word string) {
	if kind, ok := token.Lookup(upper(word)); ok {
		l.tokens = append(l.tokens, token.Token{Kind: kind})
		return
	}
	l.tokens = append(l.tokens, token.Token{Kind: token.Identifier, Value: word})
}

func upper(s string) string {
	out := make([]rune, 0, len(s))
	for _, r := range s {
		out = append(out, unicode.ToUpper(r))
	}
	return string(out)
}
