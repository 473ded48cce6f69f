// Package lexer produces the token stream the macro expander consumes.
//
// The scan is deliberately loose: the preprocessor runs over source files
// of a host language it does not fully understand, so only identifiers,
// string literals, numbers, and delimiters are classified precisely.
// Every other byte becomes a single Punct token. Comments and whitespace
// are skipped as trivia so a commented-out invocation is never expanded.
package lexer

import (
	"fmt"
	"unicode/utf8"

	"strhash/internal/diag"
	"strhash/internal/source"
	"strhash/internal/token"
)

type Lexer struct {
	file   *source.File
	cursor Cursor
	opts   Options
	look   *token.Token // one-token lookahead buffer
}

func New(file *source.File, opts Options) *Lexer {
	if opts.Reporter == nil {
		opts.Reporter = diag.NopReporter{}
	}
	return &Lexer{
		file:   file,
		cursor: NewCursor(file),
		opts:   opts,
	}
}

// Next returns the next significant token. After EOF it always returns EOF.
func (lx *Lexer) Next() token.Token {
	if lx.look != nil {
		tok := *lx.look
		lx.look = nil
		return tok
	}

	lx.skipTrivia()

	if lx.cursor.EOF() {
		return token.Token{Kind: token.EOF, Span: lx.emptySpan()}
	}

	ch := lx.cursor.Peek()
	switch {
	case isIdentStartByte(ch):
		return lx.scanIdent()
	case ch >= utf8RuneSelf:
		if r, _ := lx.peekRune(); isIdentStartRune(r) {
			return lx.scanIdent()
		}
		return lx.scanUnknown()
	case isDec(ch):
		return lx.scanNumber()
	case ch == '"':
		return lx.scanString()
	default:
		return lx.scanPunct()
	}
}

// Peek returns the next token without consuming it.
func (lx *Lexer) Peek() token.Token {
	t := lx.Next()
	lx.look = &t
	return t
}

// All drains the lexer into a token slice, EOF token included.
func (lx *Lexer) All() []token.Token {
	var out []token.Token
	for {
		t := lx.Next()
		out = append(out, t)
		if t.Kind == token.EOF {
			return out
		}
	}
}

func (lx *Lexer) emptySpan() source.Span {
	return source.Span{File: lx.file.ID, Start: lx.cursor.Off, End: lx.cursor.Off}
}

func (lx *Lexer) tokenAt(kind token.Kind, sp source.Span) token.Token {
	return token.Token{
		Kind: kind,
		Span: sp,
		Text: string(lx.file.Content[sp.Start:sp.End]),
	}
}

func (lx *Lexer) scanPunct() token.Token {
	start := lx.cursor.Mark()
	ch := lx.cursor.Bump()
	sp := lx.cursor.SpanFrom(start)

	var kind token.Kind
	switch ch {
	case '(':
		kind = token.LParen
	case ')':
		kind = token.RParen
	case '[':
		kind = token.LBracket
	case ']':
		kind = token.RBracket
	case '{':
		kind = token.LBrace
	case '}':
		kind = token.RBrace
	case ',':
		kind = token.Comma
	default:
		kind = token.Punct
	}
	return lx.tokenAt(kind, sp)
}

// scanUnknown consumes one non-ASCII rune the classifier has no use for.
// It still becomes a Punct token so the stream always advances; bytes that
// are not valid UTF-8 additionally get a warning.
func (lx *Lexer) scanUnknown() token.Token {
	start := lx.cursor.Mark()
	r, size := lx.peekRune()
	lx.bumpRune()
	sp := lx.cursor.SpanFrom(start)
	if r == utf8.RuneError && size == 1 {
		lx.warnLex(diag.LexUnknownChar, sp,
			fmt.Sprintf("byte 0x%02X is not valid UTF-8", lx.file.Content[sp.Start]))
	}
	return lx.tokenAt(token.Punct, sp)
}
