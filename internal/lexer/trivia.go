package lexer

import (
	"strhash/internal/diag"
)

// skipTrivia consumes whitespace and comments before the next token.
// Comments matter here: an invocation inside one must never be expanded.
func (lx *Lexer) skipTrivia() {
	for !lx.cursor.EOF() {
		switch b := lx.cursor.Peek(); {
		case b == ' ' || b == '\t' || b == '\n' || b == '\r':
			lx.cursor.Bump()

		case b == '/':
			b0, b1, ok := lx.cursor.Peek2()
			switch {
			case ok && b0 == '/' && b1 == '/':
				lx.skipLineComment()
			case ok && b0 == '/' && b1 == '*':
				lx.skipBlockComment()
			default:
				return
			}

		default:
			return
		}
	}
}

func (lx *Lexer) skipLineComment() {
	for !lx.cursor.EOF() && lx.cursor.Peek() != '\n' {
		lx.cursor.Bump()
	}
}

func (lx *Lexer) skipBlockComment() {
	start := lx.cursor.Mark()
	lx.cursor.Bump() // '/'
	lx.cursor.Bump() // '*'
	for !lx.cursor.EOF() {
		b0, b1, ok := lx.cursor.Peek2()
		if ok && b0 == '*' && b1 == '/' {
			lx.cursor.Bump()
			lx.cursor.Bump()
			return
		}
		lx.cursor.Bump()
	}
	lx.errLex(diag.LexUnterminatedBlockComment, lx.cursor.SpanFrom(start), "unterminated block comment")
}
