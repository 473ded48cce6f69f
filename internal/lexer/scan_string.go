package lexer

import (
	"strhash/internal/diag"
	"strhash/internal/token"
)

// scanString consumes a double-quoted literal. Escapes are not validated
// here beyond keeping \" from terminating the literal; the expander
// unescapes and validates the content it actually hashes.
func (lx *Lexer) scanString() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump() // opening '"'
	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		if b == '"' {
			lx.cursor.Bump()
			sp := lx.cursor.SpanFrom(start)
			if lx.opts.MaxTokenLen > 0 && sp.Len() > lx.opts.MaxTokenLen {
				lx.errLex(diag.LexTokenTooLong, sp, "string literal exceeds token length limit")
				return lx.tokenAt(token.Invalid, sp)
			}
			return lx.tokenAt(token.StringLit, sp)
		}
		if b == '\\' {
			// Eat '\' and the escaped byte; deep validation happens later.
			lx.cursor.Bump()
			if lx.cursor.EOF() {
				break
			}
			lx.cursor.Bump()
			continue
		}
		if b == '\n' {
			sp := lx.cursor.SpanFrom(start)
			lx.errLex(diag.LexUnterminatedString, sp, "newline in string literal")
			return lx.tokenAt(token.Invalid, sp)
		}
		lx.cursor.Bump()
	}
	// EOF before the closing quote.
	sp := lx.cursor.SpanFrom(start)
	lx.errLex(diag.LexUnterminatedString, sp, "unterminated string literal")
	return lx.tokenAt(token.Invalid, sp)
}
