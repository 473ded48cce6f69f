package lexer

import (
	"strhash/internal/token"
)

func (lx *Lexer) scanIdent() token.Token {
	start := lx.cursor.Mark()
	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		if b < utf8RuneSelf {
			if !isIdentContinueByte(b) {
				break
			}
			lx.cursor.Bump()
			continue
		}
		r, _ := lx.peekRune()
		if !isIdentContinueRune(r) {
			break
		}
		lx.bumpRune()
	}
	return lx.tokenAt(token.Ident, lx.cursor.SpanFrom(start))
}
