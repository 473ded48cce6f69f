package lexer

import (
	"strhash/internal/token"
)

// scanNumber consumes a numeric literal without interpreting it. Digits,
// letters, underscores, and a decimal point are taken greedily so hex
// (0xFF), separators (1_000), and floats stay one token.
func (lx *Lexer) scanNumber() token.Token {
	start := lx.cursor.Mark()
	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		if isDec(b) || isIdentContinueByte(b) {
			lx.cursor.Bump()
			continue
		}
		if b == '.' {
			// Only .digit continues the number; anything else ends it.
			_, b1, ok := lx.cursor.Peek2()
			if !ok || !isDec(b1) {
				break
			}
			lx.cursor.Bump()
			continue
		}
		break
	}
	return lx.tokenAt(token.IntLit, lx.cursor.SpanFrom(start))
}
