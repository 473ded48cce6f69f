package token

import (
	"strhash/internal/source"
)

// Token represents a single source token with its location.
type Token struct {
	Kind Kind
	Span source.Span
	Text string
}

// IsLiteral reports whether the token is a string or integer literal.
func (t Token) IsLiteral() bool {
	switch t.Kind {
	case StringLit, IntLit:
		return true
	default:
		return false
	}
}

// IsOpenDelim reports whether the token opens a delimiter group.
func (t Token) IsOpenDelim() bool {
	switch t.Kind {
	case LParen, LBracket, LBrace:
		return true
	default:
		return false
	}
}

// IsCloseDelim reports whether the token closes a delimiter group.
func (t Token) IsCloseDelim() bool {
	switch t.Kind {
	case RParen, RBracket, RBrace:
		return true
	default:
		return false
	}
}

// IsPunct reports whether the token is punctuation or an operator,
// delimiters included.
func (t Token) IsPunct() bool {
	switch t.Kind {
	case Comma, Punct, LParen, RParen, LBracket, RBracket, LBrace, RBrace:
		return true
	default:
		return false
	}
}

// IsIdent reports whether the token is an identifier.
func (t Token) IsIdent() bool { return t.Kind == Ident }
