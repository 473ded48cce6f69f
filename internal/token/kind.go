package token

// Kind represents the category of a source token.
type Kind uint8

const (
	// Invalid indicates an erroneous token.
	Invalid Kind = iota
	// EOF marks the end of the source input.
	EOF

	// Ident represents an identifier token.
	Ident
	// StringLit represents a double-quoted string literal, quotes included.
	StringLit
	// IntLit represents an integer literal.
	IntLit

	// LParen represents '('.
	LParen
	// RParen represents ')'.
	RParen
	// LBracket represents '['.
	LBracket
	// RBracket represents ']'.
	RBracket
	// LBrace represents '{'.
	LBrace
	// RBrace represents '}'.
	RBrace

	// Comma represents ','.
	Comma
	// Punct represents any other single punctuation or operator byte.
	Punct
)

func (k Kind) String() string {
	switch k {
	case Invalid:
		return "Invalid"
	case EOF:
		return "EOF"
	case Ident:
		return "Ident"
	case StringLit:
		return "StringLit"
	case IntLit:
		return "IntLit"
	case LParen:
		return "LParen"
	case RParen:
		return "RParen"
	case LBracket:
		return "LBracket"
	case RBracket:
		return "RBracket"
	case LBrace:
		return "LBrace"
	case RBrace:
		return "RBrace"
	case Comma:
		return "Comma"
	case Punct:
		return "Punct"
	}
	return "Unknown"
}

// Closer returns the matching closing delimiter kind for an opener.
// Returns Invalid for non-openers.
func (k Kind) Closer() Kind {
	switch k {
	case LParen:
		return RParen
	case LBracket:
		return RBracket
	case LBrace:
		return RBrace
	default:
		return Invalid
	}
}
