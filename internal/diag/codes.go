package diag

import (
	"fmt"
)

// Code is a compact numeric diagnostic identifier with a stable string form.
type Code uint16

const (
	UnknownCode Code = 0

	// Lexical.
	LexInfo                     Code = 1000
	LexUnknownChar              Code = 1001
	LexUnterminatedString       Code = 1002
	LexUnterminatedBlockComment Code = 1003
	LexTokenTooLong             Code = 1004

	// Macro expansion.
	ExpInfo                 Code = 2000
	ExpMissingArgument      Code = 2001
	ExpTooManyArguments     Code = 2002
	ExpInvalidLiteralFormat Code = 2003
	ExpUnexpectedTokenKind  Code = 2004
	ExpUnclosedInvocation   Code = 2005

	// IO and rewrite.
	IOInfo             Code = 4000
	IOReadFailed       Code = 4001
	IOWriteFailed      Code = 4002
	RewriteOverlapping Code = 4003
)

var codeDescription = map[Code]string{
	UnknownCode: "unknown diagnostic",

	LexInfo:                     "lexical info",
	LexUnknownChar:              "unknown character",
	LexUnterminatedString:       "unterminated string literal",
	LexUnterminatedBlockComment: "unterminated block comment",
	LexTokenTooLong:             "token exceeds length limit",

	ExpInfo:                 "expansion info",
	ExpMissingArgument:      "macro argument missing",
	ExpTooManyArguments:     "too many macro arguments",
	ExpInvalidLiteralFormat: "invalid string literal format",
	ExpUnexpectedTokenKind:  "unexpected token kind",
	ExpUnclosedInvocation:   "unclosed macro invocation",

	IOInfo:             "io info",
	IOReadFailed:       "failed to read file",
	IOWriteFailed:      "failed to write file",
	RewriteOverlapping: "overlapping rewrite edits",
}

// ID returns the short stable identifier, e.g. "EXP2003".
func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("LEX%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("EXP%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("IO%04d", ic)
	}
	return "E0000"
}

// Title returns the human readable one-line description.
func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[Code(0)]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
