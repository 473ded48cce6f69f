// Package token defines the lexical token kinds the strhash preprocessor
// works with.
// Invariants:
//   - Token.Text is a slice of the original source (no copies).
//   - Token.Span matches Text exactly (Start..End).
//   - Comments and whitespace never appear in the token stream; the lexer
//     skips them as trivia.
//   - The host language is scanned loosely: anything that is not an
//     identifier, literal, or delimiter is emitted as a single Punct token.
//     Only the tokens around a hash-macro invocation need to be precise.
package token
