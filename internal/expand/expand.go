// Package expand implements the hash-macro engine: it locates macro
// invocations in a token stream, validates the single quoted-string
// argument, and produces the text edits that replace each invocation
// with its precomputed hash literal.
package expand

import (
	"fmt"
	"strconv"

	"strhash/internal/diag"
	"strhash/internal/source"
	"strhash/internal/token"
)

// Result aggregates the outcome of expanding one token stream.
type Result struct {
	// Edits replace whole invocations with integer literals, in source order.
	Edits []diag.TextEdit
	// Invocations counts syntactic invocations found, failed ones included.
	Invocations int
}

// Expand walks the token stream and expands every registered macro
// invocation. Validation failures are reported to r and leave the
// offending invocation untouched; the rest of the stream still expands.
func Expand(toks []token.Token, reg *Registry, r diag.Reporter) Result {
	if r == nil {
		r = diag.NopReporter{}
	}
	e := &expander{toks: toks, reg: reg, reporter: r}
	return e.run()
}

type expander struct {
	toks     []token.Token
	reg      *Registry
	reporter diag.Reporter
	res      Result
}

func (e *expander) run() Result {
	i := 0
	for i < len(e.toks) {
		tok := e.toks[i]
		if tok.Kind == token.EOF {
			break
		}
		if !tok.IsIdent() {
			i++
			continue
		}
		m, ok := e.reg.Lookup(tok.Text)
		if !ok || i+1 >= len(e.toks) || e.toks[i+1].Kind != token.LParen {
			i++
			continue
		}

		args, next, closed, mismatch := e.collectArgs(i + 1)
		if mismatch >= 0 {
			bad := e.toks[mismatch]
			e.res.Invocations++
			e.err(diag.ExpUnclosedInvocation, bad.Span,
				fmt.Sprintf("`%s` invocation is closed by mismatched `%s`", m.Name, bad.Text))
			i = next
			continue
		}
		if !closed {
			sp := tok.Span.Cover(e.toks[len(e.toks)-1].Span)
			e.err(diag.ExpUnclosedInvocation, sp,
				fmt.Sprintf("`%s` invocation is never closed", m.Name))
			return e.res
		}
		e.res.Invocations++

		inv := tok.Span.Cover(e.toks[next-1].Span)
		if newText, ok := e.validate(m, inv, args); ok {
			e.res.Edits = append(e.res.Edits, diag.TextEdit{Span: inv, NewText: newText})
		}
		i = next
	}
	return e.res
}

// collectArgs consumes a balanced delimiter group starting at the opener
// openIdx. It returns the tokens strictly inside the outer delimiters,
// the index just past the closer, and whether the group was closed.
// A closer that does not match the innermost opener stops collection;
// mismatch is its token index then, -1 otherwise.
func (e *expander) collectArgs(openIdx int) (args []token.Token, next int, closed bool, mismatch int) {
	var stack []token.Kind
	for j := openIdx; j < len(e.toks); j++ {
		t := e.toks[j]
		switch {
		case t.Kind == token.EOF:
			return nil, len(e.toks), false, -1
		case t.IsOpenDelim():
			stack = append(stack, t.Kind)
		case t.IsCloseDelim():
			if t.Kind != stack[len(stack)-1].Closer() {
				return nil, j + 1, false, j
			}
			stack = stack[:len(stack)-1]
			if len(stack) == 0 {
				return e.toks[openIdx+1 : j], j + 1, true, -1
			}
		}
	}
	return nil, len(e.toks), false, -1
}

// unwrapGroup strips one level of delimiter nesting when args form a
// single complete group, e.g. ("s") or ["s"] or {"s"}.
func unwrapGroup(args []token.Token) []token.Token {
	if len(args) < 2 || !args[0].IsOpenDelim() {
		return args
	}
	if args[len(args)-1].Kind != args[0].Kind.Closer() {
		return args
	}
	// The group opened first must be the one closed last.
	depth := 0
	for j, t := range args {
		switch {
		case t.IsOpenDelim():
			depth++
		case t.IsCloseDelim():
			depth--
			if depth == 0 && j != len(args)-1 {
				return args
			}
		}
	}
	return args[1 : len(args)-1]
}

// validate applies the argument contract and returns the replacement text.
func (e *expander) validate(m Macro, inv source.Span, args []token.Token) (string, bool) {
	prefix := fmt.Sprintf("`%s` takes one quoted string literal argument", m.Name)

	args = unwrapGroup(args)

	if len(args) == 0 {
		e.err(diag.ExpMissingArgument, inv, prefix+" - none were provided")
		return "", false
	}
	if len(args) > 1 {
		extra := args[1].Span.Cover(args[len(args)-1].Span)
		e.err(diag.ExpTooManyArguments, extra, prefix+" - multiple were provided")
		return "", false
	}

	arg := args[0]
	switch arg.Kind {
	case token.StringLit:
		// fall through to literal checks below
	case token.Invalid:
		// The lexer already reported this token.
		return "", false
	case token.Ident:
		quote := diag.Fix{
			Title: fmt.Sprintf("quote the argument as %s", strconv.Quote(arg.Text)),
			Edits: []diag.TextEdit{{Span: arg.Span, NewText: strconv.Quote(arg.Text)}},
		}
		e.reporter.Report(diag.ExpUnexpectedTokenKind, diag.SevError, arg.Span,
			fmt.Sprintf("%s - identifier `%s` was provided", prefix, arg.Text),
			nil, []diag.Fix{quote})
		return "", false
	case token.IntLit:
		e.err(diag.ExpUnexpectedTokenKind, arg.Span,
			fmt.Sprintf("%s - literal `%s` is not a string", prefix, arg.Text))
		return "", false
	default:
		e.err(diag.ExpUnexpectedTokenKind, arg.Span,
			fmt.Sprintf("%s - punctuation `%s` was provided", prefix, arg.Text))
		return "", false
	}

	// The raw token text keeps its quotes; `""` (length 2) is the legal
	// empty string literal.
	raw := arg.Text
	switch {
	case len(raw) < 2:
		e.err(diag.ExpInvalidLiteralFormat, arg.Span,
			fmt.Sprintf("%s - `%s` is too short", prefix, raw))
		return "", false
	case raw[0] != '"':
		e.err(diag.ExpInvalidLiteralFormat, arg.Span,
			fmt.Sprintf("%s - `%s` does not start with a quote", prefix, raw))
		return "", false
	case raw[len(raw)-1] != '"':
		e.err(diag.ExpInvalidLiteralFormat, arg.Span,
			fmt.Sprintf("%s - `%s` does not end with a quote", prefix, raw))
		return "", false
	}

	content, err := unescape(raw[1 : len(raw)-1])
	if err != nil {
		e.err(diag.ExpInvalidLiteralFormat, arg.Span,
			fmt.Sprintf("%s - %v in `%s`", prefix, err, raw))
		return "", false
	}

	return m.Hash(content), true
}

func (e *expander) err(code diag.Code, sp source.Span, msg string) {
	e.reporter.Report(code, diag.SevError, sp, msg, nil, nil)
}
