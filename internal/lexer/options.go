package lexer

import (
	"strhash/internal/diag"
	"strhash/internal/source"
)

// Options configures a Lexer.
type Options struct {
	// Reporter receives lexical diagnostics; nil means diag.NopReporter
	// (lexing continues either way).
	Reporter diag.Reporter
	// MaxTokenLen caps the byte length of a single token; 0 means no limit.
	MaxTokenLen uint32
}

func (lx *Lexer) errLex(code diag.Code, sp source.Span, msg string) {
	lx.opts.Reporter.Report(code, diag.SevError, sp, msg, nil, nil)
}

func (lx *Lexer) warnLex(code diag.Code, sp source.Span, msg string) {
	lx.opts.Reporter.Report(code, diag.SevWarning, sp, msg, nil, nil)
}
