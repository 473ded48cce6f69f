package diag

import (
	"strhash/internal/source"
)

// Note is a secondary span/message pair adding context to a diagnostic.
type Note struct {
	Span source.Span
	Msg  string
}

// TextEdit replaces the text at Span with NewText.
type TextEdit struct {
	Span    source.Span
	NewText string
}

// Fix is a structured correction the rewrite engine can apply.
type Fix struct {
	Title string
	Edits []TextEdit
}

// Diagnostic is a single finding with location, code, and optional fixes.
type Diagnostic struct {
	Severity Severity
	Code     Code
	Message  string
	Primary  source.Span
	Notes    []Note
	Fixes    []Fix
}
