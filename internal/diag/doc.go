// Package diag defines the diagnostic model shared by the lexer, the
// macro expander, and the driver.
//
// Diagnostic is the central record: severity, a stable numeric code, a
// short message, the primary source span, optional notes, and optional
// structured fixes (text edits the rewrite engine can apply).
//
// The package performs no formatting or IO. Rendering lives in
// internal/diagfmt; applying fixes lives in internal/rewrite.
package diag
