package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"

	"strhash/internal/source"
	"strhash/internal/token"
)

// FormatTokensPretty writes one line per token:
//
//	<line>:<col>  <Kind>  <text>
func FormatTokensPretty(w io.Writer, toks []token.Token, fs *source.FileSet) error {
	for _, t := range toks {
		start, _ := fs.Resolve(t.Span)
		if _, err := fmt.Fprintf(w, "%4d:%-3d %-10s %q\n", start.Line, start.Col, t.Kind, t.Text); err != nil {
			return err
		}
	}
	return nil
}

type tokenJSON struct {
	Kind  string `json:"kind"`
	Start uint32 `json:"start"`
	End   uint32 `json:"end"`
	Text  string `json:"text"`
}

// FormatTokensJSON writes the token stream as a JSON array.
func FormatTokensJSON(w io.Writer, toks []token.Token) error {
	out := make([]tokenJSON, 0, len(toks))
	for _, t := range toks {
		out = append(out, tokenJSON{
			Kind:  t.Kind.String(),
			Start: t.Span.Start,
			End:   t.Span.End,
			Text:  t.Text,
		})
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
