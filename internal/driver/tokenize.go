package driver

import (
	"fmt"

	"strhash/internal/diag"
	"strhash/internal/lexer"
	"strhash/internal/source"
	"strhash/internal/token"
)

// TokenizeResult holds one file's token stream and diagnostics.
type TokenizeResult struct {
	Path    string
	FileID  source.FileID
	FileSet *source.FileSet
	Tokens  []token.Token
	Bag     *diag.Bag
}

// Tokenize lexes a single file, for the debug `tokenize` command.
func Tokenize(path string, maxDiagnostics int) (*TokenizeResult, error) {
	fs := source.NewFileSet()
	id, err := fs.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}

	bag := diag.NewBag(maxDiagnostics)
	toks := lexer.New(fs.Get(id), lexer.Options{Reporter: diag.BagReporter{Bag: bag}}).All()

	return &TokenizeResult{
		Path:    path,
		FileID:  id,
		FileSet: fs,
		Tokens:  toks,
		Bag:     bag,
	}, nil
}
