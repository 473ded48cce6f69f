package testkit

import (
	"fmt"
	"sort"

	"fortio.org/safecast"

	"strhash/internal/diag"
	"strhash/internal/source"
)

// CheckEditInvariants runs a minimal set of invariants on the edits an
// expansion produced for one file:
// 1) every edit span is non-empty, points at the file, and stays within
//    the file content bounds
// 2) no two edit spans overlap
// 3) every replacement text is non-empty (an invocation always becomes
//    an integer literal, never vanishes)
func CheckEditInvariants(sf *source.File, edits []diag.TextEdit) error {
	if sf == nil {
		return fmt.Errorf("nil file")
	}
	lenContent, err := safecast.Conv[uint32](len(sf.Content))
	if err != nil {
		return fmt.Errorf("len content overflow: %w", err)
	}

	sorted := make([]diag.TextEdit, len(edits))
	copy(sorted, edits)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Span.Start < sorted[j].Span.Start
	})

	var prevEnd uint32
	for i, e := range sorted {
		sp := e.Span
		if sp.End <= sp.Start {
			return fmt.Errorf("empty edit span: %v", sp)
		}
		if sp.File != sf.ID {
			return fmt.Errorf("edit span file mismatch: got=%d want=%d", sp.File, sf.ID)
		}
		if sp.End > lenContent {
			return fmt.Errorf("edit span end beyond content: %d > %d", sp.End, lenContent)
		}
		if i > 0 && sp.Start < prevEnd {
			return fmt.Errorf("edit spans overlap: %v starts before offset %d", sp, prevEnd)
		}
		prevEnd = sp.End
		if e.NewText == "" {
			return fmt.Errorf("edit at %v has empty replacement", sp)
		}
	}
	return nil
}
