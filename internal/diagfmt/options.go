package diagfmt

// PrettyOpts configures human-readable diagnostic rendering.
type PrettyOpts struct {
	// Color enables ANSI colors.
	Color bool
	// Context is the number of source lines shown around the primary span.
	Context int
}
