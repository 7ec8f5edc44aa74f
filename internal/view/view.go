// Package view defines the contract shared by every page type a browsing
// session can hold, along with the decoded key and action types that flow
// between a page and the session.
package view

const (
	// ScrollLines is how far PageUp and PageDown move.
	ScrollLines = 15
	// MaxCols is the widest a line is drawn before it is truncated.
	MaxCols = 72
)

// View is one page in a browsing session.
//
// SetSize is called before every Render, so a view derives its layout
// from the latest size instead of caching it. Render returns exactly as
// many lines as the last SetSize rows, the final one being the status line.
type View interface {
	Render() string
	ProcessInput(k Key) Action
	URL() string
	SetSize(cols, rows int)
	// Raw returns the unparsed response body the view was built from.
	Raw() string
}

// Wider is implemented by views that can switch centering off.
type Wider interface {
	SetWide(bool)
}
