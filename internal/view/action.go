package view

// ActionKind tells the session what a view wants done after a key press.
type ActionKind int

const (
	// None means the key was consumed and nothing needs repainting.
	None ActionKind = iota
	Back
	Forward
	// Open asks the session to fetch Action.URL.
	Open
	// Redraw means view state changed and the screen must be repainted.
	Redraw
	Quit
	// Clipboard asks the session to copy Action.Data.
	Clipboard
	// Unknown means the view declined the key; the session's global
	// bindings get a chance at it.
	Unknown
	// Keypress hands Action.Key back to the session for reinterpretation.
	Keypress
	// Prompt asks the session to read a line from the user and open
	// Action.URL + "?" + answer.
	Prompt
)

var actionNames = [...]string{
	None:      "none",
	Back:      "back",
	Forward:   "forward",
	Open:      "open",
	Redraw:    "redraw",
	Quit:      "quit",
	Clipboard: "clipboard",
	Unknown:   "unknown",
	Keypress:  "keypress",
	Prompt:    "prompt",
}

func (k ActionKind) String() string {
	if int(k) < len(actionNames) {
		return actionNames[k]
	}
	return "invalid"
}

// Action is the result of View.ProcessInput.
type Action struct {
	Kind   ActionKind
	URL    string // Open, Prompt
	Data   string // Clipboard
	Key    Key    // Keypress
	Prompt string // Prompt message
}

// Convenience constructors.

func OpenURL(url string) Action { return Action{Kind: Open, URL: url} }

func CopyText(data string) Action { return Action{Kind: Clipboard, Data: data} }

func PassKey(k Key) Action { return Action{Kind: Keypress, Key: k} }

func Ask(message, url string) Action { return Action{Kind: Prompt, Prompt: message, URL: url} }

// Just returns an Action that carries only a kind.
func Just(kind ActionKind) Action { return Action{Kind: kind} }
