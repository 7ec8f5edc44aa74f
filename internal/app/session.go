// Package app holds the browsing session: the page history, the fetch
// lifecycle and the Bubble Tea model that ties them to the terminal.
package app

import (
	"context"

	"charm.land/bubbles/v2/spinner"
	"charm.land/bubbles/v2/textinput"
	"charm.land/lipgloss/v2"

	"github.com/Gaurav-Gosain/burrow/internal/config"
	"github.com/Gaurav-Gosain/burrow/internal/theme"
	"github.com/Gaurav-Gosain/burrow/internal/view"
)

// Transport fetches the raw response for a selector. *gopher.Client
// implements it.
type Transport interface {
	Fetch(ctx context.Context, host, port, selector string) (string, error)
}

// Options configures a new Session.
type Options struct {
	// Start is opened by Init. Empty means start with no page.
	Start string
	// Wide starts every new page with centering off.
	Wide bool
	// Keys resolves global key bindings. Nil uses the defaults.
	Keys *config.KeybindRegistry
	// Transport performs fetches. Required.
	Transport Transport
	// ConfigPath is watched for changes when set.
	ConfigPath string
	// DownloadDir receives binary items. Empty disables downloads.
	DownloadDir string
	// Local lets the session use the host desktop: the external URL
	// opener and the clipboard programs. Leave it off for remote users.
	Local bool
	// Context bounds every fetch. Nil means context.Background.
	Context context.Context
}

type promptKind int

const (
	promptNone promptKind = iota
	promptSearch
	promptGoto
)

// Session is the top-level Bubble Tea model. It owns the page history
// and routes key presses to the current page first and to the global
// key bindings second.
type Session struct {
	pages   []view.View
	page    int
	dirty   bool
	running bool

	// Terminal dimensions
	Width  int
	Height int

	// Wide is applied to pages as they are created.
	Wide bool
	// Keys resolves global key bindings.
	Keys *config.KeybindRegistry

	transport   Transport
	start       string
	configPath  string
	downloadDir string
	local       bool

	ctx         context.Context
	cancelFetch context.CancelFunc
	fetchSeq    int
	loading     string

	spinner spinner.Model

	prompt    textinput.Model
	prompting promptKind
	promptURL string

	status    string
	statusErr bool

	frame string
}

// NewSession returns a Session that has not opened anything yet.
func NewSession(opts Options) *Session {
	if opts.Keys == nil {
		opts.Keys = config.NewKeybindRegistry(config.DefaultConfig())
	}
	if opts.Context == nil {
		opts.Context = context.Background()
	}

	ti := textinput.New()
	ti.Prompt = "> "

	return &Session{
		running:     true,
		dirty:       true,
		Width:       80,
		Height:      24,
		Wide:        opts.Wide,
		Keys:        opts.Keys,
		transport:   opts.Transport,
		start:       opts.Start,
		configPath:  opts.ConfigPath,
		downloadDir: opts.DownloadDir,
		local:       opts.Local,
		ctx:         opts.Context,
		spinner: spinner.New(
			spinner.WithSpinner(spinner.Dot),
			spinner.WithStyle(lipgloss.NewStyle().Foreground(theme.Spinner())),
		),
		prompt: ti,
	}
}

// Pages returns the history, oldest first.
func (s *Session) Pages() []view.View { return s.pages }

// PageIndex returns the position of the current page in the history.
func (s *Session) PageIndex() int { return s.page }

// Current returns the page being shown, or nil before the first load.
func (s *Session) Current() view.View {
	if s.page < 0 || s.page >= len(s.pages) {
		return nil
	}
	return s.pages[s.page]
}

// Running reports whether the session still wants input.
func (s *Session) Running() bool { return s.running }

// Dirty reports whether the next render must repaint the page.
func (s *Session) Dirty() bool { return s.dirty }

// Loading returns the URL being fetched, or "" when idle.
func (s *Session) Loading() string { return s.loading }

// Prompting reports whether the status row is reading a line.
func (s *Session) Prompting() bool { return s.prompting != promptNone }

// Status returns the message on the status row and whether it is an error.
func (s *Session) Status() (string, bool) { return s.status, s.statusErr }

// AddPage appends v after the current page, dropping any pages that were
// ahead of it, and makes it current.
func (s *Session) AddPage(v view.View) {
	if len(s.pages) > 0 && s.page < len(s.pages)-1 {
		s.pages = s.pages[:s.page+1]
	}
	s.pages = append(s.pages, v)
	if len(s.pages) > 1 {
		s.page++
	}
	s.dirty = true
}

// ReplacePage swaps the current page for v, keeping the rest of the
// history. With no pages it behaves like AddPage.
func (s *Session) ReplacePage(v view.View) {
	if s.Current() == nil {
		s.AddPage(v)
		return
	}
	s.pages[s.page] = v
	s.dirty = true
}

// Back moves one page back in history. It reports whether it moved.
func (s *Session) Back() bool {
	if s.page == 0 {
		return false
	}
	s.page--
	s.dirty = true
	s.clearStatus()
	return true
}

// Forward moves one page forward in history. It reports whether it moved.
func (s *Session) Forward() bool {
	if s.page >= len(s.pages)-1 {
		return false
	}
	s.page++
	s.dirty = true
	s.clearStatus()
	return true
}

// MarkDirty forces the next render to repaint the page.
func (s *Session) MarkDirty() { s.dirty = true }

func (s *Session) setStatus(msg string) {
	s.status, s.statusErr = msg, false
}

func (s *Session) setError(msg string) {
	s.status, s.statusErr = msg, true
}

func (s *Session) clearStatus() {
	s.status, s.statusErr = "", false
}
