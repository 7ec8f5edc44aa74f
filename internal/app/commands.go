package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	tea "charm.land/bubbletea/v2"
	"github.com/atotto/clipboard"
	"github.com/charmbracelet/log"

	"github.com/Gaurav-Gosain/burrow/internal/gopher"
	"github.com/Gaurav-Gosain/burrow/internal/menu"
	"github.com/Gaurav-Gosain/burrow/internal/native"
	"github.com/Gaurav-Gosain/burrow/internal/text"
	"github.com/Gaurav-Gosain/burrow/internal/view"
)

// Hooks into the desktop, replaced in tests.
var (
	openExternal  = native.Open
	copyClipboard = clipboard.WriteAll
)

// ErrDownloadsDisabled is reported for binary items when the session has
// no download directory, as when serving over SSH.
var ErrDownloadsDisabled = errors.New("downloads are disabled")

// PageLoadedMsg carries a fetched response back to the update loop.
type PageLoadedMsg struct {
	seq     int
	URL     string
	Type    gopher.Type
	Body    string
	replace bool
}

// FetchFailedMsg reports a fetch that returned an error.
type FetchFailedMsg struct {
	seq     int
	URL     string
	Err     error
	replace bool
}

// DownloadedMsg reports a binary item saved to disk.
type DownloadedMsg struct {
	seq  int
	URL  string
	Path string
	Err  error
}

// Open fetches url and shows it as a new page. Non-gopher URLs are handed
// to the desktop, Search URLs without a query prompt for one first.
func (s *Session) Open(url string) tea.Cmd {
	url = strings.TrimSpace(url)
	if url == helpURL {
		return s.ShowHelp()
	}
	url = gopher.Normalize(url)
	if url == "" {
		return nil
	}
	s.dirty = true

	if !gopher.IsGopherURL(url) {
		if !s.local {
			s.setError("can't open " + url + " in a remote session")
			return nil
		}
		if err := openExternal(url); err != nil {
			log.Warn("can't open externally", "url", url, "err", err)
			s.setError(err.Error())
			return nil
		}
		s.setStatus("opened " + url)
		return nil
	}

	typ, _, _, selector := gopher.ParseURL(url)
	switch typ {
	case gopher.Search:
		if !strings.Contains(selector, "\t") {
			return s.startPrompt(promptSearch, "search", url)
		}
	case gopher.Telnet, gopher.Telnet3270, gopher.CSO:
		s.setError(fmt.Sprintf("can't open %s items", typ))
		return nil
	}
	if typ.IsDownload() && s.downloadDir == "" {
		s.setError(ErrDownloadsDisabled.Error())
		return nil
	}
	return s.fetch(url, false)
}

// Reload fetches the current page again and replaces it in place. A
// source view stays a source view.
func (s *Session) Reload() tea.Cmd {
	page := s.Current()
	if page == nil {
		return nil
	}
	if page.URL() == helpURL {
		s.ReplacePage(s.helpPage())
		return nil
	}
	return s.fetch(page.URL(), true)
}

// CancelLoading abandons the fetch in flight. Its result is ignored.
func (s *Session) CancelLoading() {
	if s.loading == "" {
		return
	}
	log.Debug("fetch cancelled", "url", s.loading)
	s.stopLoading()
	s.setStatus("cancelled")
}

func (s *Session) fetch(url string, replace bool) tea.Cmd {
	s.stopLoading()

	ctx, cancel := context.WithCancel(s.ctx)
	s.cancelFetch = cancel
	s.fetchSeq++
	s.loading = url
	s.clearStatus()
	s.dirty = true

	log.Info("fetching", "url", url)
	return tea.Batch(
		s.spinner.Tick,
		fetchCmd(ctx, s.transport, s.fetchSeq, url, replace, s.downloadDir),
	)
}

func (s *Session) stopLoading() {
	if s.cancelFetch != nil {
		s.cancelFetch()
		s.cancelFetch = nil
	}
	s.loading = ""
}

func fetchCmd(ctx context.Context, t Transport, seq int, url string, replace bool, downloadDir string) tea.Cmd {
	return func() tea.Msg {
		typ, host, port, selector := gopher.ParseURL(url)
		body, err := t.Fetch(ctx, host, port, selector)
		if err != nil {
			return FetchFailedMsg{seq: seq, URL: url, Err: err, replace: replace}
		}
		if typ.IsDownload() {
			p, err := saveDownload(downloadDir, selector, body)
			return DownloadedMsg{seq: seq, URL: url, Path: p, Err: err}
		}
		return PageLoadedMsg{seq: seq, URL: url, Type: typ, Body: body, replace: replace}
	}
}

// saveDownload writes body into dir under the selector's base name,
// adding a numeric suffix rather than overwriting an existing file.
func saveDownload(dir, selector, body string) (string, error) {
	if dir == "" {
		return "", ErrDownloadsDisabled
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating download dir: %w", err)
	}

	name := path.Base(strings.ReplaceAll(selector, "\\", "/"))
	if name == "." || name == "/" || name == "" {
		name = "download"
	}
	ext := filepath.Ext(name)
	stem := strings.TrimSuffix(name, ext)

	for i := 0; ; i++ {
		candidate := name
		if i > 0 {
			candidate = fmt.Sprintf("%s.%d%s", stem, i, ext)
		}
		p := filepath.Join(dir, candidate)
		f, err := os.OpenFile(p, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
		if os.IsExist(err) {
			continue
		}
		if err != nil {
			return "", fmt.Errorf("saving download: %w", err)
		}
		_, werr := f.WriteString(body)
		cerr := f.Close()
		if werr != nil {
			return "", fmt.Errorf("saving download: %w", werr)
		}
		if cerr != nil {
			return "", fmt.Errorf("saving download: %w", cerr)
		}
		return p, nil
	}
}

// NewPage builds the view for a fetched response.
func NewPage(url string, typ gopher.Type, body string, wide bool) view.View {
	var v view.View
	switch typ {
	case gopher.Menu, gopher.Search, gopher.Mirror:
		v = menu.Parse(url, body)
	default:
		v = text.New(url, body)
	}
	if w, ok := v.(view.Wider); ok {
		w.SetWide(wide)
	}
	return v
}

func (s *Session) handleLoaded(msg PageLoadedMsg) tea.Cmd {
	if msg.seq != s.fetchSeq || s.loading == "" {
		return nil
	}
	s.stopLoading()
	log.Info("loaded", "url", msg.URL, "type", msg.Type, "bytes", len(msg.Body))

	var page view.View
	if doc, ok := s.Current().(*text.Document); ok && msg.replace && doc.IsSource() {
		page = text.NewSource(msg.URL, msg.Body)
	} else {
		page = NewPage(msg.URL, msg.Type, msg.Body, s.Wide)
	}
	if msg.replace {
		s.ReplacePage(page)
	} else {
		s.AddPage(page)
	}
	return nil
}

func (s *Session) handleFailed(msg FetchFailedMsg) tea.Cmd {
	if msg.seq != s.fetchSeq || s.loading == "" {
		return nil
	}
	s.stopLoading()
	log.Error("fetch failed", "url", msg.URL, "err", msg.Err)

	page := text.NewError(msg.URL, msg.Err)
	page.SetWide(s.Wide)
	if msg.replace {
		s.ReplacePage(page)
	} else {
		s.AddPage(page)
	}
	return nil
}

func (s *Session) handleDownloaded(msg DownloadedMsg) tea.Cmd {
	if msg.seq != s.fetchSeq || s.loading == "" {
		return nil
	}
	s.stopLoading()
	s.dirty = true
	if msg.Err != nil {
		log.Error("download failed", "url", msg.URL, "err", msg.Err)
		s.setError(msg.Err.Error())
		return nil
	}
	log.Info("downloaded", "url", msg.URL, "path", msg.Path)
	s.setStatus("saved " + msg.Path)
	return nil
}
