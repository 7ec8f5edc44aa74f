package server

import (
	"bytes"
	"context"
	"io"
	"net"
	"strings"
	"sync"
	"testing"

	"github.com/charmbracelet/ssh"

	"github.com/Gaurav-Gosain/burrow/internal/app"
	"github.com/Gaurav-Gosain/burrow/internal/config"
)

type fakeContext struct {
	context.Context
	sync.Mutex
}

func (*fakeContext) User() string                  { return "gopher" }
func (*fakeContext) SessionID() string             { return "test" }
func (*fakeContext) ClientVersion() string         { return "SSH-2.0-test" }
func (*fakeContext) ServerVersion() string         { return "SSH-2.0-burrow" }
func (*fakeContext) RemoteAddr() net.Addr          { return testAddr }
func (*fakeContext) LocalAddr() net.Addr           { return testAddr }
func (*fakeContext) Permissions() *ssh.Permissions { return &ssh.Permissions{} }
func (*fakeContext) SetValue(_, _ interface{})     {}

var testAddr = &net.TCPAddr{IP: net.IPv4(127, 0, 0, 1), Port: 2222}

// fakeSession implements the parts of ssh.Session the handler uses.
type fakeSession struct {
	ssh.Session

	ctx    *fakeContext
	pty    ssh.Pty
	hasPty bool

	stderr bytes.Buffer
	exit   int
	closed bool
}

func newFakeSession(t *testing.T, hasPty bool, width, height int) *fakeSession {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	return &fakeSession{
		ctx:    &fakeContext{Context: ctx},
		pty:    ssh.Pty{Term: "xterm-256color", Window: ssh.Window{Width: width, Height: height}},
		hasPty: hasPty,
		exit:   -1,
	}
}

func (f *fakeSession) Context() ssh.Context  { return f.ctx }
func (f *fakeSession) User() string          { return "gopher" }
func (f *fakeSession) RemoteAddr() net.Addr  { return testAddr }
func (f *fakeSession) Stderr() io.ReadWriter { return &f.stderr }
func (f *fakeSession) Exit(code int) error   { f.exit = code; return nil }
func (f *fakeSession) Close() error          { f.closed = true; return nil }

func (f *fakeSession) Pty() (ssh.Pty, <-chan ssh.Window, bool) {
	return f.pty, nil, f.hasPty
}

func TestTeaHandlerNeedsPty(t *testing.T) {
	sess := newFakeSession(t, false, 0, 0)
	model, opts := newTeaHandler(config.DefaultConfig())(sess)

	if model != nil || opts != nil {
		t.Errorf("handler returned %v, %v without a pty", model, opts)
	}
	if !strings.Contains(sess.stderr.String(), "needs a terminal") {
		t.Errorf("stderr = %q", sess.stderr.String())
	}
	if sess.exit != 1 || !sess.closed {
		t.Errorf("exit = %d, closed = %v, want 1, true", sess.exit, sess.closed)
	}
}

func TestTeaHandlerSession(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Wide = true
	sess := newFakeSession(t, true, 100, 30)

	model, _ := newTeaHandler(cfg)(sess)
	s, ok := model.(*app.Session)
	if !ok {
		t.Fatalf("model is %T, want *app.Session", model)
	}
	if s.Width != 100 || s.Height != 30 {
		t.Errorf("size = %dx%d, want 100x30", s.Width, s.Height)
	}
	if !s.Wide {
		t.Error("wide setting not carried over")
	}
}

func TestTeaHandlerSessionIsRemote(t *testing.T) {
	tests := []struct {
		name    string
		url     string
		wantMsg string
	}{
		{"external url", "https://example.com/", "remote session"},
		{"download", "gopher://localhost/9/file.bin", app.ErrDownloadsDisabled.Error()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			model, _ := newTeaHandler(config.DefaultConfig())(newFakeSession(t, true, 80, 24))
			s := model.(*app.Session)

			if cmd := s.Open(tt.url); cmd != nil {
				t.Errorf("Open(%q) started a command", tt.url)
			}
			msg, isErr := s.Status()
			if !isErr || !strings.Contains(msg, tt.wantMsg) {
				t.Errorf("status = %q, %v, want an error containing %q", msg, isErr, tt.wantMsg)
			}
		})
	}
}
