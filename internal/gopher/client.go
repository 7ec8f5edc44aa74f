package gopher

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"io"
	"net"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/net/proxy"
)

// DefaultTorProxy is the SOCKS5 address of a local Tor daemon.
const DefaultTorProxy = "127.0.0.1:9050"

// DefaultTimeout bounds a single request when the caller sets none.
const DefaultTimeout = 15 * time.Second

var (
	// ErrEmptyHost is returned when a URL has no host to connect to.
	ErrEmptyHost = errors.New("no host in url")
	// ErrUnsupportedScheme is returned for URLs that aren't gopher://.
	ErrUnsupportedScheme = errors.New("only gopher:// urls can be fetched")
)

// Options configures a Client.
type Options struct {
	TLS      bool          // Wrap connections in TLS
	Tor      bool          // Route connections through a SOCKS5 proxy
	TorProxy string        // SOCKS5 proxy address (default: DefaultTorProxy)
	Timeout  time.Duration // Per-request timeout (default: DefaultTimeout)
}

// Client fetches Gopher resources over plain TCP, TLS or Tor.
type Client struct {
	opts Options
}

// NewClient returns a Client with defaults filled in.
func NewClient(opts Options) *Client {
	if opts.TorProxy == "" {
		opts.TorProxy = DefaultTorProxy
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	return &Client{opts: opts}
}

// Options returns the client's effective options.
func (c *Client) Options() Options {
	return c.opts
}

// Fetch sends selector to host:port and returns the complete response body.
func (c *Client) Fetch(ctx context.Context, host, port, selector string) (string, error) {
	if host == "" {
		return "", ErrEmptyHost
	}
	if port == "" {
		port = DefaultPort
	}

	ctx, cancel := context.WithTimeout(ctx, c.opts.Timeout)
	defer cancel()

	addr := net.JoinHostPort(host, port)
	start := time.Now()

	conn, err := c.dial(ctx, addr)
	if err != nil {
		return "", fmt.Errorf("connecting to %s: %w", addr, err)
	}
	defer func() { _ = conn.Close() }()

	if deadline, ok := ctx.Deadline(); ok {
		_ = conn.SetDeadline(deadline)
	}
	// Unblock the read if the caller cancels before the deadline.
	stop := context.AfterFunc(ctx, func() { _ = conn.SetDeadline(time.Now()) })
	defer stop()

	if _, err := io.WriteString(conn, selector+"\r\n"); err != nil {
		return "", fmt.Errorf("sending request to %s: %w", addr, err)
	}

	body, err := io.ReadAll(conn)
	if err != nil {
		return "", fmt.Errorf("reading response from %s: %w", addr, err)
	}

	log.Debug("fetched", "addr", addr, "selector", selector, "bytes", len(body), "took", time.Since(start))
	return string(body), nil
}

// FetchURL parses a gopher:// URL and fetches it.
func (c *Client) FetchURL(ctx context.Context, u string) (Type, string, error) {
	if !IsGopherURL(u) {
		return Other, "", fmt.Errorf("%s: %w", u, ErrUnsupportedScheme)
	}
	typ, host, port, selector := ParseURL(u)
	body, err := c.Fetch(ctx, host, port, selector)
	return typ, body, err
}

func (c *Client) dial(ctx context.Context, addr string) (net.Conn, error) {
	var (
		conn net.Conn
		err  error
	)

	if c.opts.Tor {
		conn, err = c.dialTor(ctx, addr)
	} else {
		d := &net.Dialer{Timeout: c.opts.Timeout}
		conn, err = d.DialContext(ctx, "tcp", addr)
	}
	if err != nil {
		return nil, err
	}

	if !c.opts.TLS {
		return conn, nil
	}

	host, _, _ := net.SplitHostPort(addr)
	tlsConn := tls.Client(conn, &tls.Config{
		ServerName: host,
		// Gopher servers that speak TLS almost always use self-signed certificates.
		InsecureSkipVerify: true, //nolint:gosec
	})
	if err := tlsConn.HandshakeContext(ctx); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("tls handshake: %w", err)
	}
	return tlsConn, nil
}

func (c *Client) dialTor(ctx context.Context, addr string) (net.Conn, error) {
	dialer, err := proxy.SOCKS5("tcp", c.opts.TorProxy, nil, &net.Dialer{Timeout: c.opts.Timeout})
	if err != nil {
		return nil, fmt.Errorf("tor proxy %s: %w", c.opts.TorProxy, err)
	}
	if cd, ok := dialer.(proxy.ContextDialer); ok {
		return cd.DialContext(ctx, "tcp", addr)
	}
	return dialer.Dial("tcp", addr)
}
