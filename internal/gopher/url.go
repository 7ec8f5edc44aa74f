package gopher

import (
	"net"
	"strings"
)

// DefaultPort is the well-known Gopher port. It is left out of URLs.
const DefaultPort = "70"

const scheme = "gopher://"

// ParseURL splits a gopher:// URL into its item type, host, port and selector.
// The scheme may be omitted. A missing path means the root menu. For Search
// URLs a trailing "?query" becomes the TAB separated search request.
func ParseURL(raw string) (typ Type, host, port, selector string) {
	rest := raw
	if len(rest) >= len(scheme) && strings.EqualFold(rest[:len(scheme)], scheme) {
		rest = rest[len(scheme):]
	}

	hostport, path := rest, ""
	if i := strings.IndexByte(rest, '/'); i >= 0 {
		hostport, path = rest[:i], rest[i:]
	}
	host, port = splitHostPort(hostport)

	typ = Menu
	if len(path) < 2 {
		return typ, host, port, ""
	}
	t, ok := TypeForChar(path[1])
	if !ok {
		return typ, host, port, path
	}
	typ = t
	selector = path[2:]

	if typ == Search {
		selector = strings.Replace(selector, "%09", "\t", 1)
		if !strings.Contains(selector, "\t") {
			selector = strings.Replace(selector, "?", "\t", 1)
		}
	}
	return typ, host, port, selector
}

func splitHostPort(hostport string) (string, string) {
	if hostport == "" {
		return "", DefaultPort
	}
	// Only split when the last colon is outside an IPv6 literal.
	if i := strings.LastIndexByte(hostport, ':'); i > strings.LastIndexByte(hostport, ']') {
		host, port, err := net.SplitHostPort(hostport)
		if err == nil {
			if port == "" {
				port = DefaultPort
			}
			return host, port
		}
	}
	return strings.Trim(hostport, "[]"), DefaultPort
}

// IsGopherURL reports whether u should be fetched over Gopher. Strings without
// a scheme are treated as Gopher addresses.
func IsGopherURL(u string) bool {
	if len(u) >= len(scheme) && strings.EqualFold(u[:len(scheme)], scheme) {
		return true
	}
	return !strings.Contains(u, "://") && !strings.HasPrefix(u, "mailto:")
}

// Normalize adds the gopher:// scheme to bare host names and addresses typed
// by the user. Anything that already has a scheme is returned unchanged.
func Normalize(u string) string {
	u = strings.TrimSpace(u)
	if u == "" || strings.Contains(u, "://") || strings.HasPrefix(u, "mailto:") {
		return u
	}
	return scheme + u
}
