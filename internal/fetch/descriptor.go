package fetch

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

// schemePrefix matches an explicit "scheme:" prefix as defined by RFC 3986
var schemePrefix = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9+.\-]*:`)

// Descriptor is an immutable decomposition of a source string.
// Methods that change a field return a modified copy.
type Descriptor struct {
	scheme   Scheme
	user     *url.Userinfo
	host     string
	path     string
	rawQuery string
	fragment string
}

// Parse decomposes source into a Descriptor. Sources without a scheme are
// local paths and get SchemeFile. Schemes outside the supported set fail
// with *domain.UnsupportedSchemeError.
func Parse(source string) (Descriptor, error) {
	source = strings.TrimSpace(source)

	if !hasScheme(source) {
		return Descriptor{scheme: SchemeFile, path: source}, nil
	}

	u, err := url.Parse(source)
	if err != nil {
		return Descriptor{}, fmt.Errorf("parse source %q: %w", source, err)
	}

	scheme, err := ParseScheme(u.Scheme)
	if err != nil {
		return Descriptor{}, err
	}

	path := u.Path
	if path == "" && u.Opaque != "" {
		path = u.Opaque
	}

	return Descriptor{
		scheme:   scheme,
		user:     u.User,
		host:     u.Host,
		path:     path,
		rawQuery: u.RawQuery,
		fragment: u.Fragment,
	}, nil
}

func hasScheme(source string) bool {
	loc := schemePrefix.FindStringIndex(source)
	if loc == nil {
		return false
	}
	// a single letter followed by ':' is a windows drive, not a scheme
	return loc[1] > 2
}

func (d Descriptor) Scheme() Scheme    { return d.scheme }
func (d Descriptor) Authority() string { return d.host }
func (d Descriptor) Path() string      { return d.path }
func (d Descriptor) RawQuery() string  { return d.rawQuery }
func (d Descriptor) Fragment() string  { return d.fragment }

// Hostname returns the authority without its port
func (d Descriptor) Hostname() string {
	return (&url.URL{Host: d.host}).Hostname()
}

// Port returns the explicit port of the authority, if any
func (d Descriptor) Port() string {
	return (&url.URL{Host: d.host}).Port()
}

// HasUserinfo reports whether credentials are still embedded in the authority
func (d Descriptor) HasUserinfo() bool {
	return d.user != nil
}

// WithScheme returns a copy with the scheme replaced
func (d Descriptor) WithScheme(s Scheme) Descriptor {
	d.scheme = s
	return d
}

// WithPath returns a copy with the path replaced
func (d Descriptor) WithPath(path string) Descriptor {
	d.path = path
	return d
}

// WithFragment returns a copy with the fragment replaced
func (d Descriptor) WithFragment(fragment string) Descriptor {
	d.fragment = fragment
	return d
}

// withoutUserinfo returns a copy whose authority is host[:port] only
func (d Descriptor) withoutUserinfo() Descriptor {
	d.user = nil
	return d
}

// URL reassembles the descriptor using the given scheme name
func (d Descriptor) URL(scheme string) *url.URL {
	return &url.URL{
		Scheme:   scheme,
		User:     d.user,
		Host:     d.host,
		Path:     d.path,
		RawQuery: d.rawQuery,
		Fragment: d.fragment,
	}
}

// String reassembles the descriptor into a source string Parse accepts
func (d Descriptor) String() string {
	if d.scheme == SchemeFile && d.host == "" && d.user == nil && d.rawQuery == "" && d.fragment == "" {
		if strings.HasPrefix(d.path, "/") {
			return "file://" + d.path
		}
		return d.path
	}
	return d.URL(d.scheme.String()).String()
}

// Redacted is String with any password masked, for logging
func (d Descriptor) Redacted() string {
	return d.URL(d.scheme.String()).Redacted()
}
