package fetch

import (
	"strings"

	"github.com/quantmind-br/jesse/internal/domain"
)

// Scheme is the closed set of source URL schemes the resolver can dispatch
type Scheme int

const (
	SchemeUnknown Scheme = iota
	SchemeFile
	SchemeFTP
	SchemeFTPS
	SchemeGit
	SchemeGitSSH
	SchemeGitHTTP
	SchemeGitHTTPS
	SchemeHTTP
	SchemeHTTPS
)

var schemeNames = map[Scheme]string{
	SchemeFile:     "file",
	SchemeFTP:      "ftp",
	SchemeFTPS:     "ftps",
	SchemeGit:      "git",
	SchemeGitSSH:   "git+ssh",
	SchemeGitHTTP:  "git+http",
	SchemeGitHTTPS: "git+https",
	SchemeHTTP:     "http",
	SchemeHTTPS:    "https",
}

// ParseScheme maps a URL scheme, matched case-insensitively, onto a Scheme
func ParseScheme(s string) (Scheme, error) {
	lower := strings.ToLower(s)
	for scheme, name := range schemeNames {
		if name == lower {
			return scheme, nil
		}
	}
	return SchemeUnknown, &domain.UnsupportedSchemeError{Scheme: s}
}

func (s Scheme) String() string {
	if name, ok := schemeNames[s]; ok {
		return name
	}
	return "unknown"
}

// IsGit reports whether the scheme is served by the version-control handler
func (s Scheme) IsGit() bool {
	switch s {
	case SchemeGit, SchemeGitSSH, SchemeGitHTTP, SchemeGitHTTPS:
		return true
	}
	return false
}

// Transport returns the wire scheme with any "git+" prefix removed
func (s Scheme) Transport() string {
	return strings.TrimPrefix(s.String(), "git+")
}

// DefaultPort returns the port used when the authority carries none
func (s Scheme) DefaultPort() string {
	switch s {
	case SchemeFTP:
		return "21"
	case SchemeFTPS:
		return "990"
	default:
		return ""
	}
}
