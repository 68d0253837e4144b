package fetch

import (
	"regexp"
	"strings"
)

type browsePattern struct {
	host    string
	pattern *regexp.Regexp
}

// browsePatterns rewrite project pages into git+https sources. Capture group
// 1 is the owner/repo slug, the optional group 2 is a branch.
var browsePatterns = []browsePattern{
	{
		host:    "bitbucket.org",
		pattern: regexp.MustCompile(`^/([\w-]+/[\w-]+)(?:/branch/(\w+))?/?$`),
	},
	{
		host:    "gist.github.com",
		pattern: regexp.MustCompile(`^/([\w-]+/[\w-]+)$`),
	},
	{
		host:    "github.com",
		pattern: regexp.MustCompile(`^/([\w-]+/[\w-]+)(?:/tree/(\w+))?/?$`),
	},
}

// Normalize rewrites a recognized hosting "browse" URL into a git+https
// descriptor whose path is <slug>.git and whose fragment is the captured
// branch. It reports whether a rewrite happened; other descriptors are
// returned unchanged, so applying Normalize twice is a no-op.
func Normalize(d Descriptor) (Descriptor, bool) {
	if d.scheme != SchemeHTTP && d.scheme != SchemeHTTPS {
		return d, false
	}

	host := strings.ToLower(d.host)
	for _, bp := range browsePatterns {
		if host != bp.host {
			continue
		}
		m := bp.pattern.FindStringSubmatch(d.path)
		if m == nil {
			continue
		}

		branch := ""
		if len(m) > 2 {
			branch = m[2]
		}
		return d.WithScheme(SchemeGitHTTPS).
			WithPath("/" + m[1] + ".git").
			WithFragment(branch), true
	}

	return d, false
}

// NormalizeSource applies Normalize to a raw source string. Strings that do
// not parse, or are not rewritten, are returned trimmed but otherwise as-is.
func NormalizeSource(source string) string {
	source = strings.TrimSpace(source)
	d, err := Parse(source)
	if err != nil {
		return source
	}
	if n, changed := Normalize(d); changed {
		return n.String()
	}
	return source
}
