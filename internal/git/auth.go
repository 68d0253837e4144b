package git

import (
	"github.com/go-git/go-git/v5/plumbing/transport"
	githttp "github.com/go-git/go-git/v5/plumbing/transport/http"
	gitssh "github.com/go-git/go-git/v5/plumbing/transport/ssh"
)

// NewAuth builds the auth method for a transport scheme ("git", "ssh", "http", "https").
// A nil method lets go-git fall back to its defaults.
func NewAuth(scheme, username, password string) (transport.AuthMethod, error) {
	if username == "" {
		return nil, nil
	}

	switch scheme {
	case "http", "https":
		return &githttp.BasicAuth{
			Username: username,
			Password: password,
		}, nil
	case "ssh":
		if password != "" {
			return &gitssh.Password{
				User:     username,
				Password: password,
			}, nil
		}
		return gitssh.NewSSHAgentAuth(username)
	default:
		return nil, nil
	}
}
