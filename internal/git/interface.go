package git

import (
	"context"

	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/transport"
)

// Client defines the interface for creating repositories
type Client interface {
	Init(dir string) (Repository, error)
}

// Repository defines the repository operations used to materialize a git source
type Repository interface {
	// CreateRemote registers a fetch URL under the given remote name
	CreateRemote(name, url string) error
	// Fetch downloads all refs of the remote
	Fetch(ctx context.Context, remote string, auth transport.AuthMethod) error
	// Pull integrates the remote branch into the current worktree
	Pull(ctx context.Context, remote, branch string, auth transport.AuthMethod) error
	// RemoteBranch returns the remote-tracking ref for branch, or nil when absent
	RemoteBranch(remote, branch string) (*plumbing.Reference, error)
	// CheckoutNewBranch creates a local branch at hash and checks it out
	CheckoutNewBranch(branch string, hash plumbing.Hash) error
}
