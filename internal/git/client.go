package git

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/storer"
	"github.com/go-git/go-git/v5/plumbing/transport"
)

// RealClient implements Client using go-git
type RealClient struct{}

// NewClient creates a new RealClient
func NewClient() *RealClient {
	return &RealClient{}
}

// Init calls git.PlainInit on an existing, empty directory
func (c *RealClient) Init(dir string) (Repository, error) {
	repo, err := git.PlainInit(dir, false)
	if err != nil {
		return nil, err
	}
	return &RealRepository{repo: repo}, nil
}

// Open opens an already initialized repository
func (c *RealClient) Open(dir string) (*RealRepository, error) {
	repo, err := git.PlainOpen(dir)
	if err != nil {
		return nil, err
	}
	return &RealRepository{repo: repo}, nil
}

// RealRepository implements Repository on top of a go-git repository
type RealRepository struct {
	repo *git.Repository
}

// Unwrap returns the underlying go-git repository
func (r *RealRepository) Unwrap() *git.Repository {
	return r.repo
}

func (r *RealRepository) CreateRemote(name, url string) error {
	_, err := r.repo.CreateRemote(&config.RemoteConfig{
		Name: name,
		URLs: []string{url},
	})
	return err
}

func (r *RealRepository) Fetch(ctx context.Context, remote string, auth transport.AuthMethod) error {
	err := r.repo.FetchContext(ctx, &git.FetchOptions{
		RemoteName: remote,
		Auth:       auth,
	})
	if errors.Is(err, git.NoErrAlreadyUpToDate) {
		return nil
	}
	return err
}

func (r *RealRepository) Pull(ctx context.Context, remote, branch string, auth transport.AuthMethod) error {
	wt, err := r.repo.Worktree()
	if err != nil {
		return err
	}

	err = wt.PullContext(ctx, &git.PullOptions{
		RemoteName:    remote,
		ReferenceName: plumbing.NewBranchReferenceName(branch),
		SingleBranch:  true,
		Auth:          auth,
	})
	if errors.Is(err, git.NoErrAlreadyUpToDate) {
		return nil
	}
	return err
}

func (r *RealRepository) RemoteBranch(remote, branch string) (*plumbing.Reference, error) {
	refs, err := r.repo.References()
	if err != nil {
		return nil, err
	}
	defer refs.Close()

	want := plumbing.NewRemoteReferenceName(remote, branch)
	var found *plumbing.Reference
	err = refs.ForEach(func(ref *plumbing.Reference) error {
		if ref.Name().IsRemote() && ref.Name() == want {
			found = ref
			return storer.ErrStop
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if found == nil {
		return nil, nil
	}

	// symbolic refs such as origin/HEAD resolve to their target
	if found.Type() == plumbing.SymbolicReference {
		resolved, err := r.repo.Reference(found.Name(), true)
		if err != nil {
			return nil, fmt.Errorf("resolve %s: %w", found.Name(), err)
		}
		found = resolved
	}
	return found, nil
}

func (r *RealRepository) CheckoutNewBranch(branch string, hash plumbing.Hash) error {
	wt, err := r.repo.Worktree()
	if err != nil {
		return err
	}
	return wt.Checkout(&git.CheckoutOptions{
		Hash:   hash,
		Branch: plumbing.NewBranchReferenceName(branch),
		Create: true,
	})
}
