package fetch

import (
	"context"
	"fmt"
	"os"

	"github.com/quantmind-br/jesse/internal/archive"
	"github.com/quantmind-br/jesse/internal/domain"
	"github.com/quantmind-br/jesse/internal/git"
)

// RemoteName is the remote registered for git sources
const RemoteName = "origin"

// fetchGit initializes a repository in destination, pulls the default branch
// and, when the fragment names another branch, checks that branch out
func (r *Resolver) fetchGit(ctx context.Context, desc Descriptor, creds *Credentials, destination string, opts domain.FetchOptions) error {
	scheme := desc.Scheme()
	transport := scheme.Transport()
	defaultBranch := opts.Branch()

	ref := desc.Fragment()
	if ref == "" {
		ref = defaultBranch
	}
	remoteURL := desc.WithFragment("").URL(transport).String()

	auth, err := git.NewAuth(transport, creds.username(), creds.password())
	if err != nil {
		return domain.NewFetchError(scheme.String(), remoteURL, 0, err)
	}

	if err := os.Mkdir(destination, archive.MakeDirMode); err != nil {
		return fmt.Errorf("create destination: %w", err)
	}

	repo, err := r.gitClient.Init(destination)
	if err != nil {
		return fmt.Errorf("init repository: %w", err)
	}
	if err := repo.CreateRemote(RemoteName, remoteURL); err != nil {
		return fmt.Errorf("create remote: %w", err)
	}

	r.logger.Debug().Str("remote", remoteURL).Str("ref", ref).Msg("Fetching repository")

	if err := repo.Fetch(ctx, RemoteName, auth); err != nil {
		return domain.NewFetchError(scheme.String(), remoteURL, 0, err)
	}
	if err := repo.Pull(ctx, RemoteName, defaultBranch, auth); err != nil {
		return domain.NewFetchError(scheme.String(), remoteURL, 0, err)
	}

	if ref == defaultBranch {
		return nil
	}

	remoteRef, err := repo.RemoteBranch(RemoteName, ref)
	if err != nil {
		return fmt.Errorf("lookup remote branch: %w", err)
	}
	if remoteRef == nil {
		return &domain.RefNotFoundError{Remote: RemoteName, Ref: ref}
	}

	if err := repo.CheckoutNewBranch(ref, remoteRef.Hash()); err != nil {
		return fmt.Errorf("checkout %s: %w", ref, err)
	}
	return nil
}
