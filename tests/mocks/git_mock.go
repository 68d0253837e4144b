package mocks

import (
	"context"

	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/transport"
	"github.com/stretchr/testify/mock"

	"github.com/quantmind-br/jesse/internal/git"
)

// MockGitClient mocks the git.Client interface
type MockGitClient struct {
	mock.Mock
}

// Init mocks repository initialization
func (m *MockGitClient) Init(dir string) (git.Repository, error) {
	args := m.Called(dir)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(git.Repository), args.Error(1)
}

// MockGitRepository mocks the git.Repository interface
type MockGitRepository struct {
	mock.Mock
}

func (m *MockGitRepository) CreateRemote(name, url string) error {
	return m.Called(name, url).Error(0)
}

func (m *MockGitRepository) Fetch(ctx context.Context, remote string, auth transport.AuthMethod) error {
	return m.Called(ctx, remote, auth).Error(0)
}

func (m *MockGitRepository) Pull(ctx context.Context, remote, branch string, auth transport.AuthMethod) error {
	return m.Called(ctx, remote, branch, auth).Error(0)
}

// RemoteBranch returns nil when the expectation was set with a nil reference
func (m *MockGitRepository) RemoteBranch(remote, branch string) (*plumbing.Reference, error) {
	args := m.Called(remote, branch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*plumbing.Reference), args.Error(1)
}

func (m *MockGitRepository) CheckoutNewBranch(branch string, hash plumbing.Hash) error {
	return m.Called(branch, hash).Error(0)
}

var (
	_ git.Client     = (*MockGitClient)(nil)
	_ git.Repository = (*MockGitRepository)(nil)
)
