// Package git wraps go-git behind small interfaces so the git source scheme
// can initialize a repository, register origin, fetch, pull and check out a
// remote branch, and be exercised with mocks in tests.
package git
