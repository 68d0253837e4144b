package domain

import (
	"errors"
	"fmt"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPreconditionErrors(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"destination exists", &DestinationExistsError{Path: "/tmp/x"}},
		{"disallowed scheme", &DisallowedSchemeError{Scheme: "file"}},
		{"unsupported scheme", &UnsupportedSchemeError{Scheme: "svn"}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.True(t, IsPrecondition(tc.err))
			assert.True(t, IsPrecondition(fmt.Errorf("wrapped: %w", tc.err)))
			assert.False(t, errors.Is(tc.err, ErrUnpack))
		})
	}
}

func TestFetchError(t *testing.T) {
	err := NewFetchError("https", "https://example.com/a.zip", 404, errors.New("HTTP 404"))
	assert.Contains(t, err.Error(), "status 404")
	assert.False(t, IsPrecondition(err))

	err = NewFetchError("ftp", "ftp://host/a.zip", 0, io.ErrUnexpectedEOF)
	assert.NotContains(t, err.Error(), "status")
	assert.ErrorIs(t, err, io.ErrUnexpectedEOF)
}

func TestRefNotFoundError(t *testing.T) {
	err := &RefNotFoundError{Remote: "origin", Ref: "dev"}
	assert.ErrorIs(t, err, ErrRefNotFound)
	assert.Contains(t, err.Error(), "origin/dev")
}

func TestUnpackError(t *testing.T) {
	err := NewUnpackError("/tmp/a.bin", ErrUnsupportedArchive)
	assert.ErrorIs(t, err, ErrUnpack)
	assert.ErrorIs(t, err, ErrUnsupportedArchive)
}

func TestFetchOptions_Branch(t *testing.T) {
	assert.Equal(t, "master", FetchOptions{}.Branch())
	assert.Equal(t, "main", FetchOptions{DefaultBranch: "main"}.Branch())
}
