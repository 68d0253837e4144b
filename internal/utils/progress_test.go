package utils

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProgressBar(t *testing.T) {
	tests := []struct {
		name  string
		total int
		desc  string
	}{
		{"known total", 100, DescScanning},
		{"unknown total", -1, DescScanning},
		{"zero total", 0, DescDownloading},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			bar := NewProgressBar(tc.total, tc.desc)
			require.NotNil(t, bar)
			assert.NoError(t, bar.Add(1))
			assert.NoError(t, bar.Finish())
		})
	}
}

func TestNewProgressBar_EmptyTotalIsSpinner(t *testing.T) {
	bar := NewProgressBar(0, DescScanning)
	assert.Equal(t, int64(-1), bar.GetMax64())
}

func TestNewBytesProgressBar(t *testing.T) {
	var out bytes.Buffer
	bar := NewBytesProgressBar(11, DescDownloading, &out)
	require.NotNil(t, bar)

	var dst bytes.Buffer
	n, err := io.Copy(io.MultiWriter(&dst, bar), strings.NewReader("hello world"))
	require.NoError(t, err)
	assert.Equal(t, int64(11), n)
	assert.Equal(t, "hello world", dst.String())
	assert.Equal(t, int64(11), bar.State().CurrentNum)
}
