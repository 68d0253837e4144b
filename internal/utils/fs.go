package utils

import (
	"crypto/rand"
	"math/big"
	"os"
	"path/filepath"
	"strings"
)

// TempPrefix is prepended to generated scan directory names
const TempPrefix = "jesse-"

const alphanumeric = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

// RandomAlphanumeric returns a random string of n ASCII letters and digits
func RandomAlphanumeric(n int) string {
	var sb strings.Builder
	sb.Grow(n)
	max := big.NewInt(int64(len(alphanumeric)))
	for i := 0; i < n; i++ {
		idx, err := rand.Int(rand.Reader, max)
		if err != nil {
			panic(err)
		}
		sb.WriteByte(alphanumeric[idx.Int64()])
	}
	return sb.String()
}

// DefaultScanPath returns a fresh, not yet existing path under the system temp directory
func DefaultScanPath() string {
	return filepath.Join(os.TempDir(), TempPrefix+RandomAlphanumeric(8))
}

// PathExists reports whether anything (file, directory or symlink) exists at path
func PathExists(path string) (bool, error) {
	_, err := os.Lstat(path)
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, err
}

// EnsureDir ensures a file's parent directory exists, creating it if necessary
func EnsureDir(path string) error {
	dir := filepath.Dir(path)
	return os.MkdirAll(dir, 0755)
}

// ExpandPath expands ~ to the user's home directory
func ExpandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}
	if path == "~" {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return home
	}
	return path
}
