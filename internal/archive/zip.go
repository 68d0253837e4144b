package archive

import (
	"fmt"
	"io"
	"os"

	"github.com/klauspost/compress/zip"
)

func extractZip(path string, size int64, destDir string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	zr, err := zip.NewReader(f, size)
	if err != nil {
		return fmt.Errorf("zip reader failed: %w", err)
	}

	dest, err := openDestination(destDir)
	if err != nil {
		return err
	}
	defer dest.Close()

	for _, entry := range zr.File {
		rel, ok := dest.rel(entry.Name)
		if !ok {
			continue
		}
		mode := entry.Mode()

		switch {
		case mode.IsDir():
			if err := dest.mkdirAll(rel, dirMode(mode)); err != nil {
				return err
			}
		case mode&os.ModeSymlink != 0:
			linkTarget, err := readEntry(entry)
			if err != nil {
				return err
			}
			if _, err := dest.symlink(rel, linkTarget); err != nil {
				return err
			}
		default:
			if err := extractZipFile(dest, entry, rel, mode); err != nil {
				return err
			}
		}
	}
	return nil
}

func extractZipFile(dest *destination, entry *zip.File, rel string, mode os.FileMode) error {
	rc, err := entry.Open()
	if err != nil {
		return fmt.Errorf("open %s: %w", entry.Name, err)
	}
	defer rc.Close()

	if mode.Perm() == 0 {
		mode = 0o644
	}
	return dest.writeFile(rel, rc, mode)
}

func readEntry(entry *zip.File) (string, error) {
	rc, err := entry.Open()
	if err != nil {
		return "", fmt.Errorf("open %s: %w", entry.Name, err)
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", entry.Name, err)
	}
	return string(data), nil
}
