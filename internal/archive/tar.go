package archive

import (
	"archive/tar"
	"errors"
	"fmt"
	"io"
)

// ExtractTar writes every entry of an uncompressed tar stream below destDir.
// Entries and link targets that would land outside destDir are skipped.
func ExtractTar(r io.Reader, destDir string) error {
	dest, err := openDestination(destDir)
	if err != nil {
		return err
	}
	defer dest.Close()

	tr := tar.NewReader(r)
	entries := 0

	for {
		header, err := tr.Next()
		if err == io.EOF {
			break
		}
		if errors.Is(err, tar.ErrInsecurePath) {
			entries++
			continue
		}
		if err != nil {
			return fmt.Errorf("tar read failed: %w", err)
		}
		entries++

		rel, ok := dest.rel(header.Name)
		if !ok {
			continue
		}

		switch header.Typeflag {
		case tar.TypeDir:
			if err := dest.mkdirAll(rel, dirMode(header.FileInfo().Mode())); err != nil {
				return err
			}
		case tar.TypeReg:
			if err := dest.writeFile(rel, tr, header.FileInfo().Mode()); err != nil {
				return err
			}
		case tar.TypeSymlink:
			if _, err := dest.symlink(rel, header.Linkname); err != nil {
				return err
			}
		case tar.TypeLink:
			if _, err := dest.hardlink(rel, header.Linkname); err != nil {
				return err
			}
		}
	}

	if entries == 0 {
		return errors.New("archive contains no entries")
	}
	return nil
}
