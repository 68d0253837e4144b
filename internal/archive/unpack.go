package archive

import (
	"compress/bzip2"
	"fmt"
	"io"
	"os"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/ulikunitz/xz"

	"github.com/quantmind-br/jesse/internal/domain"
)

// MakeDirMode is the permission used for directories created while materializing
const MakeDirMode os.FileMode = 0o770

// Unpack expands the archive at path into destDir.
//
// A zero-byte file is treated as nothing to materialize: Unpack returns nil
// and destDir is not created. Unrecognized or corrupt archives yield a
// *domain.UnpackError.
func Unpack(path, destDir string) error {
	info, err := os.Stat(path)
	if err != nil {
		return domain.NewUnpackError(path, err)
	}
	if info.Size() == 0 {
		return nil
	}

	format, err := DetectFormat(path)
	if err != nil {
		return domain.NewUnpackError(path, err)
	}
	if format == FormatUnknown {
		return domain.NewUnpackError(path, domain.ErrUnsupportedArchive)
	}

	if err := os.MkdirAll(destDir, MakeDirMode); err != nil {
		return fmt.Errorf("create destination: %w", err)
	}

	if format == FormatZip {
		err = extractZip(path, info.Size(), destDir)
	} else {
		err = extractTarFile(path, format, destDir)
	}
	if err != nil {
		return domain.NewUnpackError(path, fmt.Errorf("%s: %w", format, err))
	}
	return nil
}

func extractTarFile(path string, format Format, destDir string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	var r io.Reader
	switch format {
	case FormatTar:
		r = f
	case FormatTarGz:
		gzr, err := gzip.NewReader(f)
		if err != nil {
			return fmt.Errorf("gzip reader failed: %w", err)
		}
		defer gzr.Close()
		r = gzr
	case FormatTarBz2:
		r = bzip2.NewReader(f)
	case FormatTarXz:
		xzr, err := xz.NewReader(f)
		if err != nil {
			return fmt.Errorf("xz reader failed: %w", err)
		}
		r = xzr
	case FormatTarZst:
		zr, err := zstd.NewReader(f)
		if err != nil {
			return fmt.Errorf("zstd reader failed: %w", err)
		}
		defer zr.Close()
		r = zr
	default:
		return domain.ErrUnsupportedArchive
	}

	return ExtractTar(r, destDir)
}
