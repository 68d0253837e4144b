package archive

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"
)

// Format identifies a supported archive layout
type Format int

const (
	FormatUnknown Format = iota
	FormatZip
	FormatTar
	FormatTarGz
	FormatTarBz2
	FormatTarXz
	FormatTarZst
)

func (f Format) String() string {
	switch f {
	case FormatZip:
		return "zip"
	case FormatTar:
		return "tar"
	case FormatTarGz:
		return "tar.gz"
	case FormatTarBz2:
		return "tar.bz2"
	case FormatTarXz:
		return "tar.xz"
	case FormatTarZst:
		return "tar.zst"
	default:
		return "unknown"
	}
}

var signatures = []struct {
	offset int
	magic  []byte
	format Format
}{
	{0, []byte("PK\x03\x04"), FormatZip},
	{0, []byte("PK\x05\x06"), FormatZip},
	{0, []byte{0x1f, 0x8b}, FormatTarGz},
	{0, []byte("BZh"), FormatTarBz2},
	{0, []byte{0xfd, '7', 'z', 'X', 'Z', 0x00}, FormatTarXz},
	{0, []byte{0x28, 0xb5, 0x2f, 0xfd}, FormatTarZst},
	{257, []byte("ustar"), FormatTar},
}

var extensions = []struct {
	suffix string
	format Format
}{
	{".tar.gz", FormatTarGz},
	{".tgz", FormatTarGz},
	{".tar.bz2", FormatTarBz2},
	{".tbz2", FormatTarBz2},
	{".tar.xz", FormatTarXz},
	{".txz", FormatTarXz},
	{".tar.zst", FormatTarZst},
	{".zip", FormatZip},
	{".tar", FormatTar},
}

// DetectFormat sniffs the leading bytes of a file and falls back to its
// name when no signature matches.
func DetectFormat(path string) (Format, error) {
	f, err := os.Open(path)
	if err != nil {
		return FormatUnknown, err
	}
	defer f.Close()

	header := make([]byte, 512)
	n, err := io.ReadFull(f, header)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return FormatUnknown, fmt.Errorf("read header: %w", err)
	}
	header = header[:n]

	if format := detectSignature(header); format != FormatUnknown {
		return format, nil
	}
	return detectExtension(path), nil
}

func detectSignature(header []byte) Format {
	for _, sig := range signatures {
		end := sig.offset + len(sig.magic)
		if len(header) >= end && bytes.Equal(header[sig.offset:end], sig.magic) {
			return sig.format
		}
	}
	return FormatUnknown
}

func detectExtension(path string) Format {
	lower := strings.ToLower(path)
	for _, ext := range extensions {
		if strings.HasSuffix(lower, ext.suffix) {
			return ext.format
		}
	}
	return FormatUnknown
}
