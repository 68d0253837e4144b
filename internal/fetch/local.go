package fetch

import (
	"fmt"
	"os"

	"github.com/quantmind-br/jesse/internal/archive"
	"github.com/quantmind-br/jesse/internal/domain"
)

// fetchLocal copies a directory tree or unpacks a local archive file
func (r *Resolver) fetchLocal(desc Descriptor, destination string, opts domain.FetchOptions) error {
	if !opts.AllowFile {
		return &domain.DisallowedSchemeError{Scheme: SchemeFile.String()}
	}

	path := localPath(desc)
	info, err := os.Stat(path)
	if err != nil {
		return domain.NewFetchError(SchemeFile.String(), path, 0, err)
	}

	if info.IsDir() {
		r.logger.Debug().Str("path", path).Msg("Copying local directory")
		if err := archive.CopyTree(path, destination); err != nil {
			return fmt.Errorf("copy %s: %w", path, err)
		}
		return nil
	}

	r.logger.Debug().Str("path", path).Msg("Unpacking local archive")
	return archive.Unpack(path, destination)
}

// localPath joins the authority back onto the path for "file://dir/x" forms
func localPath(desc Descriptor) string {
	host := desc.Authority()
	if host == "" || host == "localhost" {
		return desc.Path()
	}
	return host + desc.Path()
}
