package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path"
	"strings"
	"time"

	"github.com/quantmind-br/jesse/internal/archive"
	"github.com/quantmind-br/jesse/internal/domain"
	"github.com/quantmind-br/jesse/internal/git"
	"github.com/quantmind-br/jesse/internal/utils"
)

// DefaultHTTPTimeout bounds a single HTTP download when no client is injected
const DefaultHTTPTimeout = 10 * time.Minute

// ResolverOptions contains the collaborators used by a Resolver
type ResolverOptions struct {
	HTTPClient *http.Client
	GitClient  git.Client
	FTPDialer  FTPDialer
	Logger     *utils.Logger
	// Progress renders a byte progress bar for HTTP downloads
	Progress       bool
	ProgressWriter io.Writer
}

// Resolver retrieves a source into a fresh destination directory
type Resolver struct {
	httpClient  *http.Client
	gitClient   git.Client
	dialFTP     FTPDialer
	logger      *utils.Logger
	progress    bool
	progressOut io.Writer
}

// NewResolver creates a Resolver, filling unset collaborators with the real implementations
func NewResolver(opts ResolverOptions) *Resolver {
	r := &Resolver{
		httpClient:  opts.HTTPClient,
		gitClient:   opts.GitClient,
		dialFTP:     opts.FTPDialer,
		logger:      opts.Logger.OrNop().WithComponent("fetch"),
		progress:    opts.Progress,
		progressOut: opts.ProgressWriter,
	}

	if r.httpClient == nil {
		r.httpClient = &http.Client{Timeout: DefaultHTTPTimeout}
	}
	if r.gitClient == nil {
		r.gitClient = git.NewClient()
	}
	if r.dialFTP == nil {
		r.dialFTP = DialFTP
	}
	if r.progressOut == nil {
		r.progressOut = os.Stderr
	}

	return r
}

// SmartFetch normalizes hosting "browse" URLs into git sources and then calls Fetch
func (r *Resolver) SmartFetch(ctx context.Context, source, destination string, opts domain.FetchOptions) (string, error) {
	normalized := NormalizeSource(source)
	if normalized != strings.TrimSpace(source) {
		r.logger.Debug().
			Str("source", source).
			Str("normalized", normalized).
			Msg("Normalized browse URL")
	}
	return r.Fetch(ctx, normalized, destination, opts)
}

// Fetch retrieves source into destination and returns destination.
//
// destination must not exist. Local sources require opts.AllowFile. Remote
// archives are buffered in a staging file that is always removed, then
// unpacked. Git sources are cloned directly into destination, which is left
// in place when the checkout fails.
func (r *Resolver) Fetch(ctx context.Context, source, destination string, opts domain.FetchOptions) (string, error) {
	source = strings.TrimSpace(source)

	exists, err := utils.PathExists(destination)
	if err != nil {
		return "", fmt.Errorf("stat destination: %w", err)
	}
	if exists {
		return "", &domain.DestinationExistsError{Path: destination}
	}

	desc, err := Parse(source)
	if err != nil {
		return "", err
	}
	creds, desc := ExtractCredentials(desc)

	logger := r.logger.WithSource(desc.Redacted())
	logger.Debug().
		Str("scheme", desc.Scheme().String()).
		Bool("credentials", creds != nil).
		Str("destination", destination).
		Msg("Dispatching fetch")

	switch scheme := desc.Scheme(); scheme {
	case SchemeFile:
		err = r.fetchLocal(desc, destination, opts)
	case SchemeFTP, SchemeFTPS, SchemeHTTP, SchemeHTTPS:
		err = r.fetchStaged(ctx, desc, creds, destination)
	case SchemeGit, SchemeGitSSH, SchemeGitHTTP, SchemeGitHTTPS:
		err = r.fetchGit(ctx, desc, creds, destination, opts)
	default:
		err = &domain.UnsupportedSchemeError{Scheme: scheme.String()}
	}
	if err != nil {
		return "", err
	}

	logger.Info().Str("destination", destination).Msg("Fetched source")
	return destination, nil
}

// fetchStaged buffers a remote payload into a staging file and unpacks it
func (r *Resolver) fetchStaged(ctx context.Context, desc Descriptor, creds *Credentials, destination string) error {
	staging, err := os.CreateTemp("", utils.TempPrefix+"*_"+stagingBase(desc.Path()))
	if err != nil {
		return fmt.Errorf("create staging file: %w", err)
	}
	defer func() {
		_ = staging.Close()
		if err := os.Remove(staging.Name()); err != nil && !os.IsNotExist(err) {
			r.logger.Warn().Err(err).Str("path", staging.Name()).Msg("Failed to remove staging file")
		}
	}()

	switch desc.Scheme() {
	case SchemeFTP, SchemeFTPS:
		err = r.retrieveFTP(ctx, desc, creds, staging)
	default:
		err = r.download(ctx, desc, creds, staging)
	}
	if err != nil {
		return err
	}

	if err := staging.Close(); err != nil {
		return fmt.Errorf("close staging file: %w", err)
	}

	return archive.Unpack(staging.Name(), destination)
}

// stagingBase derives a temp-file suffix from the source path so the
// extension can still hint the archive format
func stagingBase(p string) string {
	base := path.Base(p)
	if base == "/" || base == "." || base == "" {
		return "download"
	}
	return base
}
