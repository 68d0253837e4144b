package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/quantmind-br/jesse/internal/domain"
	"github.com/quantmind-br/jesse/internal/utils"
	"github.com/quantmind-br/jesse/pkg/version"
)

// download streams the response body of a GET request into w
func (r *Resolver) download(ctx context.Context, desc Descriptor, creds *Credentials, w io.Writer) error {
	scheme := desc.Scheme().String()
	target := desc.URL(scheme).String()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return domain.NewFetchError(scheme, target, 0, err)
	}
	req.Header.Set("User-Agent", version.UserAgent())
	if creds != nil {
		req.SetBasicAuth(creds.Username, creds.Password)
	}

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return domain.NewFetchError(scheme, target, 0, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return domain.NewFetchError(scheme, target, resp.StatusCode,
			fmt.Errorf("unexpected status: %s", resp.Status))
	}

	dst := w
	if r.progress {
		bar := utils.NewBytesProgressBar(resp.ContentLength, utils.DescDownloading, r.progressOut)
		defer bar.Close()
		dst = io.MultiWriter(w, bar)
	}

	n, err := io.Copy(dst, resp.Body)
	if err != nil {
		return domain.NewFetchError(scheme, target, resp.StatusCode, err)
	}

	r.logger.Debug().Int64("bytes", n).Int("status", resp.StatusCode).Msg("Downloaded payload")
	return nil
}
