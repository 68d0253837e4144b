package utils

import (
	"io"

	"github.com/schollz/progressbar/v3"
)

// Standard progress bar descriptions
const (
	DescDownloading = "Downloading"
	DescScanning    = "Scanning"
)

// NewProgressBar creates a consistently styled progress bar.
//
// Unknown or empty totals (total <= 0) render as a spinner; known totals show
// count and iterations per second.
func NewProgressBar(total int, description string) *progressbar.ProgressBar {
	opts := []progressbar.Option{
		progressbar.OptionSetDescription(description),
		progressbar.OptionShowCount(),
	}

	if total <= 0 {
		total = -1
		opts = append(opts,
			progressbar.OptionSpinnerType(14),
			progressbar.OptionSetRenderBlankState(true),
		)
	} else {
		opts = append(opts,
			progressbar.OptionShowIts(),
		)
	}

	return progressbar.NewOptions(total, opts...)
}

// NewBytesProgressBar creates a byte-counting bar writing to w. A length of -1
// renders a spinner for bodies of unknown size.
func NewBytesProgressBar(length int64, description string, w io.Writer) *progressbar.ProgressBar {
	return progressbar.NewOptions64(length,
		progressbar.OptionSetDescription(description),
		progressbar.OptionSetWriter(w),
		progressbar.OptionShowBytes(true),
		progressbar.OptionShowCount(),
		progressbar.OptionThrottle(65_000_000),
		progressbar.OptionSpinnerType(14),
		progressbar.OptionOnCompletion(func() {
			_, _ = io.WriteString(w, "\n")
		}),
		progressbar.OptionFullWidth(),
	)
}
