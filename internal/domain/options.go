package domain

// DefaultBranch is the branch pulled for git sources that carry no fragment
const DefaultBranch = "master"

// FetchOptions controls a single fetch call.
type FetchOptions struct {
	// AllowFile permits file:// and bare local paths as sources
	AllowFile bool
	// DefaultBranch overrides the branch pulled when no fragment is given
	DefaultBranch string
}

// Branch returns the configured default branch, falling back to DefaultBranch.
func (o FetchOptions) Branch() string {
	if o.DefaultBranch == "" {
		return DefaultBranch
	}
	return o.DefaultBranch
}

// ScanOptions contains shared options for scan orchestration.
type ScanOptions struct {
	// TmpPath overrides the generated scan directory
	TmpPath string
	// Save keeps the fetched tree after scanning
	Save bool
	Verbose bool
}
