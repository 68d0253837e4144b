package app

import (
	"github.com/quantmind-br/jesse/internal/fetch"
)

// TargetKind classifies a scan target by how it will be retrieved
type TargetKind string

const (
	TargetGit     TargetKind = "git"
	TargetArchive TargetKind = "archive"
	TargetFTP     TargetKind = "ftp"
	TargetLocal   TargetKind = "local"
	TargetUnknown TargetKind = "unknown"
)

// DetectTarget determines how target would be fetched after browse URL normalization
func DetectTarget(target string) TargetKind {
	desc, err := fetch.Parse(target)
	if err != nil {
		return TargetUnknown
	}
	if normalized, ok := fetch.Normalize(desc); ok {
		desc = normalized
	}

	switch scheme := desc.Scheme(); {
	case scheme.IsGit():
		return TargetGit
	case scheme == fetch.SchemeFile:
		return TargetLocal
	case scheme == fetch.SchemeFTP || scheme == fetch.SchemeFTPS:
		return TargetFTP
	case scheme == fetch.SchemeHTTP || scheme == fetch.SchemeHTTPS:
		return TargetArchive
	default:
		return TargetUnknown
	}
}

// IsRemote reports whether the kind needs network access
func (k TargetKind) IsRemote() bool {
	return k == TargetGit || k == TargetArchive || k == TargetFTP
}
