package history

import (
	"crypto/sha256"
	"encoding/hex"
	"net/url"
	"path"
	"strings"
)

// Key prefixes
const (
	PrefixScan   = "scan"
	PrefixTarget = "target"
)

// RecordKey is the primary key of a record
func RecordKey(uid string) string {
	return PrefixScan + ":" + uid
}

// TargetPrefix is the index prefix shared by every scan of the same target
func TargetPrefix(target string) string {
	return PrefixTarget + ":" + targetHash(target) + ":"
}

// TargetKey indexes uid under its target
func TargetKey(target, uid string) string {
	return TargetPrefix(target) + uid
}

func targetHash(target string) string {
	hash := sha256.Sum256([]byte(normalizeTarget(target)))
	return hex.EncodeToString(hash[:])
}

// normalizeTarget folds cosmetic differences so equivalent sources share an index
func normalizeTarget(target string) string {
	target = strings.TrimSpace(target)
	u, err := url.Parse(target)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return path.Clean(target)
	}

	u.Scheme = strings.ToLower(u.Scheme)
	u.Host = strings.ToLower(u.Host)
	u.User = nil

	if (u.Scheme == "http" && u.Port() == "80") ||
		(u.Scheme == "https" && u.Port() == "443") {
		u.Host = u.Hostname()
	}

	if u.Path != "" {
		u.Path = path.Clean(u.Path)
	}
	if u.Path != "/" {
		u.Path = strings.TrimSuffix(u.Path, "/")
	}

	return u.String()
}
