package history

import "time"

// Record describes one completed or failed scan
type Record struct {
	UID       string        `json:"uid"`
	Target    string        `json:"target"`
	Title     string        `json:"title,omitempty"`
	Requester string        `json:"requester,omitempty"`
	Summary   string        `json:"summary,omitempty"`
	ReportDir string        `json:"report_dir,omitempty"`
	ScannedAt time.Time     `json:"scanned_at"`
	Duration  time.Duration `json:"duration"`
	Error     string        `json:"error,omitempty"`
}

// Failed reports whether the scan ended in an error
func (r *Record) Failed() bool {
	return r.Error != ""
}

// Options contains history store configuration options
type Options struct {
	Directory string
	InMemory  bool
	// Logger enables badger's internal logging
	Logger bool
	// Retention expires records after the given age; zero keeps them forever
	Retention time.Duration
}

// DefaultOptions returns default history options
func DefaultOptions() Options {
	return Options{}
}
