// Package runner invokes the bandit static analyzer on a directory tree and
// captures its JSON report.
package runner
