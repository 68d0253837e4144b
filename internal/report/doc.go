// Package report models bandit JSON reports and renders them as terminal
// text, markdown, JSON or PDF.
package report
