package report

import (
	"bytes"
	"encoding/json"
	"fmt"
	"maps"
	"os"
	"sort"
	"time"

	"github.com/quantmind-br/jesse/internal/utils"
)

// TimeLayout is the format of the generated_at field
const TimeLayout = "2006-01-02T15:04:05Z"

// ExtraKey holds the title and link of the scanned source inside the report JSON
const ExtraKey = "_jj"

// Finding is a single bandit result
type Finding struct {
	Code            string `json:"code"`
	Filename        string `json:"filename"`
	IssueConfidence string `json:"issue_confidence"`
	IssueSeverity   string `json:"issue_severity"`
	IssueText       string `json:"issue_text"`
	LineNumber      int    `json:"line_number"`
	LineRange       []int  `json:"line_range"`
	MoreInfo        string `json:"more_info"`
	TestID          string `json:"test_id"`
	TestName        string `json:"test_name"`
}

func (f Finding) Severity() Ranking   { return rankingOf(f.IssueSeverity) }
func (f Finding) Confidence() Ranking { return rankingOf(f.IssueConfidence) }

// Extra identifies the scanned source
type Extra struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// Report is a parsed bandit JSON report. The raw document is retained so
// ToJSON round-trips fields this type does not model.
type Report struct {
	GeneratedAt   time.Time
	PythonVersion string
	Findings      []Finding
	Totals        map[string]float64
	Errors        []json.RawMessage
	Extra         *Extra

	raw map[string]any
}

type document struct {
	GeneratedAt   string            `json:"generated_at"`
	PythonVersion string            `json:"python_version"`
	Results       []Finding         `json:"results"`
	Errors        []json.RawMessage `json:"errors"`
	Metrics       struct {
		Totals map[string]float64 `json:"_totals"`
	} `json:"metrics"`
	Extra *Extra `json:"_jj"`
}

// Parse decodes a bandit JSON report
func Parse(data []byte) (*Report, error) {
	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode report: %w", err)
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var raw map[string]any
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("decode report: %w", err)
	}

	r := &Report{
		PythonVersion: doc.PythonVersion,
		Findings:      doc.Results,
		Totals:        doc.Metrics.Totals,
		Errors:        doc.Errors,
		Extra:         doc.Extra,
		raw:           raw,
	}
	if r.Totals == nil {
		r.Totals = map[string]float64{}
	}

	if doc.GeneratedAt != "" {
		ts, err := time.Parse(TimeLayout, doc.GeneratedAt)
		if err != nil {
			ts, err = time.Parse(time.RFC3339, doc.GeneratedAt)
			if err != nil {
				return nil, fmt.Errorf("parse generated_at: %w", err)
			}
		}
		r.GeneratedAt = ts
	}

	return r, nil
}

// LoadFile reads and parses a bandit JSON report from disk
func LoadFile(path string) (*Report, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// SetExtra records the title and URL of the scanned source
func (r *Report) SetExtra(name, url string) {
	r.Extra = &Extra{Name: name, URL: url}
	if r.raw == nil {
		r.raw = map[string]any{}
	}
	r.raw[ExtraKey] = map[string]any{"name": name, "url": url}
}

// Results returns the findings at or above both minimum rankings, in report order
func (r *Report) Results(minConfidence, minSeverity Ranking) []Finding {
	out := make([]Finding, 0, len(r.Findings))
	for _, f := range r.Findings {
		if f.meets(minConfidence, minSeverity) {
			out = append(out, f)
		}
	}
	return out
}

func (f Finding) meets(minConfidence, minSeverity Ranking) bool {
	return f.Confidence() >= minConfidence && f.Severity() >= minSeverity
}

// Sorted returns all findings ordered by severity, then confidence, highest first
func (r *Report) Sorted() []Finding {
	return sortFindings(r.Findings)
}

func sortFindings(findings []Finding) []Finding {
	out := make([]Finding, len(findings))
	copy(out, findings)
	sort.SliceStable(out, func(i, j int) bool {
		if si, sj := out[i].Severity(), out[j].Severity(); si != sj {
			return si > sj
		}
		return out[i].Confidence() > out[j].Confidence()
	})
	return out
}

// Filter returns a copy of r, raw document included, limited to findings at
// or above the given rankings
func (r *Report) Filter(minConfidence, minSeverity Ranking) *Report {
	filtered := *r
	filtered.Findings = make([]Finding, 0, len(r.Findings))
	filtered.raw = maps.Clone(r.raw)

	rawResults, _ := r.raw["results"].([]any)
	kept := make([]any, 0, len(rawResults))
	for i, f := range r.Findings {
		if !f.meets(minConfidence, minSeverity) {
			continue
		}
		filtered.Findings = append(filtered.Findings, f)
		if i < len(rawResults) {
			kept = append(kept, rawResults[i])
		}
	}
	if filtered.raw != nil {
		filtered.raw["results"] = kept
	}
	return &filtered
}

// Total returns a metrics._totals counter, or 0 when absent
func (r *Report) Total(key string) int {
	return int(r.Totals[key])
}

// Summary is the one-line severity breakdown from the report metrics
func (r *Report) Summary() string {
	return fmt.Sprintf("high:%d medium:%d low:%d",
		r.Total("SEVERITY.HIGH"),
		r.Total("SEVERITY.MEDIUM"),
		r.Total("SEVERITY.LOW"),
	)
}

// Tally counts findings by severity then confidence
func Tally(findings []Finding) map[Ranking]map[Ranking]int {
	counts := make(map[Ranking]map[Ranking]int, len(Descending))
	for _, s := range Descending {
		counts[s] = make(map[Ranking]int, len(Descending))
	}
	for _, f := range findings {
		counts[f.Severity()][f.Confidence()]++
	}
	return counts
}

// ToJSON encodes the report with sorted keys and two-space indentation
func (r *Report) ToJSON() ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(r.raw); err != nil {
		return nil, fmt.Errorf("encode report: %w", err)
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// WriteJSONFile writes ToJSON output to path, creating parent directories
func (r *Report) WriteJSONFile(path string) error {
	data, err := r.ToJSON()
	if err != nil {
		return err
	}
	if err := utils.EnsureDir(path); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
