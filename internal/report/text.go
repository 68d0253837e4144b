package report

import (
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/termenv"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// DefaultTextWidth is the wrap width used by the CLI when the terminal size is unknown
const DefaultTextWidth = 80

const textTimeLayout = "Jan 02, 2006 15:04"

var rankingColors = map[Ranking]lipgloss.Color{
	High:      lipgloss.Color("1"),
	Medium:    lipgloss.Color("3"),
	Low:       lipgloss.Color("7"),
	Undefined: lipgloss.Color("6"),
}

type textStyles struct {
	heading lipgloss.Style
	bold    lipgloss.Style
	ranking map[Ranking]lipgloss.Style
	cell    lipgloss.Style
	number  lipgloss.Style
}

func newTextStyles(useColor bool) textStyles {
	renderer := lipgloss.NewRenderer(io.Discard)
	if useColor {
		renderer.SetColorProfile(termenv.ANSI)
	} else {
		renderer.SetColorProfile(termenv.Ascii)
	}

	s := textStyles{
		heading: renderer.NewStyle().Bold(true).Underline(true),
		bold:    renderer.NewStyle().Bold(true),
		ranking: make(map[Ranking]lipgloss.Style, len(rankingColors)),
		cell:    renderer.NewStyle().Padding(0, 1),
		number:  renderer.NewStyle().Padding(0, 1).Align(lipgloss.Right),
	}
	for r, c := range rankingColors {
		s.ranking[r] = renderer.NewStyle().Bold(true).Foreground(c)
	}
	return s
}

// ToText renders the report for a terminal, wrapping descriptions at maxWidth.
// ANSI sequences are removed when useColor is false.
func (r *Report) ToText(maxWidth int, useColor bool) string {
	if maxWidth <= 8 {
		maxWidth = DefaultTextWidth
	}
	st := newTextStyles(useColor)
	p := message.NewPrinter(language.English)
	results := r.Sorted()

	var lines []string
	add := func(l ...string) { lines = append(lines, l...) }

	add(st.heading.Render("Report:"))
	if r.Extra != nil {
		add("  - Title:          "+r.Extra.Name, "  - URL:            "+r.Extra.URL)
	}
	add("  - Generated At:   " + r.GeneratedAt.Format(textTimeLayout))
	pythonVersion := r.PythonVersion
	if pythonVersion == "" {
		pythonVersion = "UNKNOWN"
	}
	add("  - Python Version: "+pythonVersion, p.Sprintf("  - Total Findings: %d", len(results)), "")

	add(st.heading.Render("Summary:"))
	grid := summaryTable(results, st).Border(lipgloss.ASCIIBorder()).BorderRow(true).Render()
	add(strings.Split(grid, "\n")...)
	add("| (Shown as Confidence over Severity)", "+"+strings.Repeat("-", 36), "")

	for i, f := range results {
		label := st.heading.Render(p.Sprintf("Result #%d", i+1))
		add(padVisible(label, 27) + " [" + f.TestID + ": " + st.bold.Render(f.TestName) + "]")
		add("  Severity: " + padVisible(st.ranking[f.Severity()].Render(f.Severity().String()), 9) +
			" Confidence: " + st.ranking[f.Confidence()].Render(f.Confidence().String()))
		add("  Description:")
		for _, l := range strings.Split(ansi.Wordwrap(f.IssueText, maxWidth-4, ""), "\n") {
			add("    " + strings.TrimRight(l, " "))
		}
		add(p.Sprintf("  Source: %s:%d", f.Filename, f.LineNumber))
		for _, l := range codeLines(f.Code) {
			if num, src, ok := strings.Cut(l, " "); ok {
				add("    " + padVisible(num, 5) + ": " + src)
			} else {
				add("    " + l)
			}
		}
		add("")
	}

	text := strings.Join(lines, "\n")
	if !useColor {
		text = ansi.Strip(text)
	}
	return text
}

// summaryTable lays out severity rows against confidence columns
func summaryTable(findings []Finding, st textStyles) *table.Table {
	counts := Tally(findings)

	headers := []string{""}
	for _, c := range Descending {
		headers = append(headers, c.String())
	}

	rows := make([][]string, 0, len(Descending))
	for _, s := range Descending {
		row := []string{s.String()}
		for _, c := range Descending {
			row = append(row, itoa(counts[s][c]))
		}
		rows = append(rows, row)
	}

	return table.New().
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if col == 0 || row == table.HeaderRow {
				return st.cell
			}
			return st.number
		})
}

// codeLines splits a bandit code excerpt, dropping the trailing empty line
func codeLines(code string) []string {
	lines := strings.Split(code, "\n")
	if len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

// padVisible right-pads s to width printable cells, ignoring escape sequences
func padVisible(s string, width int) string {
	if w := ansi.StringWidth(s); w < width {
		return s + strings.Repeat(" ", width-w)
	}
	return s
}

func itoa(n int) string {
	return message.NewPrinter(language.English).Sprintf("%d", n)
}
