package report

import (
	"fmt"
	"strings"

	"github.com/quantmind-br/jesse/internal/domain"
)

// Ranking is a bandit severity or confidence level
type Ranking int

const (
	Undefined Ranking = iota
	Low
	Medium
	High
)

var rankingNames = [...]string{
	Undefined: "UNDEFINED",
	Low:       "LOW",
	Medium:    "MEDIUM",
	High:      "HIGH",
}

// Descending lists every ranking from most to least significant
var Descending = []Ranking{High, Medium, Low, Undefined}

// ParseRanking parses a ranking name case-insensitively. The empty string is Undefined.
func ParseRanking(s string) (Ranking, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	if s == "" {
		return Undefined, nil
	}
	for r, name := range rankingNames {
		if name == s {
			return Ranking(r), nil
		}
	}
	return Undefined, domain.NewValidationError("ranking",
		fmt.Sprintf("%q is not one of %s", s, strings.Join(rankingNames[:], ", ")))
}

// rankingOf maps a report field onto a Ranking, treating unknown values as Undefined
func rankingOf(s string) Ranking {
	r, err := ParseRanking(s)
	if err != nil {
		return Undefined
	}
	return r
}

func (r Ranking) String() string {
	if r < Undefined || r > High {
		return rankingNames[Undefined]
	}
	return rankingNames[r]
}
