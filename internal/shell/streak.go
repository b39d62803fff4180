package shell

import (
	"time"

	"github.com/chris-regnier/daybook/internal/entry"
	"github.com/chris-regnier/daybook/internal/index"
)

// Status is what the prompt shows about the journal.
type Status struct {
	Today  bool `json:"today"`
	Streak int  `json:"streak"`
	Total  int  `json:"total"`
}

// ComputeStatus derives the prompt status from the table of contents:
// whether today has an entry and how many consecutive days, ending today,
// have one.
func ComputeStatus(entries []index.Entry, now time.Time) Status {
	days := make(map[string]bool, len(entries))
	for _, e := range entries {
		days[e.Date] = true
	}

	today := entry.NormalizeDate(now)
	s := Status{
		Today: days[today.Format(entry.DateLayout)],
		Total: len(days),
	}
	for d := today; days[d.Format(entry.DateLayout)]; d = d.AddDate(0, 0, -1) {
		s.Streak++
	}
	return s
}
