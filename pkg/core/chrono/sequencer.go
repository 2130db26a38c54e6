package chrono

import (
	"sort"
	"time"
)

// Part is a raw document section as delivered by the document source, before
// any date resolution.
type Part struct {
	Title string
	Text  string
}

// Section is a dated (or undated) portion of a source document, ready for
// the summarization engine. Immutable once produced.
type Section struct {
	Title   string
	Date    time.Time
	Dated   bool
	SortKey int64 // epoch millis, 0 when undated
	RawText string
}

// Sequence resolves each part's date and returns the sections ordered oldest
// to newest. Undated sections carry sort key 0 and therefore sort before all
// dated ones; the sort is stable, so ties keep their document order.
//
// The ordering is load-bearing: the engine's carried memory is only coherent
// when the last section visited is the most recent interaction.
func Sequence(parts []Part, now time.Time) []Section {
	sections := make([]Section, 0, len(parts))
	for _, p := range parts {
		sec := Section{Title: p.Title, RawText: p.Text}
		if date, ok := ResolveDate(p.Title, now); ok {
			sec.Date = date
			sec.Dated = true
			sec.SortKey = date.UnixMilli()
		}
		sections = append(sections, sec)
	}

	sort.SliceStable(sections, func(i, j int) bool {
		return sections[i].SortKey < sections[j].SortKey
	})
	return sections
}
