package engine

import "unicode/utf8"

// noHistorySentinel seeds the memory before any section has been processed.
const noHistorySentinel = "Sem histórico anterior."

// RunningMemory is the bounded summary string carried between sections
// during one company's analysis run. It is owned exclusively by the
// summarization loop: replaced wholesale after each successful call and
// clipped before every reuse, since model responses carry no hard length
// guarantee.
type RunningMemory struct {
	text string
}

func NewRunningMemory() *RunningMemory {
	return &RunningMemory{text: noHistorySentinel}
}

// Clip returns at most n bytes of the memory, cut on a rune boundary. This
// is the single place the size-bounding invariant is enforced.
func (m *RunningMemory) Clip(n int) string {
	if len(m.text) <= n {
		return m.text
	}
	for n > 0 && !utf8.RuneStart(m.text[n]) {
		n--
	}
	return m.text[:n]
}

// Replace overwrites the memory with a new understanding. Full replacement,
// not concatenation: that is what keeps the memory bounded across sections.
func (m *RunningMemory) Replace(text string) {
	m.text = text
}

func (m *RunningMemory) String() string {
	return m.text
}
