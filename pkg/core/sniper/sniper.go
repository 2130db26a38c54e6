// Package sniper bounds the size of section text handed to the generation
// provider. The transport has a hard request-size ceiling, and naive
// truncation would drop exactly the content (decisions, action items) that
// carries the most summarization value per character.
package sniper

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// OmissionMarker joins the retained windows when text had to be cut.
const OmissionMarker = "\n[... trecho omitido ...]\n"

const (
	// DefaultMaxChars is the empirical per-call payload budget.
	DefaultMaxChars = 1700

	// minTrailerOffset avoids false positives when a trailer marker phrase
	// appears in the opening lines of a section.
	minTrailerOffset = 200

	// maxKeywordHead caps the head window retained before the omission
	// marker on the keyword-anchored path (~800 chars at the default budget).
	maxKeywordHead = 800
)

// Boilerplate trailers appended by the note-taking tooling. Everything from
// the marker onward is verbatim transcript noise.
var defaultTrailerMarkers = []string{
	"transcrição da reunião",
	"transcricao da reuniao",
	"transcrição completa",
	"gravação da reunião",
	"ata gerada automaticamente",
	"meeting transcript",
}

// Synonyms for "next steps" used to anchor the retained tail window.
var defaultNextStepKeywords = []string{
	"próximos passos",
	"proximos passos",
	"próximas etapas",
	"proximas etapas",
	"ações definidas",
	"acoes definidas",
	"encaminhamentos",
	"next steps",
	"action items",
}

var (
	spaceRunRe   = regexp.MustCompile(`[ \t]+`)
	newlineRunRe = regexp.MustCompile(`[ \t]*\n[\s]*`)
)

// Compressor applies trailer stripping, whitespace collapse and windowed
// truncation to keep section text under MaxChars.
type Compressor struct {
	MaxChars       int
	TrailerMarkers []string
	Keywords       []string
}

// New returns a Compressor with the default budget and pt-BR marker tables.
func New() *Compressor {
	return &Compressor{
		MaxChars:       DefaultMaxChars,
		TrailerMarkers: defaultTrailerMarkers,
		Keywords:       defaultNextStepKeywords,
	}
}

// Compress returns text bounded to roughly MaxChars.
//
// Order matters: trailer stripping and whitespace collapse are lossless for
// summarization purposes and often bring the text under budget on their own.
// Only when the result still exceeds MaxChars does Compress cut windows,
// preferring a window anchored at the last "next steps" keyword over a plain
// head/tail sandwich.
func (c *Compressor) Compress(text string) string {
	text = c.stripTrailer(text)
	text = collapseWhitespace(text)

	if len(text) <= c.MaxChars {
		return text
	}

	// Window sizes scale with the budget so the output stays within
	// MaxChars plus the marker regardless of configuration.
	kwHead := c.MaxChars / 2
	if kwHead > maxKeywordHead {
		kwHead = maxKeywordHead
	}

	lower := strings.ToLower(text)
	if idx := c.lastKeywordIndex(lower); idx >= kwHead {
		head := cutHead(text, kwHead)
		window := cutHead(text[idx:], c.MaxChars-kwHead)
		return head + OmissionMarker + window
	}

	head := cutHead(text, c.MaxChars*55/100)
	tail := cutTail(text, c.MaxChars-c.MaxChars*55/100)
	return head + OmissionMarker + tail
}

// stripTrailer truncates at the earliest trailer marker found beyond the
// minimum offset.
func (c *Compressor) stripTrailer(text string) string {
	lower := strings.ToLower(text)
	cut := -1
	for _, marker := range c.TrailerMarkers {
		idx := strings.Index(lower, marker)
		if idx >= minTrailerOffset && (cut == -1 || idx < cut) {
			cut = idx
		}
	}
	if cut == -1 {
		return text
	}
	return text[:cut]
}

func (c *Compressor) lastKeywordIndex(lower string) int {
	last := -1
	for _, kw := range c.Keywords {
		if idx := strings.LastIndex(lower, kw); idx > last {
			last = idx
		}
	}
	return last
}

func collapseWhitespace(text string) string {
	text = spaceRunRe.ReplaceAllString(text, " ")
	text = newlineRunRe.ReplaceAllString(text, "\n")
	return strings.TrimSpace(text)
}

// cutHead returns at most n bytes from the start, never splitting a rune.
func cutHead(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}

// cutTail returns at most n bytes from the end, never splitting a rune.
func cutTail(s string, n int) string {
	if len(s) <= n {
		return s
	}
	start := len(s) - n
	for start < len(s) && !utf8.RuneStart(s[start]) {
		start++
	}
	return s[start:]
}
