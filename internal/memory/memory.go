// Package memory accumulates the outline and chapter texts of a drafting run and condenses the
// chapters written so far into a bounded continuity recap for the next chapter prompt.
package memory

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

const (
	// RecapChapterMaxRunes bounds how much of each past chapter the recap keeps.
	RecapChapterMaxRunes = 320

	// TruncationMarker is appended to a condensed chapter that was cut short.
	TruncationMarker = "…"

	// EmptyRecap is the recap returned before any chapter has been recorded.
	EmptyRecap = "No previous chapters; open with a gripping hook."
)

// StoryMemory holds the evolving story state of one run. It is not safe for concurrent use.
type StoryMemory struct {
	outline  []string
	chapters []string
}

// New returns an empty memory.
func New() *StoryMemory {
	return &StoryMemory{}
}

// RecordOutline replaces the stored outline.
func (m *StoryMemory) RecordOutline(outline []string) {
	m.outline = append([]string(nil), outline...)
}

// Outline returns a copy of the stored outline.
func (m *StoryMemory) Outline() []string {
	return append([]string(nil), m.outline...)
}

// HasOutline reports whether an outline has been recorded.
func (m *StoryMemory) HasOutline() bool {
	return len(m.outline) > 0
}

// RecordChapter appends a chapter to the timeline.
func (m *StoryMemory) RecordChapter(text string) {
	m.chapters = append(m.chapters, text)
}

// Chapters returns a copy of the recorded chapters, in order.
func (m *StoryMemory) Chapters() []string {
	return append([]string(nil), m.chapters...)
}

// ResetChapters drops recorded chapters so a new run starts its recap from scratch.
// The outline is kept.
func (m *StoryMemory) ResetChapters() {
	m.chapters = nil
}

// ContinuitySummary condenses every recorded chapter into one labeled line. Whitespace runs
// collapse to a single space and each chapter keeps at most RecapChapterMaxRunes runes.
func (m *StoryMemory) ContinuitySummary() string {
	if len(m.chapters) == 0 {
		return EmptyRecap
	}

	lines := make([]string, len(m.chapters))
	for i, chapter := range m.chapters {
		lines[i] = fmt.Sprintf("Chapter %d: %s", i+1, condense(chapter))
	}
	return strings.Join(lines, "\n")
}

func condense(text string) string {
	collapsed := strings.Join(strings.Fields(text), " ")
	if utf8.RuneCountInString(collapsed) <= RecapChapterMaxRunes {
		return collapsed
	}

	n := 0
	for i := range collapsed {
		if n == RecapChapterMaxRunes {
			return collapsed[:i] + TruncationMarker
		}
		n++
	}
	return collapsed
}
