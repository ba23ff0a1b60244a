// Package story defines the user-controllable parameters of a drafted novel and renders them
// into the prompts used for outlining and chapter writing. A StoryConfig is a plain value: it is
// built once (from defaults or a JSON document), validated, and then only read.
package story

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidConfig = errors.New("invalid story config")
)

// WriterDirectives is high-level guidance rendered verbatim into every prompt.
type WriterDirectives struct {
	Style      string `json:"style"`
	Boundaries string `json:"boundaries"`
	Voice      string `json:"voice"`
	Continuity string `json:"continuity"`
}

// DefaultWriterDirectives returns the directive text used when a config supplies none.
func DefaultWriterDirectives() WriterDirectives {
	return WriterDirectives{
		Style:      "Write with cinematic pacing, vivid sensory detail, and layered character interiority.",
		Boundaries: "Stay true to the genre and the cast; let consequences land without moralizing.",
		Voice:      "Favor strong verbs, varied sentence length, and sharp dialogue that reveals subtext.",
		Continuity: "Keep characters consistent, escalate stakes each chapter, and maintain foreshadowing payoffs.",
	}
}

// StoryConfig holds the narrative parameters for one drafting run.
type StoryConfig struct {
	Title                 string
	Logline               string
	Genre                 string
	Theme                 string
	POV                   string
	Tone                  string
	ChapterCount          int
	TargetWordsPerChapter int
	WorldRules            []string
	Characters            []string
	WriterDirectives      WriterDirectives

	// ExtraInstructions is optional free text; empty means none.
	ExtraInstructions string
}

// DefaultStoryConfig returns the config used when no document is provided.
func DefaultStoryConfig() StoryConfig {
	return StoryConfig{
		Title:                 "Untitled Novel",
		Logline:               "A relentless, high-energy narrative built for long-form improvisation.",
		Genre:                 "Speculative fiction",
		Theme:                 "Identity, power, and consequence",
		POV:                   "Third-person limited",
		Tone:                  "Cinematic, maximalist, and fearless",
		ChapterCount:          6,
		TargetWordsPerChapter: 900,
		WorldRules: []string{
			"Technology and myth collide",
			"Every victory is paid for in full",
		},
		Characters: []string{
			"A driven protagonist with a secret agenda",
			"An antagonist who thinks they are the hero",
			"A companion who tests loyalties",
		},
		WriterDirectives: DefaultWriterDirectives(),
	}
}

// Validate checks the invariants every constructed config must satisfy.
func (c StoryConfig) Validate() error {
	if c.ChapterCount <= 0 {
		return fmt.Errorf("%w: chapter_count must be positive, got %d", ErrInvalidConfig, c.ChapterCount)
	}
	if c.TargetWordsPerChapter <= 0 {
		return fmt.Errorf("%w: target_words_per_chapter must be positive, got %d", ErrInvalidConfig, c.TargetWordsPerChapter)
	}
	return nil
}
