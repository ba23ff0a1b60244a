// Package planner turns a story config into a chapter-by-chapter outline with exactly one beat
// per configured chapter.
package planner

import (
	"context"
	"fmt"
	"strings"

	"github.com/Yates-Labs/novelist/internal/narrative"
	"github.com/Yates-Labs/novelist/internal/story"
)

// OutlineSampling is used for the single outline call.
var OutlineSampling = narrative.Sampling{MaxTokens: 800, Temperature: 0.6}

// FallbackOutline is used when the backend's outline yields no beats.
func FallbackOutline() []string {
	return []string{
		"Introduce the protagonist with a disruptive choice and a sharp hook.",
		"Escalate tensions between allies and rivals while the world frays.",
		"Deliver a midpoint reversal that forces a new objective.",
		"Tear down safety nets and expose the true antagonist strategy.",
		"Stage a penultimate clash that costs the hero dearly.",
		"Resolve the central conflict with irreversible change.",
	}
}

// FillerBeat is appended for each chapter the outline is missing.
func FillerBeat(chapterNumber int) string {
	return fmt.Sprintf("Chapter %d: push relationships to the edge and reveal a new layer of threat.", chapterNumber)
}

// OutlinePlanner builds an outline with one backend call and no retries.
type OutlinePlanner struct {
	generator *narrative.Generator
	config    story.StoryConfig
}

// NewOutlinePlanner creates a planner for the given config.
func NewOutlinePlanner(generator *narrative.Generator, config story.StoryConfig) *OutlinePlanner {
	return &OutlinePlanner{
		generator: generator,
		config:    config,
	}
}

// BuildOutline generates the outline. The result always has exactly ChapterCount beats;
// the only failure is the backend's.
func (p *OutlinePlanner) BuildOutline(ctx context.Context) ([]string, error) {
	passage, err := p.generator.GenerateRaw(ctx, "outline", p.config.OutlinePrompt(), OutlineSampling)
	if err != nil {
		return nil, fmt.Errorf("outline generation failed: %w", err)
	}
	return Normalize(passage.Text, p.config.ChapterCount), nil
}

// Normalize splits raw outline text into beats and fits them to chapterCount: blank lines and
// surrounding "- " markers are stripped, the fallback outline replaces an empty result, filler
// beats pad a short one, and extra beats are dropped from the end.
func Normalize(raw string, chapterCount int) []string {
	beats := parseBeats(raw)
	if len(beats) == 0 {
		beats = FallbackOutline()
	}

	for len(beats) < chapterCount {
		beats = append(beats, FillerBeat(len(beats)+1))
	}
	if chapterCount < 0 {
		chapterCount = 0
	}
	return beats[:chapterCount]
}

func parseBeats(raw string) []string {
	var beats []string
	for _, line := range strings.Split(raw, "\n") {
		beat := strings.Trim(strings.TrimSpace(line), "- ")
		if beat == "" {
			continue
		}
		beats = append(beats, beat)
	}
	return beats
}
