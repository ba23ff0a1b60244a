package story

import (
	"fmt"
	"strings"
)

// Prompt renders the directives as one line per field.
func (d WriterDirectives) Prompt() string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("Style: %s\n", d.Style))
	b.WriteString(fmt.Sprintf("Voice: %s\n", d.Voice))
	b.WriteString(fmt.Sprintf("Continuity: %s\n", d.Continuity))
	b.WriteString(fmt.Sprintf("Boundaries: %s\n", d.Boundaries))

	return b.String()
}

// OutlinePrompt builds the planning prompt. It embeds every narrative parameter and ends with
// the instruction to produce a numbered outline.
func (c StoryConfig) OutlinePrompt() string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("Title: %s\n", c.Title))
	b.WriteString(fmt.Sprintf("Logline: %s\n", c.Logline))
	b.WriteString(fmt.Sprintf("Genre: %s\n", c.Genre))
	b.WriteString(fmt.Sprintf("Theme: %s\n", c.Theme))
	b.WriteString(fmt.Sprintf("Point of View: %s\n", c.POV))
	b.WriteString(fmt.Sprintf("Tone: %s\n", c.Tone))
	b.WriteString(fmt.Sprintf("Chapters: %d (target %d words each)\n", c.ChapterCount, c.TargetWordsPerChapter))

	b.WriteString("World rules:\n")
	b.WriteString(bulletList(c.WorldRules))
	b.WriteString("\n")

	b.WriteString("Core characters:\n")
	b.WriteString(bulletList(c.Characters))
	b.WriteString("\n")

	b.WriteString("Writer Directives:\n")
	b.WriteString(c.WriterDirectives.Prompt())

	extra := c.ExtraInstructions
	if extra == "" {
		extra = "None"
	}
	b.WriteString(fmt.Sprintf("Additional guidance: %s\n", extra))
	b.WriteString("Design a numbered chapter outline with hooks, reversals, and payoffs.")

	return b.String()
}

// ChapterPrompt builds the prompt for a single chapter. chapterNumber is only displayed;
// chapterSummary and continuityRecap are embedded as given.
func (c StoryConfig) ChapterPrompt(chapterNumber int, chapterSummary, continuityRecap string) string {
	var b strings.Builder

	b.WriteString("You are a long-form fiction ghostwriter.\n")
	b.WriteString(fmt.Sprintf("Project: %s (%s)\n", c.Title, c.Genre))
	b.WriteString(fmt.Sprintf("Tone: %s\n", c.Tone))
	b.WriteString(fmt.Sprintf("Point of View: %s\n", c.POV))
	b.WriteString("Writer Directives:\n")
	b.WriteString(c.WriterDirectives.Prompt())
	b.WriteString(fmt.Sprintf("Chapter target length: %d words.\n", c.TargetWordsPerChapter))
	b.WriteString(fmt.Sprintf("Continuity recap:\n%s\n", continuityRecap))
	b.WriteString(fmt.Sprintf("Current chapter plan (%d): %s\n", chapterNumber, chapterSummary))
	b.WriteString("Deliver the full chapter prose in one pass.")

	return b.String()
}

func bulletList(items []string) string {
	lines := make([]string, len(items))
	for i, item := range items {
		lines[i] = "- " + item
	}
	return strings.Join(lines, "\n")
}
