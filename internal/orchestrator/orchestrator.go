package orchestrator

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/Yates-Labs/novelist/internal/logger"
	"github.com/Yates-Labs/novelist/internal/memory"
	"github.com/Yates-Labs/novelist/internal/narrative"
	"github.com/Yates-Labs/novelist/internal/planner"
	"github.com/Yates-Labs/novelist/internal/story"
	"github.com/oklog/ulid/v2"
)

const (
	// MetadataFile is written after the last chapter.
	MetadataFile = "story-config.json"
)

var (
	ErrOutputFailed = errors.New("output write failed")
)

// ChapterSampling is used for every chapter call.
var ChapterSampling = narrative.Sampling{MaxTokens: 2000, Temperature: 0.95}

// ChapterFile returns the file name for a 1-based chapter number.
func ChapterFile(chapterNumber int) string {
	return fmt.Sprintf("chapter-%02d.txt", chapterNumber)
}

// Snapshotter records a finished output directory. It is called once per successful Write.
type Snapshotter interface {
	Snapshot(dir, message string) (string, error)
}

// Option configures a NovelAgent.
type Option func(*NovelAgent)

// WithMemory replaces the agent's memory, e.g. one preloaded with an outline.
func WithMemory(m *memory.StoryMemory) Option {
	return func(a *NovelAgent) {
		if m != nil {
			a.memory = m
		}
	}
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *logger.Logger) Option {
	return func(a *NovelAgent) {
		if l != nil {
			a.log = l
		}
	}
}

// WithSnapshotter commits the output directory after each successful Write.
func WithSnapshotter(s Snapshotter) Option {
	return func(a *NovelAgent) {
		a.snapshotter = s
	}
}

// NovelAgent drives outline planning and sequential chapter drafting.
type NovelAgent struct {
	config      story.StoryConfig
	generator   *narrative.Generator
	planner     *planner.OutlinePlanner
	memory      *memory.StoryMemory
	snapshotter Snapshotter
	log         *logger.Logger
}

// NewNovelAgent creates an agent for cfg. The config is validated and copied.
func NewNovelAgent(generator *narrative.Generator, cfg story.StoryConfig, opts ...Option) (*NovelAgent, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if generator == nil {
		return nil, fmt.Errorf("%w: generator is required", narrative.ErrGenerationFailed)
	}

	agent := &NovelAgent{
		config:    cfg,
		generator: generator,
		planner:   planner.NewOutlinePlanner(generator, cfg),
		memory:    memory.New(),
		log:       logger.Nop(),
	}
	for _, opt := range opts {
		opt(agent)
	}

	return agent, nil
}

// Memory exposes the agent's story memory.
func (a *NovelAgent) Memory() *memory.StoryMemory {
	return a.memory
}

// Plan builds a fresh outline and replaces the one in memory.
func (a *NovelAgent) Plan(ctx context.Context) ([]string, error) {
	outline, err := a.planner.BuildOutline(ctx)
	if err != nil {
		return nil, err
	}
	a.memory.RecordOutline(outline)
	a.log.Info("outline planned", "beats", len(outline))
	return a.memory.Outline(), nil
}

// Write drafts every chapter into outputDir and then writes the metadata file. It returns the
// chapter paths in order followed by the metadata path. On failure, chapters already written
// stay on disk.
func (a *NovelAgent) Write(ctx context.Context, outputDir string) ([]string, error) {
	runID := ulid.Make().String()
	log := a.log.With("run_id", runID, "output", outputDir)

	if !a.memory.HasOutline() {
		if _, err := a.Plan(ctx); err != nil {
			return nil, err
		}
	}

	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return nil, fmt.Errorf("%w: create %s: %w", ErrOutputFailed, outputDir, err)
	}

	a.memory.ResetChapters()
	outline := a.memory.Outline()
	paths := make([]string, 0, len(outline)+1)

	for i, beat := range outline {
		chapterNumber := i + 1
		recap := a.memory.ContinuitySummary()
		prompt := a.config.ChapterPrompt(chapterNumber, beat, recap)

		log.Debug("drafting chapter", "chapter", chapterNumber, "prompt_len", len(prompt))
		passage, err := a.generator.Generate(ctx, fmt.Sprintf("chapter-%02d", chapterNumber), prompt, ChapterSampling)
		if err != nil {
			log.Error("chapter failed", "chapter", chapterNumber, "error", err)
			return nil, fmt.Errorf("chapter %d: %w", chapterNumber, err)
		}
		a.memory.RecordChapter(passage.Text)

		path := filepath.Join(outputDir, ChapterFile(chapterNumber))
		if err := writeFileAtomic(path, []byte(passage.Text)); err != nil {
			return nil, err
		}
		paths = append(paths, path)
		log.Info("chapter written", "chapter", chapterNumber, "chars", len(passage.Text), "path", path)
	}

	data, err := a.ConfigJSON()
	if err != nil {
		return nil, fmt.Errorf("%w: encode metadata: %w", ErrOutputFailed, err)
	}
	metadataPath := filepath.Join(outputDir, MetadataFile)
	if err := writeFileAtomic(metadataPath, data); err != nil {
		return nil, err
	}
	paths = append(paths, metadataPath)

	if err := removeStaleChapters(outputDir, len(outline), log); err != nil {
		return nil, err
	}

	if a.snapshotter != nil {
		message := fmt.Sprintf("Draft run %s: %s (%d chapters)\n\nrun_id: %s\n", runID, a.config.Title, len(outline), runID)
		hash, err := a.snapshotter.Snapshot(outputDir, message)
		if err != nil {
			return nil, fmt.Errorf("%w: snapshot %s: %w", ErrOutputFailed, outputDir, err)
		}
		log.Info("draft snapshot recorded", "commit", hash)
	}

	log.Info("draft complete", "files", len(paths))
	return paths, nil
}

// ConfigJSON renders the config together with the current outline, as written to the metadata file.
func (a *NovelAgent) ConfigJSON() ([]byte, error) {
	var buf bytes.Buffer
	if err := story.EncodeMetadata(&buf, a.config, a.memory.Outline()); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// removeStaleChapters deletes chapter files numbered above chapterCount, left by an earlier
// run with more chapters.
func removeStaleChapters(dir string, chapterCount int, log *logger.Logger) error {
	matches, err := filepath.Glob(filepath.Join(dir, "chapter-*.txt"))
	if err != nil {
		return fmt.Errorf("%w: list chapters in %s: %w", ErrOutputFailed, dir, err)
	}

	for _, path := range matches {
		name := filepath.Base(path)
		n, err := strconv.Atoi(strings.TrimSuffix(strings.TrimPrefix(name, "chapter-"), ".txt"))
		if err != nil || n <= chapterCount {
			continue
		}
		if err := os.Remove(path); err != nil {
			return fmt.Errorf("%w: remove stale %s: %w", ErrOutputFailed, path, err)
		}
		log.Warn("removed stale chapter", "path", path, "chapter", n)
	}
	return nil
}

// writeFileAtomic writes data to a temp file next to path and renames it into place.
func writeFileAtomic(path string, data []byte) error {
	dir, name := filepath.Split(path)
	if dir == "" {
		dir = "."
	}

	tmp, err := os.CreateTemp(dir, "."+name+".*.tmp")
	if err != nil {
		return fmt.Errorf("%w: create temp for %s: %w", ErrOutputFailed, path, err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("%w: write %s: %w", ErrOutputFailed, path, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("%w: close %s: %w", ErrOutputFailed, path, err)
	}
	if err := os.Chmod(tmpPath, 0o644); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("%w: chmod %s: %w", ErrOutputFailed, path, err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("%w: rename %s: %w", ErrOutputFailed, path, err)
	}
	return nil
}
