// Package publish uploads a finished draft directory to GitHub as a gist.
package publish

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/Yates-Labs/novelist/internal/orchestrator"
	"github.com/Yates-Labs/novelist/internal/story"
	"github.com/google/go-github/v77/github"
)

var (
	ErrIncompleteDraft = errors.New("incomplete draft")
)

// DraftFile is one file of a draft directory.
type DraftFile struct {
	Name    string
	Content string
}

// Draft is a finished draft read back from disk.
type Draft struct {
	Config story.StoryConfig
	Files  []DraftFile
}

// GistOptions controls how a draft is published.
type GistOptions struct {
	// Public makes the gist listed; drafts are secret by default
	Public bool

	// Description overrides the default "<title> (N chapters)"
	Description string
}

// NewClient creates a GitHub API client with authentication
func NewClient(token string) *github.Client {
	return github.NewClient(nil).WithAuthToken(token)
}

// CollectDraft reads chapters 1..chapter_count of dir in order followed by the metadata file.
// A draft whose metadata is missing or invalid, or whose chapter files do not match the
// metadata's chapter_count, is incomplete.
func CollectDraft(dir string) (*Draft, error) {
	metadataPath := filepath.Join(dir, orchestrator.MetadataFile)
	metadata, err := os.ReadFile(metadataPath)
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %w", ErrIncompleteDraft, metadataPath, err)
	}
	cfg, _, err := story.ParseConfig(metadata)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrIncompleteDraft, metadataPath, err)
	}

	matches, err := filepath.Glob(filepath.Join(dir, "chapter-*.txt"))
	if err != nil {
		return nil, fmt.Errorf("failed to list chapters: %w", err)
	}
	if len(matches) != cfg.ChapterCount {
		return nil, fmt.Errorf("%w: %s has %d chapter files but chapter_count is %d", ErrIncompleteDraft, dir, len(matches), cfg.ChapterCount)
	}

	draft := &Draft{Config: cfg}
	for i := 1; i <= cfg.ChapterCount; i++ {
		name := orchestrator.ChapterFile(i)
		content, err := os.ReadFile(filepath.Join(dir, name))
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: missing %s", ErrIncompleteDraft, name)
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", name, err)
		}
		draft.Files = append(draft.Files, DraftFile{
			Name:    name,
			Content: string(content),
		})
	}
	draft.Files = append(draft.Files, DraftFile{
		Name:    orchestrator.MetadataFile,
		Content: string(metadata),
	})

	return draft, nil
}

// Chapters returns the number of chapter files in the draft.
func (d *Draft) Chapters() int {
	return len(d.Files) - 1
}

// Gist uploads the draft in dir as a single gist and returns its HTML URL.
func Gist(ctx context.Context, client *github.Client, dir string, opts GistOptions) (string, error) {
	draft, err := CollectDraft(dir)
	if err != nil {
		return "", err
	}

	description := opts.Description
	if description == "" {
		description = fmt.Sprintf("%s (%d chapters)", draft.Config.Title, draft.Chapters())
	}

	files := make(map[github.GistFilename]github.GistFile, len(draft.Files))
	for _, f := range draft.Files {
		files[github.GistFilename(f.Name)] = github.GistFile{
			Filename: github.Ptr(f.Name),
			Content:  github.Ptr(f.Content),
		}
	}

	gist, _, err := client.Gists.Create(ctx, &github.Gist{
		Description: github.Ptr(description),
		Public:      github.Ptr(opts.Public),
		Files:       files,
	})
	if err != nil {
		return "", fmt.Errorf("failed to create gist: %w", err)
	}

	return gist.GetHTMLURL(), nil
}
