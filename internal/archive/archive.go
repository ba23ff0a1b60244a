// Package archive records finished drafting runs as git commits inside the output directory.
// A snapshot is taken only after every chapter and the metadata file are on disk, so the
// presence of a commit marks a run as complete.
package archive

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-git/go-git/v6"
	"github.com/go-git/go-git/v6/plumbing"
	"github.com/go-git/go-git/v6/plumbing/object"
)

const (
	authorName  = "novelist"
	authorEmail = "novelist@localhost"
)

// Entry is one snapshot commit.
type Entry struct {
	Hash      string    `json:"hash"`
	ShortHash string    `json:"short_hash"`
	Subject   string    `json:"subject"`
	Message   string    `json:"message"`
	When      time.Time `json:"when"`
}

// OpenOrInit opens the git repository at dir, creating one if none exists.
func OpenOrInit(dir string) (*git.Repository, error) {
	repo, err := git.PlainOpen(dir)
	if err == nil {
		return repo, nil
	}
	if !errors.Is(err, git.ErrRepositoryNotExists) {
		return nil, fmt.Errorf("failed to open repository: %w", err)
	}

	repo, err = git.PlainInit(dir, false)
	if err != nil {
		return nil, fmt.Errorf("failed to init repository: %w", err)
	}
	return repo, nil
}

// Snapshot stages every file in dir, including removals, and commits it with message. A
// snapshot with no changes is still recorded. Returns the commit hash.
func Snapshot(dir, message string) (string, error) {
	repo, err := OpenOrInit(dir)
	if err != nil {
		return "", err
	}

	wt, err := repo.Worktree()
	if err != nil {
		return "", fmt.Errorf("failed to get worktree: %w", err)
	}

	status, err := wt.Status()
	if err != nil {
		return "", fmt.Errorf("failed to read worktree status: %w", err)
	}
	for path, st := range status {
		if st.Worktree != git.Deleted {
			continue
		}
		if _, err := wt.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("failed to stage removal of %s: %w", path, err)
		}
	}

	if err := wt.AddWithOptions(&git.AddOptions{All: true}); err != nil {
		return "", fmt.Errorf("failed to stage draft: %w", err)
	}

	hash, err := wt.Commit(message, &git.CommitOptions{
		Author: &object.Signature{
			Name:  authorName,
			Email: authorEmail,
			When:  time.Now(),
		},
		AllowEmptyCommits: true,
	})
	if err != nil {
		return "", fmt.Errorf("failed to commit draft: %w", err)
	}

	return hash.String(), nil
}

// History lists snapshot commits in dir, newest first. A directory without a repository or
// without commits has no history.
func History(dir string) ([]Entry, error) {
	repo, err := git.PlainOpen(dir)
	if errors.Is(err, git.ErrRepositoryNotExists) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open repository: %w", err)
	}

	if _, err := repo.Head(); err != nil {
		if errors.Is(err, plumbing.ErrReferenceNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to resolve HEAD: %w", err)
	}

	iter, err := repo.Log(&git.LogOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to read log: %w", err)
	}
	defer iter.Close()

	var entries []Entry
	err = iter.ForEach(func(c *object.Commit) error {
		entries = append(entries, parseEntry(c))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to iterate commits: %w", err)
	}

	return entries, nil
}

func parseEntry(c *object.Commit) Entry {
	hash := c.Hash.String()
	subject, _, _ := strings.Cut(strings.TrimSpace(c.Message), "\n")

	return Entry{
		Hash:      hash,
		ShortHash: hash[:8],
		Subject:   subject,
		Message:   c.Message,
		When:      c.Author.When,
	}
}

// GitSnapshotter records runs with Snapshot.
type GitSnapshotter struct{}

// Snapshot implements the orchestrator's snapshot hook.
func (GitSnapshotter) Snapshot(dir, message string) (string, error) {
	return Snapshot(dir, message)
}
