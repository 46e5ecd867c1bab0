package storage

import (
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/plumbing/storer"

	"github.com/lagsuite/ghosthq/internal/models"
)

// VersionService keeps the projects root under git and records every
// structural mutation as a commit. Commits are best-effort: a failed
// commit is logged and the mutation still succeeds, so the history is a
// convenience, not a ledger.
type VersionService struct {
	dir  string
	mu   sync.Mutex
	repo *gogit.Repository
}

// NewVersionService opens the git repository at rootDir, initializing one
// on first use.
func NewVersionService(rootDir string) (*VersionService, error) {
	repo, err := gogit.PlainOpen(rootDir)
	if err != nil {
		repo, err = gogit.PlainInit(rootDir, false)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize git repo in %s: %w", rootDir, err)
		}
		cfg, err := repo.Config()
		if err != nil {
			return nil, fmt.Errorf("failed to read git config: %w", err)
		}
		cfg.User.Name = "ghosthq"
		cfg.User.Email = "ghosthq@localhost"
		if err := repo.SetConfig(cfg); err != nil {
			return nil, fmt.Errorf("failed to write git config: %w", err)
		}
	}
	return &VersionService{dir: rootDir, repo: repo}, nil
}

// CommitChange stages everything under the root and commits with a message
// describing the mutation. No-op when the worktree is clean. Errors are
// logged, never returned; callers have already applied the mutation.
func (v *VersionService) CommitChange(operation, itemPath string) {
	if v == nil {
		return
	}
	v.mu.Lock()
	defer v.mu.Unlock()

	w, err := v.repo.Worktree()
	if err != nil {
		slog.Error("Failed to get worktree", "err", err)
		return
	}
	if err := w.AddWithOptions(&gogit.AddOptions{All: true}); err != nil {
		slog.Error("Failed to stage changes", "err", err)
		return
	}
	status, err := w.Status()
	if err != nil {
		slog.Error("Failed to get worktree status", "err", err)
		return
	}
	if status.IsClean() {
		return
	}

	msg := fmt.Sprintf("%s %s", operation, itemPath)
	_, err = w.Commit(msg, &gogit.CommitOptions{
		Author: &object.Signature{
			Name:  "ghosthq",
			Email: "ghosthq@localhost",
			When:  time.Now(),
		},
	})
	if err != nil {
		slog.Error("Failed to commit change", "operation", operation, "path", itemPath, "err", err)
		return
	}
	slog.Debug("Committed change", "operation", operation, "path", itemPath)
}

// History returns up to limit commits touching the given root-relative
// path prefix ("" for the whole repository), newest first.
func (v *VersionService) History(relPath string, limit int) ([]*models.Commit, error) {
	if limit <= 0 {
		limit = 20
	}
	v.mu.Lock()
	defer v.mu.Unlock()

	opts := &gogit.LogOptions{}
	if relPath != "" {
		prefix := strings.TrimSuffix(relPath, "/")
		opts.PathFilter = func(p string) bool {
			return p == prefix || strings.HasPrefix(p, prefix+"/")
		}
	}
	iter, err := v.repo.Log(opts)
	if err != nil {
		// An empty repository has no HEAD yet.
		return nil, nil
	}
	defer iter.Close()

	var commits []*models.Commit
	err = iter.ForEach(func(c *object.Commit) error {
		commits = append(commits, &models.Commit{
			Hash:    c.Hash.String(),
			Message: strings.TrimSpace(c.Message),
			Author:  c.Author.Name,
			When:    c.Author.When,
		})
		if len(commits) >= limit {
			return storer.ErrStop
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk history: %w", err)
	}
	return commits, nil
}
