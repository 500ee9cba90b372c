// Package staging manages per-run workspaces under the staging root.
//
// Every pipeline run gets a uuid-named workspace directory that is removed on
// every exit path, success or failure. SweepStale reclaims workspaces left
// behind by crashed runs; the sweep takes a file lock on the staging root so
// concurrent invocations do not remove each other's live workspaces while
// racing through the same sweep.
package staging

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"

	"captionburn/internal/logging"
)

const workspacePrefix = "burn-"

// Workspace is one run's scratch directory.
type Workspace struct {
	ID  string
	Dir string
}

// NewWorkspace creates a fresh run workspace under root.
func NewWorkspace(root string) (*Workspace, error) {
	root = strings.TrimSpace(root)
	if root == "" {
		return nil, fmt.Errorf("staging root is required")
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("create staging root: %w", err)
	}

	id := uuid.NewString()
	dir := filepath.Join(root, workspacePrefix+id)
	if err := os.Mkdir(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create workspace: %w", err)
	}
	return &Workspace{ID: id, Dir: dir}, nil
}

// Remove deletes the workspace and everything in it.
func (w *Workspace) Remove() error {
	if w == nil || w.Dir == "" {
		return nil
	}
	return os.RemoveAll(w.Dir)
}

// SweepStale removes leftover run workspaces older than maxAge. It returns
// the removed paths. When another process holds the sweep lock the sweep is
// skipped silently; the other run will have done the same work.
func SweepStale(root string, maxAge time.Duration, logger *slog.Logger) []string {
	root = strings.TrimSpace(root)
	if root == "" || maxAge <= 0 {
		return nil
	}

	lock := flock.New(filepath.Join(root, ".sweep.lock"))
	held, err := lock.TryLock()
	if err != nil || !held {
		return nil
	}
	defer func() { _ = lock.Unlock() }()

	entries, err := os.ReadDir(root)
	if err != nil {
		return nil
	}

	cutoff := time.Now().Add(-maxAge)
	var removed []string
	for _, entry := range entries {
		if !entry.IsDir() || !strings.HasPrefix(entry.Name(), workspacePrefix) {
			continue
		}
		info, err := entry.Info()
		if err != nil || !info.ModTime().Before(cutoff) {
			continue
		}
		dirPath := filepath.Join(root, entry.Name())
		if err := os.RemoveAll(dirPath); err != nil {
			if logger != nil {
				logger.Warn("failed to remove stale workspace",
					logging.String("path", dirPath),
					logging.Error(err),
				)
			}
			continue
		}
		removed = append(removed, dirPath)
		if logger != nil {
			logger.Info("removed stale workspace",
				logging.String("path", dirPath),
				logging.Duration("age", time.Since(info.ModTime())),
			)
		}
	}
	return removed
}
