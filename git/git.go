// Package git records watchlist versions by running the git command.
package git

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/etnz/watchlist"
)

// ErrNothingToCommit is returned by Commit when the tree is clean.
var ErrNothingToCommit = errors.New("nothing to commit")

// Repo is a git working copy.
type Repo struct {
	Root string   // working copy folder, the current one if empty
	Env  []string // extra environment, e.g. GIT_AUTHOR_NAME=...
}

var (
	_ watchlist.VCS          = (*Repo)(nil)
	_ watchlist.DirtyChecker = (*Repo)(nil)
)

// Open returns the Repo at root.
func Open(root string) *Repo { return &Repo{Root: root} }

// run executes git with args in the working copy and returns its combined
// output.
func (r *Repo) run(ctx context.Context, args ...string) (string, error) {
	root := r.Root
	if root == "" {
		root = "."
	}
	cmd := exec.CommandContext(ctx, "git", append([]string{"-C", root}, args...)...)
	if len(r.Env) > 0 {
		cmd.Env = append(cmd.Environ(), r.Env...)
	}
	var out bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &out
	err := cmd.Run()
	return out.String(), err
}

// Add stages path.
func (r *Repo) Add(ctx context.Context, path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("failed to stage file: %w", err)
	}
	if out, err := r.run(ctx, "add", abs); err != nil {
		return fmt.Errorf("failed to stage file %q: %w: %s", path, err, strings.TrimSpace(out))
	}
	return nil
}

// Commit records the staged changes with message.
// It returns an error wrapping ErrNothingToCommit if nothing was staged.
func (r *Repo) Commit(ctx context.Context, message string) error {
	out, err := r.run(ctx, "commit", "-m", message)
	if err == nil {
		return nil
	}
	if strings.Contains(out, "nothing to commit") || strings.Contains(out, "no changes added to commit") {
		return fmt.Errorf("%w: %s", ErrNothingToCommit, strings.TrimSpace(out))
	}
	return fmt.Errorf("failed to commit: %w: %s", err, strings.TrimSpace(out))
}

// Push pushes the current branch to its upstream.
func (r *Repo) Push(ctx context.Context) error {
	if out, err := r.run(ctx, "push"); err != nil {
		return fmt.Errorf("failed to push: %w: %s", err, strings.TrimSpace(out))
	}
	return nil
}

// Dirty reports whether path has changes not yet committed.
func (r *Repo) Dirty(ctx context.Context, path string) (bool, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return false, fmt.Errorf("failed to get status: %w", err)
	}
	out, err := r.run(ctx, "status", "--porcelain", "--", abs)
	if err != nil {
		return false, fmt.Errorf("failed to get status of %q: %w: %s", path, err, strings.TrimSpace(out))
	}
	return strings.TrimSpace(out) != "", nil
}
