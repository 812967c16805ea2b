// Package filelock serialises writes to shared output files such as run
// reports and metrics textfiles, so parallel runs never interleave them.
package filelock

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
)

// DefaultRetry is how often a blocked lock attempt is retried.
const DefaultRetry = 50 * time.Millisecond

// Lock is an exclusive advisory lock held on a sidecar file.
type Lock struct {
	flock *flock.Flock
	path  string
}

// For returns the lock guarding target. The sidecar is target + ".lock".
func For(target string) *Lock {
	path := target + ".lock"
	return &Lock{flock: flock.New(path), path: path}
}

// Path is the sidecar lock file.
func (l *Lock) Path() string {
	return l.path
}

// Acquire blocks until the lock is held or ctx is done.
func (l *Lock) Acquire(ctx context.Context) error {
	if err := os.MkdirAll(filepath.Dir(l.path), 0755); err != nil {
		return fmt.Errorf("failed to create lock directory: %w", err)
	}
	ok, err := l.flock.TryLockContext(ctx, DefaultRetry)
	if err != nil {
		return fmt.Errorf("failed to acquire lock on %s: %w", l.path, err)
	}
	if !ok {
		return fmt.Errorf("failed to acquire lock on %s: %w", l.path, ctx.Err())
	}
	return nil
}

// Release unlocks. The sidecar stays on disk: removing it would let a
// waiter holding the old inode and a newcomer both believe they own the lock.
func (l *Lock) Release() error {
	if err := l.flock.Unlock(); err != nil {
		return fmt.Errorf("failed to release lock on %s: %w", l.path, err)
	}
	return nil
}

// WriteAtomic replaces path with data via a temp file in the same directory,
// so readers see either the old content or the new, never a partial file.
func WriteAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	committed := false
	defer func() {
		if !committed {
			tmp.Close()
			os.Remove(tmpPath)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		return fmt.Errorf("failed to sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Chmod(tmpPath, 0644); err != nil {
		return fmt.Errorf("failed to set permissions: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("failed to rename temp file to %s: %w", path, err)
	}
	committed = true
	return nil
}

// WriteFile holds the lock for path while writing data atomically.
func WriteFile(ctx context.Context, path string, data []byte) error {
	lock := For(path)
	if err := lock.Acquire(ctx); err != nil {
		return err
	}
	writeErr := WriteAtomic(path, data)
	if err := lock.Release(); err != nil && writeErr == nil {
		return err
	}
	return writeErr
}

// AppendFile holds the lock for path while appending data.
// Used for report files that accumulate one record per run.
func AppendFile(ctx context.Context, path string, data []byte) error {
	lock := For(path)
	if err := lock.Acquire(ctx); err != nil {
		return err
	}
	defer lock.Release()

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", path, err)
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		return fmt.Errorf("failed to append to %s: %w", path, err)
	}
	return f.Close()
}
