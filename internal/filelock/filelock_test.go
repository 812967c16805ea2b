package filelock

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gofrs/flock"
)

func TestForUsesSidecar(t *testing.T) {
	lock := For("/tmp/report.txt")
	if lock.Path() != "/tmp/report.txt.lock" {
		t.Errorf("Path() = %q, want sidecar", lock.Path())
	}
}

func TestAcquireRelease(t *testing.T) {
	target := filepath.Join(t.TempDir(), "report.txt")
	lock := For(target)

	if err := lock.Acquire(context.Background()); err != nil {
		t.Fatalf("Acquire() error = %v", err)
	}
	if _, err := os.Stat(lock.Path()); err != nil {
		t.Errorf("lock file should exist while held: %v", err)
	}
	if err := lock.Release(); err != nil {
		t.Fatalf("Release() error = %v", err)
	}
	if err := lock.Acquire(context.Background()); err != nil {
		t.Fatalf("re-Acquire() error = %v", err)
	}
	lock.Release()
}

func TestAcquireRespectsContext(t *testing.T) {
	target := filepath.Join(t.TempDir(), "report.txt")

	holder := flock.New(target + ".lock")
	if err := holder.Lock(); err != nil {
		t.Fatalf("holder lock: %v", err)
	}
	defer holder.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), 150*time.Millisecond)
	defer cancel()

	start := time.Now()
	err := For(target).Acquire(ctx)
	if err == nil {
		t.Fatal("Acquire() should fail while another holder has the lock")
	}
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("Acquire() error = %v, want deadline exceeded", err)
	}
	if time.Since(start) > 2*time.Second {
		t.Errorf("Acquire() took too long to give up")
	}
}

func TestWriteAtomic(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "metrics.prom")

	if err := WriteAtomic(path, []byte("first")); err != nil {
		t.Fatalf("WriteAtomic() error = %v", err)
	}
	if err := WriteAtomic(path, []byte("second")); err != nil {
		t.Fatalf("WriteAtomic() overwrite error = %v", err)
	}

	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(got) != "second" {
		t.Errorf("content = %q, want %q", got, "second")
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if info.Mode().Perm() != 0644 {
		t.Errorf("mode = %v, want 0644", info.Mode().Perm())
	}

	entries, _ := os.ReadDir(filepath.Dir(path))
	if len(entries) != 1 {
		t.Errorf("temp files left behind: %d entries", len(entries))
	}
}

func TestWriteFileConcurrent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.txt")

	var wg sync.WaitGroup
	errs := make(chan error, 8)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			payload := strings.Repeat(fmt.Sprintf("%d", i), 512)
			errs <- WriteFile(context.Background(), path, []byte(payload))
		}(i)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		if err != nil {
			t.Errorf("WriteFile() error = %v", err)
		}
	}

	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(got) != 512 || strings.Trim(string(got), string(got[0])) != "" {
		t.Errorf("final content should be one writer's full payload, got %d bytes", len(got))
	}
}

func TestAppendFileConcurrent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "runs.log")

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			if err := AppendFile(context.Background(), path, []byte(fmt.Sprintf("run %d\n", i))); err != nil {
				t.Errorf("AppendFile() error = %v", err)
			}
		}(i)
	}
	wg.Wait()

	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(got)), "\n")
	if len(lines) != 10 {
		t.Errorf("got %d lines, want 10", len(lines))
	}
}
