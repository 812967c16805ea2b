package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestHomeWithEnvVar(t *testing.T) {
	customHome := t.TempDir()
	t.Setenv("LEVELVERIFY_HOME", customHome)

	home, err := HomeWithRoot(t.TempDir())
	if err != nil {
		t.Fatalf("HomeWithRoot() error = %v", err)
	}
	if home != customHome {
		t.Errorf("HomeWithRoot() = %q, want %q (env var should take precedence)", home, customHome)
	}
}

func TestHomeWithRoot(t *testing.T) {
	t.Setenv("LEVELVERIFY_HOME", "")

	root := t.TempDir()
	home, err := HomeWithRoot(root)
	if err != nil {
		t.Fatalf("HomeWithRoot() error = %v", err)
	}

	want := filepath.Join(root, ".levelverify")
	if home != want {
		t.Errorf("HomeWithRoot() = %q, want %q", home, want)
	}
	if _, err := os.Stat(home); os.IsNotExist(err) {
		t.Errorf("Directory not created: %q", home)
	}
}

func TestHomeFindsMarker(t *testing.T) {
	t.Setenv("LEVELVERIFY_HOME", "")

	root := t.TempDir()
	if err := os.WriteFile(filepath.Join(root, ".levelverify-root"), nil, 0644); err != nil {
		t.Fatalf("write marker: %v", err)
	}
	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	t.Chdir(nested)

	home, err := Home()
	if err != nil {
		t.Fatalf("Home() error = %v", err)
	}
	// TempDir may sit behind a symlink (macOS /var), so compare resolved paths.
	got, _ := filepath.EvalSymlinks(home)
	want, _ := filepath.EvalSymlinks(filepath.Join(root, ".levelverify"))
	if got != want {
		t.Errorf("Home() = %q, want %q", got, want)
	}
}

func TestHomeFindsGoMod(t *testing.T) {
	t.Setenv("LEVELVERIFY_HOME", "")

	root := t.TempDir()
	gomod := "module github.com/harrison/levelverify\n\ngo 1.25\n"
	if err := os.WriteFile(filepath.Join(root, "go.mod"), []byte(gomod), 0644); err != nil {
		t.Fatalf("write go.mod: %v", err)
	}
	sub := filepath.Join(root, "internal")
	if err := os.MkdirAll(sub, 0755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	t.Chdir(sub)

	root2, err := findRepoRoot()
	if err != nil {
		t.Fatalf("findRepoRoot() error = %v", err)
	}
	got, _ := filepath.EvalSymlinks(root2)
	want, _ := filepath.EvalSymlinks(root)
	if got != want {
		t.Errorf("findRepoRoot() = %q, want %q", got, want)
	}
}

func TestResolvePath(t *testing.T) {
	envHome := filepath.Join(t.TempDir(), ".levelverify")
	t.Setenv("LEVELVERIFY_HOME", envHome)

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"absolute", "/var/log/lv", "/var/log/lv"},
		{"relative", ".levelverify/logs", filepath.Join(filepath.Dir(envHome), ".levelverify/logs")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ResolvePath(tt.in)
			if err != nil {
				t.Fatalf("ResolvePath() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("ResolvePath(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
