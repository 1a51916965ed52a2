package datasource

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

const testPayload = `{"config": {"dividers": true}, "data": [{"name": "uptime", "formatted_value": "0:00:10"}]}`

// makeDefaultPayload creates .mvv/payload.json under dir.
func makeDefaultPayload(t *testing.T, dir string) string {
	t.Helper()
	mvvDir := filepath.Join(dir, ".mvv")
	if err := os.MkdirAll(mvvDir, 0o755); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}
	path := filepath.Join(mvvDir, "payload.json")
	if err := os.WriteFile(path, []byte(testPayload), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}

func writeFile(t *testing.T, path, body string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
}

func TestDiscoverExplicit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "p.json")
	writeFile(t, path, testPayload)
	t.Setenv(EnvPayload, "/nonexistent/ignored.json")

	got, err := Discover(path)
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}
	if got != path {
		t.Errorf("Discover(%q) = %q, want %q", path, got, path)
	}
}

func TestDiscoverExplicitMissing(t *testing.T) {
	_, err := Discover("/nonexistent/p.json")
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Discover error = %v, want os.ErrNotExist", err)
	}
}

func TestDiscoverFromEnvVar(t *testing.T) {
	path := filepath.Join(t.TempDir(), "env.json")
	writeFile(t, path, testPayload)
	t.Setenv(EnvPayload, path)

	got, err := Discover("")
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}
	if got != path {
		t.Errorf("Discover() = %q, want %q", got, path)
	}
}

func TestDiscoverEnvVarMissing(t *testing.T) {
	t.Setenv(EnvPayload, "/nonexistent/path/payload.json")

	if _, err := Discover(""); err == nil {
		t.Error("Discover should fail when MVV_PAYLOAD points to nonexistent file")
	}
}

func TestDiscoverFromCWD(t *testing.T) {
	dir := t.TempDir()
	makeDefaultPayload(t, dir)
	t.Setenv(EnvPayload, "")
	t.Chdir(dir)

	path, err := Discover("")
	if err != nil {
		t.Fatalf("Discover from CWD: %v", err)
	}
	if filepath.Base(filepath.Dir(path)) != ".mvv" {
		t.Errorf("expected path in .mvv/, got %q", path)
	}
}

func TestDiscoverFromParentDir(t *testing.T) {
	dir := t.TempDir()
	want := makeDefaultPayload(t, dir)
	child := filepath.Join(dir, "sub", "deep")
	if err := os.MkdirAll(child, 0o755); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}
	t.Setenv(EnvPayload, "")
	t.Chdir(child)

	path, err := Discover("")
	if err != nil {
		t.Fatalf("Discover from child dir: %v", err)
	}
	// Resolve symlinks for comparison (macOS /var -> /private/var).
	gotResolved, _ := filepath.EvalSymlinks(path)
	wantResolved, _ := filepath.EvalSymlinks(want)
	if gotResolved != wantResolved {
		t.Errorf("Discover() = %q, want %q", gotResolved, wantResolved)
	}
}

func TestDiscoverNone(t *testing.T) {
	t.Setenv(EnvPayload, "")
	t.Chdir(t.TempDir())

	_, err := Discover("")
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Discover error = %v, want os.ErrNotExist", err)
	}
}

func TestOpenSuccess(t *testing.T) {
	want := makeDefaultPayload(t, t.TempDir())

	p, path, err := Open(want)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if path != want {
		t.Errorf("Open path = %q, want %q", path, want)
	}
	if len(p.Data) != 1 {
		t.Fatalf("len(Data) = %d, want 1", len(p.Data))
	}
	if got := p.Data[0].FormattedValue; got != "0:00:10" {
		t.Errorf("FormattedValue = %q, want %q", got, "0:00:10")
	}
}

func TestOpenBadJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	writeFile(t, path, `{"data": [`)

	_, got, err := Open(path)
	if err == nil {
		t.Error("Open should fail for truncated JSON")
	}
	if got != path {
		t.Errorf("Open path = %q, want %q", got, path)
	}
}

func TestOpenFail(t *testing.T) {
	if _, _, err := Open("/nonexistent/path/payload.json"); err == nil {
		t.Error("Open should fail for nonexistent path")
	}
}
