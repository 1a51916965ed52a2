// Package datasource discovers the host payload file and loads it.
package datasource

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/daviddao/multivalue_viewer/internal/payload"
)

const (
	// EnvPayload overrides discovery.
	EnvPayload = "MVV_PAYLOAD"

	defaultPayload = ".mvv/payload.json"
)

// Discover finds the payload path.
// Priority: explicit path > MVV_PAYLOAD env var > .mvv/payload.json in CWD > walk up parents.
func Discover(explicit string) (string, error) {
	if explicit != "" {
		return existing(explicit, "payload")
	}
	if env := os.Getenv(EnvPayload); env != "" {
		return existing(env, EnvPayload)
	}

	dir, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("get working directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, defaultPayload)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return "", fmt.Errorf("no payload found (looked for %s): %w", defaultPayload, os.ErrNotExist)
}

func existing(path, what string) (string, error) {
	if _, err := os.Stat(path); err != nil {
		return "", fmt.Errorf("%s=%q: %w", what, path, os.ErrNotExist)
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %s: %w", path, err)
	}
	return abs, nil
}

// Open discovers and loads the payload.
func Open(explicit string) (*payload.Payload, string, error) {
	path, err := Discover(explicit)
	if err != nil {
		return nil, "", err
	}
	p, err := payload.Load(path)
	if err != nil {
		return nil, path, err
	}
	return p, path, nil
}
