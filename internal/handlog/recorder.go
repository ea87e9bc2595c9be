package handlog

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/rs/zerolog"
)

// Recorder writes each hand to <dir>/<hand id>.toml. Files appear
// atomically so a reader never sees a half written hand.
type Recorder struct {
	dir    string
	logger zerolog.Logger

	mu      sync.Mutex
	written int
}

// NewRecorder creates dir if needed.
func NewRecorder(dir string, logger zerolog.Logger) (*Recorder, error) {
	if dir == "" {
		return nil, fmt.Errorf("handlog: directory is required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("handlog: creating %s: %w", dir, err)
	}
	return &Recorder{
		dir:    dir,
		logger: logger.With().Str("component", "handlog").Logger(),
	}, nil
}

// Write stores one hand and returns the file path.
func (r *Recorder) Write(hand *HandHistory) (string, error) {
	if hand.HandID == "" {
		return "", fmt.Errorf("handlog: hand id is required")
	}
	data, err := EncodeToBytes(hand)
	if err != nil {
		return "", err
	}

	path := filepath.Join(r.dir, hand.HandID+".toml")
	if err := writeFileAtomic(path, data, 0o644); err != nil {
		return "", err
	}

	r.mu.Lock()
	r.written++
	r.mu.Unlock()

	r.logger.Debug().Str("hand", hand.HandID).Str("path", path).Msg("Wrote hand history")
	return path, nil
}

// Written returns how many hands have been stored.
func (r *Recorder) Written() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.written
}

// writeFileAtomic writes to a temp file in the same directory, syncs it and
// renames it over path.
func writeFileAtomic(path string, data []byte, perm os.FileMode) (err error) {
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp.*")
	if err != nil {
		return fmt.Errorf("handlog: creating temp file: %w", err)
	}
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		return fmt.Errorf("handlog: writing temp file: %w", err)
	}
	if err = tmp.Sync(); err != nil {
		return fmt.Errorf("handlog: syncing temp file: %w", err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("handlog: closing temp file: %w", err)
	}
	if err = os.Chmod(tmp.Name(), perm); err != nil {
		return fmt.Errorf("handlog: setting permissions: %w", err)
	}
	if err = os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("handlog: renaming temp file: %w", err)
	}
	return nil
}
