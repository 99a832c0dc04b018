package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"sync"

	"mimic/pkg/logging"

	"github.com/fsnotify/fsnotify"
)

// Store is a mutex-guarded wrapper around a simulator's state struct — the
// in-memory "DB" every simulator reads and mutates. The zero value is not
// usable; construct with New.
//
// Persistence is wholesale: SaveState serializes the entire state to one JSON
// file and LoadState replaces the entire state from one. There are no
// incremental writes and no transactional semantics. Concurrent tool calls
// are serialized by the store mutex, nothing more.
type Store[T any] struct {
	mu    sync.RWMutex
	state *T
	seed  func() *T
}

// New creates a Store seeded by the given factory. The factory is invoked
// immediately for the initial state and again on every Reset.
func New[T any](seed func() *T) *Store[T] {
	return &Store[T]{
		state: seed(),
		seed:  seed,
	}
}

// View runs fn with read access to the state. The state must not be mutated
// and references to it must not escape fn.
func (s *Store[T]) View(fn func(*T) error) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return fn(s.state)
}

// Update runs fn with exclusive write access to the state.
func (s *Store[T]) Update(fn func(*T) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(s.state)
}

// Reset restores the seed state, discarding all mutations.
func (s *Store[T]) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = s.seed()
}

// SaveState dumps the entire state as indented JSON to path, creating parent
// directories as needed.
func (s *Store[T]) SaveState(path string) error {
	s.mu.RLock()
	data, err := json.MarshalIndent(s.state, "", "  ")
	s.mu.RUnlock()
	if err != nil {
		return fmt.Errorf("marshaling state: %w", err)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating state directory: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing state file: %w", err)
	}
	return nil
}

// LoadState replaces the entire state from the JSON file at path. The file
// is decoded into a zero state, not a seed copy: json.Unmarshal merges keys
// into pre-populated maps, and decoding over the seed would resurrect
// entries deleted before the save.
func (s *Store[T]) LoadState(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading state file: %w", err)
	}

	next := new(T)
	if err := json.Unmarshal(data, next); err != nil {
		return fmt.Errorf("decoding state file %s: %w", path, err)
	}

	s.mu.Lock()
	s.state = next
	s.mu.Unlock()
	return nil
}

// Watch reloads the state whenever the file at path is rewritten on disk.
// It blocks until ctx is cancelled. The parent directory is watched rather
// than the file itself so that editors replacing the file atomically still
// trigger a reload.
func (s *Store[T]) Watch(ctx context.Context, path string) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating state watcher: %w", err)
	}
	defer watcher.Close()

	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("resolving state path: %w", err)
	}
	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		return fmt.Errorf("watching state directory: %w", err)
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != abs {
				continue
			}
			if !event.Op.Has(fsnotify.Write) && !event.Op.Has(fsnotify.Create) {
				continue
			}
			if err := s.LoadState(abs); err != nil {
				logging.Warn("Store", "ignoring unreadable state file %s: %v", abs, err)
				continue
			}
			logging.Info("Store", "reloaded state from %s", abs)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logging.Error("Store", err, "state watcher error for %s", abs)
		}
	}
}

// NextCounter increments and returns the sequential counter stored under key.
// Counters start at 1. The caller must hold the store's write lock (i.e. call
// this inside Update).
func NextCounter(counters map[string]int, key string) int {
	counters[key]++
	return counters[key]
}
