package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"

	"focusclock/internal/core/model"
)

// Store owns the current settings, persists them and notifies subscribers on change.
type Store struct {
	mu        sync.RWMutex
	path      string
	current   model.Settings
	listeners map[int]func(model.Settings)
	nextID    int
	logger    zerolog.Logger
}

// OpenStore loads the settings at path, falling back to defaults when the file is missing.
func OpenStore(path string, logger zerolog.Logger) (*Store, error) {
	settings, err := LoadSettings(path)
	if err != nil {
		return nil, err
	}
	return &Store{
		path:      path,
		current:   settings,
		listeners: map[int]func(model.Settings){},
		logger:    logger.With().Str("component", "settings").Logger(),
	}, nil
}

// Path returns the backing file path.
func (store *Store) Path() string {
	return store.path
}

// Current returns the active settings.
func (store *Store) Current() model.Settings {
	store.mu.RLock()
	defer store.mu.RUnlock()
	return store.current
}

// Subscribe registers listener for settings changes and returns its cancel function.
// Listeners run on the goroutine that applied the change.
func (store *Store) Subscribe(listener func(model.Settings)) func() {
	store.mu.Lock()
	id := store.nextID
	store.nextID++
	store.listeners[id] = listener
	store.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			store.mu.Lock()
			delete(store.listeners, id)
			store.mu.Unlock()
		})
	}
}

// Update validates, persists and publishes settings.
func (store *Store) Update(settings model.Settings) error {
	if err := Validate(settings); err != nil {
		return err
	}
	if err := SaveSettings(store.path, settings); err != nil {
		return err
	}
	store.publish(settings)
	return nil
}

// Reload re-reads the settings file and publishes it when it differs.
// A missing or empty file is ignored so an editor mid-save never resets the settings.
func (store *Store) Reload() error {
	rawData, err := os.ReadFile(store.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("read settings file: %w", err)
	}
	if len(bytes.TrimSpace(rawData)) == 0 {
		store.logger.Debug().Msg("settings file empty, keeping current settings")
		return nil
	}

	settings, err := parseSettings(rawData)
	if err != nil {
		return err
	}
	if err := Validate(settings); err != nil {
		return err
	}
	store.publish(settings)
	return nil
}

// Watch reloads the settings whenever the file changes on disk, until ctx is done.
func (store *Store) Watch(ctx context.Context) error {
	dir := filepath.Dir(store.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create settings watcher: %w", err)
	}
	defer func() {
		_ = watcher.Close()
	}()

	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("watch config directory: %w", err)
	}

	target := filepath.Clean(store.path)
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			if err := store.Reload(); err != nil {
				store.logger.Warn().Err(err).Msg("reload settings")
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			store.logger.Warn().Err(err).Msg("settings watcher")
		}
	}
}

func (store *Store) publish(settings model.Settings) {
	store.mu.Lock()
	if store.current == settings {
		store.mu.Unlock()
		return
	}
	store.current = settings
	ids := make([]int, 0, len(store.listeners))
	for id := range store.listeners {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	listeners := make([]func(model.Settings), 0, len(ids))
	for _, id := range ids {
		listeners = append(listeners, store.listeners[id])
	}
	store.mu.Unlock()

	store.logger.Debug().
		Int("work_minutes", settings.WorkDuration).
		Int("short_break_minutes", settings.ShortBreakDuration).
		Int("long_break_minutes", settings.LongBreakDuration).
		Int("long_break_interval", settings.LongBreakInterval).
		Msg("settings changed")

	for _, listener := range listeners {
		listener(settings)
	}
}
