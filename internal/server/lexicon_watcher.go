package server

import (
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"hirescore/internal/errors"
	"hirescore/internal/lexicon"

	"github.com/fsnotify/fsnotify"
)

// LexiconStore holds the active lexicon behind a lock so request handlers
// always see a fully merged and validated table set. When watching is
// enabled it reloads the override file on change; a reload that fails
// validation keeps the previous lexicon.
type LexiconStore struct {
	mu sync.RWMutex

	path    string
	current *lexicon.Lexicon

	fsWatcher     *fsnotify.Watcher
	debounceTimer *time.Timer
	stopChan      chan struct{}
	running       bool

	logger *errors.Logger
}

// NewLexiconStore loads the lexicon from the given override path (empty for
// built-in defaults) and returns a store around it
func NewLexiconStore(path string, logger *errors.Logger) (*LexiconStore, error) {
	lex, err := lexicon.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load lexicon: %w", err)
	}
	return &LexiconStore{
		path:     path,
		current:  lex,
		stopChan: make(chan struct{}),
		logger:   logger,
	}, nil
}

// Get returns the current lexicon
func (ls *LexiconStore) Get() *lexicon.Lexicon {
	ls.mu.RLock()
	defer ls.mu.RUnlock()
	return ls.current
}

// Reload re-reads the override file and swaps the lexicon in atomically
func (ls *LexiconStore) Reload() error {
	lex, err := lexicon.Load(ls.path)
	if err != nil {
		return fmt.Errorf("failed to reload lexicon: %w", err)
	}

	ls.mu.Lock()
	ls.current = lex
	ls.mu.Unlock()

	if ls.logger != nil {
		ls.logger.Info("Lexicon reloaded", "path", ls.path)
	}
	return nil
}

// Watch starts a file watcher that reloads the lexicon when the override
// file changes. It is an error to call Watch on a store without a path.
func (ls *LexiconStore) Watch() error {
	ls.mu.Lock()
	defer ls.mu.Unlock()

	if ls.path == "" {
		return fmt.Errorf("lexicon watching requires a lexicon path")
	}
	if ls.running {
		return fmt.Errorf("lexicon watcher is already running")
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	ls.fsWatcher = watcher

	if err := watcher.Add(ls.path); err != nil && ls.logger != nil {
		ls.logger.Warn("Failed to watch lexicon file", "file", ls.path, "error", err)
	}
	// Watch the directory too, to catch atomic writes via rename
	if err := watcher.Add(filepath.Dir(ls.path)); err != nil && ls.logger != nil {
		ls.logger.Warn("Failed to watch lexicon directory",
			"directory", filepath.Dir(ls.path), "error", err)
	}

	ls.running = true
	go ls.watchLoop()

	if ls.logger != nil {
		ls.logger.Info("Lexicon file watcher started", "file", ls.path)
	}
	return nil
}

// Stop stops the lexicon file watcher
func (ls *LexiconStore) Stop() error {
	ls.mu.Lock()
	defer ls.mu.Unlock()

	if !ls.running {
		return nil
	}

	close(ls.stopChan)
	if ls.debounceTimer != nil {
		ls.debounceTimer.Stop()
	}
	if err := ls.fsWatcher.Close(); err != nil {
		if ls.logger != nil {
			ls.logger.LogError(err, "Failed to close lexicon file watcher")
		}
		return err
	}

	ls.running = false
	if ls.logger != nil {
		ls.logger.Info("Lexicon file watcher stopped")
	}
	return nil
}

func (ls *LexiconStore) watchLoop() {
	for {
		select {
		case event, ok := <-ls.fsWatcher.Events:
			if !ok {
				return
			}
			if ls.shouldProcessEvent(event) {
				ls.scheduleReload()
			}

		case err, ok := <-ls.fsWatcher.Errors:
			if !ok {
				return
			}
			if ls.logger != nil {
				ls.logger.LogError(err, "Lexicon file watcher error")
			}

		case <-ls.stopChan:
			return
		}
	}
}

func (ls *LexiconStore) shouldProcessEvent(event fsnotify.Event) bool {
	if event.Name != ls.path && filepath.Base(event.Name) != filepath.Base(ls.path) {
		return false
	}
	return event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0
}

func (ls *LexiconStore) scheduleReload() {
	ls.mu.Lock()
	defer ls.mu.Unlock()

	if ls.debounceTimer != nil {
		ls.debounceTimer.Stop()
	}
	ls.debounceTimer = time.AfterFunc(time.Second, func() {
		if err := ls.Reload(); err != nil && ls.logger != nil {
			ls.logger.LogError(err, "Failed to reload lexicon, keeping previous tables")
		}
	})
}
