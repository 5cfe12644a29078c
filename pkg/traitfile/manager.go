package traitfile

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"strata-hq/strata/pkg/trait"
)

// ManagerConfig configures a Manager.
type ManagerConfig struct {
	// Path is the trait file or directory of trait files to load.
	Path string

	// DebounceInterval is the watcher's quiet period. Zero means the
	// watcher default.
	DebounceInterval time.Duration

	// Logger receives load and reload events. Nil means slog.Default.
	Logger *slog.Logger
}

// Manager coordinates trait file loading, registration, and hot-reload.
// A failed reload keeps the previous snapshot serving, so a syntax error
// saved halfway through an edit never takes loaded traits away.
type Manager struct {
	config   *ManagerConfig
	registry *Registry
	logger   *slog.Logger

	mu            sync.RWMutex
	lastLoadTime  time.Time
	lastLoadError error

	watchMu     sync.Mutex
	watcher     *FileWatcher
	watchCancel context.CancelFunc
}

// NewManager creates a manager for the configured path. Call Load to
// populate the registry.
func NewManager(config *ManagerConfig) (*Manager, error) {
	if config == nil || config.Path == "" {
		return nil, fmt.Errorf("trait file path cannot be empty")
	}
	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Manager{
		config:   config,
		registry: NewRegistry(),
		logger:   logger,
	}, nil
}

// Load parses the configured path and atomically replaces the registry
// contents. On failure the previous snapshot stays in place and the error
// is recorded for LastLoad.
func (m *Manager) Load() error {
	set, err := m.parsePath()

	m.mu.Lock()
	m.lastLoadTime = time.Now()
	m.lastLoadError = err
	m.mu.Unlock()

	if err != nil {
		m.logger.Error("trait load failed", "path", m.config.Path, "error", err)
		return err
	}

	m.registry.Replace(set)
	m.logger.Info("traits loaded",
		"path", m.config.Path,
		"count", set.Len(),
		"version", m.registry.Version(),
	)
	return nil
}

// Registry returns the registry backing this manager.
func (m *Manager) Registry() *Registry {
	return m.registry
}

// Get retrieves a loaded expression by name.
func (m *Manager) Get(name string) (trait.Node, bool) {
	return m.registry.Get(name)
}

// LastLoad reports when the last load attempt ran and whether it failed.
func (m *Manager) LastLoad() (time.Time, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.lastLoadTime, m.lastLoadError
}

// StartWatching begins hot-reloading the configured path. The watcher
// runs until the context is cancelled or StopWatching is called.
func (m *Manager) StartWatching(ctx context.Context) error {
	m.watchMu.Lock()
	defer m.watchMu.Unlock()

	if m.watcher != nil {
		return fmt.Errorf("watcher already started")
	}

	cfg := DefaultFileWatcherConfig()
	cfg.Path = m.config.Path
	if m.config.DebounceInterval > 0 {
		cfg.DebounceInterval = m.config.DebounceInterval
	}

	watcher, err := NewFileWatcher(cfg, m.logger)
	if err != nil {
		return err
	}

	watchCtx, cancel := context.WithCancel(ctx)
	m.watcher = watcher
	m.watchCancel = cancel

	go func() {
		if err := watcher.Watch(watchCtx, m.Load); err != nil {
			m.logger.Error("trait file watcher exited", "error", err)
		}
	}()
	return nil
}

// StopWatching stops the hot-reload watcher. Safe to call when no watcher
// is running.
func (m *Manager) StopWatching() error {
	m.watchMu.Lock()
	defer m.watchMu.Unlock()

	if m.watcher == nil {
		return nil
	}

	m.watchCancel()
	err := m.watcher.Stop()
	m.watcher = nil
	m.watchCancel = nil
	return err
}

// parsePath loads the configured file, or every trait file in the
// configured directory merged into one set.
func (m *Manager) parsePath() (*Set, error) {
	info, err := os.Stat(m.config.Path)
	if err != nil {
		el := NewErrorList()
		el.AddError(ErrorTypeIO, fmt.Sprintf("cannot stat trait path: %v", err), m.config.Path, "")
		return nil, el
	}

	if !info.IsDir() {
		return ParseFile(m.config.Path)
	}

	files, err := traitFiles(m.config.Path)
	if err != nil {
		el := NewErrorList()
		el.AddError(ErrorTypeIO, fmt.Sprintf("cannot list trait directory: %v", err), m.config.Path, "")
		return nil, el
	}
	if len(files) == 0 {
		el := NewErrorList()
		el.AddError(ErrorTypeIO, "no trait files found", m.config.Path, "")
		return nil, el
	}

	errs := NewErrorList()
	merged := &Set{exprs: make(map[string]trait.Node)}
	for _, file := range files {
		set, err := ParseFile(file)
		if err != nil {
			if el, ok := err.(*ErrorList); ok {
				errs.Errors = append(errs.Errors, el.Errors...)
			} else {
				errs.AddError(ErrorTypeIO, err.Error(), file, "")
			}
			continue
		}
		for _, name := range set.Names() {
			if _, exists := merged.exprs[name]; exists {
				errs.AddError(ErrorTypeStructural,
					fmt.Sprintf("name %q already declared in another file", name), file, "")
				continue
			}
			n, _ := set.Get(name)
			merged.add(name, n)
		}
	}

	if errs.HasErrors() {
		return nil, errs
	}
	return merged, nil
}

// traitFiles lists YAML files directly inside dir, sorted for a
// deterministic merge order.
func traitFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		ext := strings.ToLower(filepath.Ext(entry.Name()))
		if ext == ".yaml" || ext == ".yml" {
			files = append(files, filepath.Join(dir, entry.Name()))
		}
	}
	sort.Strings(files)
	return files, nil
}
