package config

import (
	"os"
	"path/filepath"
	"sync"

	json "github.com/goccy/go-json"
	"go.uber.org/zap"
)

const (
	dirName  = "worksentry"
	fileName = "config.json"
)

// Dir returns the platform config directory this package writes to,
// honoring os.UserConfigDir's platform convention.
func Dir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, dirName), nil
}

// Path returns the full path to the configuration document.
func Path() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, fileName), nil
}

// Manager holds the in-memory copy of the configuration document behind
// a single-writer, many-reader lock; readers observe a point-in-time
// copy. It does not itself trigger index/browser/watcher side effects —
// that wiring belongs to core, which owns those subsystems; Manager
// only owns the document and its durability.
type Manager struct {
	mu   sync.RWMutex
	path string
	cfg  Config
	log  *zap.Logger
}

// Open loads the configuration document at path, or writes and returns
// a default document if the file is missing or malformed. path is
// typically the result of Path().
func Open(path string, log *zap.Logger) (*Manager, error) {
	if log == nil {
		log = zap.NewNop()
	}
	m := &Manager{path: path, log: log.Named("config")}

	raw, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
		m.cfg = Default()
		if werr := m.writeLocked(m.cfg); werr != nil {
			return nil, werr
		}
		return m, nil
	case err != nil:
		return nil, err
	}

	var cfg Config
	if uerr := json.Unmarshal(raw, &cfg); uerr != nil {
		m.log.Warn("configuration file is malformed, recovering with defaults", zap.Error(uerr))
		m.cfg = Default()
		if werr := m.writeLocked(m.cfg); werr != nil {
			return nil, werr
		}
		return m, nil
	}

	m.cfg = cfg.withDefaults()
	return m, nil
}

// Get returns a copy of the current configuration.
func (m *Manager) Get() Config {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.cfg
}

// Save replaces the stored configuration with cfg and persists it
// atomically. Callers that need to react to a field changing (browser
// toggles, added/removed roots) compare the previous value, returned
// here, against cfg before calling Save.
func (m *Manager) Save(cfg Config) (previous Config, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	previous = m.cfg
	cfg = cfg.withDefaults()
	if err := m.writeLocked(cfg); err != nil {
		return previous, err
	}
	m.cfg = cfg
	return previous, nil
}

// writeLocked serializes cfg to a temp file in the same directory, then
// renames it over the target — the same discipline indexstore.Compact
// uses for the index log, applied here to a much smaller document.
func (m *Manager) writeLocked(cfg Config) error {
	dir := filepath.Dir(m.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, fileName+".tmp-*")
	if err != nil {
		return err
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}

	return os.Rename(tmpPath, m.path)
}
