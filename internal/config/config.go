package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/cgambrell/huelight/internal/logger"
)

const (
	appDirName     = "huelightcli"
	configFileName = "config.json"
)

var (
	ErrConfigDirNotFound = errors.New("config directory not found")
	ErrConfigDirCreate   = errors.New("failed to create config directory")
	ErrConfigPathInvalid = errors.New("config path was invalid")
	ErrConfigParse       = errors.New("error parsing config file")
)

// FileError wraps a failure reported by the injected file layer, unchanged.
type FileError struct {
	Path string
	Err  error
}

func (e *FileError) Error() string {
	return fmt.Sprintf("file handler error for %s: %v", e.Path, e.Err)
}

func (e *FileError) Unwrap() error { return e.Err }

// BridgeConfig is the sole state that survives between invocations.
type BridgeConfig struct {
	BridgeIP string `json:"bridge_ip"`
	Username string `json:"username"`
}

// Complete reports whether the config is usable by commands beyond setup.
func (c BridgeConfig) Complete() bool {
	return c.BridgeIP != "" && c.Username != ""
}

// FileAccess is the slice of the filesystem the store needs. The store
// never touches the real filesystem directly, so save/load are testable
// without disk access.
type FileAccess interface {
	ReadFile(path string) ([]byte, error)
	WriteFile(path string, data []byte, perm os.FileMode) error
	MkdirAll(path string, perm os.FileMode) error
}

type aferoFileAccess struct {
	fs afero.Fs
}

// NewFileAccess wraps any afero filesystem as a FileAccess.
func NewFileAccess(fs afero.Fs) FileAccess {
	return &aferoFileAccess{fs: fs}
}

// NewOSFileAccess returns a FileAccess over the real filesystem.
func NewOSFileAccess() FileAccess {
	return &aferoFileAccess{fs: afero.NewOsFs()}
}

func (a *aferoFileAccess) ReadFile(path string) ([]byte, error) {
	return afero.ReadFile(a.fs, path)
}

func (a *aferoFileAccess) WriteFile(path string, data []byte, perm os.FileMode) error {
	return afero.WriteFile(a.fs, path, data, perm)
}

func (a *aferoFileAccess) MkdirAll(path string, perm os.FileMode) error {
	return a.fs.MkdirAll(path, perm)
}

// Store persists the bridge config at <user config dir>/huelightcli/config.json.
type Store struct {
	files  FileAccess
	logger *logger.Sink
}

func NewStore(files FileAccess, logger *logger.Sink) *Store {
	return &Store{files: files, logger: logger}
}

func (s *Store) path() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrConfigDirNotFound, err)
	}
	if base == "" {
		return "", ErrConfigPathInvalid
	}
	return filepath.Join(base, appDirName, configFileName), nil
}

// Save writes the config, creating the directory first if absent. The file
// is only touched once serialization and directory creation have succeeded,
// so a config is never partially written.
func (s *Store) Save(cfg BridgeConfig) error {
	path, err := s.path()
	if err != nil {
		return err
	}

	data, err := json.Marshal(cfg)
	if err != nil {
		s.logger.Log(fmt.Sprintf("Failed to serialize config: %v", err))
		return fmt.Errorf("%w: %v", ErrConfigPathInvalid, err)
	}

	if err := s.files.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("%w: %v", ErrConfigDirCreate, err)
	}

	if err := s.files.WriteFile(path, data, 0o644); err != nil {
		return &FileError{Path: path, Err: err}
	}

	s.logger.Log(fmt.Sprintf("Saving config to %s: %s", path, data))
	return nil
}

// Load reads the config back. A missing or unreadable file surfaces as a
// *FileError; a config that parses but has empty fields is for the caller
// to detect via Complete.
func (s *Store) Load() (BridgeConfig, error) {
	path, err := s.path()
	if err != nil {
		return BridgeConfig{}, err
	}

	data, err := s.files.ReadFile(path)
	if err != nil {
		return BridgeConfig{}, &FileError{Path: path, Err: err}
	}

	var cfg BridgeConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return BridgeConfig{}, fmt.Errorf("%w %s: %v", ErrConfigParse, path, err)
	}

	return cfg, nil
}
