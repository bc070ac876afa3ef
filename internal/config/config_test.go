package config_test

import (
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cgambrell/huelight/internal/config"
	"github.com/cgambrell/huelight/internal/logger"
)

func newSink() *logger.Sink {
	return logger.NewSink(log.NewWithOptions(os.Stderr, log.Options{Level: log.FatalLevel}))
}

// failingFiles fails MkdirAll and records whether a write was ever attempted.
type failingFiles struct {
	wrote bool
}

func (f *failingFiles) ReadFile(path string) ([]byte, error) {
	return nil, os.ErrNotExist
}

func (f *failingFiles) WriteFile(path string, data []byte, perm os.FileMode) error {
	f.wrote = true
	return nil
}

func (f *failingFiles) MkdirAll(path string, perm os.FileMode) error {
	return errors.New("read-only filesystem")
}

func Test_Store_SaveLoadRoundTrip(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/cfg")

	files := config.NewFileAccess(afero.NewMemMapFs())
	sink := newSink()
	store := config.NewStore(files, sink)

	saved := config.BridgeConfig{BridgeIP: "192.168.1.42", Username: "testusername"}
	require.NoError(t, store.Save(saved))

	loaded, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, saved, loaded)

	// the full path and serialized content are narrated on save
	logged := strings.Join(sink.Entries(), "\n")
	assert.Contains(t, logged, "huelightcli")
	assert.Contains(t, logged, "config.json")
	assert.Contains(t, logged, "192.168.1.42")
}

func Test_Store_SaveDirCreateFailure(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/cfg")

	files := &failingFiles{}
	store := config.NewStore(files, newSink())

	err := store.Save(config.BridgeConfig{BridgeIP: "192.168.1.42", Username: "u"})

	assert.ErrorIs(t, err, config.ErrConfigDirCreate)
	// the file must never be written when the directory can't be created
	assert.False(t, files.wrote)
}

func Test_Store_LoadMissingFile(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/cfg")

	store := config.NewStore(config.NewFileAccess(afero.NewMemMapFs()), newSink())

	_, err := store.Load()

	var fileErr *config.FileError
	require.ErrorAs(t, err, &fileErr)
	assert.Contains(t, fileErr.Path, "config.json")
}

func Test_Store_LoadCorruptFile(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/cfg")

	fs := afero.NewMemMapFs()
	store := config.NewStore(config.NewFileAccess(fs), newSink())

	require.NoError(t, fs.MkdirAll("/cfg/huelightcli", 0o755))
	require.NoError(t, afero.WriteFile(fs, "/cfg/huelightcli/config.json", []byte("{not json"), 0o644))

	_, err := store.Load()

	assert.ErrorIs(t, err, config.ErrConfigParse)
}

func Test_BridgeConfig_Complete(t *testing.T) {
	assert.True(t, config.BridgeConfig{BridgeIP: "10.0.0.2", Username: "u"}.Complete())
	assert.False(t, config.BridgeConfig{BridgeIP: "10.0.0.2"}.Complete())
	assert.False(t, config.BridgeConfig{Username: "u"}.Complete())
	assert.False(t, config.BridgeConfig{}.Complete())
}
