package tui

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quantmind-br/jesse/internal/config"
)

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(t *testing.T, m Model, keys ...string) Model {
	t.Helper()
	for _, k := range keys {
		next, _ := m.Update(key(k))
		var ok bool
		m, ok = next.(Model)
		require.True(t, ok)
	}
	return m
}

func TestModel_SaveWritesConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	cfg := defaultConfig()
	cfg.Pushbullet.APIKey = "o.secret"

	m := press(t, NewModel(Options{Config: cfg, Path: path}), "s")

	assert.Equal(t, stateSaved, m.state)
	assert.Contains(t, m.View(), "Configuration saved to "+path)

	loaded, err := config.LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "o.secret", loaded.Pushbullet.APIKey)
}

func TestModel_SaveEntryAtMenuEnd(t *testing.T) {
	var saved *config.Config
	m := NewModel(Options{Config: defaultConfig(), SaveFunc: func(c *config.Config) error {
		saved = c
		return nil
	}})

	downs := make([]string, len(Categories))
	for i := range downs {
		downs[i] = "down"
	}
	m = press(t, m, downs...)
	assert.Equal(t, len(Categories), m.menuIndex)

	m = press(t, m, "down", "enter")
	assert.Equal(t, stateSaved, m.state)
	require.NotNil(t, saved)
	assert.Equal(t, "Bandit", saved.Pushbullet.DeviceName)
}

func TestModel_SaveError(t *testing.T) {
	m := NewModel(Options{Config: defaultConfig(), SaveFunc: func(*config.Config) error {
		return errors.New("read-only file system")
	}})

	m = press(t, m, "s")
	assert.Equal(t, stateError, m.state)
	assert.Contains(t, m.View(), "read-only file system")
}

func TestModel_OpenAndLeaveForm(t *testing.T) {
	m := press(t, NewModel(Options{Config: defaultConfig(), Path: "unused.yaml"}), "down", "enter")
	assert.Equal(t, stateForm, m.state)
	require.NotNil(t, m.form)

	m = press(t, m, "esc")
	assert.Equal(t, stateMenu, m.state)
	assert.False(t, m.dirty)
}

func TestModel_QuitConfirmsWhenDirty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	m := NewModel(Options{Config: defaultConfig(), Path: path})
	m.dirty = true

	m = press(t, m, "q")
	assert.Equal(t, stateConfirm, m.state)
	assert.Contains(t, m.View(), "unsaved changes")

	m = press(t, m, "c")
	assert.Equal(t, stateMenu, m.state)

	_, cmd := press(t, m, "q").Update(key("n"))
	require.NotNil(t, cmd)
	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}

func TestModel_MenuView(t *testing.T) {
	view := NewModel(Options{Config: defaultConfig(), Path: "/tmp/jesse.yaml"}).View()

	assert.Contains(t, view, "Jesse Configuration")
	assert.Contains(t, view, "/tmp/jesse.yaml")
	for _, name := range GetCategoryNames() {
		assert.Contains(t, view, name)
	}
	assert.Contains(t, view, "Save Configuration")
}
