package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/quantmind-br/jesse/internal/config"
)

type state int

const (
	stateMenu state = iota
	stateForm
	stateConfirm
	stateSaved
	stateError
)

// Model is the bubbletea model of the configuration editor
type Model struct {
	state      state
	values     *ConfigValues
	path       string
	menuIndex  int
	form       *huh.Form
	err        error
	dirty      bool
	save       func(*config.Config) error
	accessible bool
}

// Options configures the editor. Path is where the file is written when
// SaveFunc is nil.
type Options struct {
	Config     *config.Config
	Path       string
	SaveFunc   func(*config.Config) error
	Accessible bool
}

func NewModel(opts Options) Model {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}
	path := opts.Path
	if path == "" {
		path = config.ConfigFilePath()
	}

	save := opts.SaveFunc
	if save == nil {
		save = func(c *config.Config) error {
			return config.Save(c, path)
		}
	}

	return Model{
		state:      stateMenu,
		values:     FromConfig(cfg),
		path:       path,
		save:       save,
		accessible: opts.Accessible,
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch m.state {
		case stateMenu:
			return m.updateMenu(key)
		case stateConfirm:
			return m.updateConfirm(key)
		case stateSaved, stateError:
			return m, tea.Quit
		case stateForm:
			if key.String() == "esc" {
				m.state = stateMenu
				m.form = nil
				return m, nil
			}
		}
	}

	if m.state == stateForm && m.form != nil {
		return m.updateForm(msg)
	}
	return m, nil
}

func (m Model) updateMenu(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "esc", "ctrl+c":
		if m.dirty {
			m.state = stateConfirm
			return m, nil
		}
		return m, tea.Quit

	case "up", "k":
		if m.menuIndex > 0 {
			m.menuIndex--
		}

	case "down", "j":
		if m.menuIndex < len(Categories) {
			m.menuIndex++
		}

	case "s":
		return m.handleSave()

	case "enter":
		if m.menuIndex == len(Categories) {
			return m.handleSave()
		}
		m.form = GetFormForCategory(Categories[m.menuIndex].ID, m.values)
		if m.accessible {
			m.form = m.form.WithAccessible(true).WithTheme(GetAccessibleTheme())
		}
		m.state = stateForm
		return m, m.form.Init()
	}

	return m, nil
}

func (m Model) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.form.Update(msg)
	if f, ok := next.(*huh.Form); ok {
		m.form = f
	}
	switch m.form.State {
	case huh.StateCompleted:
		m.dirty = true
		m.state = stateMenu
		m.form = nil
		return m, nil
	case huh.StateAborted:
		m.state = stateMenu
		m.form = nil
		return m, nil
	}
	return m, cmd
}

func (m Model) updateConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		return m.handleSave()
	case "n", "N":
		return m, tea.Quit
	case "c", "esc":
		m.state = stateMenu
	}
	return m, nil
}

func (m Model) handleSave() (tea.Model, tea.Cmd) {
	cfg, err := m.values.ToConfig()
	if err == nil {
		err = m.save(cfg)
	}
	if err != nil {
		m.state = stateError
		m.err = err
		return m, nil
	}

	m.state = stateSaved
	m.dirty = false
	return m, nil
}

func (m Model) View() string {
	var s strings.Builder

	s.WriteString(TitleStyle.Render("Jesse Configuration"))
	s.WriteString("\n")
	s.WriteString(DescriptionStyle.Render(m.path))
	s.WriteString("\n\n")

	switch m.state {
	case stateMenu:
		s.WriteString(m.renderMenu())
	case stateForm:
		if m.form != nil {
			s.WriteString(m.form.View())
		}
	case stateConfirm:
		s.WriteString(m.renderConfirm())
	case stateSaved:
		s.WriteString(SuccessStyle.Render("Configuration saved to " + m.path))
		s.WriteString("\n\nPress any key to exit.")
	case stateError:
		s.WriteString(ErrorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
		s.WriteString("\n\nPress any key to exit.")
	}

	return s.String()
}

func (m Model) renderMenu() string {
	var s strings.Builder

	for i, cat := range Categories {
		cursor, style := "  ", UnselectedStyle
		if i == m.menuIndex {
			cursor, style = "> ", SelectedStyle
		}
		s.WriteString(style.Render(cursor + cat.Name))
		if i == m.menuIndex {
			s.WriteString(DescriptionStyle.Render("  " + cat.Description))
		}
		s.WriteString("\n")
	}

	cursor, style := "  ", UnselectedStyle
	if m.menuIndex == len(Categories) {
		cursor, style = "> ", SelectedStyle
	}
	saveText := cursor + "Save Configuration"
	if m.dirty {
		saveText += " *"
	}
	s.WriteString("\n")
	s.WriteString(style.Render(saveText))
	s.WriteString("\n\n")
	s.WriteString(HelpStyle.Render("↑/↓ navigate • enter select • s save • q quit"))

	return s.String()
}

func (m Model) renderConfirm() string {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(warnColor).
		Padding(1, 2).
		Render("You have unsaved changes.\n\nSave before quitting?\n\n[y] Yes  [n] No  [c] Cancel")
}

// Run starts the editor and blocks until it exits
func Run(opts Options) error {
	p := tea.NewProgram(NewModel(opts), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
