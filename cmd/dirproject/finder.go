package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/hayeah/dirproject/fzf"
	"github.com/hayeah/dirproject/mirror"
	"github.com/hayeah/dirproject/project"
	"github.com/hayeah/dirproject/search"
)

// ExitState indicates how the finder is exiting
type ExitState int

const (
	ExitStateNone    ExitState = iota // Not exiting
	ExitStateAbort                    // Closed without choosing (Esc on an empty query, Ctrl+C)
	ExitStateConfirm                  // A file was chosen (Enter)
)

// dirChangedMsg is sent after a watched directory was reconciled.
type dirChangedMsg struct {
	result mirror.Result
}

// row is one visible file, copied out of the session.
type row struct {
	path string
	rel  string
}

// finder is the Bubble Tea model of the find dialog.
type finder struct {
	project *project.Project

	textInput textinput.Model
	query     string

	rows     []row
	cursor   int // index into rows, -1 when nothing is selected
	visible  int
	total    int
	mode     fzf.Mode
	chosen   string
	lastSync string

	exitState ExitState

	viewport viewport.Model
	ready    bool
}

var cursorStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))

func newFinder(p *project.Project) finder {
	ti := textinput.New()
	ti.Placeholder = "Type to search..."
	ti.Prompt = "> "
	ti.CharLimit = 0
	ti.Focus()

	m := finder{
		project:   p,
		textInput: ti,
		viewport:  viewport.New(0, 0),
	}
	p.WithSession(func(s *search.Session) {
		s.OnQueryCleared()
		m.snapshot(s)
	})
	return m
}

// runFinder shows the finder until a file is chosen or the dialog is closed.
// Reconciles keep flowing into the list while it is open.
func runFinder(app *Live) (string, error) {
	m := newFinder(app.Project)

	// Output the TUI to stderr so the chosen path can be piped from stdout
	program := tea.NewProgram(m, tea.WithOutput(os.Stderr))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() {
		_ = app.Watcher.Run(ctx, func(dir string) {
			res, err := app.Project.OnDirectoryChanged(dir)
			if err != nil {
				logReconcileError(app, dir, err)
				return
			}
			if !res.Empty() {
				program.Send(dirChangedMsg{result: res})
			}
		})
	}()

	finalModel, err := program.Run()
	if err != nil {
		return "", err
	}
	final, ok := finalModel.(finder)
	if !ok {
		return "", fmt.Errorf("could not get final model state")
	}
	if final.exitState != ExitStateConfirm {
		return "", nil
	}
	return final.chosen, nil
}

func (m finder) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, tea.EnterAltScreen)
}

func (m finder) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.exitState != ExitStateNone {
		return m, tea.Quit
	}

	var (
		cmd  tea.Cmd
		cmds []tea.Cmd
	)

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		headerHeight := lipgloss.Height(m.textInput.View()) + 1 // input + blank line
		footerHeight := 2
		m.viewport.Width = msg.Width
		m.viewport.Height = max(msg.Height-headerHeight-footerHeight, 1)
		m.viewport.YPosition = headerHeight
		m.ready = true
		m.updateViewportContent()

	case dirChangedMsg:
		m.lastSync = fmt.Sprintf("+%d -%d in %s", len(msg.result.Added), len(msg.result.Removed), m.relPath(msg.result.Path))
		m.withSession(func(*search.Session) {})
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			m.exitState = ExitStateAbort
			return m, tea.Quit

		case "esc":
			if m.query == "" {
				m.exitState = ExitStateAbort
				return m, tea.Quit
			}
			m.textInput.SetValue("")
			m.query = ""
			m.withSession(func(s *search.Session) { s.OnQueryCleared() })
			return m, nil

		case "enter":
			if m.cursor < 0 {
				return m, nil
			}
			m.chosen = m.rows[m.cursor].path
			m.exitState = ExitStateConfirm
			return m, tea.Quit

		case "up":
			m.withSession(func(s *search.Session) { s.SelectPrevious() })
			return m, nil

		case "down":
			m.withSession(func(s *search.Session) { s.SelectNext() })
			return m, nil

		case "home":
			m.withSession(func(s *search.Session) { s.SelectFirstVisible() })
			return m, nil

		case "end":
			m.withSession(func(s *search.Session) { s.SelectLastVisible() })
			return m, nil

		case "pgup":
			m.viewport.HalfViewUp()
			return m, nil

		case "pgdown":
			m.viewport.HalfViewDown()
			return m, nil
		}
	}

	m.textInput, cmd = m.textInput.Update(msg)
	cmds = append(cmds, cmd)

	if q := m.textInput.Value(); q != m.query {
		m.query = q
		m.withSession(func(s *search.Session) {
			if q == "" {
				s.OnQueryCleared()
			} else {
				s.OnQueryChanged(q)
			}
		})
	}

	m.viewport, cmd = m.viewport.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

// withSession runs fn on the locked session and refreshes the visible rows.
func (m *finder) withSession(fn func(s *search.Session)) {
	m.project.WithSession(func(s *search.Session) {
		fn(s)
		m.snapshot(s)
	})
	m.updateViewportContent()
	m.ensureCursorVisible()
}

func (m *finder) snapshot(s *search.Session) {
	selected := s.SelectedIndex()
	m.visible, m.total = s.Counts()
	m.mode = s.Mode()
	m.rows = make([]row, 0, m.visible)
	m.cursor = -1
	for i, n := range s.Entries() {
		if !n.Visible {
			continue
		}
		if i == selected {
			m.cursor = len(m.rows)
		}
		m.rows = append(m.rows, row{path: n.FullPath, rel: m.relPath(n.FullPath)})
	}
}

func (m finder) relPath(path string) string {
	if rel, err := filepath.Rel(m.project.Root(), path); err == nil {
		return rel
	}
	return path
}

func (m finder) View() string {
	if !m.ready {
		return "Initializing..."
	}

	headerView := m.textInput.View() + "\n"
	listView := m.viewport.View()

	statusLine := fmt.Sprintf("%d/%d files, %s search", m.visible, m.total, m.mode)
	if m.lastSync != "" {
		statusLine += ", synced " + m.lastSync
	}
	usageHint := "(↑/↓ to navigate, Enter to choose, Esc to clear or close)"
	footerView := fmt.Sprintf("\n%s\n%s", statusLine, usageHint)

	return headerView + listView + footerView
}

func (m *finder) updateViewportContent() {
	var sb strings.Builder
	for i, r := range m.rows {
		line := "  " + r.rel
		if i == m.cursor {
			line = cursorStyle.Render("> " + r.rel)
		}
		sb.WriteString(line + "\n")
	}
	m.viewport.SetContent(sb.String())
}

func (m *finder) ensureCursorVisible() {
	if m.cursor < 0 || m.viewport.Height <= 0 {
		return
	}
	top := m.viewport.YOffset
	bottom := m.viewport.YOffset + m.viewport.Height - 1
	if m.cursor < top {
		m.viewport.SetYOffset(m.cursor)
	} else if m.cursor > bottom {
		m.viewport.SetYOffset(m.cursor - m.viewport.Height + 1)
	}
}
