// Package tui implements the interactive patch review screen.
package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	glam "github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/patchkit/patchkit/internal/render"
	"github.com/patchkit/patchkit/pkg/patch"
)

// Model drives the review screen: a scrollable viewport over the rendered
// change summary plus an approve/reject prompt.
type Model struct {
	markdown string

	vp     viewport.Model
	width  int
	height int
	ready  bool

	approved bool
	decided  bool

	border lipgloss.Style
	helpSt lipgloss.Style
}

func newModel(markdown string) *Model {
	return &Model{
		markdown: markdown,
		border:   lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1),
		helpSt:   lipgloss.NewStyle().Faint(true),
	}
}

// Approved reports the reviewer's decision once the program has finished.
func (m *Model) Approved() bool {
	return m.decided && m.approved
}

func (m *Model) Init() tea.Cmd {
	return nil
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		contentHeight := msg.Height - 4
		if contentHeight < 3 {
			contentHeight = 3
		}
		if !m.ready {
			m.vp = viewport.New(msg.Width-4, contentHeight)
			m.ready = true
		} else {
			m.vp.Width = msg.Width - 4
			m.vp.Height = contentHeight
		}
		m.vp.SetContent(m.renderMarkdown())
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "y", "Y", "enter":
			m.approved = true
			m.decided = true
			return m, tea.Quit
		case "n", "N", "q", "esc", "ctrl+c":
			m.decided = true
			return m, tea.Quit
		}
	}

	if m.ready {
		var cmd tea.Cmd
		m.vp, cmd = m.vp.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *Model) View() string {
	if !m.ready {
		return "Loading review…"
	}
	help := m.helpSt.Render("y: apply   n: reject   ↑/↓: scroll")
	return m.border.Render(m.vp.View()) + "\n" + help
}

// renderMarkdown runs the summary through glamour, matching the style to the
// terminal background. Falls back to the raw markdown when rendering fails.
func (m *Model) renderMarkdown() string {
	style := "light"
	if termenv.HasDarkBackground() {
		style = "dark"
	}
	width := m.width - 6
	if width < 20 {
		width = 20
	}
	renderer, err := glam.NewTermRenderer(
		glam.WithStandardStyle(style),
		glam.WithWordWrap(width),
	)
	if err != nil {
		return m.markdown
	}
	out, err := renderer.Render(m.markdown)
	if err != nil {
		return m.markdown
	}
	return strings.TrimRight(out, "\n")
}

// Review shows the commit to the user and blocks until a decision is made.
// It reports whether the user approved applying the changes.
func Review(commit *patch.Commit) (bool, error) {
	markdown := render.New().MarkdownSummary(commit)
	model := newModel(markdown)
	program := tea.NewProgram(model, tea.WithAltScreen())
	final, err := program.Run()
	if err != nil {
		return false, err
	}
	if m, ok := final.(*Model); ok {
		return m.Approved(), nil
	}
	return model.Approved(), nil
}
