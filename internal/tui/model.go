package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/dorjigee198/support-chat/internal/config"
	"github.com/dorjigee198/support-chat/internal/domain"
	"github.com/dorjigee198/support-chat/internal/service"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63"))
	userStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("39"))
	botStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	pendingStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("63"))
	confirmStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("214"))
	helpStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	stampStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// refreshMsg repaints after the session mutated the view from another
// goroutine.
type refreshMsg struct{}

// Refresh is the message the view's notify hook feeds into the program.
func Refresh() tea.Msg { return refreshMsg{} }

// Model is the terminal chat widget: a scrolling conversation log, a
// one-line input field, a spinner while a reply is outstanding, and
// function keys for quick replies.
type Model struct {
	ctx     context.Context
	view    *LogView
	session *service.ChatSession

	input textinput.Model
	spin  spinner.Model
	width int
}

func NewModel(ctx context.Context, view *LogView, session *service.ChatSession) Model {
	ti := textinput.New()
	ti.Placeholder = "Type a message..."
	ti.Prompt = "❯ "
	ti.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = pendingStyle

	return Model{
		ctx:     ctx,
		view:    view,
		session: session,
		input:   ti,
		spin:    sp,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.spin.Tick, func() tea.Msg {
		m.session.Initialize()
		return refreshMsg{}
	})
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.input.Width = msg.Width - 4
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case refreshMsg:
		if m.view.TakeClearRequest() {
			m.input.Reset()
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.view.Confirming() {
		switch msg.String() {
		case "y", "Y", "enter":
			m.view.ResolveConfirm(true)
		case "n", "N", "esc":
			m.view.ResolveConfirm(false)
		}
		return m, nil
	}

	key := msg.String()
	switch key {
	case "ctrl+c", "esc":
		return m, tea.Quit

	case "enter":
		return m, m.submitCmd("")

	case "ctrl+l":
		return m, func() tea.Msg {
			m.session.Clear(m.ctx)
			return refreshMsg{}
		}
	}

	for i := range config.QuickReplies {
		if key == fmt.Sprintf("f%d", i+1) {
			return m, m.submitCmd(config.QuickReplies[i])
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.view.SetInput(m.input.Value())
	return m, cmd
}

// submitCmd runs Submit off the update loop so the network exchange never
// blocks the UI. Empty text makes the session read the input field.
func (m Model) submitCmd(text string) tea.Cmd {
	return func() tea.Msg {
		m.session.Submit(m.ctx, text)
		return refreshMsg{}
	}
}

func (m Model) View() string {
	msgs, pending := m.view.Snapshot()

	var b strings.Builder
	b.WriteString(titleStyle.Render("Dragon Coders Support"))
	b.WriteString("\n\n")

	for _, msg := range msgs {
		b.WriteString(renderMessage(msg))
		b.WriteString("\n")
	}

	if pending {
		b.WriteString(pendingStyle.Render(m.spin.View() + " waiting for reply..."))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if m.view.Confirming() {
		b.WriteString(confirmStyle.Render("Clear the conversation? [y/n]"))
	} else {
		b.WriteString(m.input.View())
		b.WriteString("\n")
		b.WriteString(helpStyle.Render(helpLine()))
	}
	return b.String()
}

func renderMessage(msg domain.Message) string {
	stamp := stampStyle.Render(msg.CreatedAt.Format("15:04") + " ")
	switch msg.Role {
	case domain.RoleUser:
		return stamp + userStyle.Render("you ❯ ") + msg.Text
	case domain.RoleError:
		return stamp + errorStyle.Render(msg.Text)
	default:
		return stamp + botStyle.Render("bot ❯ " + msg.Text)
	}
}

func helpLine() string {
	parts := make([]string, 0, len(config.QuickReplies)+2)
	for i, p := range config.QuickReplies {
		parts = append(parts, fmt.Sprintf("F%d %s", i+1, truncate(p, 20)))
	}
	parts = append(parts, "ctrl+l clear", "esc quit")
	return strings.Join(parts, "  •  ")
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-1]) + "…"
}
