// ABOUTME: Start menu for the TUI
// ABOUTME: Lets the user start the quoting wizard or quit

package menu

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/beyondskool/pricing-wizard/cli/internal/tui/icons"
	"github.com/beyondskool/pricing-wizard/cli/internal/tui/styles"
)

// Action is a menu entry the user can pick
type Action int

const (
	ActionNewQuote Action = iota
	ActionQuit
)

// ActionSelectedMsg is sent when the user confirms a menu entry
type ActionSelectedMsg struct {
	Action Action
}

// CancelledMsg is sent when the user backs out of the menu
type CancelledMsg struct{}

type option struct {
	label  string
	icon   icons.Icon
	action Action
}

// Menu is the start screen model
type Menu struct {
	options        []option
	cursor         int
	mailConfigured bool
}

// New creates the start menu. mailConfigured controls the hint shown
// about agreement emailing.
func New(mailConfigured bool) *Menu {
	return &Menu{
		options: []option{
			{label: "New pricing quote", icon: icons.Wizard, action: ActionNewQuote},
			{label: "Quit", icon: icons.Quit, action: ActionQuit},
		},
		mailConfigured: mailConfigured,
	}
}

// Update implements tea.Model
func (m *Menu) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch keyMsg.String() {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.options)-1 {
			m.cursor++
		}
	case "enter":
		action := m.options[m.cursor].action
		return m, func() tea.Msg { return ActionSelectedMsg{Action: action} }
	case "q", "esc":
		return m, func() tea.Msg { return CancelledMsg{} }
	}

	return m, nil
}

// Init implements tea.Model
func (m *Menu) Init() tea.Cmd {
	return nil
}

// View implements tea.Model
func (m *Menu) View() string {
	var sb strings.Builder

	sb.WriteString(styles.Title.Render(icons.School.String() + " School Program Pricing"))
	sb.WriteString("\n")
	sb.WriteString(styles.Subtitle.Render("Build a quote, confirm it, and deliver the agreement"))
	sb.WriteString("\n\n")

	for i, opt := range m.options {
		line := fmt.Sprintf("  %s %s", opt.icon.String(), opt.label)
		if i == m.cursor {
			line = styles.KeyStyle.Render("> ") + styles.ValueStyle.Render(opt.icon.String()+" "+opt.label)
		}
		sb.WriteString(line)
		sb.WriteString("\n")
	}

	sb.WriteString("\n")
	if m.mailConfigured {
		sb.WriteString(styles.StatusOK.Render(icons.Mail.String() + " Email delivery available"))
	} else {
		sb.WriteString(lipgloss.NewStyle().Foreground(styles.Muted).Render(icons.Mail.String() + " Email delivery not configured"))
	}

	return sb.String()
}

// String returns the string representation of an Action
func (a Action) String() string {
	switch a {
	case ActionNewQuote:
		return "new-quote"
	case ActionQuit:
		return "quit"
	default:
		return "unknown"
	}
}
