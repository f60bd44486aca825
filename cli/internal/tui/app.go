// ABOUTME: Root bubbletea model for the TUI application
// ABOUTME: Manages screen state and routes keyboard input to child components

package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/beyondskool/pricing-wizard/cli/internal/client"
	"github.com/beyondskool/pricing-wizard/cli/internal/tui/icons"
	"github.com/beyondskool/pricing-wizard/cli/internal/tui/menu"
	"github.com/beyondskool/pricing-wizard/cli/internal/tui/styles"
	"github.com/beyondskool/pricing-wizard/cli/internal/tui/wizard"
)

// Screen represents the current TUI screen
type Screen int

const (
	ScreenMenu Screen = iota
	ScreenWizard
	ScreenSummary
)

// Layout constants
const (
	minTerminalWidth = 80 // Minimum width before using single-column layout
	panelPadding     = 4  // Total horizontal padding from panel borders (2 each side)

	marginFloorPercent = 30.0 // below this the backend refuses to price
)

// quotePreparedMsg is sent when session creation and calculation complete
type quotePreparedMsg struct {
	session *client.Session
	refusal *client.APIError
	err     error
}

// sessionConfirmedMsg is sent when the quote is locked in
type sessionConfirmedMsg struct {
	session *client.Session
	err     error
}

// agreementSavedMsg is sent when the agreement PDF has been written to disk
type agreementSavedMsg struct {
	path string
	err  error
}

// agreementSentMsg is sent when the agreement has been emailed
type agreementSentMsg struct {
	session *client.Session
	err     error
}

// App is the root model for the TUI
type App struct {
	client         *client.Client
	screen         Screen
	width          int
	height         int
	err            error
	session        *client.Session
	refusal        *client.APIError
	savedPath      string
	sent           bool
	saveDir        string
	mailConfigured bool
	lastUpdate     time.Time

	busy      bool
	busyLabel string
	spin      spinner.Model

	// Child models
	menu         *menu.Menu
	wizardScreen *wizard.Wizard
}

// New creates a new TUI application
func New(apiClient *client.Client, mailConfigured bool, saveDir string) *App {
	sp := spinner.New(
		spinner.WithSpinner(spinner.Dot),
		spinner.WithStyle(lipgloss.NewStyle().Foreground(styles.Primary)),
	)

	return &App{
		client:         apiClient,
		screen:         ScreenMenu,
		mailConfigured: mailConfigured,
		saveDir:        saveDir,
		spin:           sp,
		menu:           menu.New(mailConfigured),
	}
}

// Init implements tea.Model
func (a *App) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		if a.wizardScreen != nil {
			a.wizardScreen.SetWidth(a.width - 1)
			return a.updateWizard(msg)
		}
		return a, nil

	case tea.KeyMsg:
		// Handle global quit
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}

		// Ignore input while a request is in flight
		if a.busy {
			return a, nil
		}

		// Route to current screen
		switch a.screen {
		case ScreenMenu:
			return a.updateMenu(msg)
		case ScreenWizard:
			return a.updateWizard(msg)
		case ScreenSummary:
			return a.updateSummary(msg)
		}

	case spinner.TickMsg:
		if !a.busy {
			return a, nil
		}
		var cmd tea.Cmd
		a.spin, cmd = a.spin.Update(msg)
		return a, cmd

	case menu.ActionSelectedMsg:
		return a.handleMenuAction(msg)

	case menu.CancelledMsg:
		return a, tea.Quit

	case wizard.WizardCompleteMsg:
		// Wizard finished, create the session and price it
		a.wizardScreen = nil
		a.screen = ScreenSummary
		return a.startRequest("Pricing programs", a.prepareQuote(msg.Create, msg.Calculate))

	case wizard.WizardCancelledMsg:
		// Go back to the menu
		a.screen = ScreenMenu
		a.wizardScreen = nil
		return a, nil

	case quotePreparedMsg:
		a.busy = false
		a.err = msg.err
		a.refusal = msg.refusal
		if msg.session != nil {
			a.session = msg.session
			a.lastUpdate = time.Now()
		}
		a.screen = ScreenSummary
		return a, nil

	case sessionConfirmedMsg:
		a.busy = false
		if msg.err != nil {
			a.err = msg.err
			return a, nil
		}
		a.session = msg.session
		a.lastUpdate = time.Now()
		return a, nil

	case agreementSavedMsg:
		a.busy = false
		if msg.err != nil {
			a.err = msg.err
			return a, nil
		}
		a.savedPath = msg.path
		a.lastUpdate = time.Now()
		if a.session != nil {
			a.session.State = "delivered"
		}
		return a, nil

	case agreementSentMsg:
		a.busy = false
		if msg.err != nil {
			a.err = msg.err
			return a, nil
		}
		a.sent = true
		if msg.session != nil {
			a.session = msg.session
		}
		a.lastUpdate = time.Now()
		return a, nil

	default:
		// Forward unknown messages to wizard when active (needed for huh form internals)
		if a.screen == ScreenWizard && a.wizardScreen != nil {
			return a.updateWizard(msg)
		}
	}

	return a, nil
}

func (a *App) updateMenu(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if a.menu == nil {
		return a, nil
	}
	model, cmd := a.menu.Update(msg)
	a.menu = model.(*menu.Menu)
	return a, cmd
}

func (a *App) updateWizard(msg tea.Msg) (tea.Model, tea.Cmd) {
	if a.wizardScreen == nil {
		return a, nil
	}
	model, cmd := a.wizardScreen.Update(msg)
	a.wizardScreen = model.(*wizard.Wizard)
	return a, cmd
}

func (a *App) updateSummary(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return a, tea.Quit
	case "w":
		return a, a.runWizard()
	case "b":
		a.screen = ScreenMenu
		a.session = nil
		a.refusal = nil
		a.err = nil
		a.savedPath = ""
		a.sent = false
		return a, nil
	case "c":
		if a.session != nil && a.session.State == "calculated" {
			return a.startRequest("Confirming quote", a.confirmSession(a.session.ID))
		}
	case "d":
		if a.agreementAvailable() {
			return a.startRequest("Generating agreement", a.saveAgreement(a.session.ID))
		}
	case "s":
		if a.agreementAvailable() && a.mailConfigured {
			return a.startRequest("Sending agreement", a.sendAgreement(a.session.ID))
		}
	}
	return a, nil
}

// agreementAvailable reports whether the agreement PDF can be produced
func (a *App) agreementAvailable() bool {
	if a.session == nil {
		return false
	}
	return a.session.State == "confirmed" || a.session.State == "delivered"
}

func (a *App) handleMenuAction(msg menu.ActionSelectedMsg) (tea.Model, tea.Cmd) {
	switch msg.Action {
	case menu.ActionNewQuote:
		return a, a.runWizard()
	case menu.ActionQuit:
		return a, tea.Quit
	}
	return a, nil
}

// startRequest flips the app into the busy state and runs cmd alongside
// the spinner tick loop.
func (a *App) startRequest(label string, cmd tea.Cmd) (tea.Model, tea.Cmd) {
	a.busy = true
	a.busyLabel = label
	a.err = nil
	return a, tea.Batch(a.spin.Tick, cmd)
}

// View implements tea.Model
func (a *App) View() string {
	var content string

	switch a.screen {
	case ScreenMenu:
		content = a.viewMenu()
	case ScreenWizard:
		content = a.viewWizard()
	case ScreenSummary:
		content = a.viewSummary()
	default:
		content = a.viewMenu()
	}

	return a.wrapWithFrame(content)
}

// viewMenu renders the menu screen
func (a *App) viewMenu() string {
	if a.menu != nil {
		return styles.ActivePanel.Width(a.contentWidth()).Render(a.menu.View())
	}
	return ""
}

// viewWizard renders the wizard screen
func (a *App) viewWizard() string {
	if a.wizardScreen != nil {
		return a.wizardScreen.View()
	}
	return ""
}

// viewSummary renders the quote summary with available actions
func (a *App) viewSummary() string {
	if a.busy {
		return styles.Panel.Width(a.contentWidth()).Render(a.spin.View() + " " + a.busyLabel + "...")
	}

	if a.err != nil {
		return styles.Panel.Width(a.contentWidth()).Render(
			styles.StatusCritical.Render(icons.Critical.String() + " Error: " + a.err.Error()))
	}

	if a.refusal != nil {
		body := styles.StatusWarning.Render(icons.Warning.String()+" No pricing can be offered") + "\n\n"
		if a.refusal.GrossMarginPercent != nil {
			body += fmt.Sprintf("Gross margin %.2f%% is below the %.0f%% floor.\n",
				*a.refusal.GrossMarginPercent, marginFloorPercent)
		}
		body += "\nReduce the discount or adjust enrollment and run the wizard again."
		return styles.Panel.Width(a.contentWidth()).Render(body)
	}

	if a.session == nil {
		return styles.Panel.Width(a.contentWidth()).Render("No quote yet.")
	}

	return styles.ActivePanel.Width(a.contentWidth()).Render(a.renderSession())
}

// renderSession renders the priced session content
func (a *App) renderSession() string {
	s := a.session
	var sb strings.Builder

	sb.WriteString(styles.Title.Render(icons.School.String() + " " + s.SchoolName))
	sb.WriteString("\n")
	sb.WriteString(styles.Subtitle.Render(fmt.Sprintf("Session %s · %s", s.ID, s.State)))
	sb.WriteString("\n\n")

	labelStyle := lipgloss.NewStyle().Foreground(styles.Muted)

	for _, q := range s.Quotes {
		sb.WriteString(styles.ValueStyle.Render(icons.Program.String() + " " + q.Selection.Program))
		sb.WriteString("\n")
		sb.WriteString(fmt.Sprintf("  %s %d students in %d sections\n",
			labelStyle.Render(icons.Students.String()), q.Selection.Students, q.Staffing.Sections))
		sb.WriteString(fmt.Sprintf("  %s %d full-time teachers, %d variable days\n",
			labelStyle.Render(icons.Teacher.String()), q.Staffing.FullTimeTeachers, q.Staffing.VariableTeacherDays))
		sb.WriteString(fmt.Sprintf("  %s %s per student · %s total\n",
			labelStyle.Render(icons.Rupee.String()),
			styles.AmountStyle.Render(fmt.Sprintf("Rs.%.0f", q.Breakdown.PricePerStudent)),
			styles.AmountStyle.Render(fmt.Sprintf("Rs.%.0f", q.Breakdown.FinalPrice))))
		sb.WriteString(fmt.Sprintf("  Book Rs.%d · Fee Rs.%d · GST Rs.%d\n",
			q.Commercial.BookPrice, q.Commercial.ServiceFee, q.Commercial.GST))
		sb.WriteString("\n")
	}

	if s.Summary != nil {
		sb.WriteString(labelStyle.Render("Total Price      "))
		sb.WriteString(styles.AmountStyle.Render(fmt.Sprintf("Rs.%d", s.Summary.DisplayTotalFinalPrice)))
		sb.WriteString("\n")
		sb.WriteString(labelStyle.Render("Per Student Avg  "))
		sb.WriteString(styles.AmountStyle.Render(fmt.Sprintf("Rs.%d", s.Summary.AveragePricePerStudent)))
		sb.WriteString("\n")
		sb.WriteString(labelStyle.Render("Gross Margin     "))
		sb.WriteString(fmt.Sprintf("%.2f%% ", s.Summary.GrossMarginPercent))
		sb.WriteString(styles.MarginBar(s.Summary.GrossMarginPercent, marginFloorPercent, 20))
		sb.WriteString("\n")
	}

	if s.Commercial != nil {
		sb.WriteString(labelStyle.Render("Payable/Student  "))
		sb.WriteString(styles.AmountStyle.Render(fmt.Sprintf("Rs.%d", s.Commercial.TotalPayable)))
		sb.WriteString(labelStyle.Render(fmt.Sprintf("  (incl. GST Rs.%d)", s.Commercial.TotalGST)))
		sb.WriteString("\n")
	}

	sb.WriteString("\n")
	switch {
	case a.savedPath != "":
		sb.WriteString(styles.StatusOK.Render(icons.CheckOK.String() + " Agreement saved to " + a.savedPath))
		sb.WriteString("\n")
	case a.sent:
		sb.WriteString(styles.StatusOK.Render(icons.CheckOK.String() + " Agreement emailed to " + s.RequesterEmail))
		sb.WriteString("\n")
	}

	return sb.String()
}

// contentWidth calculates the width for the main content panel
func (a *App) contentWidth() int {
	width := a.width
	if width < minTerminalWidth {
		width = minTerminalWidth
	}
	return width - panelPadding
}

// renderHeader creates the header bar with app branding and context
func (a *App) renderHeader() string {
	// Guard against zero/small width before WindowSizeMsg is received
	width := a.width
	if width < minTerminalWidth {
		width = minTerminalWidth
	}

	borderStyle := lipgloss.NewStyle().Foreground(styles.Muted)
	titleStyle := lipgloss.NewStyle().Foreground(styles.Primary).Bold(true)
	contextStyle := lipgloss.NewStyle().Foreground(styles.Secondary)

	icon := icons.App.String()
	title := "BeyondSkool Pricing Wizard"

	// Build left content
	leftText := fmt.Sprintf(" %s %s", icon, titleStyle.Render(title))

	// Build right content (only when a quote is on screen)
	rightText := ""
	if a.session != nil && a.screen == ScreenSummary {
		rightText = contextStyle.Render(a.session.SchoolName) + " "
	}

	leftStyle := lipgloss.NewStyle()
	rightStyle := lipgloss.NewStyle().Align(lipgloss.Right)

	leftRendered := leftStyle.Render(leftText)
	rightRendered := rightStyle.Render(rightText)

	// Calculate fill needed
	leftWidth := lipgloss.Width(leftRendered)
	rightWidth := lipgloss.Width(rightRendered)
	fillWidth := width - 4 - leftWidth - rightWidth // -4 for ╭─ and ─╮
	if fillWidth < 0 {
		fillWidth = 0
	}

	fill := strings.Repeat("─", fillWidth)

	header := "╭─" + leftRendered + fill + rightRendered + "─╮"

	return borderStyle.Render(header)
}

// renderFooter creates the footer with keyboard shortcuts and status
func (a *App) renderFooter() string {
	// Guard against zero/small width before WindowSizeMsg is received
	width := a.width
	if width < minTerminalWidth {
		width = minTerminalWidth
	}

	borderStyle := lipgloss.NewStyle().Foreground(styles.Muted)
	keyStyle := lipgloss.NewStyle().Foreground(styles.Primary)
	labelStyle := lipgloss.NewStyle().Foreground(styles.Muted)
	statusStyle := lipgloss.NewStyle().Foreground(styles.Secondary)

	// Build keyboard shortcuts based on current screen
	var shortcuts []string
	switch a.screen {
	case ScreenMenu:
		shortcuts = []string{"↑↓ Navigate", "Enter Select", "q Quit"}
	case ScreenWizard:
		shortcuts = []string{"↑↓ Select", "Enter Confirm", "Esc Cancel"}
	case ScreenSummary:
		shortcuts = a.summaryShortcuts()
	}

	// Build styled shortcuts
	var styledShortcuts []string
	for _, s := range shortcuts {
		parts := strings.SplitN(s, " ", 2)
		if len(parts) == 2 {
			styledShortcuts = append(styledShortcuts, keyStyle.Render(parts[0])+" "+labelStyle.Render(parts[1]))
		} else {
			styledShortcuts = append(styledShortcuts, s)
		}
	}

	leftText := " " + strings.Join(styledShortcuts, "  ")
	leftPlainText := " " + strings.Join(shortcuts, "  ")

	// Right side status (last update time)
	rightText := ""
	rightPlainText := ""
	if !a.lastUpdate.IsZero() && a.screen == ScreenSummary {
		elapsed := a.formatTimeSince(a.lastUpdate)
		rightText = statusStyle.Render("Updated "+elapsed) + " "
		rightPlainText = "Updated " + elapsed + " "
	}

	// Calculate widths
	leftWidth := lipgloss.Width(leftPlainText)
	rightWidth := lipgloss.Width(rightPlainText)
	fillWidth := width - 4 - leftWidth - rightWidth // -4 for ╰─ and ─╯
	if fillWidth < 0 {
		fillWidth = 0
	}

	fill := strings.Repeat("─", fillWidth)

	footer := "╰─" + leftText + fill + rightText + "─╯"

	return borderStyle.Render(footer)
}

// summaryShortcuts builds the footer shortcuts for the summary screen
// based on what the session state currently allows.
func (a *App) summaryShortcuts() []string {
	var shortcuts []string
	if a.session != nil && a.session.State == "calculated" {
		shortcuts = append(shortcuts, "c Confirm")
	}
	if a.agreementAvailable() {
		shortcuts = append(shortcuts, "d Save agreement")
		if a.mailConfigured {
			shortcuts = append(shortcuts, "s Send")
		}
	}
	shortcuts = append(shortcuts, "w New quote", "b Back", "q Quit")
	return shortcuts
}

// formatTimeSince formats a duration since the given time in human-readable form
func (a *App) formatTimeSince(t time.Time) string {
	d := time.Since(t)

	if d < time.Minute {
		secs := int(d.Seconds())
		if secs < 5 {
			return "just now"
		}
		return fmt.Sprintf("%ds ago", secs)
	}

	if d < time.Hour {
		mins := int(d.Minutes())
		if mins == 1 {
			return "1m ago"
		}
		return fmt.Sprintf("%dm ago", mins)
	}

	hours := int(d.Hours())
	if hours == 1 {
		return "1h ago"
	}
	return fmt.Sprintf("%dh ago", hours)
}

// wrapWithFrame wraps content with header and footer
func (a *App) wrapWithFrame(content string) string {
	var sb strings.Builder

	sb.WriteString(a.renderHeader())
	sb.WriteString("\n")
	sb.WriteString(content)
	sb.WriteString("\n")
	sb.WriteString(a.renderFooter())

	return sb.String()
}

// runWizard transitions to the wizard screen
func (a *App) runWizard() tea.Cmd {
	a.wizardScreen = wizard.New()
	a.wizardScreen.SetWidth(a.width - 1)
	a.screen = ScreenWizard
	a.session = nil
	a.refusal = nil
	a.err = nil
	a.savedPath = ""
	a.sent = false
	return a.wizardScreen.Init()
}

// prepareQuote creates the session and runs the calculation
func (a *App) prepareQuote(create *client.CreateSessionInput, calculate *client.CalculateInput) tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()

		session, err := a.client.CreateSession(ctx, create)
		if err != nil {
			return quotePreparedMsg{err: err}
		}

		priced, err := a.client.Calculate(ctx, session.ID, calculate)
		if err != nil {
			var apiErr *client.APIError
			if errors.As(err, &apiErr) && apiErr.MarginRefused() {
				return quotePreparedMsg{session: session, refusal: apiErr}
			}
			return quotePreparedMsg{err: err}
		}

		return quotePreparedMsg{session: priced}
	}
}

// confirmSession locks the calculated quote
func (a *App) confirmSession(id string) tea.Cmd {
	return func() tea.Msg {
		session, err := a.client.Confirm(context.Background(), id)
		return sessionConfirmedMsg{session: session, err: err}
	}
}

// saveAgreement downloads the agreement PDF and writes it to the save directory
func (a *App) saveAgreement(id string) tea.Cmd {
	return func() tea.Msg {
		filename, pdf, err := a.client.DownloadDocument(context.Background(), id)
		if err != nil {
			return agreementSavedMsg{err: err}
		}

		// The filename comes from a server header; keep the write inside
		// the save directory.
		path := filepath.Join(a.saveDir, filepath.Base(filename))
		if err := os.WriteFile(path, pdf, 0o644); err != nil {
			return agreementSavedMsg{err: err}
		}

		return agreementSavedMsg{path: path}
	}
}

// sendAgreement emails the agreement through the backend
func (a *App) sendAgreement(id string) tea.Cmd {
	return func() tea.Msg {
		session, err := a.client.SendDocument(context.Background(), id, &client.SendInput{})
		return agreementSentMsg{session: session, err: err}
	}
}

// Run starts the TUI
func Run(apiClient *client.Client, mailConfigured bool, saveDir string) error {
	if saveDir == "" {
		saveDir = "."
	}

	app := New(apiClient, mailConfigured, saveDir)

	p := tea.NewProgram(
		app,
		tea.WithAltScreen(),
	)
	_, err := p.Run()
	return err
}
