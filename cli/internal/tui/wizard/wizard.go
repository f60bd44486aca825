// ABOUTME: Quote collection wizard as a bubbletea model
// ABOUTME: Uses huh forms with visual progress indicator for step navigation

package wizard

import (
	"fmt"
	"net/mail"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/beyondskool/pricing-wizard/cli/internal/client"
	"github.com/beyondskool/pricing-wizard/cli/internal/tui/icons"
	"github.com/beyondskool/pricing-wizard/cli/internal/tui/styles"
)

// WizardCompleteMsg is sent when the wizard finishes successfully
type WizardCompleteMsg struct {
	Create    *client.CreateSessionInput
	Calculate *client.CalculateInput
}

// WizardCancelledMsg is sent when the wizard is cancelled
type WizardCancelledMsg struct{}

// programNames lists the offered programs in display order
var programNames = []string{"Communication", "Financial Literacy", "STEM"}

// sizing holds the per-program enrollment fields as strings for huh
type sizing struct {
	students    string
	sectionSize string
}

// Wizard manages the quote collection flow as a bubbletea model
type Wizard struct {
	form  *huh.Form
	step  int
	width int

	// Form field values (strings for huh)
	schoolName     string
	requesterEmail string
	schoolEmail    string
	programs       []string
	sizings        map[string]*sizing
	daysPerWeek    string
	discount       string
}

// Step names for progress indicator
var stepNames = []string{"School", "Programs", "Class Sizes", "Terms"}

// createTheme returns a custom huh theme matching the agreement branding
func createTheme() *huh.Theme {
	t := huh.ThemeBase()

	purple := lipgloss.Color("#7C3AED")      // Violet-600 - primary
	purpleLight := lipgloss.Color("#A78BFA") // Violet-400 - accents
	blue := lipgloss.Color("#3B82F6")        // Blue-500 - info
	gray := lipgloss.Color("#9CA3AF")        // Gray-400 - muted
	grayLight := lipgloss.Color("#E5E7EB")   // Gray-200 - text
	red := lipgloss.Color("#F87171")         // Red-400 - errors
	slate := lipgloss.Color("#334155")       // Slate-700 - borders

	// Group styles (section headers)
	t.Group.Title = lipgloss.NewStyle().
		Foreground(purple).
		Bold(true).
		MarginBottom(1)
	t.Group.Description = lipgloss.NewStyle().
		Foreground(gray).
		MarginBottom(1)

	// Focused field styles
	t.Focused.Base = lipgloss.NewStyle().
		PaddingLeft(1).
		BorderStyle(lipgloss.ThickBorder()).
		BorderLeft(true).
		BorderForeground(purple)
	t.Focused.Title = lipgloss.NewStyle().
		Foreground(purpleLight).
		Bold(true)
	t.Focused.Description = lipgloss.NewStyle().
		Foreground(gray)
	t.Focused.ErrorIndicator = lipgloss.NewStyle().
		Foreground(red).
		SetString(" *")
	t.Focused.ErrorMessage = lipgloss.NewStyle().
		Foreground(red)

	// Select field styles
	t.Focused.SelectSelector = lipgloss.NewStyle().
		Foreground(purple).
		SetString("> ")
	t.Focused.Option = lipgloss.NewStyle().
		Foreground(grayLight)
	t.Focused.SelectedOption = lipgloss.NewStyle().
		Foreground(purple).
		Bold(true)
	t.Focused.MultiSelectSelector = lipgloss.NewStyle().
		Foreground(purple).
		SetString("> ")
	t.Focused.SelectedPrefix = lipgloss.NewStyle().
		Foreground(purple).
		SetString("[x] ")
	t.Focused.UnselectedPrefix = lipgloss.NewStyle().
		Foreground(gray).
		SetString("[ ] ")
	t.Focused.NextIndicator = lipgloss.NewStyle().
		Foreground(purple).
		MarginLeft(1).
		SetString("→")
	t.Focused.PrevIndicator = lipgloss.NewStyle().
		Foreground(purple).
		MarginRight(1).
		SetString("←")

	// Text input styles
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().
		Foreground(purple)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().
		Foreground(gray)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().
		Foreground(purple)
	t.Focused.TextInput.Text = lipgloss.NewStyle().
		Foreground(grayLight)

	// Button styles
	t.Focused.FocusedButton = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#FFFFFF")).
		Background(blue).
		Padding(0, 2).
		MarginRight(1)
	t.Focused.BlurredButton = lipgloss.NewStyle().
		Foreground(gray).
		Background(slate).
		Padding(0, 2).
		MarginRight(1)

	// Blurred field styles (inherit from focused with muted colors)
	t.Blurred = t.Focused
	t.Blurred.Base = lipgloss.NewStyle().
		PaddingLeft(1).
		BorderStyle(lipgloss.HiddenBorder()).
		BorderLeft(true)
	t.Blurred.Title = lipgloss.NewStyle().
		Foreground(gray)
	t.Blurred.SelectSelector = lipgloss.NewStyle().
		Foreground(gray).
		SetString("  ")
	t.Blurred.Option = lipgloss.NewStyle().
		Foreground(gray)

	return t
}

// Weekly schedule options
var daysOptions = []huh.Option[string]{
	huh.NewOption("5 days per week", "5"),
	huh.NewOption("6 days per week", "6"),
}

// Discount tiers offered during negotiation
var discountOptions = []huh.Option[string]{
	huh.NewOption("No discount", "0"),
	huh.NewOption("5%", "5"),
	huh.NewOption("10%", "10"),
	huh.NewOption("15%", "15"),
	huh.NewOption("20%", "20"),
	huh.NewOption("25%", "25"),
	huh.NewOption("30%", "30"),
}

// New creates a new quote wizard
func New() *Wizard {
	sizings := make(map[string]*sizing, len(programNames))
	for _, name := range programNames {
		sizings[name] = &sizing{students: "100", sectionSize: "30"}
	}

	w := &Wizard{
		step:        1,
		programs:    []string{programNames[0]},
		sizings:     sizings,
		daysPerWeek: "5",
		discount:    "0",
	}

	w.form = w.createStep1Form()
	return w
}

func (w *Wizard) createStep1Form() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("School name").
				Description("Appears on the agreement document").
				Placeholder("e.g., Greenwood High").
				CharLimit(120).
				Value(&w.schoolName).
				Validate(validateSchoolName),
			huh.NewInput().
				Title("Requester email").
				Description("Sales representative raising the quote").
				Placeholder("rep@beyondskool.com").
				CharLimit(120).
				Value(&w.requesterEmail).
				Validate(validateEmail),
			huh.NewInput().
				Title("School email").
				Description("School contact copied on the agreement").
				Placeholder("principal@school.edu").
				CharLimit(120).
				Value(&w.schoolEmail).
				Validate(validateEmail),
		).Title("Step 1: School Details").
			Description("Who is this quote for?"),
	).WithTheme(createTheme())
}

func (w *Wizard) createStep2Form() *huh.Form {
	options := make([]huh.Option[string], 0, len(programNames))
	for _, name := range programNames {
		options = append(options, huh.NewOption(name, name))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewMultiSelect[string]().
				Title("Programs").
				Description("Space to toggle, Enter to confirm").
				Options(options...).
				Value(&w.programs).
				Validate(validateProgramSelection),
		).Title("Step 2: Programs").
			Description("Which programs is the school enrolling in?"),
	).WithTheme(createTheme())
}

func (w *Wizard) createStep3Form() *huh.Form {
	var fields []huh.Field
	for _, name := range programNames {
		if !w.programSelected(name) {
			continue
		}
		s := w.sizings[name]
		fields = append(fields,
			huh.NewInput().
				Title(name+" students").
				Description("Between 50 and 3000").
				Placeholder("e.g., 600").
				CharLimit(4).
				Value(&s.students).
				Validate(validateStudents),
			huh.NewInput().
				Title(name+" section size").
				Description("Between 10 and 60").
				Placeholder("e.g., 30").
				CharLimit(2).
				Value(&s.sectionSize).
				Validate(validateSectionSize),
		)
	}

	return huh.NewForm(
		huh.NewGroup(fields...).
			Title("Step 3: Class Sizes").
			Description("Enrollment and section size per program"),
	).WithTheme(createTheme())
}

func (w *Wizard) createStep4Form() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Weekly schedule").
				Description("Use ↑/↓ to select, Enter to confirm").
				Options(daysOptions...).
				Value(&w.daysPerWeek),
			huh.NewSelect[string]().
				Title("Discount").
				Description("Negotiated discount on the final price").
				Options(discountOptions...).
				Value(&w.discount),
		).Title("Step 4: Terms").
			Description("Schedule and commercial terms"),
	).WithTheme(createTheme())
}

func (w *Wizard) programSelected(name string) bool {
	for _, p := range w.programs {
		if p == name {
			return true
		}
	}
	return false
}

// Init implements tea.Model
func (w *Wizard) Init() tea.Cmd {
	return w.form.Init()
}

// Update implements tea.Model
func (w *Wizard) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		w.width = msg.Width
		// Forward to form
		form, cmd := w.form.Update(msg)
		if f, ok := form.(*huh.Form); ok {
			w.form = f
		}
		return w, cmd

	case tea.KeyMsg:
		if msg.String() == "esc" {
			return w, func() tea.Msg { return WizardCancelledMsg{} }
		}
	}

	// Update the current form
	form, cmd := w.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		w.form = f
	}

	// Check if form is complete
	if w.form.State == huh.StateCompleted {
		return w.advanceStep()
	}

	return w, cmd
}

func (w *Wizard) advanceStep() (tea.Model, tea.Cmd) {
	switch w.step {
	case 1:
		w.step = 2
		w.form = w.createStep2Form()
		return w, w.form.Init()

	case 2:
		w.step = 3
		w.form = w.createStep3Form()
		return w, w.form.Init()

	case 3:
		w.step = 4
		w.form = w.createStep4Form()
		return w, w.form.Init()

	case 4:
		create, calculate := w.buildInputs()
		return w, func() tea.Msg {
			return WizardCompleteMsg{Create: create, Calculate: calculate}
		}
	}

	return w, nil
}

// buildInputs converts the collected string fields into API payloads
func (w *Wizard) buildInputs() (*client.CreateSessionInput, *client.CalculateInput) {
	create := &client.CreateSessionInput{
		SchoolName:     strings.TrimSpace(w.schoolName),
		RequesterEmail: strings.TrimSpace(w.requesterEmail),
		SchoolEmail:    strings.TrimSpace(w.schoolEmail),
	}

	var selections []client.ProgramSelection
	for _, name := range programNames {
		if !w.programSelected(name) {
			continue
		}
		s := w.sizings[name]
		students, _ := strconv.Atoi(s.students)
		sectionSize, _ := strconv.Atoi(s.sectionSize)
		selections = append(selections, client.ProgramSelection{
			Program:     name,
			Students:    students,
			SectionSize: sectionSize,
		})
	}

	days, _ := strconv.Atoi(w.daysPerWeek)
	discount, _ := strconv.Atoi(w.discount)

	calculate := &client.CalculateInput{
		Programs:        selections,
		DaysPerWeek:     days,
		DiscountPercent: discount,
	}

	return create, calculate
}

// SetWidth sets the wizard width for proper rendering
func (w *Wizard) SetWidth(width int) {
	w.width = width
}

// View implements tea.Model
func (w *Wizard) View() string {
	var sb strings.Builder

	// Progress indicator
	sb.WriteString(w.renderProgress())
	sb.WriteString("\n\n")

	// Form content
	sb.WriteString(w.form.View())

	return sb.String()
}

// renderProgress renders the step progress indicator
func (w *Wizard) renderProgress() string {
	// Use width - 1 to ensure progress box fits within the frame
	width := w.width - 1
	if width < 60 {
		width = 60
	}

	borderStyle := lipgloss.NewStyle().Foreground(styles.Muted)
	titleStyle := lipgloss.NewStyle().Foreground(styles.Primary)

	// Build step indicators
	var steps []string
	for i, name := range stepNames {
		stepNum := i + 1
		var indicator string
		var nameStyle lipgloss.Style

		if stepNum < w.step {
			// Completed step
			indicator = lipgloss.NewStyle().Foreground(styles.Secondary).Render(icons.CheckOK.String())
			nameStyle = lipgloss.NewStyle().Foreground(styles.Muted)
		} else if stepNum == w.step {
			// Current step
			indicator = lipgloss.NewStyle().Foreground(styles.Primary).Bold(true).Render("●")
			nameStyle = lipgloss.NewStyle().Foreground(styles.Primary).Bold(true)
		} else {
			// Future step
			indicator = lipgloss.NewStyle().Foreground(styles.Muted).Render("○")
			nameStyle = lipgloss.NewStyle().Foreground(styles.Muted)
		}

		steps = append(steps, fmt.Sprintf("%s %s", indicator, nameStyle.Render(name)))
	}

	stepsLine := strings.Join(steps, "    ")

	// Progress bar line format: "│  " + bar + " │" = 5 chars overhead
	barWidth := width - 5
	totalSteps := len(stepNames)
	filledWidth := (w.step * barWidth) / totalSteps
	emptyWidth := barWidth - filledWidth

	filledBar := lipgloss.NewStyle().Foreground(styles.Primary).Render(strings.Repeat("━", filledWidth))
	emptyBar := lipgloss.NewStyle().Foreground(styles.Surface).Render(strings.Repeat("─", emptyWidth))
	progressBar := filledBar + emptyBar

	// Build panel with consistent width
	styledTitle := titleStyle.Render("Progress")
	titleWidth := lipgloss.Width("Progress")

	// Top border: "┌─ " + title + " " + fill + "┐"
	topFillWidth := max(0, width-5-titleWidth)
	topBorder := "┌─ " + styledTitle + " " + strings.Repeat("─", topFillWidth) + "┐"

	// Steps line: "│ " + content + padding + " │" = 4 chars overhead
	stepsLineWidth := lipgloss.Width(stepsLine)
	stepsPadding := max(0, width-4-stepsLineWidth)
	stepsLinePadded := "│ " + stepsLine + strings.Repeat(" ", stepsPadding) + " │"

	// Progress line: "│  " + bar + " │" (extra indent for visual alignment)
	progressLinePadded := "│  " + progressBar + " │"

	// Bottom border: "└" + fill + "┘"
	bottomFillWidth := width - 2
	bottomBorder := "└" + strings.Repeat("─", bottomFillWidth) + "┘"

	return borderStyle.Render(strings.Join([]string{
		topBorder,
		stepsLinePadded,
		progressLinePadded,
		bottomBorder,
	}, "\n"))
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func validateSchoolName(s string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("school name is required")
	}
	return nil
}

func validateEmail(s string) error {
	addr, err := mail.ParseAddress(strings.TrimSpace(s))
	if err != nil || addr.Address != strings.TrimSpace(s) {
		return fmt.Errorf("must be a plain email address")
	}
	return nil
}

func validateProgramSelection(selected []string) error {
	if len(selected) == 0 {
		return fmt.Errorf("select at least one program")
	}
	return nil
}

func validateStudents(s string) error {
	v, err := strconv.Atoi(s)
	if err != nil || v < 50 || v > 3000 {
		return fmt.Errorf("must be between 50 and 3000")
	}
	return nil
}

func validateSectionSize(s string) error {
	v, err := strconv.Atoi(s)
	if err != nil || v < 10 || v > 60 {
		return fmt.Errorf("must be between 10 and 60")
	}
	return nil
}
