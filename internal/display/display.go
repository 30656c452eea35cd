// Package display provides the terminal UI using Bubble Tea.
//
// The [UI] type manages a persistent status bar (ingredient chips and the
// submission state) and an input prompt at the bottom of the terminal.
// All application output is printed above the rendered area via
// Program.Println / Printf, so concurrent writes never garble the
// display.
package display

import (
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/hammamikhairi/redchef/internal/domain"
	"github.com/hammamikhairi/redchef/internal/session"
)

// ── Styles ───────────────────────────────────────────────────────

var (
	barBg = lipgloss.NewStyle().
		Background(lipgloss.Color("#27272a")).
		Foreground(lipgloss.Color("#a1a1aa"))

	chipStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#e4e4e7"))

	chipIndexStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#71717a"))

	loadingStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#fde68a"))

	errorBarStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#fca5a5")).
			Bold(true)

	resultBarStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#bbf7d0"))

	idleHintStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#71717a")).
			Italic(true)

	sepStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#52525b"))

	promptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#f87171"))

	// ── Output styles ──

	// BannerStyle is the Red Bull red used for the title art.
	BannerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#db0a40")).
			Bold(true)

	chatStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#bae6fd"))

	// Recipe name header.
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#db0a40")).
			Bold(true)

	headingStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#bbf7d0"))

	primaryStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#d4d4d8"))

	secondaryStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#71717a"))

	urgentOutputStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#fca5a5"))

	userInputEchoStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#a1a1aa"))
)

// promptText is plain so the textinput width math stays correct.
const promptText = "redchef> "

// StateSource is polled for the state shown in the status bar.
// *session.Controller satisfies it.
type StateSource interface {
	Snapshot() session.Snapshot
}

// ── UI ───────────────────────────────────────────────────────────

// UI manages the terminal through Bubble Tea.
//
// Call [NewUI] then [UI.Run] (blocking). Other goroutines may safely
// call [UI.Println], [UI.Printf], and read from [UI.InputChan] at any
// time after [UI.WaitReady] returns.
type UI struct {
	program *tea.Program
	inputCh chan string
	readyCh chan struct{}
	quitCh  chan struct{}
	source  StateSource
	draftFn func(string)
	done    atomic.Bool
}

// NewUI creates the display. draftFn, if non-nil, is called with the
// prompt contents every time they change.
func NewUI(source StateSource, draftFn func(string)) *UI {
	return &UI{
		source:  source,
		draftFn: draftFn,
		inputCh: make(chan string, 16),
		readyCh: make(chan struct{}),
		quitCh:  make(chan struct{}),
	}
}

// Println prints a line above the prompt. Thread-safe.
// If the program hasn't started yet, falls back to fmt.Println.
func (u *UI) Println(a ...interface{}) {
	if u.program != nil && !u.done.Load() {
		u.program.Println(a...)
	} else {
		fmt.Println(a...)
	}
}

// Printf prints formatted text above the prompt on its own line.
// Thread-safe.
func (u *UI) Printf(format string, a ...interface{}) {
	if u.program != nil && !u.done.Load() {
		u.program.Printf(format, a...)
	} else {
		fmt.Printf(format+"\n", a...)
	}
}

// InputChan returns completed user-input lines.
func (u *UI) InputChan() <-chan string { return u.inputCh }

// ── Styled print helpers ─────────────────────────────────────────

// PrintChat prints a conversational line.
func (u *UI) PrintChat(text string) {
	u.Println(chatStyle.Render("  " + text))
}

// PrintHeading prints a section heading.
func (u *UI) PrintHeading(text string) {
	u.Println(headingStyle.Render("  " + text))
}

// PrintInstruction prints main body text.
func (u *UI) PrintInstruction(text string) {
	u.Println(primaryStyle.Render("  " + text))
}

// PrintHint prints a secondary/dimmed line.
func (u *UI) PrintHint(text string) {
	u.Println(secondaryStyle.Render("  " + text))
}

// PrintUrgent prints an error line.
func (u *UI) PrintUrgent(text string) {
	u.Println(urgentOutputStyle.Render("  " + text))
}

// PrintVoice prints a voice-recognised input line.
func (u *UI) PrintVoice(text string) {
	u.Println(secondaryStyle.Render("[voice] ") + primaryStyle.Render(text))
}

// PrintUserInput echoes the user's typed line into the scrollback.
func (u *UI) PrintUserInput(text string) {
	u.Println(promptStyle.Render("redchef") + secondaryStyle.Render("> ") + userInputEchoStyle.Render(text))
}

// PrintIngredients prints the numbered ingredient list.
func (u *UI) PrintIngredients(ingredients []string) {
	u.Println(FormatIngredients(ingredients))
}

// PrintRecipe prints the recipe name and its numbered steps.
func (u *UI) PrintRecipe(r *domain.Recipe) {
	u.Println(FormatRecipe(r))
}

// FormatIngredients renders the numbered list shown by "list".
func FormatIngredients(ingredients []string) string {
	if len(ingredients) == 0 {
		return secondaryStyle.Render("  No ingredients yet.")
	}
	var b strings.Builder
	b.WriteString(headingStyle.Render("  Added Ingredients:"))
	for i, ing := range ingredients {
		b.WriteByte('\n')
		b.WriteString(chipIndexStyle.Render(fmt.Sprintf("  [%d]", i+1)))
		b.WriteString(" " + primaryStyle.Render(ing))
	}
	return b.String()
}

// FormatRecipe renders a recipe: centred-ish title, then "Cooking
// Steps:" and one numbered line per step in order.
func FormatRecipe(r *domain.Recipe) string {
	if r == nil {
		return ""
	}
	var b strings.Builder
	b.WriteString(titleStyle.Render("  === " + r.Name + " ==="))
	b.WriteByte('\n')
	b.WriteString(headingStyle.Render("  Cooking Steps:"))
	for i, step := range r.Steps {
		b.WriteByte('\n')
		b.WriteString(primaryStyle.Render(fmt.Sprintf("  %d. %s", i+1, step)))
	}
	return b.String()
}

// WaitReady blocks until the Bubble Tea event loop is running.
func (u *UI) WaitReady() { <-u.readyCh }

// Quit tells Bubble Tea to exit.
func (u *UI) Quit() {
	if u.program != nil {
		u.program.Quit()
	}
}

// QuitChan is closed when Run returns.
func (u *UI) QuitChan() <-chan struct{} { return u.quitCh }

// Run starts the Bubble Tea event loop. Blocks until quit.
func (u *UI) Run() error {
	ti := textinput.New()
	ti.Prompt = promptText
	ti.PromptStyle = promptStyle
	ti.TextStyle = userInputEchoStyle
	ti.Placeholder = "Enter an ingredient"
	ti.Cursor.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#f87171"))
	ti.Focus()
	ti.CharLimit = 200
	ti.Width = 60 // updated on first WindowSizeMsg

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = loadingStyle

	m := model{
		source:  u.source,
		input:   ti,
		spinner: sp,
		inputCh: u.inputCh,
		readyCh: u.readyCh,
		draftFn: u.draftFn,
		echoFn: func(v string) {
			u.PrintUserInput(v)
		},
	}

	u.program = tea.NewProgram(m)
	_, err := u.program.Run()
	u.done.Store(true)
	close(u.quitCh)
	return err
}

// ── Bubble Tea model ─────────────────────────────────────────────

type model struct {
	source  StateSource
	input   textinput.Model
	spinner spinner.Model
	inputCh chan<- string
	readyCh chan struct{}
	echoFn  func(string) // prints user input into scrollback
	draftFn func(string) // mirrors prompt contents into the session
	snap    session.Snapshot
	width   int
}

// Messages.
type tickMsg time.Time

func (m model) Init() tea.Cmd {
	return tea.Batch(
		textinput.Blink,
		m.spinner.Tick,
		tickCmd(),
		signalReady(m.readyCh),
	)
}

func signalReady(ch chan struct{}) tea.Cmd {
	return func() tea.Msg {
		close(ch)
		return nil
	}
}

func tickCmd() tea.Cmd {
	return tea.Tick(200*time.Millisecond, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC:
			return m, tea.Quit
		case tea.KeyEnter:
			v := m.input.Value()
			m.input.Reset()
			m.setDraft("")
			if strings.TrimSpace(v) != "" {
				m.inputCh <- v
				// Echo from a Cmd so Update never blocks on Println.
				echoFn := m.echoFn
				return m, func() tea.Msg {
					echoFn(v)
					return nil
				}
			}
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		if msg.Width > len(promptText) {
			m.input.Width = msg.Width - len(promptText) - 1
		}
		return m, nil

	case tickMsg:
		if m.source != nil {
			snap := m.source.Snapshot()
			if snap.Version >= m.snap.Version {
				m.snap = snap
			}
		}
		return m, tea.Batch(tickCmd(), tea.SetWindowTitle(windowTitle(m.snap.State)))

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	before := m.input.Value()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if after := m.input.Value(); after != before {
		m.setDraft(after)
	}
	return m, cmd
}

func (m model) setDraft(v string) {
	if m.draftFn != nil {
		m.draftFn(v)
	}
}

func (m model) View() string {
	var b strings.Builder
	b.WriteString(renderBar(m.snap.State, m.spinner.View(), m.width))
	b.WriteByte('\n')
	b.WriteByte('\n')
	b.WriteString(m.input.View())
	return b.String()
}

// renderBar draws the status bar: ingredient chips on the left, then
// exactly one of idle hint, spinner, error text, or recipe name.
func renderBar(s session.State, spin string, width int) string {
	var parts []string
	for i, ing := range s.Ingredients {
		parts = append(parts, chipIndexStyle.Render(fmt.Sprint(i+1))+" "+chipStyle.Render(ing))
	}
	chips := strings.Join(parts, sepStyle.Render(" · "))
	if chips == "" {
		chips = idleHintStyle.Render("no ingredients")
	}

	content := " " + chips + sepStyle.Render("  │  ") + renderStatus(s, spin) + " "

	if width <= 0 {
		width = 80
	}
	return barBg.Width(width).Render(content)
}

func renderStatus(s session.State, spin string) string {
	switch s.Status {
	case domain.StatusLoading:
		return loadingStyle.Render(spin + " Cooking...")
	case domain.StatusError:
		return errorBarStyle.Render(s.Message)
	case domain.StatusResult:
		return resultBarStyle.Render("✓ " + s.Recipe.Name)
	default:
		if s.CanSubmit() {
			return idleHintStyle.Render("type 'cook' to Cook with RedChef")
		}
		return idleHintStyle.Render("add an ingredient to start")
	}
}

func windowTitle(s session.State) string {
	switch s.Status {
	case domain.StatusLoading:
		return "RedChef · Cooking..."
	case domain.StatusResult:
		return "RedChef · " + s.Recipe.Name
	default:
		return "RedChef"
	}
}
