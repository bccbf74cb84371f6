// ABOUTME: Bubbletea model for the interactive BMI form.
// ABOUTME: Two inputs, a Compute BMI button, a result box, history, and modal alerts.
package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/harperreed/bmi/internal/history"
	"github.com/harperreed/bmi/internal/session"
)

const (
	resultPlaceholder = "Results..."
	historyHeight     = 8
	historyWidth      = 48
)

// focus is the form element that receives keystrokes.
type focus int

const (
	focusWeight focus = iota
	focusHeight
	focusButton
	focusCount
)

// Model is the main Bubbletea model for the BMI form
type Model struct {
	ctx    context.Context
	ctrl   *session.Controller
	view   *history.View
	box    *alertBox
	weight textinput.Model
	height textinput.Model
	pane   HistoryPane
	focus  focus

	// alerts queue in arrival order; the first one is shown.
	alerts    []session.Alert
	computing bool
	width     int
	termH     int
}

// New creates the form model. The controller writes through store and
// refreshes view after each successful compute.
func New(ctx context.Context, store session.Store, view *history.View, opts ...session.Option) Model {
	box := &alertBox{}
	opts = append(opts, session.WithAlerter(box), session.WithRefresher(view))

	weight := textinput.New()
	weight.Placeholder = "Weight in Pounds?"
	weight.Prompt = ""
	weight.CharLimit = 16
	weight.Width = 24
	weight.Focus()

	height := textinput.New()
	height.Placeholder = "Height in Inches"
	height.Prompt = ""
	height.CharLimit = 16
	height.Width = 24

	return Model{
		ctx:    ctx,
		ctrl:   session.New(store, opts...),
		view:   view,
		box:    box,
		weight: weight,
		height: height,
		pane:   NewHistoryPane(view, historyWidth, historyHeight),
		focus:  focusWeight,
	}
}

// Controller returns the session controller driven by the form.
func (m Model) Controller() *session.Controller {
	return m.ctrl
}

// Alert returns the alert currently shown, if any.
func (m Model) Alert() (session.Alert, bool) {
	if len(m.alerts) == 0 {
		return session.Alert{}, false
	}
	return m.alerts[0], true
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		textinput.Blink,
		loadHistoryCmd(m.ctx, m.view),
	)
}

// Messages
type historyLoadedMsg struct {
	err error
}

type computedMsg struct {
	result string
	err    error
	alerts []session.Alert
}

// Commands
func loadHistoryCmd(ctx context.Context, view *history.View) tea.Cmd {
	return func() tea.Msg {
		return historyLoadedMsg{err: view.Load(ctx)}
	}
}

func computeCmd(ctx context.Context, ctrl *session.Controller, box *alertBox) tea.Cmd {
	return func() tea.Msg {
		result, err := ctrl.Compute(ctx)
		return computedMsg{result: result, err: err, alerts: box.take()}
	}
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.termH = msg.Height
		if w := msg.Width - 4; w > 0 && w < historyWidth {
			m.pane.SetWidth(w)
		}
		return m, nil

	case historyLoadedMsg:
		if msg.err != nil {
			m.alerts = append(m.alerts, session.AlertFor(msg.err))
		}
		m.pane.Sync()
		return m, nil

	case computedMsg:
		m.computing = false
		m.alerts = append(m.alerts, msg.alerts...)
		m.pane.Sync()
		if msg.err != nil {
			return m, nil
		}
		// The controller clears its drafts on success; mirror that in the inputs.
		m.weight.SetValue(m.ctrl.Weight())
		m.height.SetValue(m.ctrl.Height())
		return m, m.setFocus(focusWeight)

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}

		if len(m.alerts) > 0 {
			switch msg.Type {
			case tea.KeyEnter, tea.KeyEsc:
				m.alerts = m.alerts[1:]
			}
			return m, nil
		}

		if m.computing {
			return m, nil
		}

		switch msg.String() {
		case "esc":
			return m, tea.Quit
		case "tab", "down":
			return m, m.setFocus((m.focus + 1) % focusCount)
		case "shift+tab", "up":
			return m, m.setFocus((m.focus + focusCount - 1) % focusCount)
		case "pgup", "pgdown":
			return m, m.pane.Update(msg)
		case "enter":
			if m.focus == focusWeight {
				return m, m.setFocus(focusHeight)
			}
			m.computing = true
			return m, computeCmd(m.ctx, m.ctrl, m.box)
		}

		return m, m.updateInput(msg)
	}

	return m, nil
}

// updateInput forwards a keystroke to the focused field and copies any
// change into the controller's drafts.
func (m *Model) updateInput(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch m.focus {
	case focusWeight:
		m.weight, cmd = m.weight.Update(msg)
		if v := m.weight.Value(); v != m.ctrl.Weight() {
			m.ctrl.SetWeight(v)
		}
	case focusHeight:
		m.height, cmd = m.height.Update(msg)
		if v := m.height.Value(); v != m.ctrl.Height() {
			m.ctrl.SetHeight(v)
		}
	}
	return cmd
}

func (m *Model) setFocus(f focus) tea.Cmd {
	m.focus = f
	m.weight.Blur()
	m.height.Blur()
	switch f {
	case focusWeight:
		return m.weight.Focus()
	case focusHeight:
		return m.height.Focus()
	}
	return nil
}

// View renders the UI
func (m Model) View() string {
	if alert, ok := m.Alert(); ok {
		return lipgloss.Place(
			m.width,
			m.termH,
			lipgloss.Center,
			lipgloss.Center,
			AlertDialog{Alert: alert}.View(),
		)
	}

	var b strings.Builder

	b.WriteString(titleStyle.Render("BMI Calculator"))
	b.WriteString("\n")
	b.WriteString(m.field("Weight (lb)", m.weight, m.focus == focusWeight))
	b.WriteString("\n")
	b.WriteString(m.field("Height (in)", m.height, m.focus == focusHeight))
	b.WriteString("\n\n")

	button := inactiveButtonStyle.Render("Compute BMI")
	if m.focus == focusButton {
		button = activeButtonStyle.Render("Compute BMI")
	}
	b.WriteString(button)
	b.WriteString("\n\n")

	b.WriteString(resultBoxStyle.Render(m.resultText()))
	b.WriteString("\n\n")
	b.WriteString(m.pane.View())
	b.WriteString("\n")
	b.WriteString(helpStyle.Render(
		FormatKey("tab", "next") + " • " +
			FormatKey("enter", "compute") + " • " +
			FormatKey("pgup/pgdn", "scroll history") + " • " +
			FormatKey("esc", "quit"),
	))

	return b.String()
}

func (m Model) field(label string, input textinput.Model, focused bool) string {
	style := boxStyle
	if focused {
		style = activeBoxStyle
	}
	return labelStyle.Render(label) + "\n" + style.Render(input.View())
}

func (m Model) resultText() string {
	if m.computing {
		return mutedStyle.Render("Computing...")
	}
	result := m.ctrl.Result()
	if result == "" {
		return mutedStyle.Render(resultPlaceholder)
	}
	return categoryStyle(m.ctrl.Last().Category()).Render(result)
}

// Run starts the interactive form and blocks until the user quits.
func Run(ctx context.Context, store session.Store, view *history.View, opts ...session.Option) error {
	p := tea.NewProgram(New(ctx, store, view, opts...), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}
