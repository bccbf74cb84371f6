// ABOUTME: Reusable pieces of the BMI form: modal alert and history pane.
// ABOUTME: The alert blocks input until acknowledged; the pane scrolls history lines.
package tui

import (
	"strings"
	"sync"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/harperreed/bmi/internal/history"
	"github.com/harperreed/bmi/internal/session"
)

// AlertDialog is a blocking notification dismissed with enter or esc.
type AlertDialog struct {
	Alert session.Alert
}

// View renders the alert dialog
func (d AlertDialog) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(d.Alert.Title))
	b.WriteString("\n")
	b.WriteString(d.Alert.Message)
	b.WriteString("\n\n")
	b.WriteString(activeButtonStyle.Render("OK"))
	b.WriteString("\n")
	b.WriteString(helpStyle.Render(FormatKey("enter", "dismiss")))

	if d.Alert.Fatal {
		return fatalAlertStyle.Render(b.String())
	}
	return alertStyle.Render(b.String())
}

// alertBox collects alerts raised by the controller on the compute goroutine
// so they can be handed to Update in the completion message.
type alertBox struct {
	mu      sync.Mutex
	pending []session.Alert
}

func (b *alertBox) Alert(a session.Alert) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.pending = append(b.pending, a)
}

func (b *alertBox) take() []session.Alert {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := b.pending
	b.pending = nil
	return out
}

// HistoryPane shows the history view in a scrollable viewport.
type HistoryPane struct {
	view     *history.View
	viewport viewport.Model
}

// NewHistoryPane creates a pane over view with the given visible height.
func NewHistoryPane(view *history.View, width, height int) HistoryPane {
	p := HistoryPane{
		view:     view,
		viewport: viewport.New(width, height),
	}
	p.Sync()
	return p
}

// Sync copies the view's current lines into the viewport.
func (p *HistoryPane) Sync() {
	switch {
	case !p.view.Loaded():
		p.viewport.SetContent(mutedStyle.Render("Loading..."))
	case len(p.view.Lines()) == 0:
		p.viewport.SetContent(mutedStyle.Render("No measurements yet."))
	default:
		p.viewport.SetContent(strings.Join(p.view.Lines(), "\n"))
	}
	p.viewport.GotoTop()
}

// SetWidth resizes the viewport horizontally.
func (p *HistoryPane) SetWidth(w int) {
	p.viewport.Width = w
}

// Update scrolls the viewport.
func (p *HistoryPane) Update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	p.viewport, cmd = p.viewport.Update(msg)
	return cmd
}

// View renders the pane with its heading.
func (p HistoryPane) View() string {
	return titleStyle.Render(history.Heading) + "\n" + boxStyle.Render(p.viewport.View())
}
