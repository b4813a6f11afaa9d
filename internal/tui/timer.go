package tui

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"laboura/internal/format"
	"laboura/internal/models"
)

// TimerModel renders the elapsed time of the in-progress session. It only
// reads the session's start timestamp; stopping is performed by the caller
// after the view exits.
type TimerModel struct {
	width  int
	height int

	current *models.CurrentSession

	elapsed time.Duration

	// Animation state
	frame int

	stopping bool // user pressed S, caller should finalize the session
	exiting  bool // user detached, session keeps running
}

// timerTickMsg is sent every second to update the elapsed display
type timerTickMsg struct{}

// animationTickMsg is sent for the faster header animation
type animationTickMsg struct{}

// NewTimerModel creates a timer view for the given in-progress session.
func NewTimerModel(current *models.CurrentSession) TimerModel {
	start := time.Unix(int64(current.StartTS), 0)
	return TimerModel{
		current: current,
		elapsed: time.Since(start),
	}
}

// Init starts the timer and animation tickers
func (m TimerModel) Init() tea.Cmd {
	return tea.Batch(
		tea.Tick(time.Second, func(t time.Time) tea.Msg {
			return timerTickMsg{}
		}),
		tea.Tick(250*time.Millisecond, func(t time.Time) tea.Msg {
			return animationTickMsg{}
		}),
	)
}

// Update handles messages
func (m TimerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case timerTickMsg:
		m.elapsed = time.Since(time.Unix(int64(m.current.StartTS), 0))
		if !m.stopping && !m.exiting {
			return m, tea.Tick(time.Second, func(t time.Time) tea.Msg {
				return timerTickMsg{}
			})
		}
		return m, nil

	case animationTickMsg:
		m.frame = (m.frame + 1) % 4
		if !m.stopping && !m.exiting {
			return m, tea.Tick(250*time.Millisecond, func(t time.Time) tea.Msg {
				return animationTickMsg{}
			})
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "s", "S":
			// Stop and save
			m.stopping = true
			return m, tea.Quit
		case "ctrl+c", "esc", "q":
			// Detach, session keeps running
			m.exiting = true
			return m, tea.Quit
		}
	}

	return m, nil
}

// View renders the timer
func (m TimerModel) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	animChars := []string{"⏱", "⏲", "⏱", "⏲"}
	header := lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorAccentBright)).
		Bold(true).
		Align(lipgloss.Center).
		Width(m.width).
		Render(fmt.Sprintf("%s  TRACKING TIME  %s", animChars[m.frame], animChars[m.frame]))

	selection := lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorAccentMain)).
		Bold(true).
		Align(lipgloss.Center).
		Width(m.width).
		Render(fmt.Sprintf("%s / %s", m.current.Section, m.current.Sub))

	clock := lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorPrimaryText)).
		Bold(true).
		Align(lipgloss.Center).
		Width(m.width).
		Render(format.HMS(int(m.elapsed.Seconds())))

	started := lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorSecondaryText)).
		Align(lipgloss.Center).
		Width(m.width).
		Render("since " + format.ToISO(m.current.StartTS))

	help := lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorHelpText)).
		Align(lipgloss.Center).
		Width(m.width).
		Render("s: stop and save  •  q/esc: detach and keep running")

	content := lipgloss.JoinVertical(
		lipgloss.Left,
		header,
		"",
		selection,
		"",
		clock,
		started,
	)

	gap := m.height - lipgloss.Height(content) - 2
	if gap < 0 {
		gap = 0
	}
	return lipgloss.JoinVertical(
		lipgloss.Left,
		content,
		lipgloss.NewStyle().Height(gap).Render(""),
		help,
	)
}

// RunTimer shows the live timer for the in-progress session. It returns
// true when the user asked to stop the session; the caller performs the
// actual stop.
func RunTimer(current *models.CurrentSession) (bool, error) {
	p := tea.NewProgram(NewTimerModel(current), tea.WithAltScreen())
	finalModel, err := p.Run()
	if err != nil {
		return false, err
	}
	if m, ok := finalModel.(TimerModel); ok {
		return m.stopping, nil
	}
	return false, nil
}
