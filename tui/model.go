// ABOUTME: Bubbletea dashboard showing live optimization progress
// ABOUTME: Watches the data directory and restarts the run when inputs change

// Package tui renders a live dashboard for a running timetable optimization:
// per-generation cost, conflicts, continuity, diversity and the current best
// schedule, with restart-on-edit via file watching.
package tui

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"course-scheduler/timetable"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/fsnotify/fsnotify"
)

// Key bindings for the dashboard
type keyMap struct {
	Restart key.Binding
	Quit    key.Binding
}

var keys = keyMap{
	Restart: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "restart"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

// Styles for the dashboard
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("12"))

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	valueStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("15"))

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("10"))

	doneStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("10"))

	errorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("196"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))
)

// Messages
type (
	updateMsg      Update
	runFinishedMsg struct{ epoch int }
	fileChangeMsg  struct{}
)

// model holds the dashboard state
type model struct {
	opts   Options
	runner Runner
	logf   func(string, ...interface{})

	epoch   int
	updates chan Update
	latest  Update
	running bool
	errMsg  string

	spinner  spinner.Model
	progress progress.Model
	viewport viewport.Model

	watcher *fsnotify.Watcher
	width   int
	height  int
	ready   bool
}

// Run starts the dashboard and blocks until the user quits
func Run(opts Options, runner Runner, logf func(string, ...interface{})) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}

	if err := watcher.Add(opts.DataDir); err != nil {
		_ = watcher.Close()

		return fmt.Errorf("failed to watch data directory: %w", err)
	}

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	m := model{
		opts:     opts,
		runner:   runner,
		logf:     logf,
		spinner:  sp,
		progress: progress.New(progress.WithDefaultGradient()),
		watcher:  watcher,
	}

	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		_ = watcher.Close()

		return fmt.Errorf("dashboard error: %w", err)
	}

	return watcher.Close()
}

// Init starts the spinner and enters the alternate screen. The first
// optimization epoch and the directory watch start on the first window size
// message.
func (m model) Init() tea.Cmd {
	return tea.Batch(
		m.spinner.Tick,
		tea.EnterAltScreen,
	)
}

// startEpoch launches the runner for the current epoch and returns the
// command that consumes its first frame
func (m *model) startEpoch() tea.Cmd {
	m.updates = make(chan Update, 16)
	m.running = true
	m.errMsg = ""

	go m.runner(m.epoch, m.updates)

	return waitForUpdate(m.updates, m.epoch)
}

// waitForUpdate returns a command that blocks for the next telemetry frame
func waitForUpdate(updates <-chan Update, epoch int) tea.Cmd {
	return func() tea.Msg {
		update, ok := <-updates
		if !ok {
			return runFinishedMsg{epoch: epoch}
		}

		return updateMsg(update)
	}
}

// waitForFileChange returns a command that waits for data directory events
func waitForFileChange(watcher *fsnotify.Watcher, logf func(string, ...interface{})) tea.Cmd {
	return func() tea.Msg {
		for {
			select {
			case event, ok := <-watcher.Events:
				if !ok {
					return nil
				}

				if event.Op&(fsnotify.Write|fsnotify.Create) != 0 {
					// Debounce: wait a bit for atomic writes to complete
					time.Sleep(100 * time.Millisecond)

					return fileChangeMsg{}
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return nil
				}

				if logf != nil {
					logf("[WATCHER] Error: %v", err)
				}
			}
		}
	}
}

// Update handles messages and updates the model
func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.progress.Width = msg.Width - 4

		headerHeight := 9 // title, status, two stat lines, progress bar, schedule header, two blank lines, one spare row
		footerHeight := 2 // help line, one spare row

		if !m.ready {
			m.viewport = viewport.New(msg.Width, msg.Height-headerHeight-footerHeight)
			m.ready = true

			// First size message: the watcher is live from Run, kick off the
			// optimization and the directory watch.
			cmds := []tea.Cmd{m.startEpoch()}
			if m.watcher != nil {
				cmds = append(cmds, waitForFileChange(m.watcher, m.logf))
			}

			return m, tea.Batch(cmds...)
		}

		m.viewport.Width = msg.Width
		m.viewport.Height = msg.Height - headerHeight - footerHeight

		return m, nil

	case updateMsg:
		update := Update(msg)
		if update.Epoch != m.epoch {
			// Frame from an abandoned epoch; don't rearm its channel
			return m, nil
		}

		m.latest = update
		if update.Err != nil {
			m.errMsg = update.Err.Error()
		}

		m.viewport.SetContent(renderSchedule(update))

		var progressCmd tea.Cmd
		if update.Generations > 0 {
			progressCmd = m.progress.SetPercent(float64(update.Generation+1) / float64(update.Generations))
		}

		return m, tea.Batch(waitForUpdate(m.updates, m.epoch), progressCmd)

	case runFinishedMsg:
		if msg.epoch == m.epoch {
			m.running = false
		}

		return m, nil

	case fileChangeMsg:
		if m.logf != nil {
			m.logf("[TUI] Data changed, restarting epoch %d", m.epoch+1)
		}

		m.epoch++

		return m, tea.Batch(m.startEpoch(), waitForFileChange(m.watcher, m.logf))

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)

		return m, cmd

	case progress.FrameMsg:
		pm, cmd := m.progress.Update(msg)
		m.progress = pm.(progress.Model)

		return m, cmd

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Quit):
			return m, tea.Quit

		case key.Matches(msg, keys.Restart):
			m.epoch++

			return m, m.startEpoch()
		}
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)

	return m, cmd
}

// View renders the dashboard
func (m model) View() string {
	if !m.ready {
		return "Loading..."
	}

	title := titleStyle.Render(fmt.Sprintf("Course Scheduler — %s", m.opts.DataDir))

	status := m.renderStatus()
	stats := m.renderStats()
	bar := m.progress.View()

	scheduleHeader := headerStyle.Render(fmt.Sprintf("%-15s %-15s %-30s %-10s %-20s",
		"Slot", "Classroom", "Course", "Code", "Instructor"))

	help := helpStyle.Render("r: restart | ↑/↓: scroll schedule | q: quit")

	return fmt.Sprintf("%s\n%s\n\n%s\n%s\n\n%s\n%s\n%s",
		title, status, stats, bar, scheduleHeader, m.viewport.View(), help)
}

// renderStatus renders the one-line run state
func (m model) renderStatus() string {
	if m.errMsg != "" {
		return errorStyle.Render("Error: " + m.errMsg)
	}

	if !m.running {
		if m.latest.Done {
			return doneStyle.Render(fmt.Sprintf("Converged at generation %d in %v (epoch %d)",
				m.latest.Convergence, m.latest.Elapsed.Round(time.Millisecond), m.epoch))
		}

		return doneStyle.Render(fmt.Sprintf("Finished (epoch %d)", m.epoch))
	}

	return fmt.Sprintf("%s Generation %d of %d (epoch %d)",
		m.spinner.View(), m.latest.Generation, m.latest.Generations, m.epoch)
}

// renderStats renders the telemetry block
func (m model) renderStats() string {
	stat := func(label, value string) string {
		return labelStyle.Render(label+" ") + valueStyle.Render(value)
	}

	line1 := strings.Join([]string{
		stat("cost:", fmt.Sprintf("%.2f", m.latest.BestCost)),
		stat("conflicts:", fmt.Sprintf("%d", m.latest.Conflicts)),
		stat("continuity:", fmt.Sprintf("%.1f%%", m.latest.ContinuityPct)),
	}, "   ")

	line2 := strings.Join([]string{
		stat("diversity:", fmt.Sprintf("%.4f", m.latest.Diversity)),
		stat("mutation:", fmt.Sprintf("%.3f", m.latest.MutationRate)),
		stat("elites:", fmt.Sprintf("%d", m.latest.EliteCount)),
	}, "   ")

	return line1 + "\n" + line2
}

// renderSchedule renders the best schedule of the latest frame for the viewport
func renderSchedule(update Update) string {
	if len(update.Schedule) == 0 {
		return labelStyle.Render("waiting for first generation...")
	}

	rows := make([]timetable.ScheduleRow, len(update.Schedule))
	copy(rows, update.Schedule)

	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].Slot.Start != rows[j].Slot.Start {
			return rows[i].Slot.Start < rows[j].Slot.Start
		}

		return rows[i].Classroom.Name < rows[j].Classroom.Name
	})

	lines := make([]string, 0, len(rows))

	for _, row := range rows {
		instructor := "-"
		if row.Instructor != nil {
			instructor = row.Instructor.Name
		}

		lines = append(lines, fmt.Sprintf("%-15s %-15s %-30s %-10s %-20s",
			row.Slot.String(),
			clip(row.Classroom.Name, 15),
			clip(row.Course.Name, 30),
			clip(row.Course.Code, 10),
			clip(instructor, 20),
		))
	}

	return strings.Join(lines, "\n")
}

// clip truncates a string to width characters
func clip(s string, width int) string {
	if len(s) <= width {
		return s
	}

	if width <= 1 {
		return s[:width]
	}

	return s[:width-1] + "…"
}
