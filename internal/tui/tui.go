// Package tui provides a Bubble Tea terminal user interface for bingpot.
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/handiism/bingpot/internal/config"
	"github.com/handiism/bingpot/internal/download"
	"github.com/handiism/bingpot/internal/model"
)

// Styles for the TUI
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#00809D")).
			MarginBottom(1)

	subtitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#4ECDC4"))

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#95E1A3"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	warningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFE66D"))

	infoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#A8DADC"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6C757D"))

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#4ECDC4")).
			Padding(1, 2)
)

// maxLogs is how many log lines stay on screen.
const maxLogs = 10

// timeNow is swapped in tests.
var timeNow = time.Now

// State represents the current UI state.
type State int

const (
	StateInput State = iota
	StateDownloading
	StateComplete
	StateError
)

// LogEntry represents a log message in the UI.
type LogEntry struct {
	Message string
	Level   download.ProgressLevel
}

// Model is the Bubble Tea model for the TUI.
type Model struct {
	state     State
	textInput textinput.Model
	spinner   spinner.Model
	progress  progress.Model
	settings  *config.Settings
	logs      []LogEntry
	written   []string
	err       error

	// Download context
	ctx    context.Context
	cancel context.CancelFunc

	// Pipeline events flow through here while a batch runs.
	events chan download.ProgressEvent

	// Batch progress
	totalDays  int
	doneDays   int
	bytesRead  int64
	bytesTotal int64

	// Options
	wallpaper bool
	verbose   bool

	width  int
	height int
}

// NewModel creates a new TUI model.
func NewModel(settings *config.Settings) Model {
	if settings == nil {
		settings = config.DefaultSettings()
	}

	ti := textinput.New()
	ti.Placeholder = "8-15, 0 or 2024-03-14"
	ti.Focus()
	ti.CharLimit = 200
	ti.Width = 60

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#00809D"))

	prog := progress.New(progress.WithDefaultGradient())
	prog.Width = 50

	ctx, cancel := context.WithCancel(context.Background())

	return Model{
		state:     StateInput,
		textInput: ti,
		spinner:   sp,
		progress:  prog,
		settings:  settings,
		logs:      make([]LogEntry, 0),
		ctx:       ctx,
		cancel:    cancel,
	}
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.spinner.Tick)
}

// Message types
type (
	// ProgressMsg carries one pipeline progress event.
	ProgressMsg struct {
		Event download.ProgressEvent
	}

	// DoneMsg is sent when the batch finishes, successfully or not.
	DoneMsg struct {
		Written []string
		Err     error
	}
)

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.progress.Width = msg.Width - 20
		if m.progress.Width > 80 {
			m.progress.Width = 80
		}
		if m.progress.Width < 20 {
			m.progress.Width = 20
		}
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			m.cancel()
			return m, tea.Quit

		case "esc":
			if m.state == StateInput {
				return m, tea.Quit
			}
			if m.state == StateDownloading {
				m.cancel()
			}

		case "enter":
			if m.state == StateInput {
				return m.start()
			}

		case "w":
			if m.state == StateInput {
				m.wallpaper = !m.wallpaper
				return m, nil
			}

		case "v":
			if m.state == StateInput {
				m.verbose = !m.verbose
				return m, nil
			}

		case "q":
			if m.state == StateComplete || m.state == StateError {
				return m, tea.Quit
			}

		case "r":
			if m.state == StateComplete || m.state == StateError {
				m = m.reset()
				return m, textinput.Blink
			}
		}

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)

	case ProgressMsg:
		cmds = append(cmds, m.handleEvent(msg.Event), waitForEvent(m.events))

	case DoneMsg:
		m.written = msg.Written
		m.events = nil
		switch {
		case msg.Err != nil && m.ctx.Err() != nil:
			m.state = StateError
			m.err = fmt.Errorf("cancelled by user")
		case msg.Err != nil:
			m.state = StateError
			m.err = msg.Err
		default:
			m.state = StateComplete
		}

	case progress.FrameMsg:
		progressModel, cmd := m.progress.Update(msg)
		m.progress = progressModel.(progress.Model)
		cmds = append(cmds, cmd)
	}

	// Update text input
	if m.state == StateInput {
		var cmd tea.Cmd
		m.textInput, cmd = m.textInput.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

// start validates the input and launches the batch.
func (m Model) start() (tea.Model, tea.Cmd) {
	var dates []model.Date
	today := model.DateOf(timeNow())
	if !m.wallpaper {
		var err error
		dates, err = model.ParseSelection(m.textInput.Value(), today)
		if err != nil {
			m.logs = []LogEntry{{Message: err.Error(), Level: download.LevelError}}
			return m, nil
		}
	}

	m.state = StateDownloading
	m.totalDays = len(dates)
	if m.wallpaper {
		m.totalDays = 1
	}
	m.doneDays = 0
	m.logs = nil
	m.events = make(chan download.ProgressEvent, 64)

	return m, tea.Batch(m.runBatch(dates, today), waitForEvent(m.events), m.spinner.Tick)
}

func (m Model) reset() Model {
	m.state = StateInput
	m.logs = nil
	m.written = nil
	m.err = nil
	m.totalDays = 0
	m.doneDays = 0
	m.bytesRead = 0
	m.bytesTotal = 0
	m.ctx, m.cancel = context.WithCancel(context.Background())
	m.textInput.SetValue("")
	m.textInput.Focus()
	return m
}

func (m *Model) handleEvent(event download.ProgressEvent) tea.Cmd {
	if event.Message == "" {
		m.bytesRead = event.BytesRead
		m.bytesTotal = event.BytesTotal
		return nil
	}

	var cmd tea.Cmd
	if event.Stage == download.StageWritten {
		m.doneDays++
		m.bytesRead, m.bytesTotal = 0, 0
		if m.totalDays > 0 {
			cmd = m.progress.SetPercent(float64(m.doneDays) / float64(m.totalDays))
		}
	}

	if event.Level == download.LevelVerbose && !m.verbose {
		return cmd
	}
	m.logs = append(m.logs, LogEntry{Message: event.Message, Level: event.Level})
	if len(m.logs) > maxLogs {
		m.logs = m.logs[len(m.logs)-maxLogs:]
	}
	return cmd
}

// runBatch runs the pipeline in the background and closes the event
// channel once it returns. Offsets are measured from today, the same date
// the selection was parsed against.
func (m Model) runBatch(dates []model.Date, today model.Date) tea.Cmd {
	ctx, events, settings, wallpaper := m.ctx, m.events, m.settings, m.wallpaper
	return func() tea.Msg {
		pipeline := download.NewPipeline(settings, func(event download.ProgressEvent) {
			select {
			case events <- event:
			case <-ctx.Done():
			}
		})

		var written []string
		var err error
		if wallpaper {
			var path string
			path, err = pipeline.GetWallpaper(ctx)
			if err == nil {
				written = []string{path}
			}
		} else {
			written, err = pipeline.GetImagesAt(ctx, dates, today)
		}
		close(events)
		return DoneMsg{Written: written, Err: err}
	}
}

// waitForEvent delivers the next pipeline event, or nothing once the
// channel is closed.
func waitForEvent(events <-chan download.ProgressEvent) tea.Cmd {
	if events == nil {
		return nil
	}
	return func() tea.Msg {
		event, ok := <-events
		if !ok {
			return nil
		}
		return ProgressMsg{Event: event}
	}
}

// View renders the UI.
func (m Model) View() string {
	var b strings.Builder

	// Header
	b.WriteString(titleStyle.Render("bingpot"))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("Bing image of the day archive"))
	b.WriteString("\n\n")

	switch m.state {
	case StateInput:
		b.WriteString(m.viewInput())
	case StateDownloading:
		b.WriteString(m.viewDownloading())
	case StateComplete:
		b.WriteString(m.viewComplete())
	case StateError:
		b.WriteString(m.viewError())
	}

	// Footer
	b.WriteString("\n")
	b.WriteString(dimStyle.Render(m.getHelpText()))

	return b.String()
}

func (m Model) viewInput() string {
	var b strings.Builder

	b.WriteString(subtitleStyle.Render("Days to fetch (offsets, ranges or dates):"))
	b.WriteString("\n\n")
	b.WriteString(m.textInput.View())
	b.WriteString("\n\n")

	wallpaperCheck := "[ ]"
	if m.wallpaper {
		wallpaperCheck = "[x]"
	}
	verboseCheck := "[ ]"
	if m.verbose {
		verboseCheck = "[x]"
	}

	b.WriteString(infoStyle.Render("Options:"))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("  %s Only today's image as %s (w)\n", wallpaperCheck, download.WallpaperFileName))
	b.WriteString(fmt.Sprintf("  %s Verbose/debug output (v)\n", verboseCheck))
	b.WriteString("\n")

	// Input errors land in the log.
	b.WriteString(m.renderLogs())

	return b.String()
}

func (m Model) viewDownloading() string {
	var b strings.Builder

	b.WriteString(m.spinner.View())
	b.WriteString(" ")
	b.WriteString(subtitleStyle.Render(fmt.Sprintf("Fetching %d image(s)...", m.totalDays)))
	b.WriteString("\n\n")

	var percent float64
	if m.totalDays > 0 {
		percent = float64(m.doneDays) / float64(m.totalDays)
	}
	b.WriteString(m.progress.ViewAs(percent))
	b.WriteString("\n")

	b.WriteString(infoStyle.Render(fmt.Sprintf(
		"Images: %d/%d | Current: %s",
		m.doneDays,
		m.totalDays,
		formatBytes(m.bytesRead, m.bytesTotal),
	)))
	b.WriteString("\n\n")

	b.WriteString(m.renderLogs())

	return b.String()
}

func (m Model) viewComplete() string {
	var b strings.Builder

	lines := []string{"Done!", ""}
	for _, path := range m.written {
		lines = append(lines, "  "+path)
	}
	b.WriteString(boxStyle.Render(strings.Join(lines, "\n")))

	return b.String()
}

func (m Model) viewError() string {
	var b strings.Builder

	b.WriteString(errorStyle.Render("Error occurred:"))
	b.WriteString("\n\n")
	if m.err != nil {
		b.WriteString(fmt.Sprintf("  %s", m.err.Error()))
		b.WriteString("\n")
	}
	if len(m.written) > 0 {
		b.WriteString("\n")
		b.WriteString(dimStyle.Render(fmt.Sprintf("Saved before the failure: %s", strings.Join(m.written, ", "))))
		b.WriteString("\n")
	}

	return b.String()
}

func (m Model) renderLogs() string {
	var b strings.Builder

	for _, log := range m.logs {
		var style lipgloss.Style
		prefix := "•"
		switch log.Level {
		case download.LevelError:
			style = errorStyle
			prefix = "✗"
		case download.LevelWarning:
			style = warningStyle
			prefix = "!"
		case download.LevelSuccess:
			style = successStyle
			prefix = "✓"
		case download.LevelInfo:
			style = infoStyle
			prefix = "›"
		default:
			style = dimStyle
		}
		b.WriteString(style.Render(prefix + " " + log.Message))
		b.WriteString("\n")
	}

	return b.String()
}

func (m Model) getHelpText() string {
	switch m.state {
	case StateInput:
		return "enter: start • w: wallpaper • v: verbose • esc: quit"
	case StateDownloading:
		return "esc: cancel"
	case StateComplete, StateError:
		return "r: new batch • q: quit"
	}
	return ""
}

func formatBytes(read, total int64) string {
	if total > 0 {
		return fmt.Sprintf("%.2f / %.2f MB", float64(read)/1024/1024, float64(total)/1024/1024)
	}
	return fmt.Sprintf("%.2f MB", float64(read)/1024/1024)
}

// Run starts the TUI application.
func Run(settings *config.Settings) error {
	p := tea.NewProgram(NewModel(settings), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
