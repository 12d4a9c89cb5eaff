// Package tui provides the interactive terminal UI for voxdo.
package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	// Colors
	primaryColor = lipgloss.Color("#7C3AED")
	successColor = lipgloss.Color("#10B981")
	warningColor = lipgloss.Color("#F59E0B")
	errorColor   = lipgloss.Color("#EF4444")
	mutedColor   = lipgloss.Color("#6B7280")
	fgColor      = lipgloss.Color("#F9FAFB")

	// Styles
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(primaryColor).
			Padding(0, 1)

	statusBarStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("#374151")).
			Foreground(fgColor).
			Padding(0, 1)

	inputBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(primaryColor).
			Padding(0, 1)

	taskItemStyle = lipgloss.NewStyle().
			Padding(0, 2)

	selectedStyle = lipgloss.NewStyle().
			Background(primaryColor).
			Foreground(fgColor).
			Bold(true).
			Padding(0, 2)

	helpStyle = lipgloss.NewStyle().
			Foreground(mutedColor).
			Italic(true)

	previewStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(warningColor).
			Padding(0, 1)

	priorityHighStyle = lipgloss.NewStyle().Foreground(errorColor).Bold(true)
	priorityLowStyle  = lipgloss.NewStyle().Foreground(mutedColor)
	replyOKStyle      = lipgloss.NewStyle().Foreground(successColor)
	replyFailStyle    = lipgloss.NewStyle().Foreground(errorColor)
)

// App is the main TUI application model.
type App struct {
	client       *Client
	tasks        []TaskItem
	selectedIdx  int
	input        textinput.Model
	width        int
	height       int
	message      string
	messageOK    bool
	filter       string
	filterIdx    int
	loading      bool
	daemonOnline bool

	// Pending parse awaiting confirmation. While set, enter applies the
	// utterance and esc discards it.
	pending           *CommandPreview
	pendingTranscript string
}

var filters = []string{"", "pending", "in-progress", "completed"}
var filterNames = []string{"ALL", "PENDING", "IN PROGRESS", "DONE"}

// New creates a new TUI application.
func New(apiAddr string) *App {
	ti := textinput.New()
	ti.Placeholder = "Say something: add task buy milk tomorrow at 5pm"
	ti.Focus()
	ti.CharLimit = 256
	ti.Width = 80

	return &App{
		client: NewClient(apiAddr),
		input:  ti,
	}
}

// Run starts the TUI application.
func (a *App) Run() error {
	p := tea.NewProgram(a, tea.WithAltScreen())
	_, err := p.Run()
	return err
}

// Init implements tea.Model
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		textinput.Blink,
		a.fetchTasks(),
		a.checkDaemon(),
		a.tickCmd(),
	)
}

// Update implements tea.Model
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return a, tea.Quit

		case "esc":
			if a.pending != nil {
				a.pending = nil
				a.pendingTranscript = ""
				a.message = "Discarded."
				a.messageOK = true
				return a, nil
			}
			return a, tea.Quit

		case "up":
			if a.selectedIdx > 0 {
				a.selectedIdx--
			}

		case "down":
			if a.selectedIdx < len(a.tasks)-1 {
				a.selectedIdx++
			}

		case "tab":
			a.filterIdx = (a.filterIdx + 1) % len(filters)
			a.filter = filters[a.filterIdx]
			return a, a.fetchTasks()

		case "enter":
			if a.pending != nil {
				transcript := a.pendingTranscript
				a.pending = nil
				a.pendingTranscript = ""
				return a, a.sendUtterance(transcript)
			}
			transcript := strings.TrimSpace(a.input.Value())
			if transcript == "" {
				return a, nil
			}
			a.input.SetValue("")
			return a, a.previewUtterance(transcript)

		case "ctrl+r":
			return a, a.fetchTasks()

		case "ctrl+d":
			if a.pending == nil && len(a.tasks) > 0 {
				return a, a.completeSelected()
			}

		case "ctrl+x":
			if a.pending == nil && len(a.tasks) > 0 {
				return a, a.deleteSelected()
			}
		}

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.input.Width = msg.Width - 4

	case tasksLoadedMsg:
		a.loading = false
		a.tasks = msg.tasks
		if a.selectedIdx >= len(a.tasks) {
			a.selectedIdx = max(0, len(a.tasks)-1)
		}
		return a, nil

	case previewMsg:
		a.pending = msg.preview
		a.pendingTranscript = msg.transcript
		a.message = ""
		return a, nil

	case replyMsg:
		a.message = msg.reply
		a.messageOK = msg.ok
		return a, a.fetchTasks()

	case daemonStatusMsg:
		a.daemonOnline = msg.online
		return a, nil

	case tickMsg:
		return a, tea.Batch(a.fetchTasks(), a.checkDaemon(), a.tickCmd())

	case errMsg:
		a.message = "Error: " + msg.err.Error()
		a.messageOK = false
		return a, nil
	}

	var cmd tea.Cmd
	a.input, cmd = a.input.Update(msg)
	return a, cmd
}

// View implements tea.Model
func (a *App) View() string {
	var b strings.Builder

	daemon := "daemon offline"
	if a.daemonOnline {
		daemon = "daemon online"
	}
	b.WriteString(titleStyle.Render("voxdo"))
	b.WriteString(statusBarStyle.Render(fmt.Sprintf(" %s | %s | %d tasks ", daemon, filterNames[a.filterIdx], len(a.tasks))))
	b.WriteString("\n\n")

	if a.loading {
		b.WriteString(taskItemStyle.Render("Loading tasks..."))
	} else if len(a.tasks) == 0 {
		b.WriteString(taskItemStyle.Render("No tasks. Type an utterance below to add one."))
	} else {
		for i, t := range a.tasks {
			line := a.renderTask(t)
			if i == a.selectedIdx {
				b.WriteString(selectedStyle.Render(line))
			} else {
				b.WriteString(taskItemStyle.Render(line))
			}
			b.WriteString("\n")
		}
	}
	b.WriteString("\n")

	if a.pending != nil {
		b.WriteString(previewStyle.Render(a.renderPreview()))
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("enter apply • esc discard"))
		b.WriteString("\n")
	} else {
		b.WriteString(inputBoxStyle.Render(a.input.View()))
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("enter preview • tab filter • ctrl+d complete • ctrl+x delete • ctrl+r refresh • ctrl+c quit"))
		b.WriteString("\n")
	}

	if a.message != "" {
		style := replyOKStyle
		if !a.messageOK {
			style = replyFailStyle
		}
		b.WriteString(style.Render(a.message))
		b.WriteString("\n")
	}

	return b.String()
}

func (a *App) renderTask(t TaskItem) string {
	mark := "[ ]"
	if t.Status == "completed" {
		mark = "[x]"
	} else if t.Status == "in-progress" {
		mark = "[~]"
	}

	prio := ""
	switch t.Priority {
	case "high":
		prio = priorityHighStyle.Render(" !high")
	case "low":
		prio = priorityLowStyle.Render(" low")
	}

	due := ""
	if t.Due != "" {
		due = helpStyle.Render(" due " + t.Due)
	}

	return fmt.Sprintf("%s %s%s%s", mark, t.Title, prio, due)
}

func (a *App) renderPreview() string {
	p := a.pending
	var parts []string
	parts = append(parts, "action: "+p.Action)
	if p.Title != "" {
		parts = append(parts, "title: "+p.Title)
	}
	parts = append(parts, "priority: "+p.Priority)
	parts = append(parts, "status: "+p.Status)
	if p.DueDate != "" {
		parts = append(parts, "due: "+p.DueDate)
	}
	if p.DueTime != "" {
		parts = append(parts, "time: "+p.DueTime)
	}
	return "Heard: " + a.pendingTranscript + "\n" + strings.Join(parts, "  ")
}

// --- Commands ---

func (a *App) fetchTasks() tea.Cmd {
	a.loading = true
	return func() tea.Msg {
		tasks, err := a.client.ListTasks(a.filter)
		if err != nil {
			return errMsg{err}
		}
		return tasksLoadedMsg{tasks}
	}
}

func (a *App) previewUtterance(transcript string) tea.Cmd {
	return func() tea.Msg {
		preview, err := a.client.PreviewUtterance(transcript)
		if err != nil {
			return errMsg{err}
		}
		return previewMsg{transcript: transcript, preview: preview}
	}
}

func (a *App) sendUtterance(transcript string) tea.Cmd {
	return func() tea.Msg {
		result, err := a.client.SendUtterance(transcript)
		if err != nil {
			return errMsg{err}
		}
		return replyMsg{ok: result.OK, reply: result.Reply}
	}
}

func (a *App) completeSelected() tea.Cmd {
	task := a.tasks[a.selectedIdx]
	return func() tea.Msg {
		if err := a.client.CompleteTask(task.ID); err != nil {
			return errMsg{err}
		}
		return replyMsg{ok: true, reply: fmt.Sprintf("Marked %q as completed.", task.Title)}
	}
}

func (a *App) deleteSelected() tea.Cmd {
	task := a.tasks[a.selectedIdx]
	return func() tea.Msg {
		if err := a.client.DeleteTask(task.ID); err != nil {
			return errMsg{err}
		}
		return replyMsg{ok: true, reply: fmt.Sprintf("Deleted %q.", task.Title)}
	}
}

func (a *App) checkDaemon() tea.Cmd {
	return func() tea.Msg {
		ok, err := a.client.CheckHealth()
		if err != nil {
			return daemonStatusMsg{online: false}
		}
		return daemonStatusMsg{online: ok}
	}
}

// tickCmd drives the periodic task list and daemon status refresh.
func (a *App) tickCmd() tea.Cmd {
	return tea.Tick(time.Minute, func(time.Time) tea.Msg {
		return tickMsg{}
	})
}

// --- Messages ---

type tasksLoadedMsg struct {
	tasks []TaskItem
}

type previewMsg struct {
	transcript string
	preview    *CommandPreview
}

type replyMsg struct {
	ok    bool
	reply string
}

type daemonStatusMsg struct {
	online bool
}

type errMsg struct {
	err error
}

type tickMsg struct{}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
