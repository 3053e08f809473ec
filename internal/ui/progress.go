package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"lilit/internal/driver"
)

// stageInfo: подпись в колонке статуса и доля готовности файла на этой стадии.
type stageInfo struct {
	label  string
	weight float64
}

var stages = map[driver.Stage]stageInfo{
	driver.StageLoad:    {"loading", 0.1},
	driver.StageParse:   {"parsing", 0.3},
	driver.StageIndex:   {"indexing", 0.6},
	driver.StageResolve: {"resolving", 0.8},
}

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("7"))
	activeStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	statusStyles = map[string]lipgloss.Style{
		"done":   lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
		"error":  lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
		"queued": lipgloss.NewStyle().Foreground(lipgloss.Color("7")),
	}
)

const statusColumn = 12

type fileItem struct {
	path     string
	status   string
	stage    driver.Stage
	finished bool // done или error
}

type progressModel struct {
	title      string
	events     <-chan driver.Event
	spinner    spinner.Model
	prog       progress.Model
	items      []fileItem
	byPath     map[string]int
	stageLabel string
	width      int
	done       bool
}

type (
	eventMsg driver.Event
	doneMsg  struct{}
)

// NewProgressModel renders per-file progress of a check run. It reads events
// until the channel is closed, then quits.
func NewProgressModel(title string, files []string, events <-chan driver.Event) tea.Model {
	m := &progressModel{
		title:   title,
		events:  events,
		spinner: spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(activeStyle)),
		prog:    progress.New(progress.WithDefaultGradient(), progress.WithWidth(76)),
		items:   make([]fileItem, len(files)),
		byPath:  make(map[string]int, len(files)),
		width:   80,
	}
	for i, file := range files {
		m.items[i] = fileItem{path: file, status: "queued"}
		m.byPath[file] = i
	}
	return m
}

func (m *progressModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.next())
}

func (m *progressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch msg := msg.(type) {
	case eventMsg:
		cmd = tea.Batch(m.applyEvent(driver.Event(msg)), m.next())
	case doneMsg:
		m.done = true
		cmd = tea.Quit
	case spinner.TickMsg:
		if !m.done {
			m.spinner, cmd = m.spinner.Update(msg)
		}
	case tea.WindowSizeMsg:
		if msg.Width > 0 {
			m.width = msg.Width
			m.prog.Width = msg.Width - 4
		}
	case progress.FrameMsg:
		var pm tea.Model
		pm, cmd = m.prog.Update(msg)
		m.prog = pm.(progress.Model)
	}
	return m, cmd
}

func (m *progressModel) header() string {
	h := m.title
	if m.stageLabel != "" {
		h += " (" + m.stageLabel + ")"
	}
	if m.done {
		return "done: " + h
	}
	return m.spinner.View() + " " + h
}

func (m *progressModel) View() string {
	if len(m.items) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString(titleStyle.Render(m.header()))
	b.WriteString("\n\n")

	nameWidth := max(m.width-statusColumn-4, 20)
	finished := 0
	for _, item := range m.items {
		if item.finished {
			finished++
		}
		status := statusStyle(item.status).Render(fmt.Sprintf("%*s", statusColumn, item.status))
		fmt.Fprintf(&b, "  %s %s\n", status, truncate(item.path, nameWidth))
	}

	fmt.Fprintf(&b, "\n%d/%d files\n", finished, len(m.items))
	if m.done {
		b.WriteString(m.prog.ViewAs(1))
	} else {
		b.WriteString(m.prog.View())
	}
	b.WriteString("\n")
	return b.String()
}

// next blocks on the event channel; a closed channel ends the program.
func (m *progressModel) next() tea.Cmd {
	return func() tea.Msg {
		if ev, ok := <-m.events; ok {
			return eventMsg(ev)
		}
		return doneMsg{}
	}
}

// applyEvent: события без File относятся ко всей программе и меняют заголовок.
func (m *progressModel) applyEvent(ev driver.Event) tea.Cmd {
	label := statusLabel(ev.Stage, ev.Status)
	if label == "" {
		return nil
	}
	if ev.File == "" {
		m.stageLabel = label
		return nil
	}
	idx, ok := m.byPath[ev.File]
	if !ok {
		return nil
	}
	item := &m.items[idx]
	item.status = label
	item.stage = ev.Stage
	item.finished = ev.Status == driver.StatusDone || ev.Status == driver.StatusError
	return m.prog.SetPercent(m.percent())
}

// percent is the mean completion over files.
func (m *progressModel) percent() float64 {
	if len(m.items) == 0 {
		return 0
	}
	var sum float64
	for _, item := range m.items {
		if item.finished {
			sum++
			continue
		}
		sum += stages[item.stage].weight
	}
	return sum / float64(len(m.items))
}

func statusLabel(stage driver.Stage, status driver.Status) string {
	switch status {
	case driver.StatusQueued:
		return "queued"
	case driver.StatusDone:
		return "done"
	case driver.StatusError:
		return "error"
	case driver.StatusWorking:
		return stages[stage].label
	}
	return ""
}

func statusStyle(status string) lipgloss.Style {
	if st, ok := statusStyles[status]; ok {
		return st
	}
	return activeStyle
}

// truncate shortens value to width display cells, marking the cut with "...".
func truncate(value string, width int) string {
	if width <= 0 || runewidth.StringWidth(value) <= width {
		return value
	}
	tail := "..."
	if width <= len(tail) {
		tail = ""
	}
	return runewidth.Truncate(value, width, tail)
}
