package cli

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

// List styles
var (
	listDimStyle = lipgloss.NewStyle().Foreground(colorDim)
)

// =============================================================================
// generateModel - Live generation progress
// =============================================================================

// Messages sent by the generation driver.
type (
	// seriesLoadedMsg reports a loaded series file.
	seriesLoadedMsg struct {
		family string
		parts  int
	}

	// partStartMsg reports that a part's generation began.
	partStartMsg struct {
		name string
	}

	// partDoneMsg reports a finished part.
	partDoneMsg struct {
		name     string
		cached   bool
		nodes    int
		duration time.Duration
		err      error
	}

	// generateDoneMsg reports the end of the whole run.
	generateDoneMsg struct {
		err error
	}

	// frameMsg advances the in-progress spinner glyph.
	frameMsg time.Time
)

type partStatus int

const (
	statusRunning partStatus = iota
	statusFresh
	statusCached
	statusFailed
)

// partRow is one line of the progress table.
type partRow struct {
	name     string
	status   partStatus
	nodes    int
	duration time.Duration
}

// generateModel is the bubbletea model for generation progress. Rows
// appear as parts start and update as they finish; the view follows
// the newest rows when the table outgrows the window.
type generateModel struct {
	family string
	total  int
	rows   []partRow
	frame  int
	height int
	done   bool
	err    error
}

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// newGenerateModel creates an empty progress model.
func newGenerateModel() generateModel {
	return generateModel{height: 15}
}

func (m generateModel) Init() tea.Cmd {
	return tick()
}

func tick() tea.Cmd {
	return tea.Tick(80*time.Millisecond, func(t time.Time) tea.Msg {
		return frameMsg(t)
	})
}

func (m generateModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.height = msg.Height - 8
		if m.height < 3 {
			m.height = 3
		}
	case frameMsg:
		if m.done {
			return m, nil
		}
		m.frame++
		return m, tick()
	case seriesLoadedMsg:
		m.family = msg.family
		m.total += msg.parts
	case partStartMsg:
		m.rows = append(m.rows, partRow{name: msg.name, status: statusRunning})
	case partDoneMsg:
		m.finish(msg)
	case generateDoneMsg:
		m.done = true
		m.err = msg.err
		return m, tea.Quit
	}
	return m, nil
}

// finish updates the row opened by the matching partStartMsg.
func (m *generateModel) finish(msg partDoneMsg) {
	for i := len(m.rows) - 1; i >= 0; i-- {
		if m.rows[i].name != msg.name {
			continue
		}
		switch {
		case msg.err != nil:
			m.rows[i].status = statusFailed
		case msg.cached:
			m.rows[i].status = statusCached
		default:
			m.rows[i].status = statusFresh
		}
		m.rows[i].nodes = msg.nodes
		m.rows[i].duration = msg.duration
		return
	}
}

// tally sums finished parts, nodes and cache hits.
func (m generateModel) tally() (parts, nodes, hits int) {
	for _, r := range m.rows {
		switch r.status {
		case statusCached:
			hits++
		case statusFresh:
		default:
			continue
		}
		parts++
		nodes += r.nodes
	}
	return parts, nodes, hits
}

func (m generateModel) statusCell(row partRow) string {
	switch row.status {
	case statusRunning:
		return styleIconSpinner.Render(spinnerFrames[m.frame%len(spinnerFrames)])
	case statusCached:
		return styleCached.Render(iconSuccess)
	case statusFailed:
		return styleIconError.Render(iconError)
	default:
		return styleIconSuccess.Render(iconSuccess)
	}
}

func (m generateModel) View() string {
	var b strings.Builder

	title := "Generating"
	if m.family != "" {
		title = fmt.Sprintf("Generating %s parts", m.family)
	}
	b.WriteString(StyleTitle.Render(title))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("q quit"))
	b.WriteString("\n\n")

	height := m.height
	if height <= 0 {
		height = 15
	}
	offset := 0
	if len(m.rows) > height {
		offset = len(m.rows) - height
	}

	rows := [][]string{}
	for i := offset; i < len(m.rows); i++ {
		r := m.rows[i]
		nodes, dur, source := "", "", ""
		switch r.status {
		case statusRunning:
			source = "..."
		case statusCached:
			nodes = "-"
			dur = r.duration.Round(time.Millisecond).String()
			source = iconCached
		case statusFailed:
			source = "failed"
		default:
			nodes = fmt.Sprintf("%d", r.nodes)
			dur = r.duration.Round(time.Millisecond).String()
			source = iconFresh
		}
		rows = append(rows, []string{m.statusCell(r), r.name, nodes, dur, source})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Part", "Nodes", "Time", "Source").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			idx := offset + row
			if idx >= len(m.rows) {
				return lipgloss.NewStyle()
			}
			switch m.rows[idx].status {
			case statusRunning:
				return lipgloss.NewStyle().Foreground(colorCyan)
			case statusCached:
				return lipgloss.NewStyle().Foreground(colorGreen)
			case statusFailed:
				return lipgloss.NewStyle().Foreground(colorRed)
			}
			return lipgloss.NewStyle().Foreground(colorWhite)
		})

	b.WriteString(t.Render())
	b.WriteString("\n\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.completed(), m.total)))

	return b.String()
}

// completed counts rows that are no longer running.
func (m generateModel) completed() int {
	n := 0
	for _, r := range m.rows {
		if r.status != statusRunning {
			n++
		}
	}
	return n
}
