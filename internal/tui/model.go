// Package tui provides the Bubble Tea editor interface.
package tui

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/readstat/internal/docstats"
	"github.com/verte-zerg/readstat/internal/document"
	"github.com/verte-zerg/readstat/internal/model"
	"github.com/verte-zerg/readstat/internal/store"
	"github.com/verte-zerg/readstat/internal/textstat"
)

const noMark = -1

// Model implements the Bubble Tea editor UI.
type Model struct {
	config model.Config
	path   string
	doc    *document.Document
	engine *docstats.Engine
	store  *store.Store

	area    textarea.Model
	metrics model.Metrics

	width  int
	height int

	markLine  int
	status    string
	statusErr bool
	dirty     bool
}

var (
	footerStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	selectionStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A"))
	statusStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	errorStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
)

// NewModel constructs an editor over doc. The engine must observe doc.
// A nil store disables snapshot recording.
func NewModel(cfg model.Config, path string, doc *document.Document, engine *docstats.Engine, st *store.Store) *Model {
	m := &Model{
		config:   cfg,
		path:     path,
		doc:      doc,
		engine:   engine,
		store:    st,
		markLine: noMark,
		metrics:  engine.Metrics(),
	}
	engine.Subscribe(func(metrics model.Metrics) {
		m.metrics = metrics
	})

	area := textarea.New()
	area.ShowLineNumbers = cfg.LineNumbers
	area.CharLimit = 0
	area.MaxHeight = 0
	area.Placeholder = "Start writing..."
	area.SetValue(doc.Text())
	area.Focus()
	m.area = area
	// The textarea sanitizes input (tabs, control runes); keep the
	// document equal to what is shown.
	if v := area.Value(); v != doc.Text() {
		doc.SetText(v)
	}
	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return textarea.Blink
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.layout()
		return m, nil
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC:
			return m, tea.Quit
		case tea.KeyCtrlS:
			m.save()
			return m, nil
		case tea.KeyCtrlAt:
			m.markLine = m.area.Line()
			m.updateSelection()
			return m, nil
		case tea.KeyEsc:
			if m.markLine != noMark {
				m.markLine = noMark
				m.engine.SelectionCleared()
				m.layout()
			}
			return m, nil
		}
	}

	before := m.area.Value()
	var cmd tea.Cmd
	m.area, cmd = m.area.Update(msg)
	if after := m.area.Value(); after != before {
		m.applyEdit(after)
	}
	if m.markLine != noMark {
		m.updateSelection()
	}
	return m, cmd
}

// View implements tea.Model.
func (m *Model) View() string {
	footer := m.footerLines()
	out := m.area.View()
	for _, line := range footer {
		out += "\n" + line
	}
	return out
}

func (m *Model) applyEdit(text string) {
	m.dirty = true
	m.status = ""
	m.statusErr = false
	if text == "" {
		m.doc.Clear()
	} else {
		m.doc.SetText(text)
	}
	m.layout()
}

// updateSelection selects whole paragraphs from the mark to the cursor line.
func (m *Model) updateSelection() {
	from, to := m.markLine, m.area.Line()
	if from > to {
		from, to = to, from
	}
	last := m.doc.ParagraphCount() - 1
	if to > last {
		to = last
	}
	if from > to {
		from = to
	}
	first, _ := m.doc.Paragraph(from)
	end, _ := m.doc.Paragraph(to)
	start := first.Start
	stop := end.Start + end.Len()

	runes := []rune(m.doc.Text())
	m.engine.SelectionChanged(string(runes[start:stop]), start, stop)
	m.layout()
}

func (m *Model) save() {
	if m.path == "" {
		m.setStatus("no file name; start readstat with a path to save", true)
		return
	}
	if err := m.doc.Save(m.path); err != nil {
		m.setStatus(fmt.Sprintf("failed to save: %v", err), true)
		return
	}
	m.dirty = false
	m.setStatus("saved "+m.path, false)
	if m.store == nil || !m.config.Record {
		return
	}
	snap := model.Snapshot{
		RecordedAt: time.Now(),
		Path:       m.path,
		Mode:       m.engine.Mode().String(),
		Metrics:    m.metrics,
	}
	if _, err := m.store.InsertSnapshot(context.Background(), snap); err != nil {
		m.setStatus(fmt.Sprintf("saved %s; failed to record snapshot: %v", m.path, err), true)
	}
}

func (m *Model) setStatus(status string, isErr bool) {
	m.status = status
	m.statusErr = isErr
}

func (m *Model) layout() {
	if m.width <= 0 || m.height <= 0 {
		return
	}
	width := m.width
	if m.config.Width > 0 && m.config.Width < width {
		width = m.config.Width
	}
	m.area.SetWidth(width)
	areaHeight := m.height - len(m.footerLines())
	if areaHeight < 1 {
		areaHeight = 1
	}
	m.area.SetHeight(areaHeight)
}

func (m *Model) footerSegments() []string {
	metrics := m.metrics
	scope := "Document"
	if m.engine.Mode() == docstats.ModeSelection {
		scope = fmt.Sprintf("Selection (%d of %d words)", metrics.Words, metrics.TotalWords)
	}
	return []string{
		scope,
		fmt.Sprintf("Words %d", metrics.Words),
		fmt.Sprintf("Chars %d", metrics.Characters),
		fmt.Sprintf("Sentences %d", metrics.Sentences),
		fmt.Sprintf("Paragraphs %d", metrics.Paragraphs),
		fmt.Sprintf("Pages %d", metrics.Pages),
		fmt.Sprintf("Read %s", textstat.FormatReadingTime(metrics.ReadingMinutes)),
		fmt.Sprintf("Complex %d%%", metrics.ComplexWords),
		fmt.Sprintf("LIX %d %s", metrics.LIX, textstat.ReadingEase(metrics.LIX)),
		fmt.Sprintf("Index %d", metrics.Readability),
	}
}

func (m *Model) footerLines() []string {
	style := footerStyle
	if m.engine.Mode() == docstats.ModeSelection {
		style = selectionStyle
	}
	var lines []string
	for _, line := range wrapSegments(m.footerSegments(), m.width) {
		lines = append(lines, style.Render(line))
	}
	lines = append(lines, m.renderStatus())
	return lines
}

func (m *Model) renderStatus() string {
	if m.status != "" {
		if m.statusErr {
			return errorStyle.Render(m.status)
		}
		return statusStyle.Render(m.status)
	}
	name := m.path
	if name == "" {
		name = "[scratch]"
	}
	if m.dirty {
		name += " *"
	}
	return statusStyle.Render(name + "  ctrl+s save · ctrl+space mark · esc clear · ctrl+c quit")
}
