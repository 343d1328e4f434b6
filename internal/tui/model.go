package tui

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"extsum/internal/domain"
	"extsum/internal/service"
	"extsum/internal/summarizer"
)

const weightStep = 0.1

// Model is the Bubble Tea model for browsing summaries.
type Model struct {
	docs     []service.DocumentSummary
	current  int
	input    textinput.Model
	viewport viewport.Model
	status   string
	ready    bool
}

// New creates a new TUI model instance.
func New(docs []service.DocumentSummary) Model {
	ti := textinput.New()
	ti.Prompt = "weight> "
	ti.Placeholder = "Type a weight and press Enter (+/- nudge when empty, tab for next file)"
	ti.Focus()
	ti.CharLimit = 16
	vp := viewport.New(0, 0)
	return Model{docs: docs, input: ti, viewport: vp, status: fmt.Sprintf("Loaded %d document(s).", len(docs))}
}

// Init initializes the model (text input cursor blink).
func (m Model) Init() tea.Cmd { return textinput.Blink }

// Update handles key and window events and updates the view state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.ready = true
		_, bh := sentenceBoxStyle.GetFrameSize()
		_, qh := inputBoxStyle.GetFrameSize()
		reserved := 3 + 1 + qh + 1 // header, summary rule, status, spacer
		vh := msg.Height - reserved
		m.viewport.Width = max(20, msg.Width)
		m.viewport.Height = max(3, vh-bh)
		m.viewport.SetContent(m.renderSentences())
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC || msg.Type == tea.KeyCtrlD || msg.Type == tea.KeyEsc {
			return m, tea.Quit
		}
		switch msg.String() {
		case "enter":
			v := strings.TrimSpace(m.input.Value())
			if v == "" {
				return m, nil
			}
			w, err := strconv.ParseFloat(v, 64)
			if err != nil {
				m.status = "Error: not a number: " + v
				return m, nil
			}
			m.input.SetValue("")
			return m.applyWeight(w), nil
		case "+", "=":
			if m.input.Value() == "" {
				return m.applyWeight(nudge(m.weight(), weightStep)), nil
			}
		case "-":
			if m.input.Value() == "" {
				return m.applyWeight(nudge(m.weight(), -weightStep)), nil
			}
		case "tab":
			if len(m.docs) > 0 {
				m.current = (m.current + 1) % len(m.docs)
				m.status = "Showing " + m.docs[m.current].Document.Path
				m.viewport.SetContent(m.renderSentences())
				m.viewport.GotoTop()
			}
			return m, nil
		case "up", "down", "pgup", "pgdown":
			var cmd tea.Cmd
			m.viewport, cmd = m.viewport.Update(msg)
			return m, cmd
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) weight() float64 {
	if len(m.docs) == 0 || !m.docs[m.current].Available() {
		return 1
	}
	return m.docs[m.current].Summary.Weight
}

// nudge steps w by delta and snaps the result to two decimals, never below 0.
func nudge(w, delta float64) float64 {
	return math.Max(0, math.Round((w+delta)*100)/100)
}

// applyWeight re-selects the current document's sentences for w.
func (m Model) applyWeight(w float64) Model {
	if len(m.docs) == 0 {
		return m
	}
	doc := m.docs[m.current]
	if !doc.Available() {
		m.status = "Summary unavailable for " + doc.Document.Path
		return m
	}
	next, err := summarizer.Reselect(doc.Sentences, doc.Summary, w)
	if err != nil {
		m.status = "Error: " + err.Error()
		return m
	}
	docs := make([]service.DocumentSummary, len(m.docs))
	copy(docs, m.docs)
	docs[m.current].Summary = next
	m.docs = docs
	m.status = fmt.Sprintf("weight=%g  kept %d of %d sentences", w, len(next.Selected), len(doc.Sentences))
	m.viewport.SetContent(m.renderSentences())
	return m
}

// View renders the TUI layout.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	if len(m.docs) == 0 {
		return "No documents."
	}
	doc := m.docs[m.current]
	header := lipgloss.NewStyle().Bold(true).Render(
		fmt.Sprintf("Extractive Summary  [%d/%d] %s", m.current+1, len(m.docs), doc.Document.Path))
	status := lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Render(m.status)
	input := inputBoxStyle.Render(m.input.View())
	if !doc.Available() {
		msg := summaryStyle.Render(fmt.Sprintf("(summary unavailable: %v)", doc.Err))
		return header + "\n" + msg + "\n" + input + "\n" + status
	}
	info := dimStyle.Render(fmt.Sprintf("threshold=%.4f  weight=%g  cutoff=%.4f",
		doc.Summary.Threshold, doc.Summary.Weight, doc.Summary.Threshold*doc.Summary.Weight))
	summary := summaryStyle.Render(summaryText(doc.Summary))
	body := sentenceBoxStyle.Render(m.viewport.View())
	return header + "\n" + info + "\n" + summary + "\n" + body + "\n" + input + "\n" + status
}

func (m Model) renderSentences() string {
	if len(m.docs) == 0 {
		return "No documents."
	}
	doc := m.docs[m.current]
	kept := make(map[domain.SentenceID]struct{})
	var scores map[domain.SentenceID]float64
	if doc.Available() {
		for _, id := range doc.Summary.Selected {
			kept[id] = struct{}{}
		}
		scores = doc.Summary.Scores
	}
	var b strings.Builder
	for _, s := range doc.Sentences {
		score, scored := scores[s.ID]
		label := "   -  "
		if scored {
			label = fmt.Sprintf("%.4f", score)
		}
		line := fmt.Sprintf("%3d  %s  %s", int(s.ID), label, s.Text)
		if _, ok := kept[s.ID]; ok {
			line = highlightStyle.Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func summaryText(s *domain.Summary) string {
	if s.Text == "" {
		return "(no sentence reaches the cutoff)"
	}
	return s.Text
}

var (
	sentenceBoxStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	inputBoxStyle    = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	highlightStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true)
	dimStyle         = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	summaryStyle     = lipgloss.NewStyle().Italic(true)
)
