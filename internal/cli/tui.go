package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/textfmt/pkg/format"
	"github.com/matzehuels/textfmt/pkg/pipeline"
)

const (
	minPreviewColumns = 8
	maxPreviewColumns = 400
)

var (
	previewFrameStyle = lipgloss.NewStyle().
				Border(lipgloss.NormalBorder(), false, true).
				BorderForeground(colorDim)
	previewHelpStyle  = lipgloss.NewStyle().Foreground(colorDim)
	previewErrorStyle = lipgloss.NewStyle().Foreground(colorRed)
)

// previewStyles is the order "s" cycles through.
var previewStyles = []format.Style{format.Left, format.Right, format.Fill, format.Justify}

// =============================================================================
// PreviewModel - Interactive reflow
// =============================================================================

// PreviewModel is the bubbletea model for "textfmt preview". It reformats
// the text whenever the columns, style or margin mode change.
type PreviewModel struct {
	Text   string
	Config format.Config
	Name   string

	Output string
	Splits int
	Err    error

	Height int
	Offset int
}

// NewPreviewModel creates a preview model and renders the first frame.
func NewPreviewModel(name, text string, cfg format.Config) PreviewModel {
	m := PreviewModel{Text: text, Config: cfg, Name: name, Height: 20}
	m.reflow()
	return m
}

func (m *PreviewModel) reflow() {
	res, err := pipeline.Run(pipeline.Options{
		Mode:   pipeline.ModeParagraphs,
		Text:   m.Text,
		Config: &m.Config,
	})
	if err != nil {
		m.Err = err
		return
	}
	m.Err = nil
	m.Output = res.Output
	m.Splits = res.Stats.SplitCount
	m.clampOffset()
}

func (m *PreviewModel) lines() []string {
	return strings.Split(strings.TrimSuffix(m.Output, "\n"), "\n")
}

func (m *PreviewModel) clampOffset() {
	limit := max(0, len(m.lines())-m.Height)
	m.Offset = min(max(m.Offset, 0), limit)
}

func (m PreviewModel) Init() tea.Cmd {
	return nil
}

func (m PreviewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "left":
			if m.Config.Columns > minPreviewColumns {
				m.Config.Columns--
				m.reflow()
			}
		case "right":
			if m.Config.Columns < maxPreviewColumns {
				m.Config.Columns++
				m.reflow()
			}
		case "s":
			m.Config.Style = nextStyle(m.Config.Style)
			m.reflow()
		case "h":
			m.Config.HardMargins = !m.Config.HardMargins
			m.reflow()
		case "up", "k":
			m.Offset--
			m.clampOffset()
		case "down", "j":
			m.Offset++
			m.clampOffset()
		}
	case tea.WindowSizeMsg:
		m.Height = max(msg.Height-6, 5)
		m.clampOffset()
	}
	return m, nil
}

func nextStyle(s format.Style) format.Style {
	for i, st := range previewStyles {
		if st == s {
			return previewStyles[(i+1)%len(previewStyles)]
		}
	}
	return previewStyles[0]
}

func (m PreviewModel) View() string {
	var b strings.Builder

	margins := "soft margins"
	if m.Config.HardMargins {
		margins = "hard margins"
	}
	b.WriteString(StyleTitle.Render(m.Name))
	b.WriteString(StyleDim.Render(fmt.Sprintf("  %d columns · %s · %s · %s",
		m.Config.Columns, m.Config.Style, margins, plural(m.Splits, "split"))))
	b.WriteString("\n")
	b.WriteString(previewHelpStyle.Render("←/→ columns  s style  h margins  ↑/↓ scroll  q quit"))
	b.WriteString("\n")

	if m.Err != nil {
		b.WriteString(previewErrorStyle.Render(m.Err.Error()))
		b.WriteString("\n")
		return b.String()
	}

	lines := m.lines()
	end := min(m.Offset+m.Height, len(lines))
	body := make([]string, 0, end-m.Offset)
	for _, l := range lines[m.Offset:end] {
		body = append(body, padRight(l, m.Config.Columns))
	}
	b.WriteString(previewFrameStyle.Render(strings.Join(body, "\n")))
	b.WriteString("\n")
	b.WriteString(previewHelpStyle.Render(fmt.Sprintf("  [%d-%d/%d]", m.Offset+1, end, len(lines))))

	return b.String()
}

// padRight pads s with spaces to n runes so the frame marks the column limit.
func padRight(s string, n int) string {
	if w := len([]rune(s)); w < n {
		return s + strings.Repeat(" ", n-w)
	}
	return s
}
