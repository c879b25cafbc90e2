package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/lintrans/pkg/scene"
)

// List styles
var (
	listDimStyle    = lipgloss.NewStyle().Foreground(colorDim)
	listDetailStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorDim).
			Padding(0, 1)
)

// =============================================================================
// StepListModel - Interactive storyboard browser
// =============================================================================

// StepListModel is the bubbletea model for browsing storyboard steps.
type StepListModel struct {
	Steps    []scene.StepInfo
	Duration float64
	Cursor   int
	Height   int
	Offset   int
}

// NewStepListModel creates a new step list model.
func NewStepListModel(steps []scene.StepInfo, duration float64) StepListModel {
	return StepListModel{
		Steps:    steps,
		Duration: duration,
		Height:   15,
	}
}

func (m StepListModel) Init() tea.Cmd {
	return nil
}

func (m StepListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			m.move(-1)
		case "down", "j":
			m.move(1)
		case "pgup":
			m.move(-m.Height)
		case "pgdown":
			m.move(m.Height)
		case "home", "g":
			m.move(-len(m.Steps))
		case "end", "G":
			m.move(len(m.Steps))
		}
	case tea.WindowSizeMsg:
		// Leave room for the title, help and detail pane.
		m.Height = max(msg.Height-12, 5)
		m.clampOffset()
	}
	return m, nil
}

func (m *StepListModel) move(delta int) {
	if len(m.Steps) == 0 {
		return
	}
	m.Cursor = min(max(m.Cursor+delta, 0), len(m.Steps)-1)
	m.clampOffset()
}

func (m *StepListModel) clampOffset() {
	if m.Cursor < m.Offset {
		m.Offset = m.Cursor
	}
	if m.Cursor >= m.Offset+m.Height {
		m.Offset = m.Cursor - m.Height + 1
	}
}

func (m StepListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Storyboard"))
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  %d steps · %gs", len(m.Steps), m.Duration)))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  g/G first/last  q quit"))
	b.WriteString("\n\n")

	if len(m.Steps) == 0 {
		b.WriteString(listDimStyle.Render("  no steps"))
		return b.String()
	}

	end := min(m.Offset+m.Height, len(m.Steps))
	rows := [][]string{}
	for i := m.Offset; i < end; i++ {
		s := m.Steps[i]
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		rows = append(rows, []string{cursor, fmt.Sprint(s.Index + 1), formatSeconds(s.Start), formatSeconds(s.Duration), s.Name})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "#", "Start", "Length", "Step").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			idx := m.Offset + row
			if idx >= len(m.Steps) {
				return lipgloss.NewStyle()
			}
			base := lipgloss.NewStyle()
			if col == 2 || col == 3 {
				base = base.Foreground(colorGray)
			}
			if idx == m.Cursor {
				return base.Foreground(colorCyan).Bold(true)
			}
			if m.Steps[idx].Name == "wait" {
				return base.Foreground(colorDim)
			}
			return base
		})

	b.WriteString(t.Render())
	b.WriteString("\n")

	cur := m.Steps[m.Cursor]
	detail := StyleHighlight.Render(cur.Name) + "\n" +
		StyleValue.Render(cur.Description) + "\n" +
		listDimStyle.Render(fmt.Sprintf("%s → %s", formatSeconds(cur.Start), formatSeconds(cur.Start+cur.Duration)))
	b.WriteString(listDetailStyle.Render(detail))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Steps))))

	return b.String()
}

// =============================================================================
// Helpers
// =============================================================================

// formatSeconds renders a scene time like "12.5s".
func formatSeconds(s float64) string {
	return fmt.Sprintf("%.1fs", s)
}
