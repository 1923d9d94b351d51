package cli

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/flowlayout/pkg/canvas"
	"github.com/matzehuels/flowlayout/pkg/pipeline"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
	headerStyle       = lipgloss.NewStyle().Foreground(colorGray).Bold(true)
)

// maxLayerPreview is how many node ids a layer row shows before "+N".
const maxLayerPreview = 4

// =============================================================================
// InspectModel - Interactive layer browser
// =============================================================================

// InspectModel is the bubbletea model of the inspect command: a table of
// layers on top, the nodes of the selected layer below it.
type InspectModel struct {
	Layers    [][]string
	Positions map[string]canvas.Position
	Feedback  []string
	Cursor    int
	Height    int
	Offset    int
}

// NewInspectModel creates the model for a layout result.
func NewInspectModel(res *pipeline.Result) InspectModel {
	pos := make(map[string]canvas.Position, len(res.Canvas.Nodes))
	for _, n := range res.Canvas.Nodes {
		if _, ok := pos[n.ID]; !ok {
			pos[n.ID] = n.Position
		}
	}
	feedback := make([]string, len(res.FeedbackEdges))
	for i, e := range res.FeedbackEdges {
		feedback[i] = e.Source + " " + iconArrow + " " + e.Target
	}
	return InspectModel{
		Layers:    res.ByLayer,
		Positions: pos,
		Feedback:  feedback,
		Height:    10,
	}
}

func (m InspectModel) Init() tea.Cmd {
	return nil
}

func (m InspectModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.Layers)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "home", "g":
			m.Cursor, m.Offset = 0, 0
		case "end", "G":
			m.Cursor = max(0, len(m.Layers)-1)
			m.Offset = max(0, m.Cursor-m.Height+1)
		}
	case tea.WindowSizeMsg:
		// Half the screen for the layer table, the rest for details.
		m.Height = max(3, msg.Height/2-4)
	}
	return m, nil
}

func (m InspectModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Layers"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  q quit"))
	b.WriteString("\n\n")

	if len(m.Layers) == 0 {
		b.WriteString(listDimStyle.Render("  empty canvas"))
		b.WriteString("\n")
		return b.String()
	}

	b.WriteString(m.layerTable())
	b.WriteString("\n\n")
	b.WriteString(m.layerDetail())

	if len(m.Feedback) > 0 {
		b.WriteString("\n")
		b.WriteString(StyleWarning.Render("Feedback edges"))
		b.WriteString("\n")
		for _, f := range m.Feedback {
			b.WriteString("  " + listNormalStyle.Render(f) + "\n")
		}
	}
	return b.String()
}

// layerTable renders the visible window of layers.
func (m InspectModel) layerTable() string {
	end := min(m.Offset+m.Height, len(m.Layers))

	rows := make([][]string, 0, end-m.Offset)
	for i := m.Offset; i < end; i++ {
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		ids := m.Layers[i]
		x := ""
		if len(ids) > 0 {
			x = formatCoord(m.Positions[ids[0]].X)
		}
		rows = append(rows, []string{cursor, strconv.Itoa(i), strconv.Itoa(len(ids)), x, previewIDs(ids)})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Layer", "Nodes", "X", "Ids").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			if m.Offset+row == m.Cursor {
				return listSelectedStyle
			}
			if col == 3 {
				return listDimStyle
			}
			return listNormalStyle
		})

	out := t.Render()
	if len(m.Layers) > m.Height {
		out += "\n" + listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Layers)))
	}
	return out
}

// layerDetail lists the nodes of the selected layer top to bottom.
func (m InspectModel) layerDetail() string {
	var b strings.Builder
	b.WriteString(headerStyle.Render(fmt.Sprintf("Layer %d", m.Cursor)))
	b.WriteString("\n")
	for _, id := range m.Layers[m.Cursor] {
		p := m.Positions[id]
		b.WriteString(fmt.Sprintf("  %-24s %s\n", listNormalStyle.Render(id),
			StyleNumber.Render("y="+formatCoord(p.Y))))
	}
	return b.String()
}

func previewIDs(ids []string) string {
	if len(ids) <= maxLayerPreview {
		return strings.Join(ids, ", ")
	}
	return strings.Join(ids[:maxLayerPreview], ", ") + fmt.Sprintf(", +%d", len(ids)-maxLayerPreview)
}

func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
