package cli

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/matzehuels/linechart/pkg/chart/scene"
	"github.com/matzehuels/linechart/pkg/dataset"
	"github.com/matzehuels/linechart/pkg/linechart"
	"github.com/matzehuels/linechart/pkg/pipeline"
)

// Inspect styles
var (
	inspectPointStyle  = lipgloss.NewStyle().Foreground(colorAxis)
	inspectFocusStyle  = lipgloss.NewStyle().Bold(true).Foreground(colorOK)
	inspectCursorStyle = lipgloss.NewStyle().Foreground(colorLine)
	inspectLabelStyle  = lipgloss.NewStyle().Foreground(colorAxis).Width(12)
)

const (
	stripIndent       = 2
	defaultStripWidth = 64
	minStripWidth     = 16
)

// inspectCommand creates the inspect command.
func (c *CLI) inspectCommand() *cobra.Command {
	var noCache bool

	cmd := &cobra.Command{
		Use:   "inspect [observations]",
		Short: "Explore chart hover behaviour in the terminal",
		Long: `Explore chart hover behaviour in the terminal.

The pointer moves across the primary chart's plot area and the crosshair
snaps to the nearest data point, exactly as in the rendered page. The
focused category, its percentage and the tooltip users are shown below the
strip.

Keys:
  ←/→ h/l      move the pointer
  H/L          move the pointer ten steps
  n/p          jump to the next/previous data point
  home/end     jump to the plot edges
  enter        toggle pointer enter/leave
  q, esc       quit

Mouse motion over the strip moves the pointer too.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runInspect(cmd.Context(), args[0], noCache)
		},
	}

	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}

func (c *CLI) runInspect(ctx context.Context, input string, noCache bool) error {
	cfg, err := loadConfig(c.ConfigPath)
	if err != nil {
		return err
	}
	summaries, err := c.runAggregate(ctx, input, noCache)
	if err != nil {
		return err
	}

	m := newInspectModel(input, summaries, cfg.Layout.WithDefaults())
	p := tea.NewProgram(m, tea.WithContext(ctx), tea.WithAltScreen(), tea.WithMouseAllMotion())
	_, err = p.Run()
	return err
}

// =============================================================================
// inspectModel - Interactive hover exploration
// =============================================================================

// inspectModel drives a Renderer's interaction surface from keyboard and
// mouse input. px is the pointer position in plot coordinates.
type inspectModel struct {
	name     string
	renderer *linechart.Renderer
	ctx      *linechart.Context
	px       float64
	step     float64
	inside   bool
	width    int
}

func newInspectModel(name string, summaries []dataset.CategorySummary, layout linechart.Layout) inspectModel {
	r := pipeline.NewChart(layout, nil)
	r.Render(summaries)
	ctx := r.Context()
	return inspectModel{
		name:     name,
		renderer: r,
		ctx:      ctx,
		step:     ctx.Layout.PlotWidth() / 100,
		width:    defaultStripWidth,
	}
}

func (m inspectModel) Init() tea.Cmd {
	return nil
}

func (m inspectModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = max(minStripWidth, msg.Width-2*stripIndent)
	case tea.MouseMsg:
		if msg.Action == tea.MouseActionMotion {
			col := msg.X - stripIndent
			if col >= 0 && col < m.width {
				m = m.pointerTo(m.columnX(col))
			}
		}
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "left", "h":
			m = m.pointerTo(m.px - m.step)
		case "right", "l":
			m = m.pointerTo(m.px + m.step)
		case "H", "shift+left":
			m = m.pointerTo(m.px - 10*m.step)
		case "L", "shift+right":
			m = m.pointerTo(m.px + 10*m.step)
		case "home":
			m = m.pointerTo(0)
		case "end":
			m = m.pointerTo(m.ctx.Layout.PlotWidth())
		case "n":
			if x, ok := m.adjacentPoint(1); ok {
				m = m.pointerTo(x)
			}
		case "p":
			if x, ok := m.adjacentPoint(-1); ok {
				m = m.pointerTo(x)
			}
		case "enter":
			if m.inside {
				m.dispatch(scene.EventPointerLeave)
				m.inside = false
			} else {
				m = m.pointerTo(m.px)
			}
		}
	}
	return m, nil
}

// pointerTo moves the pointer to x, entering the surface first if needed.
func (m inspectModel) pointerTo(x float64) inspectModel {
	m.px = math.Max(0, math.Min(x, m.ctx.Layout.PlotWidth()))
	if !m.inside {
		m.dispatch(scene.EventPointerEnter)
		m.inside = true
	}
	m.dispatch(scene.EventPointerMove)
	return m
}

func (m inspectModel) dispatch(eventType string) {
	m.renderer.Surface().Dispatch(scene.Event{Type: eventType, X: m.px})
}

// adjacentPoint returns the pixel position of the data point after (dir > 0)
// or before (dir < 0) the pointer.
func (m inspectModel) adjacentPoint(dir int) (float64, bool) {
	const eps = 1e-9
	if dir > 0 {
		for _, d := range m.ctx.Data {
			if x := m.ctx.X.Map(d.Category); x > m.px+eps {
				return x, true
			}
		}
		return 0, false
	}
	for i := len(m.ctx.Data) - 1; i >= 0; i-- {
		if x := m.ctx.X.Map(m.ctx.Data[i].Category); x < m.px-eps {
			return x, true
		}
	}
	return 0, false
}

// column maps a plot x position onto the strip.
func (m inspectModel) column(x float64) int {
	w := m.ctx.Layout.PlotWidth()
	if w <= 0 || math.IsNaN(x) {
		return 0
	}
	col := int(math.Round(x / w * float64(m.width-1)))
	return max(0, min(col, m.width-1))
}

// columnX is the inverse of column.
func (m inspectModel) columnX(col int) float64 {
	if m.width <= 1 {
		return 0
	}
	return float64(col) / float64(m.width-1) * m.ctx.Layout.PlotWidth()
}

func (m inspectModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("linechart inspect"))
	b.WriteString(" ")
	b.WriteString(StyleDim.Render(m.name))
	b.WriteString("\n\n")

	focus, hasFocus := m.renderer.Focus()
	b.WriteString(m.strip(focus, hasFocus))
	b.WriteString("\n\n")

	row := func(label, value string) {
		b.WriteString(inspectLabelStyle.Render(label))
		b.WriteString(" ")
		b.WriteString(value)
		b.WriteString("\n")
	}

	row("State", StyleValue.Render(m.renderer.State().String()))
	row("Pointer", StyleNumber.Render(fmt.Sprintf("%.1fpx", m.px))+
		StyleDim.Render(" → category "+formatNumber(m.ctx.X.Invert(m.px))))

	if !hasFocus {
		row("Focus", StyleDim.Render("none"))
	} else {
		row("Focus", inspectFocusStyle.Render("category "+formatNumber(focus.Category)))
		row("Percent", StyleNumber.Render(fmt.Sprintf("%.2f%%", focus.Percentage)))
		row("Users", StyleValue.Render(strings.Join(focus.Users, ", ")))
		if tip := m.renderer.Tooltip(); tip != nil && !tip.Hidden() {
			left, _ := tip.StyleValue("left")
			top, _ := tip.StyleValue("top")
			row("Tooltip", StyleDim.Render("at "+left+", "+top))
		}
	}

	b.WriteString("\n")
	b.WriteString(StyleDim.Render("←/→ move · n/p next/prev point · enter enter/leave · q quit"))
	return b.String()
}

// strip draws the data points and the pointer on two rows.
func (m inspectModel) strip(focus dataset.CategorySummary, hasFocus bool) string {
	points := make([]string, m.width)
	for i := range points {
		points[i] = StyleDim.Render("─")
	}
	for _, d := range m.ctx.Data {
		col := m.column(m.ctx.X.Map(d.Category))
		if hasFocus && d.Category == focus.Category {
			points[col] = inspectFocusStyle.Render("●")
		} else {
			points[col] = inspectPointStyle.Render("●")
		}
	}

	cursor := strings.Repeat(" ", m.column(m.px))
	if m.inside {
		cursor += inspectCursorStyle.Render("▲")
	}

	indent := strings.Repeat(" ", stripIndent)
	return indent + strings.Join(points, "") + "\n" + indent + cursor
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
