package cli

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/linechart/pkg/dataset"
)

// =============================================================================
// Palette
// =============================================================================

// The palette follows the chart: steelblue for the line and its numbers,
// neutral grays for axes and secondary text.
var (
	colorLine    = lipgloss.Color("67")  // steelblue
	colorOK      = lipgloss.Color("35")  // green
	colorWarn    = lipgloss.Color("220") // amber
	colorLink    = lipgloss.Color("75")  // light blue
	colorInk     = lipgloss.Color("255") // values
	colorAxis    = lipgloss.Color("245") // secondary text
	colorGridDim = lipgloss.Color("240") // muted text, borders
)

var (
	// StyleTitle renders headings.
	StyleTitle = lipgloss.NewStyle().Bold(true).Foreground(colorLine)

	// StyleLink renders URLs.
	StyleLink = lipgloss.NewStyle().Foreground(colorLink).Underline(true)

	// StyleDim renders secondary text.
	StyleDim = lipgloss.NewStyle().Foreground(colorGridDim)

	// StyleValue renders data values such as user names.
	StyleValue = lipgloss.NewStyle().Foreground(colorInk)

	// StyleNumber renders categories, percentages and pixel positions.
	StyleNumber = lipgloss.NewStyle().Foreground(colorLine)

	// StyleWarning renders warning text.
	StyleWarning = lipgloss.NewStyle().Foreground(colorWarn)
)

var (
	styleMarkOK   = lipgloss.NewStyle().Foreground(colorOK)
	styleMarkWarn = lipgloss.NewStyle().Foreground(colorWarn)
	styleMarkInfo = lipgloss.NewStyle().Foreground(colorAxis)
	styleHit      = lipgloss.NewStyle().Foreground(colorOK)
	styleMiss     = lipgloss.NewStyle().Foreground(colorAxis)
	styleCommand  = lipgloss.NewStyle().Foreground(colorLink)

	styleTableHeader = lipgloss.NewStyle().Bold(true).Foreground(colorLine).Padding(0, 1)
	styleTableCell   = lipgloss.NewStyle().Foreground(colorInk).Padding(0, 1)
	styleTableBorder = lipgloss.NewStyle().Foreground(colorGridDim)
)

const (
	markOK    = "✓"
	markWarn  = "!"
	markInfo  = "›"
	markArrow = "→"
	separator = " · "
)

// =============================================================================
// Console
// =============================================================================

// console writes human-facing status lines. Commands bind it to
// cmd.OutOrStdout() so tests can capture what a user would see.
type console struct {
	w io.Writer
}

func newConsole(w io.Writer) console { return console{w: w} }

func (c console) line(s string) { fmt.Fprintln(c.w, s) }

// success prints a green check followed by the message.
func (c console) success(format string, args ...any) {
	c.line(styleMarkOK.Render(markOK) + " " + fmt.Sprintf(format, args...))
}

// warn prints an amber warning.
func (c console) warn(format string, args ...any) {
	c.line(styleMarkWarn.Render(markWarn) + " " + StyleWarning.Render(fmt.Sprintf(format, args...)))
}

func (c console) info(format string, args ...any) {
	c.line(styleMarkInfo.Render(markInfo) + " " + fmt.Sprintf(format, args...))
}

// detail prints an indented, muted line under the previous status.
func (c console) detail(format string, args ...any) {
	c.line("  " + StyleDim.Render(fmt.Sprintf(format, args...)))
}

// file lists one written artifact.
func (c console) file(path string) {
	c.line("  " + StyleDim.Render(markArrow) + " " + StyleValue.Render(path))
}

// nextStep suggests a follow-up command.
func (c console) nextStep(description, cmd string) {
	c.line(StyleDim.Render(description+":") + " " + styleCommand.Render(cmd))
}

// stats prints dataset counts and whether the artifacts came from cache.
func (c console) stats(observations, categories int, cached bool) {
	c.line(statsLine(observations, categories, cached))
}

// summaries prints the per-category table.
func (c console) summaries(s []dataset.CategorySummary) {
	c.line(summaryTable(s))
}

// statsLine renders "  N observations · M categories · cached|fresh".
func statsLine(observations, categories int, cached bool) string {
	parts := make([]string, 0, 3)
	if observations > 0 {
		parts = append(parts, StyleDim.Render(fmt.Sprintf("%d observations", observations)))
	}
	parts = append(parts, StyleDim.Render(fmt.Sprintf("%d categories", categories)))

	if cached {
		parts = append(parts, styleHit.Render("cached"))
	} else {
		parts = append(parts, styleMiss.Render("fresh"))
	}
	return "  " + strings.Join(parts, StyleDim.Render(separator))
}

// summaryTable renders summaries as a bordered category/percentage/users table.
func summaryTable(summaries []dataset.CategorySummary) string {
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(styleTableBorder).
		Headers("CATEGORY", "PERCENT", "USERS").
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return styleTableHeader
			}
			if col < 2 {
				return styleTableCell.Align(lipgloss.Right)
			}
			return styleTableCell
		})

	for _, s := range summaries {
		t.Row(
			strconv.FormatFloat(s.Category, 'f', -1, 64),
			fmt.Sprintf("%.2f%%", s.Percentage),
			strings.Join(s.Users, ", "),
		)
	}
	return t.Render()
}
