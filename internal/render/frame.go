// Package render draws grid snapshots and step metrics for the terminal.
package render

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/spachava753/vacuumsim/internal/models"
)

const (
	glyphDirty   = "▓"
	glyphClean   = "·"
	glyphVisited = "░"
	glyphAgent   = "●"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	dirtyStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("136"))
	cleanStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	visitedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("66"))
	agentStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("33"))
	gridStyle    = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	statsStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1).MarginLeft(1)
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
)

// Frame is one renderable moment of a trial.
type Frame struct {
	Title       string
	Cells       [][]bool // dirt layout indexed [y][x]
	Agent       models.Position
	InitialDirt int
	Steps       int
	Cleans      int
	Last        *models.StepRecord
	Result      *models.TrialResult
	Err         error

	// Visited, when set, shades clean cells the agent remembers occupying.
	Visited func(models.Position) bool
}

// View renders the grid next to a metrics panel.
func (f Frame) View() string {
	var b strings.Builder
	for y, row := range f.Cells {
		for x, dirty := range row {
			if x > 0 {
				b.WriteString(" ")
			}
			b.WriteString(f.cell(models.Position{X: x, Y: y}, dirty))
		}
		if y < len(f.Cells)-1 {
			b.WriteString("\n")
		}
	}

	body := lipgloss.JoinHorizontal(lipgloss.Top,
		gridStyle.Render(b.String()),
		statsStyle.Render(f.stats()),
	)
	if f.Title == "" {
		return body
	}
	return lipgloss.JoinVertical(lipgloss.Left, titleStyle.Render(f.Title), body)
}

func (f Frame) cell(p models.Position, dirty bool) string {
	switch {
	case p == f.Agent:
		return agentStyle.Render(glyphAgent)
	case dirty:
		return dirtyStyle.Render(glyphDirty)
	case f.Visited != nil && f.Visited(p):
		return visitedStyle.Render(glyphVisited)
	default:
		return cleanStyle.Render(glyphClean)
	}
}

func (f Frame) stats() string {
	remaining := f.InitialDirt - f.Cleans
	lines := []string{
		fmt.Sprintf("Step: %d", f.Steps),
		fmt.Sprintf("Cleaned: %d/%d", f.Cleans, f.InitialDirt),
		fmt.Sprintf("Efficiency: %.2f%%", models.Efficiency(f.Cleans, f.Steps)*100),
		fmt.Sprintf("Dirt left: %d", remaining),
	}
	if f.Last != nil {
		lines = append(lines, fmt.Sprintf("Action: %s", f.Last.Action))
	}
	if f.Result != nil {
		lines = append(lines, fmt.Sprintf("Done: %s", f.Result.TerminatedBy))
	}
	if f.Err != nil {
		lines = append(lines, errorStyle.Render("Error: "+f.Err.Error()))
	}
	return strings.Join(lines, "\n")
}

// Summary renders the comparison table for both architectures.
func Summary(cmp *models.Comparison) string {
	header := lipgloss.NewStyle().Bold(true)
	rows := []string{
		titleStyle.Render(fmt.Sprintf("%s (%dx%d, dirt %.0f%%, %d steps, %d trials, seed %d)",
			cmp.World.Name, cmp.World.Width, cmp.World.Height, cmp.World.DirtProbability*100,
			cmp.World.StepLimit, cmp.NTrials, cmp.Seed)),
		header.Render(fmt.Sprintf("%-14s %10s %12s %10s %10s %7s", "Agent", "Avg Moves", "Avg Eff.", "Avg Steps", "All Clean", "Failed")),
	}
	for _, ar := range []models.AggregateResult{cmp.Reflex, cmp.ModelBased} {
		rows = append(rows, fmt.Sprintf("%-14s %10.1f %11.2f%% %10.1f %9.0f%% %7d",
			ar.Agent.DisplayName(), ar.MeanMoves, ar.MeanEfficiency*100, ar.MeanSteps, ar.AllCleanRate*100, ar.FailedTrials))
	}
	return strings.Join(rows, "\n")
}
