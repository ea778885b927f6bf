package report

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/suderio/eels-and-escalators/internal/board"
	"github.com/suderio/eels-and-escalators/internal/engine"
	"github.com/suderio/eels-and-escalators/internal/persistence"
	"github.com/suderio/eels-and-escalators/internal/sim"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#874BFD")).
			Padding(0, 1)

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#999999")).
			Width(10)

	warnStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F25D94"))

	eelStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("#F25D94"))
	escalatorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#04B575"))
)

// Summary writes the statistics of a finished run.
func Summary(w io.Writer, s sim.Summary, elapsed time.Duration) error {
	rows := []string{
		row("INSTANCES", fmt.Sprint(s.Count)),
		row("MEAN", fmt.Sprintf("%.3f", s.Mean)),
		row("MEDIAN", fmt.Sprint(s.Median)),
		row("MIN", fmt.Sprint(s.Min)),
		row("MAX", fmt.Sprint(s.Max)),
		row("P90", fmt.Sprint(s.P90)),
	}
	if s.Faults > 0 {
		rows = append(rows, warnStyle.Render(fmt.Sprintf("%d worker(s) failed; statistics cover the recorded instances only", s.Faults)))
	}
	out := lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render("Rounds per game"),
		boxStyle.Render(strings.Join(rows, "\n")),
		fmt.Sprintf("Finished in %.3f seconds", elapsed.Seconds()),
	)
	_, err := fmt.Fprintln(w, out)
	return err
}

func row(label, value string) string {
	return labelStyle.Render(label) + value
}

// Board writes the tile sequence, perRow tiles per line.
func Board(w io.Writer, b *board.Board, perRow int) error {
	if perRow < 1 {
		perRow = 10
	}
	var lines []string
	var cells []string
	for i, t := range b.Tiles() {
		cells = append(cells, cell(i, t))
		if len(cells) == perRow {
			lines = append(lines, strings.Join(cells, " "))
			cells = nil
		}
	}
	if len(cells) > 0 {
		lines = append(lines, strings.Join(cells, " "))
	}

	title := fmt.Sprintf("%d tiles, %d eels, %d escalators", b.Len(), b.Count(board.Eel), b.Count(board.Escalator))
	out := lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render(title),
		boxStyle.Render(strings.Join(lines, "\n")),
	)
	_, err := fmt.Fprintln(w, out)
	return err
}

func cell(i int, t board.Tile) string {
	switch t.Kind {
	case board.Eel:
		return eelStyle.Render(fmt.Sprintf("%3d E>%-3d", i, t.Destination))
	case board.Escalator:
		return escalatorStyle.Render(fmt.Sprintf("%3d S>%-3d", i, t.Destination))
	default:
		return fmt.Sprintf("%3d ·    ", i)
	}
}

// History writes one line per past run, newest last.
func History(w io.Writer, records []persistence.RunRecord) error {
	if len(records) == 0 {
		_, err := fmt.Fprintln(w, "no runs recorded")
		return err
	}
	for _, r := range records {
		name := r.Config.Board
		if name == "" {
			name = "(default)"
		}
		_, err := fmt.Fprintf(w, "%s  %s  board=%s games=%d players=%d workers=%d legacy=%t  mean=%.3f median=%d min=%d max=%d  %.2fs\n",
			r.StartedAt.Format(time.RFC3339), r.ID, name,
			r.Config.Games, r.Config.Players, r.Config.Workers, r.Config.LegacyDice,
			r.Summary.Mean, r.Summary.Median, r.Summary.Min, r.Summary.Max,
			r.Elapsed.Seconds())
		if err != nil {
			return err
		}
	}
	return nil
}

// Turn writes a single traced turn.
func Turn(w io.Writer, ev engine.TurnEvent) error {
	line := fmt.Sprintf("round %-4d player %d  %-13s %3d -> %3d", ev.Round, ev.Player+1, ev.Roll, ev.From, ev.Landed)
	if ev.To != ev.Landed {
		line += fmt.Sprintf(" -> %3d", ev.To)
	}
	if ev.Won {
		line += "  " + titleStyle.Render("WINS")
	}
	_, err := fmt.Fprintln(w, line)
	return err
}
