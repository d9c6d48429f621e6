package stats

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-runewidth"
	"golang.org/x/term"

	"github.com/verte-zerg/typedrill/internal/model"
)

const (
	headerBold          = "\x1b[1m"
	terminalWidthBackup = 80
)

// CharRow is one formatted line of the per-character report.
type CharRow struct {
	Char     rune
	AvgMs    float64
	Typed    uint64
	Errors   uint64
	Accuracy float64
	Score    float64
}

// Rows returns table rows from weakest to strongest, limited to top when top > 0.
func Rows(table model.StatsTable, top int) []CharRow {
	ranked := RankWeak(table)
	if top > 0 && top < len(ranked) {
		ranked = ranked[:top]
	}
	rows := make([]CharRow, 0, len(ranked))
	for _, ch := range ranked {
		stat := table[ch]
		rows = append(rows, CharRow{
			Char:     ch,
			AvgMs:    stat.RollingAvgMs,
			Typed:    stat.TypedCount,
			Errors:   stat.ErrorCount,
			Accuracy: CharAccuracy(stat) * 100,
			Score:    stat.Score,
		})
	}
	return rows
}

// DisplayChar renders whitespace characters visibly.
func DisplayChar(ch rune) string {
	switch ch {
	case ' ':
		return "·"
	case '\n':
		return "¶"
	case '\t':
		return "⇥"
	default:
		return string(ch)
	}
}

// RenderCharTable writes the weakest-first character table to w.
func RenderCharTable(w io.Writer, table model.StatsTable, top int) error {
	rows := Rows(table, top)
	if len(rows) == 0 {
		_, err := fmt.Fprintln(w, "No statistics recorded yet.")
		return err
	}
	headers := []string{"Char", "Avg ms", "Typed", "Errors", "Accuracy", "Score"}
	cells := make([][]string, 0, len(rows))
	for _, r := range rows {
		cells = append(cells, []string{
			DisplayChar(r.Char),
			fmt.Sprintf("%.1f", r.AvgMs),
			fmt.Sprintf("%d", r.Typed),
			fmt.Sprintf("%d", r.Errors),
			fmt.Sprintf("%.1f%%", r.Accuracy),
			fmt.Sprintf("%.1f", r.Score),
		})
	}
	return writeTable(w, headers, cells, shouldUseColor(w))
}

// RenderSummary writes totals over the whole table.
func RenderSummary(w io.Writer, table model.StatsTable) error {
	var typed, errs uint64
	for _, stat := range table {
		typed += stat.TypedCount
		errs += stat.ErrorCount
	}
	weakest := "-"
	if ranked := RankWeak(table); len(ranked) > 0 {
		weakest = DisplayChar(ranked[0])
	}
	_, err := fmt.Fprintf(w, "Characters: %d  Keystrokes: %d  Errors: %d  Accuracy: %.1f%%  Weakest: %s\n",
		len(table), typed, errs, Accuracy(int(typed), int(errs)), weakest)
	return err
}

func writeTable(w io.Writer, headers []string, rows [][]string, color bool) error {
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = runewidth.StringWidth(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if cw := runewidth.StringWidth(cell); cw > widths[i] {
				widths[i] = cw
			}
		}
	}
	maxWidth := terminalWidth()

	header := formatRow(headers, widths, maxWidth)
	if color {
		header = headerBold + header + colorReset
	}
	if _, err := fmt.Fprintln(w, header); err != nil {
		return err
	}
	for _, row := range rows {
		if _, err := fmt.Fprintln(w, formatRow(row, widths, maxWidth)); err != nil {
			return err
		}
	}
	return nil
}

func formatRow(cells []string, widths []int, maxWidth int) string {
	parts := make([]string, len(cells))
	for i, cell := range cells {
		pad := widths[i] - runewidth.StringWidth(cell)
		if i == 0 {
			parts[i] = cell + strings.Repeat(" ", pad)
		} else {
			parts[i] = strings.Repeat(" ", pad) + cell
		}
	}
	return runewidth.Truncate(strings.Join(parts, "  "), maxWidth, "")
}

func terminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return terminalWidthBackup
	}
	return width
}

func shouldUseColor(w io.Writer) bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	file, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(file.Fd()))
}
