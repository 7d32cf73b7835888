package main

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/dshills/wheelnorm/internal/trace"
)

var (
	headerStyle    = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle      = lipgloss.NewStyle().Padding(0, 1)
	syntheticStyle = cellStyle.Faint(true)
	rescrollStyle  = cellStyle.Foreground(lipgloss.Color("214"))
	summaryStyle   = lipgloss.NewStyle().Faint(true)
	borderStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// renderTable lays out emissions as a bordered table followed by a count
// of each kind.
func renderTable(emissions []trace.Emission) string {
	rows := make([][]string, len(emissions))
	for i, e := range emissions {
		synthetic := ""
		if e.Synthetic {
			synthetic = "yes"
		}
		rows[i] = []string{
			formatMillis(e.Offset),
			string(e.Kind),
			formatFloat(e.Distance.X),
			formatFloat(e.Distance.Y),
			synthetic,
			e.Annotation,
		}
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(borderStyle).
		Headers("T (ms)", "KIND", "X", "Y", "SYNTHETIC", "NOTE").
		Rows(rows...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			e := emissions[row]
			switch {
			case e.Synthetic:
				return syntheticStyle
			case e.Kind == trace.KindRescroll:
				return rescrollStyle
			default:
				return cellStyle
			}
		})

	var b strings.Builder
	b.WriteString(t.Render())
	b.WriteString("\n")
	b.WriteString(summaryStyle.Render(summary(emissions)))
	b.WriteString("\n")
	return b.String()
}

func summary(emissions []trace.Emission) string {
	counts := make(map[trace.Kind]int)
	for _, e := range emissions {
		counts[e.Kind]++
	}
	parts := make([]string, 0, 4)
	for _, k := range []trace.Kind{trace.KindStart, trace.KindWheel, trace.KindEnd, trace.KindRescroll} {
		parts = append(parts, fmt.Sprintf("%s=%d", k, counts[k]))
	}
	return strings.Join(parts, " ")
}

func formatMillis(d time.Duration) string {
	return formatFloat(float64(d) / float64(time.Millisecond))
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
