package main

import (
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/wheelnorm/internal/config"
	"github.com/dshills/wheelnorm/internal/input/wheel"
	"github.com/dshills/wheelnorm/internal/logging"
	"github.com/dshills/wheelnorm/internal/schedule"
	"github.com/dshills/wheelnorm/internal/source"
	"github.com/dshills/wheelnorm/internal/trace"
)

// maxLines bounds the emission log.
const maxLines = 500

var (
	headerStyle    = tcell.StyleDefault.Bold(true)
	dimStyle       = tcell.StyleDefault.Dim(true)
	rescrollStyle  = tcell.StyleDefault.Foreground(tcell.ColorOrange)
	statusStyle    = tcell.StyleDefault.Foreground(tcell.ColorYellow)
	syntheticStyle = tcell.StyleDefault.Dim(true).Italic(true)
)

// monitor shows the notifications of an adapter attached to the terminal.
// All methods run on the terminal loop.
type monitor struct {
	term   *source.Terminal
	clock  schedule.Clock
	logger *logging.Logger
	start  time.Time

	adapter *wheel.Adapter
	entries []trace.Emission
	counts  map[trace.Kind]int
	status  string
}

func newMonitor(term *source.Terminal, clock schedule.Clock, cfg *config.Config, logger *logging.Logger) *monitor {
	m := &monitor{
		term:   term,
		clock:  clock,
		logger: logger.WithComponent("monitor"),
		start:  clock.Now(),
		counts: make(map[trace.Kind]int),
	}
	m.attach(cfg)
	term.OnResize(func(int, int) { m.draw() })
	return m
}

func (m *monitor) attach(cfg *config.Config) {
	m.adapter = wheel.NewAdapter(m.term,
		wheel.WithConfig(cfg.WheelConfig()),
		wheel.WithClock(m.clock),
		wheel.WithLogger(m.logger),
		wheel.WithEventName(m.term.EventName()),
	)
	trace.Observe(m.adapter, m.clock, m.start, m.add)
}

// reconfigure replaces the adapter with one built from cfg. The event
// name stays that of the terminal.
func (m *monitor) reconfigure(cfg *config.Config) {
	m.adapter.Dispose()
	m.attach(cfg)
	m.setStatus("configuration reloaded")
}

func (m *monitor) setStatus(s string) {
	m.status = s
	m.draw()
}

func (m *monitor) add(e trace.Emission) {
	m.counts[e.Kind]++
	m.entries = append(m.entries, e)
	if len(m.entries) > maxLines {
		m.entries = m.entries[len(m.entries)-maxLines:]
	}
	m.draw()
}

func (m *monitor) close() {
	m.adapter.Dispose()
}

// header returns the summary lines drawn above the log.
func (m *monitor) header() []string {
	cfg := m.adapter.Config()
	state := m.adapter.NormalizerState()
	return []string{
		fmt.Sprintf("wheelwatch  event=%s  minDelta=%g  endDelay=%v  rescroll=%t  (q to quit)",
			m.adapter.EventName(), cfg.MinDelta, cfg.EndDelay, cfg.DetectRescroll),
		fmt.Sprintf("wheeling=%t  inertia=%t  start=%d wheel=%d end=%d rescroll=%d",
			m.adapter.IsWheeling(), state.HasInertia,
			m.counts[trace.KindStart], m.counts[trace.KindWheel],
			m.counts[trace.KindEnd], m.counts[trace.KindRescroll]),
	}
}

func formatEntry(e trace.Emission) string {
	line := fmt.Sprintf("%10.1f  %-8s  x=%8.2f  y=%8.2f",
		float64(e.Offset)/float64(time.Millisecond), e.Kind, e.Distance.X, e.Distance.Y)
	if e.Synthetic {
		line += "  synthetic"
	}
	return line
}

func entryStyle(e trace.Emission) tcell.Style {
	switch {
	case e.Synthetic:
		return syntheticStyle
	case e.Kind == trace.KindRescroll:
		return rescrollStyle
	case e.Kind == trace.KindWheel:
		return tcell.StyleDefault
	default:
		return dimStyle
	}
}

func (m *monitor) draw() {
	s := m.term.Screen()
	s.Clear()
	width, height := s.Size()

	row := 0
	for i, line := range m.header() {
		style := headerStyle
		if i > 0 {
			style = dimStyle
		}
		drawText(s, 0, row, width, style, line)
		row++
	}
	if m.status != "" {
		drawText(s, 0, row, width, statusStyle, m.status)
	}
	row++

	// Newest entries at the bottom.
	visible := height - row
	entries := m.entries
	if visible < len(entries) {
		entries = entries[len(entries)-max(visible, 0):]
	}
	for _, e := range entries {
		drawText(s, 0, row, width, entryStyle(e), formatEntry(e))
		row++
	}
	s.Show()
}

func drawText(s tcell.Screen, x, y, width int, style tcell.Style, text string) {
	for _, r := range text {
		if x >= width {
			return
		}
		s.SetContent(x, y, r, nil, style)
		x++
	}
}
