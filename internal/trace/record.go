package trace

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"strings"
	"time"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/dshills/wheelnorm/internal/input/wheel"
)

// maxLineSize bounds a single trace line.
const maxLineSize = 1 << 20

// Record is one recorded raw event.
type Record struct {
	// Line is the 1-based source line, zero for records not read from a file.
	Line int

	// Offset is the time since the start of the recording.
	Offset time.Duration

	// Event is the raw event. Its Timestamp is assigned on replay.
	Event wheel.RawEvent
}

// Read parses a JSON-lines trace.
func Read(r io.Reader) ([]Record, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	var (
		records []Record
		line    int
		last    time.Duration
	)
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" {
			continue
		}

		rec, err := ParseRecord(text)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		if len(records) > 0 && rec.Offset < last {
			return nil, fmt.Errorf("line %d: %w", line, ErrTimeOrder)
		}
		rec.Line = line
		last = rec.Offset
		records = append(records, rec)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading trace: %w", err)
	}
	return records, nil
}

// ParseRecord parses a single JSON trace line.
func ParseRecord(text string) (Record, error) {
	if !gjson.Valid(text) {
		return Record{}, ErrInvalidJSON
	}
	obj := gjson.Parse(text)
	if !obj.IsObject() {
		return Record{}, ErrInvalidJSON
	}

	t := obj.Get("t")
	if !t.Exists() {
		t = obj.Get("timeStamp")
	}
	if t.Type != gjson.Number {
		return Record{}, ErrMissingTime
	}

	return Record{
		Offset: millis(t.Float()),
		Event: wheel.RawEvent{
			Type:        obj.Get("type").String(),
			Detail:      obj.Get("detail").Float(),
			Axis:        parseAxis(obj.Get("axis")),
			DeltaX:      obj.Get("deltaX").Float(),
			DeltaY:      obj.Get("deltaY").Float(),
			WheelDeltaX: obj.Get("wheelDeltaX").Float(),
			WheelDeltaY: obj.Get("wheelDeltaY").Float(),
			Position: wheel.Position{
				X: int(obj.Get("x").Int()),
				Y: int(obj.Get("y").Int()),
			},
		},
	}, nil
}

// EncodeRecord renders rec as a trace line without a trailing newline.
// Absent fields are omitted.
func EncodeRecord(rec Record) ([]byte, error) {
	out, err := sjson.SetBytes([]byte("{}"), "t", toMillis(rec.Offset))
	if err != nil {
		return nil, err
	}

	ev := rec.Event
	fields := []struct {
		key   string
		value any
		set   bool
	}{
		{"type", ev.Type, ev.Type != ""},
		{"detail", ev.Detail, ev.Detail != 0},
		{"axis", int(ev.Axis), ev.Axis != wheel.AxisNone},
		{"deltaX", ev.DeltaX, ev.DeltaX != 0},
		{"deltaY", ev.DeltaY, ev.DeltaY != 0},
		{"wheelDeltaX", ev.WheelDeltaX, ev.WheelDeltaX != 0},
		{"wheelDeltaY", ev.WheelDeltaY, ev.WheelDeltaY != 0},
		{"x", ev.Position.X, ev.Position.X != 0},
		{"y", ev.Position.Y, ev.Position.Y != 0},
	}
	for _, f := range fields {
		if !f.set {
			continue
		}
		if out, err = sjson.SetBytes(out, f.key, f.value); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// RecordWriter writes raw events as trace lines.
type RecordWriter struct {
	w     io.Writer
	start time.Time
	last  time.Duration
}

// NewRecordWriter creates a writer whose offsets count from start.
func NewRecordWriter(w io.Writer, start time.Time) *RecordWriter {
	return &RecordWriter{w: w, start: start}
}

// Write appends raw as one trace line. Offsets never decrease: events
// without a timestamp, or stamped earlier than the previous line, are
// recorded at the previous offset.
func (rw *RecordWriter) Write(raw wheel.RawEvent) error {
	offset := rw.last
	if !raw.Timestamp.IsZero() {
		offset = max(raw.Timestamp.Sub(rw.start), rw.last)
	}
	line, err := EncodeRecord(Record{Offset: offset, Event: raw})
	if err != nil {
		return err
	}
	rw.last = offset
	_, err = rw.w.Write(append(line, '\n'))
	return err
}

// parseAxis maps anything but the two axis constants to AxisNone.
func parseAxis(v gjson.Result) wheel.Axis {
	switch v.Int() {
	case int64(wheel.AxisHorizontal):
		return wheel.AxisHorizontal
	case int64(wheel.AxisVertical):
		return wheel.AxisVertical
	default:
		return wheel.AxisNone
	}
}

func millis(ms float64) time.Duration {
	if math.IsNaN(ms) || ms < 0 {
		return 0
	}
	return time.Duration(ms * float64(time.Millisecond))
}

func toMillis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
