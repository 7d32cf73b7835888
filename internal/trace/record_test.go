package trace

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/wheelnorm/internal/input/wheel"
)

func TestRead(t *testing.T) {
	input := `{"t": 0, "type": "mousewheel", "wheelDeltaY": 120, "x": 5, "y": 6}

{"timeStamp": 16.5, "type": "DOMMouseScroll", "detail": 3, "axis": 2}
{"t": 20, "deltaX": -4.5, "deltaY": null}
`
	records, err := Read(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, records, 3)

	assert.Equal(t, Record{
		Line:   1,
		Offset: 0,
		Event:  wheel.RawEvent{Type: "mousewheel", WheelDeltaY: 120, Position: wheel.Position{X: 5, Y: 6}},
	}, records[0])
	assert.Equal(t, Record{
		Line:   3,
		Offset: 16500 * time.Microsecond,
		Event:  wheel.RawEvent{Type: "DOMMouseScroll", Detail: 3, Axis: wheel.AxisVertical},
	}, records[1])
	assert.Equal(t, Record{
		Line:   4,
		Offset: 20 * time.Millisecond,
		Event:  wheel.RawEvent{DeltaX: -4.5},
	}, records[2])
}

func TestRead_Errors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		line    string
		wantErr error
	}{
		{"not json", "{\"t\":0}\nnot json\n", "line 2", ErrInvalidJSON},
		{"array", "[1, 2]", "line 1", ErrInvalidJSON},
		{"missing time", "{\"type\":\"wheel\"}", "line 1", ErrMissingTime},
		{"string time", "{\"t\":\"soon\"}", "line 1", ErrMissingTime},
		{"backwards", "{\"t\":10}\n\n{\"t\":5}", "line 3", ErrTimeOrder},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Read(strings.NewReader(tt.input))
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.wantErr))
			assert.Contains(t, err.Error(), tt.line)
		})
	}
}

func TestRead_Empty(t *testing.T) {
	records, err := Read(strings.NewReader("\n  \n"))
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestEncodeRecord(t *testing.T) {
	rec := Record{
		Offset: 33 * time.Millisecond,
		Event: wheel.RawEvent{
			Type:   "DOMMouseScroll",
			Detail: -3,
			Axis:   wheel.AxisHorizontal,
		},
	}

	line, err := EncodeRecord(rec)
	require.NoError(t, err)
	assert.JSONEq(t, `{"t":33,"type":"DOMMouseScroll","detail":-3,"axis":1}`, string(line))

	back, err := ParseRecord(string(line))
	require.NoError(t, err)
	assert.Equal(t, rec, back)
}

func TestRecordWriter(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	var buf bytes.Buffer
	w := NewRecordWriter(&buf, start)

	require.NoError(t, w.Write(wheel.RawEvent{Type: "wheel", DeltaY: -40, Timestamp: start.Add(16500 * time.Microsecond)}))
	require.NoError(t, w.Write(wheel.RawEvent{Type: "wheel", DeltaX: 40}))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.JSONEq(t, `{"t":16.5,"type":"wheel","deltaY":-40}`, lines[0])
	assert.JSONEq(t, `{"t":16.5,"type":"wheel","deltaX":40}`, lines[1])

	records, err := Read(&buf)
	require.NoError(t, err)
	assert.Len(t, records, 2)
}

func TestRecordWriter_OffsetsNeverDecrease(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	var buf bytes.Buffer
	w := NewRecordWriter(&buf, start)

	require.NoError(t, w.Write(wheel.RawEvent{Type: "wheel", DeltaY: 10, Timestamp: start.Add(20 * time.Millisecond)}))
	require.NoError(t, w.Write(wheel.RawEvent{Type: "wheel", DeltaY: 20}))
	require.NoError(t, w.Write(wheel.RawEvent{Type: "wheel", DeltaY: 30, Timestamp: start.Add(5 * time.Millisecond)}))
	require.NoError(t, w.Write(wheel.RawEvent{Type: "wheel", DeltaY: 40, Timestamp: start.Add(30 * time.Millisecond)}))

	records, err := Read(&buf)
	require.NoError(t, err)
	require.Len(t, records, 4)
	offsets := make([]time.Duration, len(records))
	for i, r := range records {
		offsets[i] = r.Offset
	}
	assert.Equal(t, []time.Duration{
		20 * time.Millisecond,
		20 * time.Millisecond,
		20 * time.Millisecond,
		30 * time.Millisecond,
	}, offsets)
}

func TestParseRecord_Axis(t *testing.T) {
	tests := []struct {
		name string
		line string
		want wheel.Axis
	}{
		{"horizontal", `{"t":0,"detail":3,"axis":1}`, wheel.AxisHorizontal},
		{"vertical", `{"t":0,"detail":3,"axis":2}`, wheel.AxisVertical},
		{"missing", `{"t":0,"detail":3}`, wheel.AxisNone},
		{"wraps a byte", `{"t":0,"detail":3,"axis":257}`, wheel.AxisNone},
		{"negative", `{"t":0,"detail":3,"axis":-1}`, wheel.AxisNone},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, err := ParseRecord(tt.line)
			require.NoError(t, err)
			assert.Equal(t, tt.want, rec.Event.Axis)
		})
	}
}
