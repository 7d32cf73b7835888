package trace

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/wheelnorm/internal/input/wheel"
)

func modernRecords(gap time.Duration, deltas ...float64) []Record {
	records := make([]Record, len(deltas))
	for i, d := range deltas {
		records[i] = Record{
			Offset: time.Duration(i) * gap,
			Event:  wheel.RawEvent{Type: "wheel", DeltaX: d},
		}
	}
	return records
}

func kinds(emissions []Emission) []Kind {
	out := make([]Kind, len(emissions))
	for i, e := range emissions {
		out[i] = e.Kind
	}
	return out
}

func TestReplay_Gesture(t *testing.T) {
	got, err := Replay(modernRecords(10*time.Millisecond, 2, 10, 10), Options{})
	require.NoError(t, err)

	want := []Emission{
		{Offset: 0, Kind: KindStart},
		{Offset: 0, Kind: KindWheel, Distance: wheel.Distance{X: -50}},
		{Offset: 10 * time.Millisecond, Kind: KindWheel, Distance: wheel.Distance{X: -10}},
		{Offset: 20 * time.Millisecond, Kind: KindWheel, Distance: wheel.Distance{X: -10}},
		{Offset: 120 * time.Millisecond, Kind: KindEnd},
	}
	assert.Equal(t, want, got)
}

func TestReplay_Deterministic(t *testing.T) {
	records := modernRecords(7*time.Millisecond, 1, 3, 9, 27, 5, 2, 1, 0.5)

	first, err := Replay(records, Options{})
	require.NoError(t, err)
	second, err := Replay(records, Options{})
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

var spikeDeltas = []float64{0.5, 63.5, 62, 59, 110, 49.5, 45, 41, 37.5, 34.5, 0.5}

func TestReplay_Rescroll(t *testing.T) {
	got, err := Replay(modernRecords(10*time.Millisecond, spikeDeltas...), Options{})
	require.NoError(t, err)
	require.Len(t, got, 16)

	tail := got[12:]
	assert.Equal(t, []Kind{KindRescroll, KindEnd, KindStart, KindEnd}, kinds(tail))
	assert.Equal(t, []bool{false, true, true, false}, []bool{
		tail[0].Synthetic, tail[1].Synthetic, tail[2].Synthetic, tail[3].Synthetic,
	})
	assert.Equal(t, 100*time.Millisecond, tail[1].Offset)
	assert.Equal(t, 200*time.Millisecond, tail[3].Offset)
}

func TestReplay_OmitSynthetic(t *testing.T) {
	got, err := Replay(modernRecords(10*time.Millisecond, spikeDeltas...), Options{OmitSynthetic: true})
	require.NoError(t, err)

	require.Len(t, got, 14)
	for _, e := range got {
		assert.False(t, e.Synthetic)
	}
	assert.Equal(t, []Kind{KindRescroll, KindEnd}, kinds(got[12:]))
}

func TestReplay_CustomConfig(t *testing.T) {
	cfg := wheel.DefaultConfig()
	cfg.DetectRescroll = false
	cfg.EndDelay = 30 * time.Millisecond

	got, err := Replay(modernRecords(10*time.Millisecond, spikeDeltas...), Options{Config: cfg})
	require.NoError(t, err)

	assert.NotContains(t, kinds(got), KindRescroll)
	last := got[len(got)-1]
	assert.Equal(t, KindEnd, last.Kind)
	assert.Equal(t, 130*time.Millisecond, last.Offset)
}

func TestReplay_EventName(t *testing.T) {
	records, err := Read(strings.NewReader(`{"t":0,"type":"DOMMouseScroll","detail":3,"axis":2}
{"t":5,"type":"mousewheel","wheelDeltaY":120}
`))
	require.NoError(t, err)

	got, err := Replay(records, Options{})
	require.NoError(t, err)
	assert.Equal(t, []Kind{KindStart, KindWheel, KindEnd}, kinds(got), "inferred from the first record")
	assert.Equal(t, wheel.Distance{Y: -50}, got[1].Distance)

	got, err = Replay(records, Options{EventName: "mousewheel"})
	require.NoError(t, err)
	assert.Equal(t, []Kind{KindStart, KindWheel, KindEnd}, kinds(got))
	assert.Equal(t, wheel.Distance{Y: 50}, got[1].Distance)

	got, err = Replay(records, Options{EventName: "wheel"})
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestReplay_Annotate(t *testing.T) {
	got, err := Replay(modernRecords(10*time.Millisecond, 1), Options{
		Annotate: func(e Emission) (string, error) {
			return strings.ToUpper(string(e.Kind)), nil
		},
	})
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, "START", got[0].Annotation)
	assert.Equal(t, "END", got[2].Annotation)

	errHook := errors.New("hook failed")
	_, err = Replay(modernRecords(10*time.Millisecond, 1), Options{
		Annotate: func(e Emission) (string, error) {
			if e.Kind == KindEnd {
				return "", errHook
			}
			return "", nil
		},
	})
	assert.ErrorIs(t, err, errHook)
}

func TestReplay_Errors(t *testing.T) {
	records := []Record{{Offset: 10 * time.Millisecond}, {Offset: 5 * time.Millisecond}}
	_, err := Replay(records, Options{})
	assert.ErrorIs(t, err, ErrTimeOrder)

	got, err := Replay(nil, Options{})
	require.NoError(t, err)
	assert.Empty(t, got)
}
