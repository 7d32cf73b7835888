package trace

import (
	"io"
	"time"

	"github.com/tidwall/sjson"

	"github.com/dshills/wheelnorm/internal/input/wheel"
)

// Kind identifies an adapter notification.
type Kind string

// Notification kinds.
const (
	KindStart    Kind = "start"
	KindWheel    Kind = "wheel"
	KindEnd      Kind = "end"
	KindRescroll Kind = "rescroll"
)

// Emission is one notification published by the adapter during replay.
type Emission struct {
	// Offset is the replay time of the notification.
	Offset time.Duration

	Kind     Kind
	Distance wheel.Distance

	// Synthetic marks the end/start pair produced by a rescroll.
	Synthetic bool

	// Annotation is an optional note attached by a script hook.
	Annotation string
}

// Encode renders e as a JSON object.
func (e Emission) Encode() ([]byte, error) {
	out := []byte("{}")
	var err error
	set := func(key string, value any) {
		if err == nil {
			out, err = sjson.SetBytes(out, key, value)
		}
	}

	set("t", toMillis(e.Offset))
	set("kind", string(e.Kind))
	set("x", e.Distance.X)
	set("y", e.Distance.Y)
	set("synthetic", e.Synthetic)
	if e.Annotation != "" {
		set("annotation", e.Annotation)
	}
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Writer writes emissions as JSON lines.
type Writer struct {
	w io.Writer
}

// NewWriter creates a writer on w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

// Write appends one emission.
func (w *Writer) Write(e Emission) error {
	line, err := e.Encode()
	if err != nil {
		return err
	}
	_, err = w.w.Write(append(line, '\n'))
	return err
}

// WriteAll appends every emission, stopping at the first error.
func (w *Writer) WriteAll(emissions []Emission) error {
	for _, e := range emissions {
		if err := w.Write(e); err != nil {
			return err
		}
	}
	return nil
}
