package wheel

// history is a fixed-capacity circular buffer of samples.
// Writes overwrite the oldest sample once the buffer is full.
type history struct {
	buf   []float64
	next  int // write cursor
	count int
}

func newHistory(capacity int) *history {
	return &history{buf: make([]float64, capacity)}
}

// push records v as the most recent sample.
func (h *history) push(v float64) {
	h.buf[h.next] = v
	h.next = (h.next + 1) % len(h.buf)
	if h.count < len(h.buf) {
		h.count++
	}
}

// len returns the number of stored samples.
func (h *history) len() int {
	return h.count
}

// back returns the sample n positions before the most recent one
// (back(0) is the most recent). Callers check n < len().
func (h *history) back(n int) float64 {
	c := len(h.buf)
	return h.buf[((h.next-1-n)%c+c)%c]
}

// values returns the stored samples oldest first.
func (h *history) values() []float64 {
	out := make([]float64, h.count)
	for i := 0; i < h.count; i++ {
		out[i] = h.back(h.count - 1 - i)
	}
	return out
}

// reset empties the buffer.
func (h *history) reset() {
	for i := range h.buf {
		h.buf[i] = 0
	}
	h.next = 0
	h.count = 0
}
