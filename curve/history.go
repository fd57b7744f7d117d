package curve

// history is a ring of whole-curve frames. Frame k occupies [k*n, (k+1)*n) of ys and classes, so
// every sample's saved states sit at a fixed stride from each other.
type history struct {
	n        int
	capacity int

	ys      []float64
	classes []Classification

	head  int
	depth int
}

func newHistory(n, capacity int) *history {
	return &history{
		n:        n,
		capacity: capacity,
		ys:       make([]float64, n*capacity),
		classes:  make([]Classification, n*capacity),
	}
}

// push saves a frame, overwriting the oldest one when full.
func (h *history) push(ys []float64, classes []Classification) {
	off := h.head * h.n
	copy(h.ys[off:off+h.n], ys)
	copy(h.classes[off:off+h.n], classes)

	h.head = (h.head + 1) % h.capacity

	if h.depth < h.capacity {
		h.depth++
	}
}

func (h *history) pop(ys []float64, classes []Classification) bool {
	if h.depth == 0 {
		return false
	}

	h.head = (h.head - 1 + h.capacity) % h.capacity
	h.depth--

	off := h.head * h.n
	copy(ys, h.ys[off:off+h.n])
	copy(classes, h.classes[off:off+h.n])

	return true
}

func (h *history) clear() {
	h.head = 0
	h.depth = 0
}
