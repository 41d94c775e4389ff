package debugui

// FrameHistory is a fixed ring of frame times in milliseconds, laid out for
// imgui.PlotLinesFloatPtr.
type FrameHistory struct {
	samples []float32
	next    int
	filled  int
}

func NewFrameHistory(size int) *FrameHistory {
	return &FrameHistory{samples: make([]float32, max(size, 1))}
}

// Push records one frame duration given in seconds.
func (h *FrameHistory) Push(seconds float64) {
	h.samples[h.next] = float32(seconds * 1000)
	h.next = (h.next + 1) % len(h.samples)
	h.filled = min(h.filled+1, len(h.samples))
}

// Average returns the mean of the recorded samples in milliseconds.
func (h *FrameHistory) Average() float32 {
	if h.filled == 0 {
		return 0
	}
	var sum float32
	for _, sample := range h.samples {
		sum += sample
	}
	return sum / float32(h.filled)
}

func (h *FrameHistory) Samples() []float32 {
	return h.samples
}
