package render

import (
	"github.com/katalvlaran/wavecollapse/rng"
	"github.com/katalvlaran/wavecollapse/wfc"
)

// Frame is a detached snapshot of a model between iterations.
type Frame struct {
	Iteration  int
	Status     wfc.Status
	Pixels     []byte
	Entropies  []float64
	SumsOfOnes []int
}

// Capture renders m and copies its per-cell views.
func Capture(m *wfc.Model, iteration int) (Frame, error) {
	px, err := Render(m, nil)
	if err != nil {
		return Frame{}, err
	}

	return Frame{
		Iteration:  iteration,
		Status:     m.Status(),
		Pixels:     px,
		Entropies:  append([]float64(nil), m.Entropies()...),
		SumsOfOnes: append([]int(nil), m.SumsOfOnes()...),
	}, nil
}

// Collapsed reports whether cell i had exactly one possible pattern.
func (f Frame) Collapsed(i int) bool {
	return f.SumsOfOnes[i] == 1
}

// RecordOptions controls Record.
type RecordOptions struct {
	// Every captures one frame per Every iterations (values below 1 mean 1).
	Every int
	// MaxIterations stops the solve early; 0 runs until terminal.
	MaxIterations int
}

// Record drives m from its current state with SingleIteration, capturing
// the initial state, every opts.Every-th iteration and the last state.
// It returns the frames and the status reached.
func Record(m *wfc.Model, src rng.Source, opts RecordOptions) ([]Frame, wfc.Status, error) {
	every := opts.Every
	if every < 1 {
		every = 1
	}

	first, err := Capture(m, 0)
	if err != nil {
		return nil, m.Status(), err
	}
	frames := []Frame{first}

	status := m.Status()
	iter := 0
	for !status.Terminal() && (opts.MaxIterations == 0 || iter < opts.MaxIterations) {
		status = m.SingleIteration(src)
		iter++
		if iter%every != 0 && !status.Terminal() {
			continue
		}
		f, err := Capture(m, iter)
		if err != nil {
			return frames, status, err
		}
		frames = append(frames, f)
	}
	if frames[len(frames)-1].Iteration != iter {
		f, err := Capture(m, iter)
		if err != nil {
			return frames, status, err
		}
		frames = append(frames, f)
	}

	return frames, status, nil
}
