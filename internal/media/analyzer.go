/*
 * Copyright (c) 2025 Hardiyanto Y -Ebiet.
 * This software is part of the HDX (Hardix Audio) project.
 * This code is provided "as is", without warranty of any kind.
 */

package media

import (
	"math"
	"sync"

	"github.com/faiface/beep"
	"github.com/mjibson/go-dsp/fft"
)

const fftSize = 1024

// Analyzer keeps the most recent output samples (mono) and turns them
// into spectrum bands and an RMS level for the UI.
type Analyzer struct {
	mu   sync.Mutex
	ring [fftSize]float64
	pos  int
}

func NewAnalyzer() *Analyzer {
	return &Analyzer{}
}

// Tap returns a streamer that records everything s produces.
func (a *Analyzer) Tap(s beep.Streamer) beep.Streamer {
	return beep.StreamerFunc(func(samples [][2]float64) (int, bool) {
		n, ok := s.Stream(samples)
		a.push(samples[:n])
		return n, ok
	})
}

func (a *Analyzer) push(samples [][2]float64) {
	a.mu.Lock()
	for _, s := range samples {
		a.ring[a.pos] = (s[0] + s[1]) / 2
		a.pos = (a.pos + 1) % fftSize
	}
	a.mu.Unlock()
}

// Reset silences the window, e.g. after a new track is loaded.
func (a *Analyzer) Reset() {
	a.mu.Lock()
	a.ring = [fftSize]float64{}
	a.pos = 0
	a.mu.Unlock()
}

func (a *Analyzer) window() []float64 {
	a.mu.Lock()
	defer a.mu.Unlock()
	w := make([]float64, fftSize)
	for i := range w {
		w[i] = a.ring[(a.pos+i)%fftSize]
	}
	return w
}

// Levels returns bands values in [0, 1], low frequencies first. Bin
// boundaries grow geometrically so the bass is not squeezed into one bar.
func (a *Analyzer) Levels(bands int) []float64 {
	if bands <= 0 {
		return nil
	}
	w := a.window()
	// Hann window
	for i := range w {
		w[i] *= 0.5 * (1 - math.Cos(2*math.Pi*float64(i)/float64(fftSize-1)))
	}
	coeffs := fft.FFTReal(w)

	half := fftSize / 2
	out := make([]float64, bands)
	lo := 1
	for b := 0; b < bands; b++ {
		hi := int(math.Round(math.Pow(float64(half), float64(b+1)/float64(bands))))
		if hi <= lo {
			hi = lo + 1
		}
		if hi > half {
			hi = half
		}
		var peak float64
		for i := lo; i < hi; i++ {
			mag := math.Hypot(real(coeffs[i]), imag(coeffs[i]))
			peak = math.Max(peak, mag)
		}
		// ~ -60dB .. 0dB
		db := 20 * math.Log10(peak/float64(half)+1e-9)
		out[b] = math.Min(math.Max((db+60)/60, 0), 1)
		lo = hi
	}
	return out
}

// RMS returns the energy of the current window in [0, 1].
func (a *Analyzer) RMS() float64 {
	w := a.window()
	var sum float64
	for _, v := range w {
		sum += v * v
	}
	return math.Min(math.Sqrt(sum/float64(len(w))), 1)
}
