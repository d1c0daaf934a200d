/*
 * Copyright (c) 2025 Hardiyanto Y -Ebiet.
 * This software is part of the HDX (Hardix Audio) project.
 * This code is provided "as is", without warranty of any kind.
 */

package media

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/faiface/beep"
	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sine(freq, rate float64) beep.Streamer {
	var i float64
	return beep.StreamerFunc(func(samples [][2]float64) (int, bool) {
		for k := range samples {
			v := math.Sin(2 * math.Pi * freq * i / rate)
			samples[k] = [2]float64{v, v}
			i++
		}
		return len(samples), true
	})
}

func TestAnalyzerSilence(t *testing.T) {
	a := NewAnalyzer()
	levels := a.Levels(8)
	require.Len(t, levels, 8)
	for _, l := range levels {
		assert.Zero(t, l)
	}
	assert.Zero(t, a.RMS())
	assert.Nil(t, a.Levels(0))
}

func TestAnalyzerTap(t *testing.T) {
	a := NewAnalyzer()
	tap := a.Tap(sine(2000, 48000))

	buf := make([][2]float64, fftSize)
	n, ok := tap.Stream(buf)
	require.True(t, ok)
	require.Equal(t, fftSize, n)

	assert.InDelta(t, 1/math.Sqrt2, a.RMS(), 0.02)

	levels := a.Levels(8)
	peak := 0
	for i, l := range levels {
		assert.GreaterOrEqual(t, l, 0.0)
		assert.LessOrEqual(t, l, 1.0)
		if l > levels[peak] {
			peak = i
		}
	}
	// 2 kHz sits in the upper half of a geometric 8-band split
	assert.GreaterOrEqual(t, peak, 4)

	a.Reset()
	assert.Zero(t, a.RMS())
}

func TestGain(t *testing.T) {
	assert.Zero(t, gain(1))
	assert.Equal(t, -1.0, gain(0.5))
	assert.Zero(t, gain(0))
}

func TestClampTime(t *testing.T) {
	assert.Zero(t, clampTime(-1, 10))
	assert.Zero(t, clampTime(math.NaN(), 10))
	assert.Equal(t, 10.0, clampTime(11, 10))
	// unknown duration only clamps below
	assert.Equal(t, 11.0, clampTime(11, 0))
}

func TestOpenSource(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tone.wav")
	f, err := os.Create(path)
	require.NoError(t, err)
	enc := wav.NewEncoder(f, 8000, 16, 1, 1)
	data := make([]int, 8000)
	require.NoError(t, enc.Write(&audio.IntBuffer{
		Format:         &audio.Format{NumChannels: 1, SampleRate: 8000},
		Data:           data,
		SourceBitDepth: 16,
	}))
	require.NoError(t, enc.Close())
	require.NoError(t, f.Close())

	src, err := openSource(path, "audio/wav")
	require.NoError(t, err)
	defer src.Close()
	assert.Equal(t, beep.SampleRate(8000), src.format.SampleRate)
	assert.Equal(t, 8000, src.streamer.Len())

	_, err = openSource(path, "application/octet-stream")
	assert.ErrorIs(t, err, ErrUnsupportedType)

	_, err = openSource(filepath.Join(t.TempDir(), "missing.wav"), "audio/wav")
	assert.ErrorIs(t, err, os.ErrNotExist)
}
