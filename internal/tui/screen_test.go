/*
 * Copyright (c) 2025 Hardiyanto Y -Ebiet.
 * This software is part of the HDX (Hardix Audio) project.
 * This code is provided "as is", without warranty of any kind.
 */

package tui

import (
	"fmt"
	"strings"
	"testing"

	"hdxdeck/internal/catalog"
	"hdxdeck/internal/player"
	"hdxdeck/pkg/defaults"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tracks(n int) []catalog.Track {
	out := make([]catalog.Track, n)
	for i := range out {
		out[i] = catalog.Track{Name: fmt.Sprintf("Song %d", i+1), Source: fmt.Sprintf("/m/%d.wav", i)}
	}
	return out
}

// lineOf finds the line holding text in a rendered frame, -1 if none.
func lineOf(frame, text string) int {
	for i, l := range strings.Split(frame, "\n") {
		if strings.Contains(l, text) {
			return i
		}
	}
	return -1
}

func TestScreenRender(t *testing.T) {
	s := NewScreen("Road trip", tracks(3))
	s.SetTrackName("Song 2")
	s.SetTrackClass(1, defaults.ClassActive)
	s.SetTransportLabel(defaults.LabelPause)
	s.Observe(player.Notice{Kind: player.NoticeTick, Status: player.Status{
		Position: 65, Duration: 130, Volume: 0.8, Muted: true, Levels: []float64{0, 1},
	}})

	frame := s.Render()
	assert.Contains(t, frame, "Road trip")
	assert.Contains(t, frame, "♪ Song 2")
	assert.Contains(t, frame, "01:05 / 02:10")
	assert.Contains(t, frame, "[Pause]")
	assert.Contains(t, frame, "Vol  80% (muted)")
	assert.Contains(t, frame, "▁█")
	for i := 1; i <= 3; i++ {
		assert.Contains(t, frame, fmt.Sprintf("%3d. Song %d", i, i))
	}
	lines := strings.Split(frame, "\n")
	footer := lines[len(lines)-1]
	assert.Contains(t, footer, "play/pause")
	assert.Contains(t, footer, "quit")
}

func TestScreenObserveSignals(t *testing.T) {
	s := NewScreen("x", tracks(1))
	// a burst must not block the caller
	s.Observe(player.Notice{Kind: player.NoticeTrack})
	s.Observe(player.Notice{Kind: player.NoticeTick, Status: player.Status{Position: 3}})

	select {
	case <-s.Changed():
	default:
		t.Fatal("no change signalled")
	}
	select {
	case <-s.Changed():
		t.Fatal("burst was not collapsed")
	default:
	}
	assert.Contains(t, s.Render(), "00:03")
}

func TestScreenHitTest(t *testing.T) {
	s := NewScreen("x", tracks(3))
	frame := s.Render()

	y := lineOf(frame, "Song 3")
	require.Positive(t, y)
	assert.Equal(t, "track2", s.HitTest(0, y))
	assert.Equal(t, "track2", s.HitTest(40, y))

	by := lineOf(frame, "[Play]")
	require.Positive(t, by)
	assert.Equal(t, defaults.TargetPrevious, s.HitTest(1, by))

	line := strings.Split(frame, "\n")[by]
	col := strings.Index(line, "[Play]")
	require.GreaterOrEqual(t, col, 0)
	// columns are counted in runes, the prev button carries a multi-byte glyph
	x := len([]rune(line[:col])) + 1
	assert.Equal(t, defaults.TargetPlay, s.HitTest(x, by))

	assert.Empty(t, s.HitTest(0, 0))
	assert.Empty(t, s.HitTest(500, by))
}

func TestScreenScrollsToActive(t *testing.T) {
	s := NewScreen("x", tracks(50))
	s.SetSize(80, 20)
	s.SetTrackClass(40, defaults.ClassActive)
	frame := s.Render()
	assert.Contains(t, frame, "Song 41")
	assert.NotContains(t, frame, "  1. Song 1\n")
	assert.LessOrEqual(t, strings.Count(frame, "\n")+1, 20)
}

func TestScreenFocus(t *testing.T) {
	s := NewScreen("x", tracks(1))
	assert.Empty(t, s.Focused())

	s.MoveFocus(1)
	assert.Equal(t, defaults.TargetPrevious, s.Focused())
	s.MoveFocus(1)
	assert.Equal(t, defaults.TargetPlay, s.Focused())
	s.MoveFocus(1)
	s.MoveFocus(1)
	assert.Equal(t, defaults.TargetPrevious, s.Focused())
	s.MoveFocus(-1)
	assert.Equal(t, defaults.TargetNext, s.Focused())

	s.Focus("track0")
	assert.Empty(t, s.Focused())
	s.MoveFocus(-1)
	assert.Equal(t, defaults.TargetNext, s.Focused())
	s.Focus(defaults.TargetPlay)
	assert.Equal(t, defaults.TargetPlay, s.Focused())
}

func TestHelpers(t *testing.T) {
	assert.Equal(t, "[█████░░░░░] 00:50 / 01:40", progressBar(50, 100, 10))
	assert.Equal(t, "[░░░░] 00:00 / --:--", progressBar(0, 0, 4))
	assert.Equal(t, "[████] 02:00 / 01:00", progressBar(120, 60, 4))

	first, last := window(10, 9, 4)
	assert.Equal(t, 6, first)
	assert.Equal(t, 10, last)
	first, last = window(3, 2, 10)
	assert.Equal(t, 0, first)
	assert.Equal(t, 3, last)

	assert.Equal(t, "abc…", truncate("abcdefg", 4))
	assert.Equal(t, "▁▅█", spectrum([]float64{-1, 0.55, 2}))
}
