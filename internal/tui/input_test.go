/*
 * Copyright (c) 2025 Hardiyanto Y -Ebiet.
 * This software is part of the HDX (Hardix Audio) project.
 * This code is provided "as is", without warranty of any kind.
 */

package tui

import (
	"testing"

	"hdxdeck/internal/player"
	"hdxdeck/pkg/defaults"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
)

type routed struct {
	inputs []player.Input
}

func newRouted() (*Router, *Screen, *routed) {
	rec := &routed{}
	s := NewScreen("x", tracks(3))
	r := NewRouter(s, func(in player.Input) { rec.inputs = append(rec.inputs, in) })
	return r, s, rec
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func space() tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
}

func TestRouterHotkeys(t *testing.T) {
	r, _, rec := newRouted()
	assert.False(t, r.Key(space()))
	assert.False(t, r.Key(runes(">")))
	// runes typed faster than they are read arrive together
	assert.False(t, r.Key(runes(",.")))
	assert.Equal(t, []player.Input{
		{Kind: player.InputKey, Key: " "},
		{Kind: player.InputKey, Key: ">"},
		{Kind: player.InputKey, Key: ","},
		{Kind: player.InputKey, Key: "."},
	}, rec.inputs)
}

func TestRouterFocusedButton(t *testing.T) {
	r, s, rec := newRouted()
	r.Key(tea.KeyMsg{Type: tea.KeyTab})
	r.Key(tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, defaults.TargetPlay, s.Focused())
	assert.Empty(t, rec.inputs)

	r.Key(space())
	assert.Equal(t, []player.Input{
		{Kind: player.InputKey, Key: " ", Target: defaults.TargetPlay},
		{Kind: player.InputClick, Target: defaults.TargetPlay},
	}, rec.inputs)

	rec.inputs = nil
	r.Key(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, []player.Input{{Kind: player.InputClick, Target: defaults.TargetPlay}}, rec.inputs)

	rec.inputs = nil
	r.Key(tea.KeyMsg{Type: tea.KeyEsc})
	r.Key(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Empty(t, rec.inputs)
}

func TestRouterBackTab(t *testing.T) {
	r, s, _ := newRouted()
	r.Key(tea.KeyMsg{Type: tea.KeyShiftTab})
	assert.Equal(t, defaults.TargetNext, s.Focused())
}

func TestRouterNativeAndQuit(t *testing.T) {
	r, _, rec := newRouted()
	r.Key(runes("-"))
	r.Key(runes("+"))
	r.Key(runes("m"))
	assert.Equal(t, []player.Input{
		{Kind: player.InputNative, Target: defaults.TargetVolumeDown},
		{Kind: player.InputNative, Target: defaults.TargetVolumeUp},
		{Kind: player.InputNative, Target: defaults.TargetMute},
	}, rec.inputs)

	assert.True(t, r.Key(runes("q")))
	assert.True(t, r.Key(tea.KeyMsg{Type: tea.KeyCtrlC}))
}

func TestRouterComposing(t *testing.T) {
	r, _, rec := newRouted()
	r.Key(tea.KeyMsg{Type: tea.KeyUp})
	r.Key(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("."), Alt: true})
	r.Key(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(" . "), Paste: true})
	composing := player.Input{Kind: player.InputKey, IsComposing: true}
	assert.Equal(t, []player.Input{composing, composing, composing}, rec.inputs)
}

func TestRouterClick(t *testing.T) {
	r, s, rec := newRouted()
	frame := s.Render()
	y := lineOf(frame, "Song 2")

	r.Click(3, y)
	assert.Equal(t, []player.Input{{Kind: player.InputClick, Target: "track1"}}, rec.inputs)
	assert.Empty(t, s.Focused())

	rec.inputs = nil
	by := lineOf(frame, "[Play]")
	r.Click(1, by)
	assert.Equal(t, []player.Input{{Kind: player.InputClick, Target: defaults.TargetPrevious}}, rec.inputs)
	assert.Equal(t, defaults.TargetPrevious, s.Focused())

	rec.inputs = nil
	r.Click(0, 0)
	assert.Empty(t, rec.inputs)
}
