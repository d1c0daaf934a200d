/*
 * Copyright (c) 2025 Hardiyanto Y -Ebiet.
 * This software is part of the HDX (Hardix Audio) project.
 * This code is provided "as is", without warranty of any kind.
 */

package tui

import (
	"strings"
	"testing"
	"time"

	"hdxdeck/internal/player"
	"hdxdeck/pkg/defaults"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type modelRig struct {
	m      Model
	s      *Screen
	inputs []player.Input
	ticks  int
}

func newModelRig() *modelRig {
	rig := &modelRig{s: NewScreen("Road trip", tracks(3))}
	router := NewRouter(rig.s, func(in player.Input) { rig.inputs = append(rig.inputs, in) })
	rig.m = NewModel(rig.s, router, time.Millisecond, func() { rig.ticks++ })
	return rig
}

func (r *modelRig) update(msg tea.Msg) tea.Cmd {
	m, cmd := r.m.Update(msg)
	r.m = m.(Model)
	return cmd
}

func TestModelKeys(t *testing.T) {
	rig := newModelRig()
	assert.Nil(t, rig.update(runes(".")))
	assert.Equal(t, []player.Input{{Kind: player.InputKey, Key: "."}}, rig.inputs)

	cmd := rig.update(runes("q"))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestModelMouse(t *testing.T) {
	rig := newModelRig()
	y := lineOf(rig.m.View(), "Song 3")

	// only a left press clicks
	rig.update(tea.MouseMsg{X: 2, Y: y, Action: tea.MouseActionRelease, Button: tea.MouseButtonLeft})
	rig.update(tea.MouseMsg{X: 2, Y: y, Action: tea.MouseActionPress, Button: tea.MouseButtonRight})
	assert.Empty(t, rig.inputs)

	rig.update(tea.MouseMsg{X: 2, Y: y, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	assert.Equal(t, []player.Input{{Kind: player.InputClick, Target: "track2"}}, rig.inputs)
}

func TestModelResize(t *testing.T) {
	rig := newModelRig()
	rig.s.SetTrackClass(0, defaults.ClassActive)
	rig.update(tea.WindowSizeMsg{Width: 40, Height: 12})
	assert.Equal(t, 12, len(strings.Split(rig.m.View(), "\n")))
}

func TestModelTickAndChange(t *testing.T) {
	rig := newModelRig()
	cmd := rig.update(tickMsg(time.Now()))
	assert.Equal(t, 1, rig.ticks)
	require.NotNil(t, cmd)
	assert.IsType(t, tickMsg{}, cmd())

	rig.s.Observe(player.Notice{Kind: player.NoticeTick, Status: player.Status{Position: 42}})
	cmd = rig.update(changedMsg{})
	require.NotNil(t, cmd)
	assert.Equal(t, changedMsg{}, cmd())
	assert.Contains(t, rig.m.View(), "00:42")
}

func TestModelNoTick(t *testing.T) {
	m := NewModel(NewScreen("x", tracks(1)), nil, 0, nil)
	assert.Nil(t, m.tick())
}
