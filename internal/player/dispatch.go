/*
 * Copyright (c) 2025 Hardiyanto Y -Ebiet.
 * This software is part of the HDX (Hardix Audio) project.
 * This code is provided "as is", without warranty of any kind.
 */

package player

import (
	"strconv"
	"strings"

	"hdxdeck/pkg/defaults"
)

type InputKind int

const (
	InputKey InputKind = iota
	InputClick
	// InputNative is a press on the element's own controls (volume, mute).
	InputNative
)

// Input is one key press or click. Target is the id of the element that
// had focus (keys) or was clicked.
type Input struct {
	Kind        InputKind
	Key         string
	Target      string
	IsComposing bool
}

// Dispatcher maps inputs onto controller operations.
type Dispatcher struct {
	ctrl     *Controller
	seekStep float64
}

func NewDispatcher(ctrl *Controller, seekStep float64) *Dispatcher {
	if seekStep <= 0 {
		seekStep = defaults.SeekStep
	}
	return &Dispatcher{ctrl: ctrl, seekStep: seekStep}
}

// Dispatch reports whether the input triggered an operation.
func (d *Dispatcher) Dispatch(in Input) bool {
	switch in.Kind {
	case InputClick:
		return d.click(in.Target)
	case InputKey:
		if in.IsComposing {
			return false
		}
		return d.key(in)
	}
	return false
}

func (d *Dispatcher) click(target string) bool {
	switch target {
	case defaults.TargetPlay:
		d.ctrl.TogglePlayback()
	case defaults.TargetPrevious:
		d.ctrl.Previous()
	case defaults.TargetNext:
		d.ctrl.Next()
	default:
		i, ok := TrackTarget(target)
		if !ok {
			return false
		}
		d.ctrl.SelectTrack(i)
	}
	return true
}

func (d *Dispatcher) key(in Input) bool {
	switch in.Key {
	case defaults.KeyToggle:
		// the focused play button already toggles on its own click
		if in.Target == defaults.TargetPlay {
			return false
		}
		d.ctrl.TogglePlayback()
	case defaults.KeyPrevious:
		d.ctrl.Previous()
	case defaults.KeyNext:
		d.ctrl.Next()
	case defaults.KeyRewind:
		d.ctrl.SeekBy(-d.seekStep)
	case defaults.KeyForward:
		d.ctrl.SeekBy(d.seekStep)
	default:
		return false
	}
	return true
}

// TrackID is the element id of the row at position i.
func TrackID(i int) string {
	return defaults.TrackPrefix + strconv.Itoa(i)
}

// TrackTarget parses a row id produced by TrackID.
func TrackTarget(target string) (int, bool) {
	rest, ok := strings.CutPrefix(target, defaults.TrackPrefix)
	if !ok || rest == "" {
		return 0, false
	}
	i, err := strconv.Atoi(rest)
	if err != nil || i < 0 || strconv.Itoa(i) != rest {
		return 0, false
	}
	return i, true
}
