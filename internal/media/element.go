/*
 * Copyright (c) 2025 Hardiyanto Y -Ebiet.
 * This software is part of the HDX (Hardix Audio) project.
 * This code is provided "as is", without warranty of any kind.
 */

// Package media wraps the audio output behind a small media element
// contract: load/play/pause/seek/volume/mute plus play, pause, ended and
// volumechange notifications.
package media

import (
	"errors"
)

var (
	ErrUnsupportedType = errors.New("unsupported media type")
	ErrVolumeRange     = errors.New("volume outside [0, 1]")
	ErrNoSource        = errors.New("no media source")
)

// EventType names a notification raised by an element.
type EventType int

const (
	EventPlay EventType = iota
	EventPause
	EventEnded
	EventVolumeChange
)

func (t EventType) String() string {
	switch t {
	case EventPlay:
		return "play"
	case EventPause:
		return "pause"
	case EventEnded:
		return "ended"
	case EventVolumeChange:
		return "volumechange"
	}
	return "unknown"
}

// Event is one notification. Gen is the load generation of the element
// when the event was raised.
type Event struct {
	Type EventType
	Gen  int
}

// Notifier receives element notifications. It may be called from any
// goroutine and must not call back into the element.
type Notifier func(Event)

// Element is the playback primitive the controller drives.
//
// Load on a playing element pauses it (raising pause). A natural end
// leaves the element paused and raises pause then ended. Play and Pause
// only raise a notification when the state actually changes, as do
// SetVolume and SetMuted for volumechange. SetCurrentTime clamps to
// [0, Duration()].
//
// Every load, explicit or implied by Play, starts a new generation.
// Events still in flight from an older generation are stale.
type Element interface {
	SetSource(src, mimeType string)
	Load()
	Play()
	Pause()
	Paused() bool

	CurrentTime() float64
	SetCurrentTime(seconds float64)
	Duration() float64

	Volume() float64
	SetVolume(v float64) error
	Muted() bool
	SetMuted(m bool)

	// Err reports the last load failure, nil after a successful load.
	Err() error
	// Generation is the current load generation.
	Generation() int

	SetNotifier(n Notifier)
	Close() error
}

// Spectrum is implemented by elements that can report output levels.
type Spectrum interface {
	Levels(bands int) []float64
}

func clampTime(t, duration float64) float64 {
	if t < 0 || t != t {
		return 0
	}
	if duration > 0 && t > duration {
		return duration
	}
	return t
}

func validVolume(v float64) bool {
	return v >= 0 && v <= 1
}
