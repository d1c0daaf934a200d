/*
 * Copyright (c) 2025 Hardiyanto Y -Ebiet.
 * This software is part of the HDX (Hardix Audio) project.
 * This code is provided "as is", without warranty of any kind.
 */

package media

import (
	"fmt"
	"sync"
)

// Headless is a silent element. It keeps the full state machine of a
// real element and advances its clock only through Advance, which makes
// it useful on machines without an audio device and in tests.
type Headless struct {
	mu sync.Mutex

	src, mimeType string
	loaded        bool
	paused        bool
	position      float64
	duration      float64
	volume        float64
	muted         bool
	blockPlay     bool
	loads         int
	gen           int
	err           error

	durations map[string]float64
	supported map[string]bool
	notify    Notifier
}

func NewHeadless() *Headless {
	return &Headless{
		paused:    true,
		volume:    1,
		durations: make(map[string]float64),
	}
}

// SetDuration registers the length reported once src is loaded.
func (h *Headless) SetDuration(src string, seconds float64) {
	h.mu.Lock()
	h.durations[src] = seconds
	h.mu.Unlock()
}

// SetSupported restricts Load to the given MIME types. nil accepts all.
func (h *Headless) SetSupported(mimeTypes ...string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if mimeTypes == nil {
		h.supported = nil
		return
	}
	h.supported = make(map[string]bool, len(mimeTypes))
	for _, m := range mimeTypes {
		h.supported[m] = true
	}
}

// SetBlockPlay makes Play a silent no-op, like a browser autoplay policy.
func (h *Headless) SetBlockPlay(block bool) {
	h.mu.Lock()
	h.blockPlay = block
	h.mu.Unlock()
}

// Loads counts Load calls.
func (h *Headless) Loads() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.loads
}

// Source returns the source and type last given to SetSource.
func (h *Headless) Source() (string, string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.src, h.mimeType
}

func (h *Headless) SetNotifier(n Notifier) {
	h.mu.Lock()
	h.notify = n
	h.mu.Unlock()
}

func (h *Headless) SetSource(src, mimeType string) {
	h.mu.Lock()
	h.src, h.mimeType = src, mimeType
	h.mu.Unlock()
}

func (h *Headless) Load() {
	h.mu.Lock()
	h.loads++
	gen := h.gen
	var events []EventType
	if !h.paused {
		h.paused = true
		events = append(events, EventPause)
	}
	h.loadLocked()
	h.mu.Unlock()
	h.emit(gen, events...)
}

func (h *Headless) loadLocked() {
	h.gen++
	h.position = 0
	h.duration = 0
	h.loaded = false
	switch {
	case h.src == "":
		h.err = ErrNoSource
	case h.supported != nil && !h.supported[h.mimeType]:
		h.err = fmt.Errorf("%w: %s", ErrUnsupportedType, h.mimeType)
	default:
		h.err = nil
		h.loaded = true
		h.duration = h.durations[h.src]
	}
}

func (h *Headless) Play() {
	h.mu.Lock()
	if h.blockPlay || !h.paused {
		h.mu.Unlock()
		return
	}
	if !h.loaded {
		h.loadLocked()
		if h.err != nil {
			h.mu.Unlock()
			return
		}
	}
	if h.duration > 0 && h.position >= h.duration {
		h.position = 0
	}
	h.paused = false
	gen := h.gen
	h.mu.Unlock()
	h.emit(gen, EventPlay)
}

func (h *Headless) Pause() {
	h.mu.Lock()
	if h.paused {
		h.mu.Unlock()
		return
	}
	h.paused = true
	gen := h.gen
	h.mu.Unlock()
	h.emit(gen, EventPause)
}

func (h *Headless) Paused() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.paused
}

// Advance moves the clock of a playing element forward. Reaching the end
// of a track with a known duration finishes it.
func (h *Headless) Advance(seconds float64) {
	h.mu.Lock()
	if h.paused {
		h.mu.Unlock()
		return
	}
	h.position += seconds
	ended := h.duration > 0 && h.position >= h.duration
	h.mu.Unlock()
	if ended {
		h.Finish()
	}
}

// Finish ends the current track as if it played to the end.
func (h *Headless) Finish() {
	h.mu.Lock()
	if h.paused {
		h.mu.Unlock()
		return
	}
	h.position = h.duration
	h.paused = true
	gen := h.gen
	h.mu.Unlock()
	h.emit(gen, EventPause, EventEnded)
}

func (h *Headless) CurrentTime() float64 {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.position
}

func (h *Headless) SetCurrentTime(seconds float64) {
	h.mu.Lock()
	h.position = clampTime(seconds, h.duration)
	h.mu.Unlock()
}

func (h *Headless) Duration() float64 {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.duration
}

func (h *Headless) Volume() float64 {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.volume
}

func (h *Headless) SetVolume(v float64) error {
	if !validVolume(v) {
		return ErrVolumeRange
	}
	h.mu.Lock()
	changed := h.volume != v
	h.volume = v
	gen := h.gen
	h.mu.Unlock()
	if changed {
		h.emit(gen, EventVolumeChange)
	}
	return nil
}

func (h *Headless) Muted() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.muted
}

func (h *Headless) SetMuted(m bool) {
	h.mu.Lock()
	changed := h.muted != m
	h.muted = m
	gen := h.gen
	h.mu.Unlock()
	if changed {
		h.emit(gen, EventVolumeChange)
	}
}

func (h *Headless) Err() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.err
}

func (h *Headless) Generation() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.gen
}

func (h *Headless) Close() error { return nil }

func (h *Headless) emit(gen int, types ...EventType) {
	h.mu.Lock()
	n := h.notify
	h.mu.Unlock()
	if n == nil {
		return
	}
	for _, t := range types {
		n(Event{Type: t, Gen: gen})
	}
}
