/*
 * Copyright (c) 2025 Hardiyanto Y -Ebiet.
 * This software is part of the HDX (Hardix Audio) project.
 * This code is provided "as is", without warranty of any kind.
 */

// Package player holds the playlist state machine and the session loop
// that feeds it keys, clicks, control requests and media notifications.
package player

import (
	"errors"
	"fmt"

	"hdxdeck/internal/catalog"
	"hdxdeck/internal/media"
	"hdxdeck/pkg/defaults"

	"github.com/rs/zerolog"
)

var ErrTrackRange = errors.New("track index out of range")

// View receives presentation updates. Row i is the track at position i.
type View interface {
	SetTrackName(name string)
	SetTrackClass(i int, class string)
	SetTransportLabel(label string)
}

// Controller owns the current index and drives the element. Whether it
// is playing is always asked from the element.
type Controller struct {
	reg   *catalog.Registry
	el    media.Element
	view  View
	index int
	log   zerolog.Logger
}

func NewController(reg *catalog.Registry, el media.Element, view View, log zerolog.Logger) *Controller {
	return &Controller{
		reg:  reg,
		el:   el,
		view: view,
		log:  log.With().Str("component", "controller").Logger(),
	}
}

// Start resets every row to inactive and selects index.
func (c *Controller) Start(index int) error {
	if index < 0 || index >= c.reg.Len() {
		return fmt.Errorf("start %d of %d: %w", index, c.reg.Len(), ErrTrackRange)
	}
	for i := 0; i < c.reg.Len(); i++ {
		c.view.SetTrackClass(i, defaults.ClassClickable)
	}
	c.index = index
	c.SelectTrack(index)
	return nil
}

// SelectTrack switches to index, keeping the play/pause state as it was.
func (c *Controller) SelectTrack(index int) {
	track, ok := c.reg.At(index)
	if !ok {
		c.log.Warn().Int("index", index).Int("tracks", c.reg.Len()).Msg("select ignored")
		return
	}
	prev := c.index
	wasPlaying := !c.el.Paused()

	c.view.SetTrackClass(prev, defaults.ClassClickable)
	c.index = index
	c.view.SetTrackClass(index, defaults.ClassActive)
	c.view.SetTrackName(track.Name)

	c.el.SetSource(track.Source, track.MIMEType)
	c.el.Load()
	if wasPlaying {
		c.el.Play()
	}
	c.log.Debug().Int("from", prev).Int("to", index).Bool("playing", wasPlaying).Msg("track selected")
}

func (c *Controller) Next() {
	c.SelectTrack((c.index + 1) % c.reg.Len())
}

func (c *Controller) Previous() {
	n := c.reg.Len()
	c.SelectTrack((c.index - 1 + n) % n)
}

func (c *Controller) TogglePlayback() {
	if c.el.Paused() {
		c.view.SetTransportLabel(defaults.LabelPause)
		c.el.Play()
		return
	}
	c.view.SetTransportLabel(defaults.LabelPlay)
	c.el.Pause()
}

// SeekBy moves the playhead by delta seconds; the element clamps.
func (c *Controller) SeekBy(delta float64) {
	c.el.SetCurrentTime(c.el.CurrentTime() + delta)
}

// OnTrackEnded advances after a natural end. The last track just stops.
func (c *Controller) OnTrackEnded() {
	if c.index == c.reg.Len()-1 {
		return
	}
	c.Next()
	// the element reports paused after ending, so SelectTrack did not resume
	c.el.Play()
}

func (c *Controller) Index() int { return c.index }

func (c *Controller) Track() catalog.Track {
	t, _ := c.reg.At(c.index)
	return t
}

func (c *Controller) Playing() bool { return !c.el.Paused() }
