/*
 * Copyright (c) 2025 Hardiyanto Y -Ebiet.
 * This software is part of the HDX (Hardix Audio) project.
 * This code is provided "as is", without warranty of any kind.
 */

package player

import (
	"context"
	"errors"
	"fmt"
	"math"

	"hdxdeck/internal/catalog"
	"hdxdeck/internal/media"
	"hdxdeck/internal/prefs"
	"hdxdeck/pkg/defaults"

	"github.com/rs/zerolog"
)

var ErrClosed = errors.New("session closed")

type Options struct {
	Registry *catalog.Registry
	Element  media.Element
	View     View
	// Prefs may be nil, volume then is never persisted.
	Prefs      *prefs.Store
	SeekStep   float64
	VolumeStep float64
	// Bands is the number of spectrum bands put in each Status.
	Bands int
	Log   zerolog.Logger
}

// ======================================================
// Session (single authority)
// ======================================================

// Session serializes everything that touches the player onto one
// goroutine. Inputs and requests become jobs on a FIFO. Media
// notifications are queued the same way, so a notification caused by a
// job is always handled after that job returns.
type Session struct {
	reg   *catalog.Registry
	el    media.Element
	ctrl  *Controller
	sync  *Synchronizer
	disp  *Dispatcher
	prefs *prefs.Store

	volumeStep float64
	bands      int
	log        zerolog.Logger

	q         *queue
	observers []Observer
	lastIndex int
	done      chan struct{}
}

func NewSession(opts Options) (*Session, error) {
	if opts.Registry == nil || opts.Element == nil || opts.View == nil {
		return nil, errors.New("session needs a registry, an element and a view")
	}
	step := opts.VolumeStep
	if step <= 0 {
		step = defaults.VolumeStep
	}
	s := &Session{
		reg:        opts.Registry,
		el:         opts.Element,
		prefs:      opts.Prefs,
		volumeStep: step,
		bands:      opts.Bands,
		log:        opts.Log.With().Str("component", "session").Logger(),
		q:          newQueue(),
		done:       make(chan struct{}),
	}
	s.ctrl = NewController(opts.Registry, opts.Element, opts.View, opts.Log)
	s.sync = NewSynchronizer(opts.View)
	s.disp = NewDispatcher(s.ctrl, opts.SeekStep)
	s.el.SetNotifier(func(e media.Event) {
		s.q.push(func() { s.handleMedia(e) })
	})
	return s, nil
}

// Observe registers o. It must be called before Run.
func (s *Session) Observe(o Observer) {
	s.observers = append(s.observers, o)
}

// Open applies the saved preference and selects the start track. It runs
// on the caller's goroutine and must happen before Run.
func (s *Session) Open(start int) error {
	if s.prefs != nil {
		if p, ok := s.prefs.Load(); ok {
			if err := s.el.SetVolume(p.Volume); err != nil {
				s.log.Debug().Err(err).Msg("saved volume rejected")
			}
			s.el.SetMuted(p.Muted)
			s.log.Info().Float64("volume", p.Volume).Bool("muted", p.Muted).Msg("preference restored")
		}
	}
	if err := s.ctrl.Start(start); err != nil {
		return err
	}
	s.lastIndex = s.ctrl.Index()
	return nil
}

// Run processes jobs until ctx is done.
func (s *Session) Run(ctx context.Context) error {
	defer close(s.done)
	for {
		for job := s.q.pop(); job != nil; job = s.q.pop() {
			job()
			s.checkTrack()
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-s.q.wake:
		}
	}
}

// Done is closed when Run returns.
func (s *Session) Done() <-chan struct{} { return s.done }

func (s *Session) checkTrack() {
	if i := s.ctrl.Index(); i != s.lastIndex {
		s.lastIndex = i
		s.notify(NoticeTrack)
	}
}

func (s *Session) notify(kind NoticeKind) {
	if len(s.observers) == 0 {
		return
	}
	n := Notice{Kind: kind, Status: s.snapshot()}
	for _, o := range s.observers {
		o(n)
	}
}

func (s *Session) snapshot() Status {
	t := s.ctrl.Track()
	st := Status{
		Index:    s.ctrl.Index(),
		Tracks:   s.reg.Len(),
		Name:     t.Name,
		Source:   t.Source,
		Playing:  s.ctrl.Playing(),
		Position: s.el.CurrentTime(),
		Duration: s.el.Duration(),
		Volume:   s.el.Volume(),
		Muted:    s.el.Muted(),
	}
	if st.Duration <= 0 {
		st.Duration = t.Duration.Seconds()
	}
	if sp, ok := s.el.(media.Spectrum); ok && s.bands > 0 {
		st.Levels = sp.Levels(s.bands)
	}
	return st
}

// === event handlers (loop goroutine only) ===

func (s *Session) handleMedia(e media.Event) {
	s.sync.Handle(e)
	switch e.Type {
	case media.EventPlay:
		s.notify(NoticePlay)
	case media.EventPause:
		s.notify(NoticePause)
	case media.EventEnded:
		if e.Gen != s.el.Generation() {
			// a track loaded since then discarded it
			s.log.Debug().Int("gen", e.Gen).Msg("stale ended dropped")
			return
		}
		s.log.Debug().Int("index", s.ctrl.Index()).Msg("track ended")
		s.notify(NoticeEnded)
		s.ctrl.OnTrackEnded()
	case media.EventVolumeChange:
		if s.prefs != nil {
			s.prefs.Save(prefs.Preference{Volume: s.el.Volume(), Muted: s.el.Muted()})
		}
		s.notify(NoticeVolume)
	}
}

func (s *Session) handleInput(in Input) {
	if in.Kind == InputNative {
		s.native(in.Target)
		return
	}
	s.disp.Dispatch(in)
}

// native emulates the element's built in volume and mute controls.
func (s *Session) native(target string) {
	switch target {
	case defaults.TargetVolumeDown:
		s.stepVolume(-s.volumeStep)
	case defaults.TargetVolumeUp:
		s.stepVolume(s.volumeStep)
	case defaults.TargetMute:
		s.el.SetMuted(!s.el.Muted())
	}
}

func (s *Session) stepVolume(delta float64) {
	v := s.el.Volume() + delta
	v = math.Round(v*1000) / 1000
	v = math.Min(math.Max(v, 0), 1)
	if err := s.el.SetVolume(v); err != nil {
		s.log.Debug().Err(err).Float64("volume", v).Msg("volume step rejected")
	}
}

// === posting ===

// Input queues a key press or click.
func (s *Session) Input(in Input) {
	s.q.push(func() { s.handleInput(in) })
}

// Tick queues a refresh notice for position and spectrum displays.
func (s *Session) Tick() {
	s.q.push(func() { s.notify(NoticeTick) })
}

// call runs fn on the loop and waits for its result.
func (s *Session) call(ctx context.Context, fn func() error) error {
	errc := make(chan error, 1)
	s.q.push(func() { errc <- fn() })
	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		return ctx.Err()
	case <-s.done:
		return ErrClosed
	}
}

func (s *Session) Toggle(ctx context.Context) error {
	return s.call(ctx, func() error { s.ctrl.TogglePlayback(); return nil })
}

func (s *Session) Next(ctx context.Context) error {
	return s.call(ctx, func() error { s.ctrl.Next(); return nil })
}

func (s *Session) Previous(ctx context.Context) error {
	return s.call(ctx, func() error { s.ctrl.Previous(); return nil })
}

func (s *Session) Select(ctx context.Context, index int) error {
	return s.call(ctx, func() error {
		if index < 0 || index >= s.reg.Len() {
			return fmt.Errorf("select %d: %w", index, ErrTrackRange)
		}
		s.ctrl.SelectTrack(index)
		return nil
	})
}

func (s *Session) Seek(ctx context.Context, delta float64) error {
	return s.call(ctx, func() error { s.ctrl.SeekBy(delta); return nil })
}

func (s *Session) SetVolume(ctx context.Context, v float64) error {
	return s.call(ctx, func() error { return s.el.SetVolume(v) })
}

func (s *Session) SetMuted(ctx context.Context, muted bool) error {
	return s.call(ctx, func() error { s.el.SetMuted(muted); return nil })
}

// Forget removes the saved preference.
func (s *Session) Forget(ctx context.Context) error {
	return s.call(ctx, func() error {
		if s.prefs == nil {
			return prefs.ErrUnavailable
		}
		return s.prefs.Clear()
	})
}

func (s *Session) Status(ctx context.Context) (Status, error) {
	var st Status
	err := s.call(ctx, func() error { st = s.snapshot(); return nil })
	return st, err
}

// Tracks needs no loop round trip, the registry never changes.
func (s *Session) Tracks() []catalog.Track {
	return s.reg.Tracks()
}
