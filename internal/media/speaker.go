/*
 * Copyright (c) 2025 Hardiyanto Y -Ebiet.
 * This software is part of the HDX (Hardix Audio) project.
 * This code is provided "as is", without warranty of any kind.
 */

package media

import (
	"math"
	"sync"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/effects"
	"github.com/faiface/beep/speaker"
	"github.com/rs/zerolog"
)

// Speaker plays through the system audio device.
//
// Locking: s.mu guards the element state, speaker.Lock guards the
// streamers shared with the mixer. s.mu may be held while taking
// speaker.Lock, never the other way round, which is why the end of
// track callback hops to its own goroutine.
type Speaker struct {
	mu  sync.Mutex
	log zerolog.Logger

	rate     beep.SampleRate
	quality  int
	analyzer *Analyzer

	src, mimeType string
	cur           *source
	ctrl          *beep.Ctrl
	vol           *effects.Volume
	gen           int
	err           error

	paused bool
	ended  bool
	level  float64
	muted  bool

	notify Notifier
}

// NewSpeaker initialises the audio device. It can only be called once
// per process.
func NewSpeaker(sampleRate int, buffer time.Duration, quality int, log zerolog.Logger) (*Speaker, error) {
	rate := beep.SampleRate(sampleRate)
	if err := speaker.Init(rate, rate.N(buffer)); err != nil {
		return nil, err
	}
	return &Speaker{
		log:      log.With().Str("component", "speaker").Logger(),
		rate:     rate,
		quality:  quality,
		analyzer: NewAnalyzer(),
		paused:   true,
		level:    1,
	}, nil
}

// === volume ===

// gain maps a linear level onto effects.Volume with base 2.
func gain(level float64) float64 {
	if level <= 0 {
		return 0
	}
	return math.Log2(level)
}

func (s *Speaker) applyVolumeLocked() {
	if s.vol == nil {
		return
	}
	speaker.Lock()
	s.vol.Volume = gain(s.level)
	s.vol.Silent = s.muted || s.level == 0
	speaker.Unlock()
}

func (s *Speaker) SetNotifier(n Notifier) {
	s.mu.Lock()
	s.notify = n
	s.mu.Unlock()
}

func (s *Speaker) SetSource(src, mimeType string) {
	s.mu.Lock()
	s.src, s.mimeType = src, mimeType
	s.mu.Unlock()
}

func (s *Speaker) Load() {
	s.mu.Lock()
	gen := s.gen
	var events []EventType
	if !s.paused {
		s.paused = true
		events = append(events, EventPause)
	}
	s.loadLocked()
	s.mu.Unlock()
	s.emit(gen, events...)
}

func (s *Speaker) loadLocked() {
	speaker.Clear()
	if s.cur != nil {
		s.cur.Close()
	}
	s.cur, s.ctrl, s.vol = nil, nil, nil
	s.ended = false
	s.gen++
	s.analyzer.Reset()

	if s.src == "" {
		s.err = ErrNoSource
		return
	}
	src, err := openSource(s.src, s.mimeType)
	if err != nil {
		s.err = err
		s.log.Error().Err(err).Str("src", s.src).Msg("load failed")
		return
	}
	s.err = nil
	s.cur = src
	s.chainLocked()
	s.log.Debug().Str("src", s.src).Int("rate", int(src.format.SampleRate)).Msg("loaded")
}

// chainLocked hands s.cur to the mixer, paused, from wherever its
// decoder stands.
func (s *Speaker) chainLocked() {
	var st beep.Streamer = s.cur.streamer
	if s.cur.format.SampleRate != s.rate {
		st = beep.Resample(s.quality, s.cur.format.SampleRate, s.rate, st)
	}
	s.ctrl = &beep.Ctrl{Streamer: st, Paused: true}
	s.vol = &effects.Volume{
		Streamer: s.ctrl,
		Base:     2,
		Volume:   gain(s.level),
		Silent:   s.muted || s.level == 0,
	}

	gen := s.gen
	speaker.Play(beep.Seq(s.analyzer.Tap(s.vol), beep.Callback(func() {
		// dipanggil dari goroutine mixer, jangan ambil s.mu di sini
		go s.finished(gen)
	})))
}

// finished handles the natural end of the track loaded as gen.
func (s *Speaker) finished(gen int) {
	s.mu.Lock()
	if gen != s.gen || s.paused {
		s.mu.Unlock()
		return
	}
	s.paused = true
	s.ended = true
	s.mu.Unlock()
	s.emit(gen, EventPause, EventEnded)
}

func (s *Speaker) Play() {
	s.mu.Lock()
	if !s.paused {
		s.mu.Unlock()
		return
	}
	if s.cur == nil {
		s.loadLocked()
	} else if s.ended {
		// main lagi dari awal, seperti elemen audio di browser
		s.loadLocked()
	}
	if s.cur == nil {
		s.mu.Unlock()
		return
	}
	speaker.Lock()
	s.ctrl.Paused = false
	speaker.Unlock()
	s.paused = false
	gen := s.gen
	s.mu.Unlock()
	s.emit(gen, EventPlay)
}

func (s *Speaker) Pause() {
	s.mu.Lock()
	if s.paused {
		s.mu.Unlock()
		return
	}
	if s.ctrl != nil {
		speaker.Lock()
		s.ctrl.Paused = true
		speaker.Unlock()
	}
	s.paused = true
	gen := s.gen
	s.mu.Unlock()
	s.emit(gen, EventPause)
}

func (s *Speaker) Paused() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.paused
}

func (s *Speaker) CurrentTime() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cur == nil {
		return 0
	}
	if s.ended {
		return s.durationLocked()
	}
	speaker.Lock()
	p := s.cur.streamer.Position()
	speaker.Unlock()
	return s.cur.format.SampleRate.D(p).Seconds()
}

func (s *Speaker) SetCurrentTime(seconds float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cur == nil {
		return
	}
	dur := s.durationLocked()
	t := clampTime(seconds, dur)
	p := s.cur.format.SampleRate.N(time.Duration(t * float64(time.Second)))
	speaker.Lock()
	if n := s.cur.streamer.Len(); n > 0 && p >= n {
		p = n - 1
	}
	err := s.cur.streamer.Seek(p)
	speaker.Unlock()
	if err != nil {
		s.log.Warn().Err(err).Float64("t", t).Msg("seek failed")
		return
	}
	if s.ended && (dur <= 0 || t < dur) {
		// the mixer already dropped the finished chain
		s.ended = false
		s.chainLocked()
	}
}

func (s *Speaker) Duration() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.durationLocked()
}

func (s *Speaker) durationLocked() float64 {
	if s.cur == nil {
		return 0
	}
	speaker.Lock()
	n := s.cur.streamer.Len()
	speaker.Unlock()
	return s.cur.format.SampleRate.D(n).Seconds()
}

func (s *Speaker) Volume() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.level
}

func (s *Speaker) SetVolume(v float64) error {
	if !validVolume(v) {
		return ErrVolumeRange
	}
	s.mu.Lock()
	changed := s.level != v
	s.level = v
	s.applyVolumeLocked()
	gen := s.gen
	s.mu.Unlock()
	if changed {
		s.emit(gen, EventVolumeChange)
	}
	return nil
}

func (s *Speaker) Muted() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.muted
}

func (s *Speaker) SetMuted(m bool) {
	s.mu.Lock()
	changed := s.muted != m
	s.muted = m
	s.applyVolumeLocked()
	gen := s.gen
	s.mu.Unlock()
	if changed {
		s.emit(gen, EventVolumeChange)
	}
}

func (s *Speaker) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

func (s *Speaker) Generation() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.gen
}

// Levels reports the spectrum of what is currently being played.
func (s *Speaker) Levels(bands int) []float64 {
	return s.analyzer.Levels(bands)
}

func (s *Speaker) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	speaker.Clear()
	s.gen++
	if s.cur != nil {
		err := s.cur.Close()
		s.cur = nil
		return err
	}
	return nil
}

func (s *Speaker) emit(gen int, types ...EventType) {
	s.mu.Lock()
	n := s.notify
	s.mu.Unlock()
	if n == nil {
		return
	}
	for _, t := range types {
		n(Event{Type: t, Gen: gen})
	}
}
