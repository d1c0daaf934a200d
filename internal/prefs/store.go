/*
 * Copyright (c) 2025 Hardiyanto Y -Ebiet.
 * This software is part of the HDX (Hardix Audio) project.
 * This code is provided "as is", without warranty of any kind.
 */

// Package prefs persists the listener's volume and mute choice.
package prefs

import (
	"encoding/json"
	"errors"
	"math"

	"hdxdeck/pkg/defaults"

	"github.com/rs/zerolog"
)

var (
	ErrQuotaExceeded = errors.New("storage quota exceeded")
	ErrUnavailable   = errors.New("storage unavailable")
)

// DefaultVolume is what a fresh element starts with.
const DefaultVolume = 1.0

// Preference is stored as {"volume": 0..1, "muted": bool}.
type Preference struct {
	Volume float64 `json:"volume"`
	Muted  bool    `json:"muted"`
}

// Backend is a string key/value store in the shape of web storage.
type Backend interface {
	GetItem(key string) (string, bool, error)
	SetItem(key, value string) error
	RemoveItem(key string) error
	Len() (int, error)
}

// Store reads and writes the preference blob. Every failure degrades to
// "no preference" instead of an error.
type Store struct {
	backend   Backend
	key       string
	available bool
	log       zerolog.Logger
}

// NewStore probes backend once and remembers the verdict.
func NewStore(backend Backend, log zerolog.Logger) *Store {
	s := &Store{
		backend: backend,
		key:     defaults.PreferenceKey,
		log:     log.With().Str("component", "prefs").Logger(),
	}
	s.available = probe(backend)
	if !s.available {
		s.log.Info().Msg("preference storage unavailable, volume will not persist")
	}
	return s
}

// probe writes and removes a throwaway item. A full store that already
// holds data still counts as usable.
func probe(b Backend) bool {
	if b == nil {
		return false
	}
	k := defaults.StorageProbeKey
	err := b.SetItem(k, k)
	if err == nil {
		err = b.RemoveItem(k)
	}
	if err == nil {
		return true
	}
	if errors.Is(err, ErrQuotaExceeded) {
		n, lerr := b.Len()
		return lerr == nil && n > 0
	}
	return false
}

func (s *Store) Available() bool { return s.available }

type blob struct {
	Volume *float64 `json:"volume"`
	Muted  *bool    `json:"muted"`
}

// Load returns the saved preference. A field missing from the blob keeps
// its default. Unreadable or out of range data reports false.
func (s *Store) Load() (Preference, bool) {
	if !s.available {
		return Preference{}, false
	}
	raw, ok, err := s.backend.GetItem(s.key)
	if err != nil {
		s.log.Debug().Err(err).Msg("read preference")
		return Preference{}, false
	}
	if !ok {
		return Preference{}, false
	}

	var b blob
	if err := json.Unmarshal([]byte(raw), &b); err != nil {
		s.log.Debug().Err(err).Msg("malformed preference ignored")
		return Preference{}, false
	}
	if b.Volume == nil && b.Muted == nil {
		return Preference{}, false
	}

	p := Preference{Volume: DefaultVolume}
	if b.Volume != nil {
		v := *b.Volume
		if math.IsNaN(v) || v < 0 || v > 1 {
			s.log.Debug().Float64("volume", v).Msg("preference volume out of range ignored")
			return Preference{}, false
		}
		p.Volume = v
	}
	if b.Muted != nil {
		p.Muted = *b.Muted
	}
	return p, true
}

// Save writes p. Failures are only logged.
func (s *Store) Save(p Preference) {
	if !s.available {
		return
	}
	data, err := json.Marshal(p)
	if err != nil {
		s.log.Debug().Err(err).Msg("encode preference")
		return
	}
	if err := s.backend.SetItem(s.key, string(data)); err != nil {
		s.log.Debug().Err(err).Msg("write preference")
	}
}

// Clear forgets the saved preference.
func (s *Store) Clear() error {
	if !s.available {
		return ErrUnavailable
	}
	return s.backend.RemoveItem(s.key)
}
