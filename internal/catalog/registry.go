/*
 * Copyright (c) 2025 Hardiyanto Y -Ebiet.
 * This software is part of the HDX (Hardix Audio) project.
 * This code is provided "as is", without warranty of any kind.
 */

package catalog

import (
	"errors"
)

// ErrEmptyRegistry is returned when a playlist resolves to zero tracks.
var ErrEmptyRegistry = errors.New("playlist has no playable tracks")

// Registry is the fixed, ordered track list of one session.
type Registry struct {
	id     string
	name   string
	tracks []Track
}

// NewRegistry copies tracks into a new registry. At least one track is
// required.
func NewRegistry(name string, tracks []Track) (*Registry, error) {
	if len(tracks) == 0 {
		return nil, ErrEmptyRegistry
	}
	owned := make([]Track, len(tracks))
	copy(owned, tracks)
	return &Registry{
		id:     locationToID("playlist:" + name),
		name:   name,
		tracks: owned,
	}, nil
}

func (r *Registry) ID() string   { return r.id }
func (r *Registry) Name() string { return r.name }
func (r *Registry) Len() int     { return len(r.tracks) }

// At returns the track at position i.
func (r *Registry) At(i int) (Track, bool) {
	if i < 0 || i >= len(r.tracks) {
		return Track{}, false
	}
	return r.tracks[i], true
}

// Tracks returns a copy of the ordered track list.
func (r *Registry) Tracks() []Track {
	out := make([]Track, len(r.tracks))
	copy(out, r.tracks)
	return out
}
