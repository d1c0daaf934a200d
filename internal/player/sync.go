/*
 * Copyright (c) 2025 Hardiyanto Y -Ebiet.
 * This software is part of the HDX (Hardix Audio) project.
 * This code is provided "as is", without warranty of any kind.
 */

package player

import (
	"hdxdeck/internal/media"
	"hdxdeck/pkg/defaults"
)

// Synchronizer keeps the transport label in line with what the element
// reports, including changes nobody asked the controller for.
type Synchronizer struct {
	view View
}

func NewSynchronizer(view View) *Synchronizer {
	return &Synchronizer{view: view}
}

func (s *Synchronizer) Handle(e media.Event) {
	switch e.Type {
	case media.EventPlay:
		s.view.SetTransportLabel(defaults.LabelPause)
	case media.EventPause:
		s.view.SetTransportLabel(defaults.LabelPlay)
	}
}
