/*
 * Copyright (c) 2025 Hardiyanto Y -Ebiet.
 * This software is part of the HDX (Hardix Audio) project.
 * This code is provided "as is", without warranty of any kind.
 */

package player

// NoticeKind names what happened. The names follow the HDX EVENT stream.
type NoticeKind string

const (
	NoticeTrack  NoticeKind = "TRACK_CHANGED"
	NoticePlay   NoticeKind = "PLAYING"
	NoticePause  NoticeKind = "PAUSED"
	NoticeEnded  NoticeKind = "ENDED"
	NoticeVolume NoticeKind = "VOLUME"
	NoticeTick   NoticeKind = "TICK"
)

// Status is a snapshot of the session taken on the loop goroutine.
type Status struct {
	Index    int       `json:"track_index"`
	Tracks   int       `json:"tracks"`
	Name     string    `json:"name"`
	Source   string    `json:"source"`
	Playing  bool      `json:"playing"`
	Position float64   `json:"position"`
	Duration float64   `json:"duration"`
	Volume   float64   `json:"volume"`
	Muted    bool      `json:"muted"`
	Levels   []float64 `json:"-"`
}

type Notice struct {
	Kind   NoticeKind `json:"type"`
	Status Status     `json:"status"`
}

// Observer is called on the session goroutine and must not block.
type Observer func(Notice)
