/*
 * Copyright (c) 2025 Hardiyanto Y -Ebiet.
 * This software is part of the HDX (Hardix Audio) project.
 * This code is provided "as is", without warranty of any kind.
 */

package ipc

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"hdxdeck/internal/media"
	"hdxdeck/internal/player"
	"hdxdeck/internal/prefs"
	"hdxdeck/pkg/defaults"
)

type trackEntry struct {
	Index    int     `json:"index"`
	Name     string  `json:"name"`
	Source   string  `json:"source"`
	MIMEType string  `json:"mime_type"`
	Duration float64 `json:"duration"`
}

// verbs that need control of the deck
var controlVerbs = map[string]bool{
	"TOGGLE": true, "NEXT": true, "PREV": true, "SELECT": true,
	"SEEK": true, "VOLUME": true, "MUTE": true, "FORGET": true,
}

// handle answers one request line. ok is false for blank lines.
func (s *Server) handle(ctx context.Context, c *client, line string) (string, bool) {
	line = strings.TrimSpace(line)
	if line == "" {
		return "", false
	}

	// VERB + RAW ARG
	parts := strings.SplitN(line, " ", 2)
	cmd := strings.ToUpper(parts[0])
	arg := ""
	if len(parts) == 2 {
		arg = strings.TrimSpace(parts[1])
	}

	// ==================================================
	// READ-ONLY COMMANDS (no owner needed)
	// ==================================================
	switch cmd {
	case "ABOUT":
		return fmt.Sprintf("%s V.%d.%d", defaults.AppName, defaults.VersionMajor, defaults.VersionMinor), true

	case "PING":
		return "Pong", true

	case "WHOAMI":
		if s.isOwner(c) {
			return "OWNER", true
		}
		return "OBSERVER", true

	case "STATUS":
		st, err := s.ctrl.Status(ctx)
		if err != nil {
			return errReply(err), true
		}
		j, _ := json.Marshal(st)
		return string(j), true

	case "LIST":
		tracks := s.ctrl.Tracks()
		out := make([]trackEntry, len(tracks))
		for i, t := range tracks {
			out[i] = trackEntry{
				Index:    i,
				Name:     t.Name,
				Source:   t.Source,
				MIMEType: t.MIMEType,
				Duration: t.Duration.Seconds(),
			}
		}
		j, _ := json.Marshal(out)
		return string(j), true
	}

	// ==================================================
	// CONTROL COMMANDS (owner only)
	// ==================================================
	if !controlVerbs[cmd] {
		return "ERR UNKNOWN", true
	}
	if !s.claimOwner(c) {
		return "ERR CONTROL_LOCKED", true
	}

	var err error
	switch cmd {
	case "TOGGLE":
		err = s.ctrl.Toggle(ctx)

	case "NEXT":
		err = s.ctrl.Next(ctx)

	case "PREV":
		err = s.ctrl.Previous(ctx)

	case "SELECT":
		i, perr := strconv.Atoi(arg)
		if perr != nil {
			return "ERR ARG", true
		}
		err = s.ctrl.Select(ctx, i)

	case "SEEK":
		d, ok := argFloat(arg)
		if !ok {
			return "ERR ARG", true
		}
		err = s.ctrl.Seek(ctx, d)

	case "VOLUME":
		v, ok := argFloat(arg)
		if !ok {
			return "ERR ARG", true
		}
		err = s.ctrl.SetVolume(ctx, v)

	case "MUTE":
		switch strings.ToLower(arg) {
		case "on":
			err = s.ctrl.SetMuted(ctx, true)
		case "off":
			err = s.ctrl.SetMuted(ctx, false)
		default:
			return "ERR ARG", true
		}

	case "FORGET":
		err = s.ctrl.Forget(ctx)

	default:
		return "ERR UNKNOWN", true
	}

	if err != nil {
		return errReply(err), true
	}
	return "OK", true
}

func argFloat(arg string) (float64, bool) {
	v, err := strconv.ParseFloat(arg, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

func errReply(err error) string {
	switch {
	case errors.Is(err, player.ErrTrackRange):
		return "ERR TRACK_RANGE"
	case errors.Is(err, media.ErrVolumeRange):
		return "ERR VOLUME_RANGE"
	case errors.Is(err, prefs.ErrUnavailable):
		return "ERR UNAVAILABLE"
	}
	return "ERR INTERNAL"
}
