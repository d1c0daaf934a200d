/*
 * Copyright (c) 2025 Hardiyanto Y -Ebiet.
 * This software is part of the HDX (Hardix Audio) project.
 * This code is provided "as is", without warranty of any kind.
 */

package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"hdxdeck/internal/player"
)

// describe renders EVENT lines for humans and passes replies through.
func describe(line string) string {
	raw, ok := strings.CutPrefix(line, "EVENT ")
	if !ok {
		return "RECV: " + line
	}
	var n player.Notice
	if err := json.Unmarshal([]byte(raw), &n); err != nil {
		return "RECV: " + line
	}
	st := n.Status
	switch n.Kind {
	case player.NoticeTrack:
		return fmt.Sprintf("EVENT %s #%d/%d %s", n.Kind, st.Index+1, st.Tracks, st.Name)
	case player.NoticeVolume:
		mute := ""
		if st.Muted {
			mute = " muted"
		}
		return fmt.Sprintf("EVENT %s %d%%%s", n.Kind, int(st.Volume*100+0.5), mute)
	}
	return fmt.Sprintf("EVENT %s %s", n.Kind, st.Name)
}
