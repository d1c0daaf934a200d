/*
 * Copyright (c) 2025 Hardiyanto Y -Ebiet.
 * This software is part of the HDX (Hardix Audio) project.
 * This code is provided "as is", without warranty of any kind.
 */

package tui

import (
	"hdxdeck/internal/player"
	"hdxdeck/pkg/defaults"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// Router turns terminal keys and clicks into player inputs the way a
// browser would deliver them: a key goes to the focused button, Enter
// clicks it, a space on it produces both the key and the click.
type Router struct {
	screen *Screen
	post   func(player.Input)
}

// NewRouter posts inputs through post, which must not block.
func NewRouter(screen *Screen, post func(player.Input)) *Router {
	return &Router{screen: screen, post: post}
}

// Key routes one key press and reports whether it asks to quit.
func (r *Router) Key(msg tea.KeyMsg) bool {
	if key.Matches(msg, keys.Quit) {
		return true
	}
	switch msg.Type {
	case tea.KeyTab:
		r.screen.MoveFocus(1)
	case tea.KeyShiftTab:
		r.screen.MoveFocus(-1)
	case tea.KeyEsc:
		r.screen.Focus("")
	case tea.KeyEnter:
		if f := r.screen.Focused(); f != "" {
			r.click(f)
		}
	case tea.KeySpace:
		if msg.Alt {
			r.composing()
			return false
		}
		return r.rune(defaults.KeyToggle)
	case tea.KeyRunes:
		// Alt chords and pastes are not shortcuts
		if msg.Alt || msg.Paste {
			r.composing()
			return false
		}
		for _, c := range msg.Runes {
			if r.rune(string(c)) {
				return true
			}
		}
	default:
		r.composing()
	}
	return false
}

// Click routes a left button press at column x, line y of the frame.
func (r *Router) Click(x, y int) {
	target := r.screen.HitTest(x, y)
	if target == "" {
		return
	}
	r.screen.Focus(target)
	r.click(target)
}

func (r *Router) rune(s string) bool {
	switch {
	case bound(keys.Quit, s):
		return true
	case bound(keys.VolumeDown, s):
		r.native(defaults.TargetVolumeDown)
		return false
	case bound(keys.VolumeUp, s):
		r.native(defaults.TargetVolumeUp)
		return false
	case bound(keys.Mute, s):
		r.native(defaults.TargetMute)
		return false
	}
	focused := r.screen.Focused()
	r.post(player.Input{Kind: player.InputKey, Key: s, Target: focused})
	if s == defaults.KeyToggle && focused != "" {
		r.click(focused)
	}
	return false
}

func (r *Router) composing() {
	r.post(player.Input{Kind: player.InputKey, Target: r.screen.Focused(), IsComposing: true})
}

func (r *Router) click(target string) {
	r.post(player.Input{Kind: player.InputClick, Target: target})
}

func (r *Router) native(target string) {
	r.post(player.Input{Kind: player.InputNative, Target: target})
}
