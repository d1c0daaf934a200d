/*
 * Copyright (c) 2025 Hardiyanto Y -Ebiet.
 * This software is part of the HDX (Hardix Audio) project.
 * This code is provided "as is", without warranty of any kind.
 */

package tui

import (
	"slices"

	"hdxdeck/pkg/defaults"

	"github.com/charmbracelet/bubbles/key"
)

// keyMap lists the deck's keys for the help footer. Hotkeys are still
// dispatched by the player, the terminal only owns the native ones.
type keyMap struct {
	Toggle     key.Binding
	Skip       key.Binding
	Seek       key.Binding
	VolumeDown key.Binding
	VolumeUp   key.Binding
	Mute       key.Binding
	Focus      key.Binding
	Quit       key.Binding
}

var keys = keyMap{
	Toggle:     key.NewBinding(key.WithKeys(defaults.KeyToggle), key.WithHelp("space", "play/pause")),
	Skip:       key.NewBinding(key.WithKeys(defaults.KeyPrevious, defaults.KeyNext), key.WithHelp(", .", "prev/next")),
	Seek:       key.NewBinding(key.WithKeys(defaults.KeyRewind, defaults.KeyForward), key.WithHelp("< >", "seek")),
	VolumeDown: key.NewBinding(key.WithKeys("-"), key.WithHelp("- +", "vol")),
	VolumeUp:   key.NewBinding(key.WithKeys("+", "=")),
	Mute:       key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "mute")),
	Focus:      key.NewBinding(key.WithKeys("tab", "shift+tab"), key.WithHelp("tab", "focus")),
	Quit:       key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
}

// ShortHelp has to fit 80 columns.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Toggle, k.Skip, k.Seek, k.VolumeDown, k.Mute, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Toggle, k.Skip, k.Seek}, {k.VolumeDown, k.Mute, k.Focus, k.Quit}}
}

// bound reports whether the single key s belongs to b.
func bound(b key.Binding, s string) bool {
	return slices.Contains(b.Keys(), s)
}
