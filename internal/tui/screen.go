/*
 * Copyright (c) 2025 Hardiyanto Y -Ebiet.
 * This software is part of the HDX (Hardix Audio) project.
 * This code is provided "as is", without warranty of any kind.
 */

// Package tui is the terminal face of the deck: a bubbletea program
// around a focus ring for the transport buttons and a full screen view.
package tui

import (
	"fmt"
	"math"
	"strings"
	"sync"

	"hdxdeck/internal/catalog"
	"hdxdeck/internal/player"
	"hdxdeck/pkg/defaults"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/lipgloss"
)

// transport buttons in focus order
var buttons = []string{defaults.TargetPrevious, defaults.TargetPlay, defaults.TargetNext}

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.AdaptiveColor{Light: "#333333", Dark: "#FFFFFF"})
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#999999", Dark: "#666666"})
	nameStyle   = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#1A1A1A", Dark: "#EEEEEE"})
	activeStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.AdaptiveColor{Light: "#005F87", Dark: "#5FD7FF"})
	rowStyle    = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#666666", Dark: "#AAAAAA"})
	buttonStyle = lipgloss.NewStyle().Padding(0, 1)
	focusStyle  = buttonStyle.Reverse(true)
	meterStyle  = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#5F8700", Dark: "#87D75F"})
)

// hit is a clickable span on one screen line. Lines and columns count
// from 0 like mouse events do, x1 inclusive.
type hit struct {
	x0, x1 int
	target string
}

// Screen is the player.View of the terminal. Setters only record state;
// a session notice signals Changed and the program redraws.
type Screen struct {
	mu      sync.Mutex
	changed chan struct{}

	width, height int
	title         string
	tracks        []string
	classes       []string
	name          string
	label         string
	focus         int // index into buttons, -1 when nothing is focused
	status        player.Status
	help          help.Model

	hits map[int][]hit
}

func NewScreen(title string, tracks []catalog.Track) *Screen {
	s := &Screen{
		changed: make(chan struct{}, 1),
		width:   80,
		height:  24,
		title:   title,
		tracks:  make([]string, len(tracks)),
		classes: make([]string, len(tracks)),
		label:   defaults.LabelPlay,
		focus:   -1,
		help:    help.New(),
		hits:    make(map[int][]hit),
	}
	for i, t := range tracks {
		s.tracks[i] = t.Name
		s.classes[i] = defaults.ClassClickable
	}
	return s
}

// === player.View ===

func (s *Screen) SetTrackName(name string) {
	s.mu.Lock()
	s.name = name
	s.mu.Unlock()
}

func (s *Screen) SetTrackClass(i int, class string) {
	s.mu.Lock()
	if i >= 0 && i < len(s.classes) {
		s.classes[i] = class
	}
	s.mu.Unlock()
}

func (s *Screen) SetTransportLabel(label string) {
	s.mu.Lock()
	s.label = label
	s.mu.Unlock()
}

// === focus ===

func (s *Screen) SetSize(w, h int) {
	s.mu.Lock()
	if w > 0 && h > 0 {
		s.width, s.height = w, h
	}
	s.mu.Unlock()
}

// Focused returns the id of the focused button, "" when none.
func (s *Screen) Focused() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.focus < 0 {
		return ""
	}
	return buttons[s.focus]
}

// MoveFocus walks the button ring. From no focus, forward lands on the
// first button and backward on the last.
func (s *Screen) MoveFocus(delta int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := len(buttons)
	switch {
	case s.focus < 0 && delta > 0:
		s.focus = 0
	case s.focus < 0:
		s.focus = n - 1
	default:
		s.focus = ((s.focus+delta)%n + n) % n
	}
}

// Focus focuses target if it is a button, otherwise clears focus.
func (s *Screen) Focus(target string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.focus = -1
	for i, b := range buttons {
		if b == target {
			s.focus = i
		}
	}
}

// HitTest returns the element id under column x, line y of the last
// frame drawn.
func (s *Screen) HitTest(x, y int) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, h := range s.hits[y] {
		if x >= h.x0 && x <= h.x1 {
			return h.target
		}
	}
	return ""
}

// === drawing ===

// Observe stores the snapshot carried by n. It runs on the session
// goroutine and never blocks; bursts collapse into one Changed signal.
func (s *Screen) Observe(n player.Notice) {
	s.mu.Lock()
	s.status = n.Status
	s.mu.Unlock()
	select {
	case s.changed <- struct{}{}:
	default:
	}
}

// Changed fires after Observe stored a new snapshot.
func (s *Screen) Changed() <-chan struct{} { return s.changed }

// Render returns the current frame and refreshes the hit map.
func (s *Screen) Render() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.renderLocked()
}

func (s *Screen) renderLocked() string {
	s.hits = make(map[int][]hit)
	var lines []string
	add := func(l string) { lines = append(lines, l) }

	add(titleStyle.Render(defaults.AppName) + dimStyle.Render(" · "+s.title))
	add("")
	add(nameStyle.Render("♪ " + s.name))
	add(progressBar(s.status.Position, s.status.Duration, min(30, max(s.width-20, 10))))
	add(meterStyle.Render(spectrum(s.status.Levels)))
	add("")
	add(s.buttonLine(len(lines)))
	add(dimStyle.Render(volumeLine(s.status.Volume, s.status.Muted)))
	add("")

	s.help.Width = s.width
	footer := s.help.View(keys)
	rows := s.height - len(lines) - 2
	first, last := window(len(s.tracks), s.activeLocked(), rows)
	for i := first; i < last; i++ {
		text := fmt.Sprintf("%3d. %s", i+1, s.tracks[i])
		if lipgloss.Width(text) > s.width && s.width > 1 {
			text = truncate(text, s.width)
		}
		// rows span the full line
		y := len(lines)
		s.hits[y] = []hit{{x0: 0, x1: s.width - 1, target: player.TrackID(i)}}
		if s.classes[i] == defaults.ClassActive {
			add(activeStyle.Render(text))
		} else {
			add(rowStyle.Render(text))
		}
	}
	add("")
	add(footer)

	return strings.Join(lines, "\n")
}

func (s *Screen) activeLocked() int {
	for i, c := range s.classes {
		if c == defaults.ClassActive {
			return i
		}
	}
	return 0
}

func (s *Screen) buttonLine(y int) string {
	labels := map[string]string{
		defaults.TargetPrevious: "⏮ Prev",
		defaults.TargetPlay:     s.label,
		defaults.TargetNext:     "Next ⏭",
	}
	var b strings.Builder
	x := 0
	for i, id := range buttons {
		if i > 0 {
			b.WriteString(" ")
			x++
		}
		style := buttonStyle
		if i == s.focus {
			style = focusStyle
		}
		r := style.Render("[" + labels[id] + "]")
		w := lipgloss.Width(r)
		s.hits[y] = append(s.hits[y], hit{x0: x, x1: x + w - 1, target: id})
		b.WriteString(r)
		x += w
	}
	return b.String()
}

// window picks the visible rows, keeping active roughly centred.
func window(n, active, rows int) (int, int) {
	if rows < 1 {
		rows = 1
	}
	if n <= rows {
		return 0, n
	}
	first := active - rows/2
	first = max(first, 0)
	first = min(first, n-rows)
	return first, first + rows
}

func truncate(s string, width int) string {
	r := []rune(s)
	if len(r) <= width {
		return s
	}
	return string(r[:width-1]) + "…"
}

// progressBar draws "[████░░░░] 01:05 / 03:20".
func progressBar(pos, dur float64, width int) string {
	percent := 0.0
	if dur > 0 {
		percent = math.Min(math.Max(pos/dur, 0), 1)
	}
	filled := int(float64(width) * percent)
	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
	total := "--:--"
	if dur > 0 {
		total = clock(dur)
	}
	return fmt.Sprintf("[%s] %s / %s", bar, clock(pos), total)
}

func clock(sec float64) string {
	if sec < 0 || math.IsNaN(sec) || math.IsInf(sec, 0) {
		sec = 0
	}
	t := int(sec)
	return fmt.Sprintf("%02d:%02d", t/60, t%60)
}

var bars = []rune("▁▂▃▄▅▆▇█")

func spectrum(levels []float64) string {
	out := make([]rune, len(levels))
	for i, l := range levels {
		k := int(math.Round(math.Min(math.Max(l, 0), 1) * float64(len(bars)-1)))
		out[i] = bars[k]
	}
	return string(out)
}

func volumeLine(v float64, muted bool) string {
	line := fmt.Sprintf("Vol %3d%%", int(math.Round(v*100)))
	if muted {
		line += " (muted)"
	}
	return line
}
