/*
 * Copyright (c) 2025 Hardiyanto Y -Ebiet.
 * This software is part of the HDX (Hardix Audio) project.
 * This code is provided "as is", without warranty of any kind.
 */

package tui

import (
	"time"

	"hdxdeck/pkg/defaults"

	tea "github.com/charmbracelet/bubbletea"
)

// changedMsg reports a new session snapshot on the screen.
type changedMsg struct{}

type tickMsg time.Time

// Model is the bubbletea model of the deck. It holds no player state:
// input goes to the session through the router, and the picture comes
// from the screen the session writes to.
type Model struct {
	screen *Screen
	router *Router
	every  time.Duration
	onTick func()
}

// NewModel calls onTick every interval from the program goroutine. A zero
// interval disables ticking.
func NewModel(screen *Screen, router *Router, every time.Duration, onTick func()) Model {
	return Model{screen: screen, router: router, every: every, onTick: onTick}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(tea.SetWindowTitle(defaults.AppName), m.waitChange(), m.tick())
}

func (m Model) waitChange() tea.Cmd {
	ch := m.screen.Changed()
	return func() tea.Msg {
		<-ch
		return changedMsg{}
	}
}

func (m Model) tick() tea.Cmd {
	if m.every <= 0 {
		return nil
	}
	return tea.Tick(m.every, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.router.Key(msg) {
			return m, tea.Quit
		}
	case tea.MouseMsg:
		if msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft {
			m.router.Click(msg.X, msg.Y)
		}
	case tea.WindowSizeMsg:
		m.screen.SetSize(msg.Width, msg.Height)
	case changedMsg:
		return m, m.waitChange()
	case tickMsg:
		if m.onTick != nil {
			m.onTick()
		}
		return m, m.tick()
	}
	return m, nil
}

func (m Model) View() string {
	return m.screen.Render()
}

// NewProgram wraps m in a full screen program with mouse clicks on.
func NewProgram(m Model, opts ...tea.ProgramOption) *tea.Program {
	opts = append([]tea.ProgramOption{tea.WithAltScreen(), tea.WithMouseCellMotion()}, opts...)
	return tea.NewProgram(m, opts...)
}
