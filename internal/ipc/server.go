/*
 * Copyright (c) 2025 Hardiyanto Y -Ebiet.
 * This software is part of the HDX (Hardix Audio) project.
 * This code is provided "as is", without warranty of any kind.
 */

// Package ipc serves the deck's line protocol on a unix socket. Anyone
// may ask; the first connection that sends a control command owns the
// deck until it disconnects and receives its EVENT stream.
package ipc

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"net"
	"os"
	"sync"
	"time"

	"hdxdeck/internal/catalog"
	"hdxdeck/internal/player"

	"github.com/rs/zerolog"
)

const (
	writeTimeout = 2 * time.Second
	// EVENT lines queued for an owner that is not reading
	eventBuffer = 64
)

// Controller is the part of the session the protocol drives.
type Controller interface {
	Toggle(ctx context.Context) error
	Next(ctx context.Context) error
	Previous(ctx context.Context) error
	Select(ctx context.Context, index int) error
	Seek(ctx context.Context, delta float64) error
	SetVolume(ctx context.Context, v float64) error
	SetMuted(ctx context.Context, muted bool) error
	Forget(ctx context.Context) error
	Status(ctx context.Context) (player.Status, error)
	Tracks() []catalog.Track
}

// client serializes writes from its handler and from its event pump.
type client struct {
	conn   net.Conn
	mu     sync.Mutex
	events chan string
	quit   chan struct{}
}

func newClient(conn net.Conn) *client {
	return &client{
		conn:   conn,
		events: make(chan string, eventBuffer),
		quit:   make(chan struct{}),
	}
}

func (c *client) send(line string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	_ = c.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
	_, err := c.conn.Write([]byte(line + "\n"))
	return err
}

type Server struct {
	ctrl Controller
	log  zerolog.Logger

	mu    sync.Mutex
	owner *client

	ln   net.Listener
	path string
}

func NewServer(ctrl Controller, log zerolog.Logger) *Server {
	return &Server{ctrl: ctrl, log: log.With().Str("component", "ipc").Logger()}
}

// Listen binds the unix socket at path, replacing a stale one.
func (s *Server) Listen(path string) error {
	_ = os.Remove(path)
	ln, err := net.Listen("unix", path)
	if err != nil {
		return err
	}
	s.ln, s.path = ln, path
	s.log.Info().Str("socket", path).Msg("listening")
	return nil
}

// Serve accepts connections until ctx is done.
func (s *Server) Serve(ctx context.Context) error {
	if s.ln == nil {
		return errors.New("ipc: Serve before Listen")
	}
	go func() {
		<-ctx.Done()
		s.ln.Close()
	}()
	defer os.Remove(s.path)

	for {
		c, err := s.ln.Accept()
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			s.log.Warn().Err(err).Msg("accept")
			continue
		}
		go s.ServeConn(ctx, c)
	}
}

// === ownership ===

func (s *Server) isOwner(c *client) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.owner == c
}

func (s *Server) claimOwner(c *client) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.owner == nil {
		s.owner = c
		s.log.Info().Str("remote", c.conn.RemoteAddr().String()).Msg("control claimed")
		return true
	}
	return s.owner == c
}

func (s *Server) releaseOwner(c *client) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.owner == c {
		s.owner = nil
		s.log.Info().Msg("control released")
	}
}

// Notify forwards session notices to the owner as EVENT lines. Ticks are
// too chatty for the stream and are dropped. It runs on the session
// goroutine, so it only queues; the client's pump does the writing.
func (s *Server) Notify(n player.Notice) {
	if n.Kind == player.NoticeTick {
		return
	}
	s.mu.Lock()
	owner := s.owner
	s.mu.Unlock()
	if owner == nil {
		return
	}
	b, err := json.Marshal(n)
	if err != nil {
		return
	}
	select {
	case owner.events <- "EVENT " + string(b):
	default:
		s.log.Warn().Str("type", string(n.Kind)).Msg("owner not reading, event dropped")
	}
}

// pump writes queued events until the connection is done.
func (s *Server) pump(c *client) {
	for {
		select {
		case <-c.quit:
			return
		case line := <-c.events:
			if err := c.send(line); err != nil {
				s.log.Debug().Err(err).Msg("event sink dropped")
				s.releaseOwner(c)
				c.conn.Close()
				return
			}
		}
	}
}

// ServeConn runs the protocol on one connection until it closes.
func (s *Server) ServeConn(ctx context.Context, conn net.Conn) {
	c := newClient(conn)
	go s.pump(c)
	defer func() {
		close(c.quit)
		s.releaseOwner(c)
		conn.Close()
	}()

	sc := bufio.NewScanner(conn)
	for sc.Scan() {
		reply, ok := s.handle(ctx, c, sc.Text())
		if !ok {
			continue
		}
		if err := c.send(reply); err != nil {
			return
		}
	}
}
