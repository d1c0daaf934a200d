/*
 * Copyright (c) 2025 Hardiyanto Y -Ebiet.
 * This software is part of the HDX (Hardix Audio) project.
 * This code is provided "as is", without warranty of any kind.
 */

package main

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDescribe(t *testing.T) {
	cases := map[string]string{
		"Pong": "RECV: Pong",
		`EVENT {"type":"TRACK_CHANGED","status":{"track_index":1,"tracks":3,"name":"B"}}`: "EVENT TRACK_CHANGED #2/3 B",
		`EVENT {"type":"VOLUME","status":{"volume":0.55,"muted":true}}`:                   "EVENT VOLUME 55% muted",
		`EVENT {"type":"PLAYING","status":{"name":"A"}}`:                                  "EVENT PLAYING A",
		"EVENT {broken": "RECV: EVENT {broken",
	}
	for in, want := range cases {
		assert.Equal(t, want, describe(in), in)
	}
}

type fakeConn struct {
	io.Reader
	sent bytes.Buffer
}

func (f *fakeConn) Write(p []byte) (int, error) { return f.sent.Write(p) }

func TestOneShot(t *testing.T) {
	c := &fakeConn{Reader: strings.NewReader("EVENT {\"type\":\"PLAYING\"}\nOK\n")}
	var out bytes.Buffer
	require.NoError(t, oneShot(c, "TOGGLE", &out))
	assert.Equal(t, "TOGGLE\n", c.sent.String())
	assert.Equal(t, "OK\n", out.String())

	c = &fakeConn{Reader: strings.NewReader("ERR TRACK_RANGE\n")}
	out.Reset()
	assert.EqualError(t, oneShot(c, "SELECT 9", &out), "ERR TRACK_RANGE")

	c = &fakeConn{Reader: strings.NewReader("")}
	assert.ErrorIs(t, oneShot(c, "PING", &out), io.ErrUnexpectedEOF)
}
