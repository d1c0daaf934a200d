/*
 * Copyright (c) 2025 Hardiyanto Y -Ebiet.
 * This software is part of the HDX (Hardix Audio) project.
 * This code is provided "as is", without warranty of any kind.
 */

package logging

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	var buf bytes.Buffer
	log, err := New(&buf, "info")
	require.NoError(t, err)

	log.Debug().Msg("hidden")
	log.Info().Str("component", "test").Msg("shown")

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "shown", rec["message"])
	assert.Equal(t, "test", rec["component"])
	assert.Equal(t, "HDX-Deck", rec["app"])
	assert.Equal(t, "info", rec["level"])

	_, err = New(&buf, "loud")
	assert.Error(t, err)
}

func TestOpenFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "deck.log")
	log, closer, err := OpenFile(path, "debug")
	require.NoError(t, err)
	log.Debug().Msg("hello")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"message":"hello"`)

	_, closer, err = OpenFile("", "info")
	require.NoError(t, err)
	assert.NoError(t, closer.Close())
}

func TestConsole(t *testing.T) {
	var buf bytes.Buffer
	log, err := Console(&buf, "")
	require.NoError(t, err)
	log.Info().Msg("ready")
	assert.Contains(t, buf.String(), "ready")
}
