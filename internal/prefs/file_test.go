/*
 * Copyright (c) 2025 Hardiyanto Y -Ebiet.
 * This software is part of the HDX (Hardix Audio) project.
 * This code is provided "as is", without warranty of any kind.
 */

package prefs

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileBackend(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "prefs.json")
	f := NewFileBackend(path, 0)

	_, ok, err := f.GetItem("audio")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, f.SetItem("audio", `{"volume":0.5,"muted":false}`))
	require.NoError(t, f.SetItem("other", "x"))

	// a second backend on the same file sees the data
	g := NewFileBackend(path, 0)
	v, ok, err := g.GetItem("audio")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, `{"volume":0.5,"muted":false}`, v)
	n, err := g.Len()
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	require.NoError(t, g.RemoveItem("other"))
	require.NoError(t, g.RemoveItem("never-there"))
	n, _ = f.Len()
	assert.Equal(t, 1, n)

	_, err = os.Stat(path + ".tmp")
	assert.True(t, os.IsNotExist(err))
}

func TestFileBackendQuota(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.json")
	f := NewFileBackend(path, 32)
	require.NoError(t, f.SetItem("a", "b"))
	assert.ErrorIs(t, f.SetItem("audio", `{"volume":0.123456789,"muted":false}`), ErrQuotaExceeded)

	_, ok, err := f.GetItem("audio")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestFileBackendCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.json")
	require.NoError(t, os.WriteFile(path, []byte("{broken"), 0o600))

	s := NewStore(NewFileBackend(path, 0), zerolog.Nop())
	require.True(t, s.Available())
	_, ok := s.Load()
	assert.False(t, ok)

	s.Save(Preference{Volume: 0.4, Muted: true})
	p, ok := s.Load()
	require.True(t, ok)
	assert.Equal(t, Preference{Volume: 0.4, Muted: true}, p)
}
