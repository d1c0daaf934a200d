/*
 * Copyright (c) 2025 Hardiyanto Y -Ebiet.
 * This software is part of the HDX (Hardix Audio) project.
 * This code is provided "as is", without warranty of any kind.
 */

package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRegistry(t *testing.T) {
	t.Run("Empty playlist", func(t *testing.T) {
		_, err := NewRegistry("empty", nil)
		require.ErrorIs(t, err, ErrEmptyRegistry)
	})

	t.Run("Order and lookup", func(t *testing.T) {
		in := []Track{
			NewTrack("A", "/music/a.mp3", ""),
			NewTrack("B", "/music/b.flac", ""),
			NewTrack("C", "/music/c.ogg", ""),
		}
		reg, err := NewRegistry("abc", in)
		require.NoError(t, err)

		assert.Equal(t, 3, reg.Len())
		assert.Equal(t, "abc", reg.Name())
		assert.NotEmpty(t, reg.ID())

		for i, want := range []string{"A", "B", "C"} {
			tr, ok := reg.At(i)
			require.True(t, ok)
			assert.Equal(t, want, tr.Name)
		}
		_, ok := reg.At(-1)
		assert.False(t, ok)
		_, ok = reg.At(3)
		assert.False(t, ok)
	})

	t.Run("Registry owns its tracks", func(t *testing.T) {
		in := []Track{NewTrack("A", "/a.mp3", "")}
		reg, err := NewRegistry("x", in)
		require.NoError(t, err)

		in[0].Name = "changed"
		out := reg.Tracks()
		out[0].Name = "changed too"

		tr, _ := reg.At(0)
		assert.Equal(t, "A", tr.Name)
	})
}

func TestNewTrack(t *testing.T) {
	tr := NewTrack("", "/music/Artist/01 Intro.flac", "")
	assert.Equal(t, "01 Intro", tr.Name)
	assert.Equal(t, FlacMimeType, tr.MIMEType)
	assert.Equal(t, tr.ID, NewTrack("other", "/music/Artist/01 Intro.flac", "").ID, "id depends on source only")
	assert.NotEqual(t, tr.ID, NewTrack("", "/music/Artist/02.flac", "").ID)

	explicit := NewTrack("x", "/stream", "audio/mpeg")
	assert.Equal(t, "audio/mpeg", explicit.MIMEType)
}

func TestMIMEType(t *testing.T) {
	cases := map[string]string{
		"a.MP3":     MP3MimeType,
		"a.ogg":     OggMimeType,
		"a.flac":    FlacMimeType,
		"a.wav":     WAVMimeType,
		"a.opus":    OpusMimeType,
		"cover.jpg": binaryMimeType,
		"README":    binaryMimeType,
	}
	for name, want := range cases {
		assert.Equal(t, want, MIMEType(name), name)
	}
}

func TestTagsDisplayName(t *testing.T) {
	assert.Equal(t, "", Tags{Artist: "Someone"}.DisplayName())
	assert.Equal(t, "Song", Tags{Title: " Song "}.DisplayName())
	assert.Equal(t, "Someone - Song", Tags{Title: "Song", Artist: "Someone"}.DisplayName())
}
