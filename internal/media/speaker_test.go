/*
 * Copyright (c) 2025 Hardiyanto Y -Ebiet.
 * This software is part of the HDX (Hardix Audio) project.
 * This code is provided "as is", without warranty of any kind.
 */

package media

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeTone writes n silent mono samples at 8 kHz.
func writeTone(t *testing.T, n int) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "short.wav")
	f, err := os.Create(path)
	require.NoError(t, err)
	enc := wav.NewEncoder(f, 8000, 16, 1, 1)
	require.NoError(t, enc.Write(&audio.IntBuffer{
		Format:         &audio.Format{NumChannels: 1, SampleRate: 8000},
		Data:           make([]int, n),
		SourceBitDepth: 16,
	}))
	require.NoError(t, enc.Close())
	require.NoError(t, f.Close())
	return path
}

func TestSpeakerSeekAfterEnd(t *testing.T) {
	sp, err := NewSpeaker(8000, 50*time.Millisecond, 1, zerolog.Nop())
	if err != nil {
		t.Skipf("no audio device: %v", err)
	}
	defer sp.Close()

	ended := make(chan Event, 1)
	sp.SetNotifier(func(e Event) {
		if e.Type == EventEnded {
			ended <- e
		}
	})
	sp.SetSource(writeTone(t, 1600), "audio/wav")
	sp.Load()
	require.NoError(t, sp.Err())
	sp.Play()

	select {
	case e := <-ended:
		assert.Equal(t, sp.Generation(), e.Gen)
	case <-time.After(5 * time.Second):
		t.Fatal("track never ended")
	}
	assert.True(t, sp.Paused())
	assert.InDelta(t, 0.2, sp.CurrentTime(), 0.001)

	sp.SetCurrentTime(0.1)
	assert.InDelta(t, 0.1, sp.CurrentTime(), 0.001)

	sp.Play()
	assert.False(t, sp.Paused())
	assert.GreaterOrEqual(t, sp.CurrentTime(), 0.1)
}
