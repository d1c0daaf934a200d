/*
 * Copyright (c) 2025 Hardiyanto Y -Ebiet.
 * This software is part of the HDX (Hardix Audio) project.
 * This code is provided "as is", without warranty of any kind.
 */

package media

import (
	"errors"
	"io"
	"os"

	"github.com/faiface/beep"
	"github.com/hraban/opus"
)

// Hardix standard: Opus selalu didecode 48kHz stereo.
const (
	opusRate     = 48000
	opusChannels = 2
	opusMaxFrame = 5760
)

// opusStreamer decodes an Ogg Opus file lazily. Ogg Opus carries no
// cheap length, so Len reports 0 and seeking re-decodes from the start
// when moving backwards.
type opusStreamer struct {
	file   *os.File
	stream *opus.Stream
	pcm    []int16
	buffer [][2]float64
	pos    int
	err    error
}

func decodeOpus(f *os.File) (beep.StreamSeekCloser, beep.Format, error) {
	o := &opusStreamer{file: f, pcm: make([]int16, opusMaxFrame*opusChannels)}
	if err := o.reset(); err != nil {
		return nil, beep.Format{}, err
	}
	format := beep.Format{SampleRate: opusRate, NumChannels: opusChannels, Precision: 2}
	return o, format, nil
}

func (o *opusStreamer) reset() error {
	if o.stream != nil {
		o.stream.Close()
		o.stream = nil
	}
	if _, err := o.file.Seek(0, io.SeekStart); err != nil {
		return err
	}
	s, err := opus.NewStream(o.file)
	if err != nil {
		return err
	}
	o.stream = s
	o.buffer = o.buffer[:0]
	o.pos = 0
	return nil
}

// fill decodes one packet into the buffer. false means end of stream.
func (o *opusStreamer) fill() bool {
	n, err := o.stream.Read(o.pcm)
	if err != nil {
		if !errors.Is(err, io.EOF) {
			o.err = err
		}
		return false
	}
	if n == 0 {
		return false
	}
	for i := 0; i < n; i++ {
		o.buffer = append(o.buffer, [2]float64{
			float64(o.pcm[i*2]) / 32768.0,
			float64(o.pcm[i*2+1]) / 32768.0,
		})
	}
	return true
}

func (o *opusStreamer) Stream(samples [][2]float64) (int, bool) {
	filled := 0
	for filled < len(samples) {
		if len(o.buffer) == 0 && !o.fill() {
			break
		}
		n := copy(samples[filled:], o.buffer)
		o.buffer = o.buffer[n:]
		filled += n
	}
	o.pos += filled
	return filled, filled > 0
}

func (o *opusStreamer) Err() error { return o.err }

func (o *opusStreamer) Len() int { return 0 }

func (o *opusStreamer) Position() int { return o.pos }

func (o *opusStreamer) Seek(p int) error {
	if p < 0 {
		p = 0
	}
	if p < o.pos {
		if err := o.reset(); err != nil {
			return err
		}
	}
	for o.pos < p {
		if len(o.buffer) == 0 && !o.fill() {
			return o.err
		}
		skip := min(p-o.pos, len(o.buffer))
		o.buffer = o.buffer[skip:]
		o.pos += skip
	}
	return nil
}

func (o *opusStreamer) Close() error {
	if o.stream != nil {
		o.stream.Close()
		o.stream = nil
	}
	return nil
}
