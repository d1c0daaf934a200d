/*
 * Copyright (c) 2025 Hardiyanto Y -Ebiet.
 * This software is part of the HDX (Hardix Audio) project.
 * This code is provided "as is", without warranty of any kind.
 */

package media

import (
	"fmt"
	"os"

	"github.com/faiface/beep"
	"github.com/faiface/beep/flac"
	"github.com/faiface/beep/mp3"
	"github.com/faiface/beep/vorbis"
	"github.com/faiface/beep/wav"
)

// source is an opened, decodable track.
type source struct {
	file     *os.File
	streamer beep.StreamSeekCloser
	format   beep.Format
}

func (s *source) Close() error {
	err := s.streamer.Close()
	s.file.Close()
	return err
}

// openSource opens path and picks a decoder from its MIME type.
func openSource(path, mimeType string) (*source, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	var (
		st     beep.StreamSeekCloser
		format beep.Format
	)
	switch mimeType {
	case "audio/wav", "audio/wave", "audio/x-wav":
		st, format, err = wav.Decode(f)
	case "audio/mp3", "audio/mpeg":
		st, format, err = mp3.Decode(f)
	case "audio/flac", "audio/x-flac":
		st, format, err = flac.Decode(f)
	case "audio/ogg", "audio/vorbis":
		st, format, err = vorbis.Decode(f)
	case "audio/opus":
		st, format, err = decodeOpus(f)
	default:
		err = fmt.Errorf("%w: %s", ErrUnsupportedType, mimeType)
	}
	if err != nil {
		f.Close()
		return nil, err
	}
	return &source{file: f, streamer: st, format: format}, nil
}
