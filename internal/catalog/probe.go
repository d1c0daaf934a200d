/*
 * Copyright (c) 2025 Hardiyanto Y -Ebiet.
 * This software is part of the HDX (Hardix Audio) project.
 * This code is provided "as is", without warranty of any kind.
 */

package catalog

import (
	"errors"
	"os"
	"time"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

var errInvalidWAV = errors.New("not a valid wav file")

type wavInfo struct {
	Duration time.Duration
	Format   *audio.Format
	BitDepth int
}

// probeWAV reads the RIFF chunks of a wav file without decoding PCM.
func probeWAV(path string) (wavInfo, error) {
	f, err := os.Open(path)
	if err != nil {
		return wavInfo{}, err
	}
	defer f.Close()

	dec := wav.NewDecoder(f)
	if !dec.IsValidFile() {
		return wavInfo{}, errInvalidWAV
	}
	if err := dec.FwdToPCM(); err != nil {
		return wavInfo{}, err
	}
	// only the data chunk counts, headers and trailing chunks do not
	bytesPerSec := int64(dec.SampleRate) * int64(dec.NumChans) * int64(dec.BitDepth) / 8
	if bytesPerSec <= 0 {
		return wavInfo{}, errInvalidWAV
	}
	dur := time.Duration(float64(dec.PCMLen()) / float64(bytesPerSec) * float64(time.Second))
	return wavInfo{
		Duration: dur,
		Format:   dec.Format(),
		BitDepth: int(dec.BitDepth),
	}, nil
}
