/*
 * Copyright (c) 2025 Hardiyanto Y -Ebiet.
 * This software is part of the HDX (Hardix Audio) project.
 * This code is provided "as is", without warranty of any kind.
 */

package catalog

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"

	"github.com/rs/zerolog"
)

// ScanDir walks root and returns every playable file as a track, in a
// stable order (sorted by location).
func ScanDir(root string, log zerolog.Logger) ([]Track, error) {
	var paths []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if ignoreMIMEType(MIMEType(d.Name())) {
			log.Debug().Str("path", path).Msg("ignoring file due to MIME type")
			return nil
		}
		paths = append(paths, path)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", root, err)
	}
	sort.Strings(paths)

	tracks := make([]Track, 0, len(paths))
	for _, p := range paths {
		tracks = append(tracks, describeFile(p, "", log))
	}
	return tracks, nil
}

// describeFile builds a track for a local file, enriching it with tags
// and, for wav, the header duration. name wins over tags when set.
func describeFile(path, name string, log zerolog.Logger) Track {
	if name == "" {
		if tags, err := ReadTags(path); err == nil {
			name = tags.DisplayName()
		}
	}
	t := NewTrack(name, path, "")

	if t.MIMEType == WAVMimeType {
		info, err := probeWAV(path)
		if err != nil {
			log.Debug().Err(err).Str("path", path).Msg("wav probe failed")
			return t
		}
		t.Duration = info.Duration
		log.Debug().
			Str("path", path).
			Int("sample_rate", info.Format.SampleRate).
			Int("channels", info.Format.NumChannels).
			Int("bit_depth", info.BitDepth).
			Dur("duration", info.Duration).
			Msg("wav probed")
	}
	return t
}
