/*
 * Copyright (c) 2025 Hardiyanto Y -Ebiet.
 * This software is part of the HDX (Hardix Audio) project.
 * This code is provided "as is", without warranty of any kind.
 */

package catalog

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
)

// Load builds the registry for path: a directory is scanned, an .m3u or
// .m3u8 file is parsed, any other file becomes a one-track playlist.
func Load(path string, log zerolog.Logger) (*Registry, error) {
	fi, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("open playlist: %w", err)
	}

	var tracks []Track
	switch ext := strings.ToLower(filepath.Ext(path)); {
	case fi.IsDir():
		tracks, err = ScanDir(path, log)
	case ext == ".m3u" || ext == ".m3u8":
		tracks, err = LoadM3U(path, log)
	default:
		if ignoreMIMEType(MIMEType(path)) {
			return nil, fmt.Errorf("%s: unsupported file type", path)
		}
		tracks = []Track{describeFile(path, "", log)}
	}
	if err != nil {
		return nil, err
	}

	reg, err := NewRegistry(nameFromPath(path), tracks)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	log.Info().Str("playlist", reg.Name()).Str("id", reg.ID()).Int("tracks", reg.Len()).Msg("playlist loaded")
	return reg, nil
}

// LoadM3U reads a playlist file. Entries with an unknown media type are
// skipped.
func LoadM3U(path string, log zerolog.Logger) ([]Track, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open m3u: %w", err)
	}
	defer f.Close()

	entries, err := ParseM3U(f, filepath.Dir(path))
	if err != nil {
		return nil, fmt.Errorf("parse m3u: %w", err)
	}

	tracks := make([]Track, 0, len(entries))
	for _, e := range entries {
		if ignoreMIMEType(MIMEType(e.Location)) {
			log.Debug().Str("location", e.Location).Msg("ignoring entry due to MIME type")
			continue
		}
		var t Track
		if isURL(e.Location) {
			t = NewTrack(e.Title, e.Location, "")
		} else {
			t = describeFile(e.Location, e.Title, log)
		}
		if t.Duration == 0 {
			t.Duration = e.Duration
		}
		tracks = append(tracks, t)
	}
	return tracks, nil
}
