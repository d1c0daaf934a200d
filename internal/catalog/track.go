/*
 * Copyright (c) 2025 Hardiyanto Y -Ebiet.
 * This software is part of the HDX (Hardix Audio) project.
 * This code is provided "as is", without warranty of any kind.
 */

package catalog

import (
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// MIME types understood by the media element.
const (
	WAVMimeType    = "audio/wav"
	MP3MimeType    = "audio/mp3"
	FlacMimeType   = "audio/flac"
	OggMimeType    = "audio/ogg"
	OpusMimeType   = "audio/opus"
	binaryMimeType = "application/binary"
)

// Track describes one playable item. Tracks are values and are never
// modified once they are part of a Registry.
type Track struct {
	ID       string // stable per source
	Name     string // display string
	Source   string // file path or URL handed to the media element
	MIMEType string

	Duration time.Duration // 0 means unknown
}

// NewTrack builds a track for source, deriving the MIME type from the
// file extension when mimeType is empty.
func NewTrack(name, source, mimeType string) Track {
	if mimeType == "" {
		mimeType = MIMEType(source)
	}
	if name == "" {
		name = nameFromPath(source)
	}
	return Track{
		ID:       locationToID(source),
		Name:     name,
		Source:   source,
		MIMEType: mimeType,
	}
}

// MIMEType maps a file name to the media type the player decodes it as.
func MIMEType(filename string) string {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".wav", ".wave":
		return WAVMimeType
	case ".mp3":
		return MP3MimeType
	case ".flac":
		return FlacMimeType
	case ".ogg", ".oga":
		return OggMimeType
	case ".opus":
		return OpusMimeType
	}
	return binaryMimeType
}

func ignoreMIMEType(mimeType string) bool {
	return mimeType == binaryMimeType
}

// locationToID converts a location into a stable UUID string.
func locationToID(location string) string {
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte(location)).String()
}

func nameFromPath(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
