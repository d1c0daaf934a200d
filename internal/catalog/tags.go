/*
 * Copyright (c) 2025 Hardiyanto Y -Ebiet.
 * This software is part of the HDX (Hardix Audio) project.
 * This code is provided "as is", without warranty of any kind.
 */

package catalog

import (
	"os"
	"strings"

	"github.com/dhowden/tag"
)

// Tags holds the fields we display. Only set if the file carries them.
type Tags struct {
	Title  string
	Artist string
	Album  string

	// embedded cover, if any
	ArtworkMIME string
	ArtworkSize int
}

// DisplayName renders "Artist - Title", or just the title.
func (t Tags) DisplayName() string {
	title := strings.TrimSpace(t.Title)
	artist := strings.TrimSpace(t.Artist)
	switch {
	case title == "":
		return ""
	case artist == "":
		return title
	}
	return artist + " - " + title
}

// ReadTags reads ID3, MP4, FLAC and Ogg comments from a local file.
func ReadTags(path string) (Tags, error) {
	f, err := os.Open(path)
	if err != nil {
		return Tags{}, err
	}
	defer f.Close()

	m, err := tag.ReadFrom(f)
	if err != nil {
		return Tags{}, err
	}
	t := Tags{
		Title:  m.Title(),
		Artist: m.Artist(),
		Album:  m.Album(),
	}
	if p := m.Picture(); p != nil {
		t.ArtworkMIME = p.MIMEType
		t.ArtworkSize = len(p.Data)
	}
	return t, nil
}
