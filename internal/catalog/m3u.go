/*
 * Copyright (c) 2025 Hardiyanto Y -Ebiet.
 * This software is part of the HDX (Hardix Audio) project.
 * This code is provided "as is", without warranty of any kind.
 */

package catalog

import (
	"bufio"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// Entry is one item of an M3U playlist before it is resolved to a track.
type Entry struct {
	Location string
	Title    string
	Duration time.Duration
}

// ParseM3U reads plain and extended M3U. Relative locations are joined
// with baseDir; URLs are kept as they are.
func ParseM3U(r io.Reader, baseDir string) ([]Entry, error) {
	var (
		entries []Entry
		pending Entry
	)

	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSpace(strings.TrimPrefix(sc.Text(), "\ufeff"))
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, "#") {
			if rest, ok := strings.CutPrefix(line, "#EXTINF:"); ok {
				pending = parseExtinf(rest)
			}
			continue
		}

		loc := line
		if !isURL(loc) && !filepath.IsAbs(loc) {
			loc = filepath.Join(baseDir, filepath.FromSlash(loc))
		}
		pending.Location = loc
		entries = append(entries, pending)
		pending = Entry{}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return entries, nil
}

// parseExtinf handles "<seconds>,<title>". -1 means unknown length.
func parseExtinf(s string) Entry {
	var e Entry
	secs, title, found := strings.Cut(s, ",")
	if found {
		e.Title = strings.TrimSpace(title)
	}
	// attributes (tvg-id="..") may follow the length
	if i := strings.IndexByte(secs, ' '); i >= 0 {
		secs = secs[:i]
	}
	if n, err := strconv.ParseFloat(strings.TrimSpace(secs), 64); err == nil && n > 0 {
		e.Duration = time.Duration(n * float64(time.Second))
	}
	return e
}

func isURL(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}

// WriteM3U writes tracks as an extended M3U playlist.
func WriteM3U(w io.Writer, tracks []Track) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintln(bw, "#EXTM3U")
	for _, t := range tracks {
		secs := -1
		if t.Duration > 0 {
			secs = int(t.Duration.Round(time.Second).Seconds())
		}
		fmt.Fprintf(bw, "#EXTINF:%d,%s\n", secs, t.Name)
		fmt.Fprintln(bw, filepath.ToSlash(t.Source))
	}
	return bw.Flush()
}
