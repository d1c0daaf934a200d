/*
 * Copyright (c) 2025 Hardiyanto Y -Ebiet.
 * This software is part of the HDX (Hardix Audio) project.
 * This code is provided "as is", without warranty of any kind.
 */

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/pflag"

	"hdxdeck/internal/catalog"
	"hdxdeck/internal/logging"
)

const (
	version_minor      = 0
	version_major      = 1
	developer_title    = "Developer Hardiyanto"
	developer_subtitle = "Build 27/12/2025 Ebiet Version"
	app_name           = "HDX-DeckMeta"
	general_usage      = "Usage: ./hdx-deckmeta <dir | file.m3u | audio file>"
	json_dump_usage    = "Usage: ./hdx-deckmeta <path> --json"
	art_dump_usage     = "Usage: ./hdx-deckmeta <path> --art"
	m3u_usage          = "Usage: ./hdx-deckmeta <path> --m3u out.m3u"
)

type trackEntry struct {
	TrackNumber int     `json:"track_number"`
	Title       string  `json:"title"`
	Source      string  `json:"source"`
	MIMEType    string  `json:"mime_type"`
	Size        int64   `json:"size"`
	Duration    float64 `json:"duration"`

	ArtworkMIME string `json:"artwork_mime,omitempty"`
	ArtworkSize int    `json:"artwork_size,omitempty"`
}

type playlistDump struct {
	ID      string       `json:"id"`
	Name    string       `json:"name"`
	Content []trackEntry `json:"content"`
}

func main() {
	jsonDump := pflag.Bool("json", false, "dump playlist as JSON")
	artDump := pflag.Bool("art", false, "show embedded artwork info")
	m3uOut := pflag.String("m3u", "", "write the resolved playlist to this .m3u file")
	pflag.Parse()

	if pflag.NArg() != 1 {
		fmt.Printf("\n%s %d.%d\n", app_name, version_major, version_minor)
		fmt.Printf("%s %s\n", developer_title, developer_subtitle)
		fmt.Printf("%s\n", general_usage)
		fmt.Printf("%s\n", json_dump_usage)
		fmt.Printf("%s\n", art_dump_usage)
		fmt.Printf("%s\n", m3u_usage)
		return
	}

	log, _ := logging.Console(os.Stderr, "warn")
	reg, err := catalog.Load(pflag.Arg(0), log)
	if err != nil {
		fmt.Printf("[!] Gagal baca playlist: %v\n", err)
		os.Exit(1)
	}

	dump := inspect(reg, *artDump)
	if *jsonDump {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(dump); err != nil {
			fmt.Printf("[!] %v\n", err)
			os.Exit(1)
		}
	} else {
		printTable(os.Stdout, dump, *artDump)
	}

	if *m3uOut != "" {
		if err := writePlaylist(*m3uOut, reg.Tracks()); err != nil {
			fmt.Printf("[!] Gagal tulis m3u: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("[+] M3U tersimpan: %s\n", *m3uOut)
	}
}

func inspect(reg *catalog.Registry, withArt bool) playlistDump {
	dump := playlistDump{ID: reg.ID(), Name: reg.Name()}
	for i, t := range reg.Tracks() {
		e := trackEntry{
			TrackNumber: i + 1,
			Title:       t.Name,
			Source:      t.Source,
			MIMEType:    t.MIMEType,
			Size:        -1,
			Duration:    t.Duration.Seconds(),
		}
		if fi, err := os.Stat(t.Source); err == nil {
			e.Size = fi.Size()
		}
		if withArt {
			// URL atau file tanpa tag: cukup dilewati
			if tags, err := catalog.ReadTags(t.Source); err == nil {
				e.ArtworkMIME = tags.ArtworkMIME
				e.ArtworkSize = tags.ArtworkSize
			}
		}
		dump.Content = append(dump.Content, e)
	}
	return dump
}

func printTable(w io.Writer, dump playlistDump, withArt bool) {
	fmt.Fprintln(w, strings.Repeat("=", 75))
	fmt.Fprintf(w, " PLAYLIST      : %s\n", dump.Name)
	fmt.Fprintf(w, " ID            : %s\n", dump.ID)
	fmt.Fprintf(w, " TRACKS        : %d\n", len(dump.Content))
	fmt.Fprintln(w, strings.Repeat("-", 75))
	fmt.Fprintf(w, " %-3s | %-30s | %-10s | %-10s\n", "NO", "TRACK TITLE", "DURATION", "SIZE")
	fmt.Fprintln(w, strings.Repeat("-", 75))

	for _, t := range dump.Content {
		fmt.Fprintf(w, " %2d  | %-30s | %-10s | %s\n",
			t.TrackNumber, clip(t.Title, 30), formatDuration(t.Duration), formatSize(t.Size))
		if withArt {
			fmt.Fprintf(w, "     | artwork: %s\n", artInfo(t))
		}
	}
	fmt.Fprintln(w, strings.Repeat("=", 75))
}

func artInfo(t trackEntry) string {
	if t.ArtworkSize == 0 {
		return "Tidak Ada Artwork"
	}
	return fmt.Sprintf("%s, %s", t.ArtworkMIME, formatSize(int64(t.ArtworkSize)))
}

func writePlaylist(path string, tracks []catalog.Track) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := catalog.WriteM3U(f, tracks); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func clip(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

func formatDuration(secs float64) string {
	if secs <= 0 {
		return "--:--"
	}
	return fmt.Sprintf("%02d:%02d", int(secs)/60, int(secs)%60)
}

// Helper untuk format size yang human friendly
func formatSize(b int64) string {
	const unit = 1024
	switch {
	case b < 0:
		return "-"
	case b < unit:
		return fmt.Sprintf("%d B", b)
	}
	div, exp := int64(unit), 0
	for n := b / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	if exp == 0 {
		return fmt.Sprintf("%.2f Kb", float64(b)/float64(unit))
	}
	return fmt.Sprintf("%.2f Mb", float64(b)/float64(div))
}
