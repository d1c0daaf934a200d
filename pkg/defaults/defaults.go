/*
 * Copyright (c) 2025 Hardiyanto Y -Ebiet.
 * This software is part of the HDX (Hardix Audio) project.
 * This code is provided "as is", without warranty of any kind.
 */

package defaults

const (
	// === IDENTITY & VERSIONING ===
	AppName      = "HDX-Deck"
	CtlName      = "HDX-DeckCtl"
	VersionMajor = 1
	VersionMinor = 0

	// === FILES ===
	ConfigName      = ".hdx-deck"
	PreferencesFile = ".hdx-deck-prefs.json"
	LogFile         = ".hdx-deck.log"
	SocketFile      = "/tmp/hdx-deck.sock"
	EnvPrefix       = "HDXDECK"

	// === AUDIO ENGINE ===
	SampleRate      = 48000
	Channels        = 2
	BufferMillis    = 100
	ResampleQuality = 4

	// === PREFERENCES ===
	PreferenceKey    = "audio"
	StorageProbeKey  = "__storage_test__"
	PreferencesQuota = 5 * 1024 * 1024

	// === TRANSPORT ===
	SeekStep   = 15.0
	VolumeStep = 0.05

	// === SCREEN ===
	TickMillis    = 250
	SpectrumBands = 24
)

// Presentation attributes written by the UI synchronizer.
const (
	LabelPlay  = "Play"
	LabelPause = "Pause"

	ClassActive    = "active-track"
	ClassClickable = "clickable-track"
)

// Element ids. Track rows are TrackPrefix + position.
const (
	TargetPlay     = "play"
	TargetPrevious = "previous"
	TargetNext     = "next"
	TrackPrefix    = "track"

	TargetVolumeDown = "volume-down"
	TargetVolumeUp   = "volume-up"
	TargetMute       = "mute"
)

// Hotkeys, as KeyboardEvent.key values.
const (
	KeyToggle   = " "
	KeyPrevious = ","
	KeyNext     = "."
	KeyRewind   = "<"
	KeyForward  = ">"
)
