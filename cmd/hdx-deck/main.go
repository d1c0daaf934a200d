/*
 * Copyright (c) 2025 Hardiyanto Y -Ebiet.
 * This software is part of the HDX (Hardix Audio) project.
 * This code is provided "as is", without warranty of any kind.
 */

package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"hdxdeck/internal/catalog"
	"hdxdeck/internal/config"
	"hdxdeck/internal/ipc"
	"hdxdeck/internal/logging"
	"hdxdeck/internal/media"
	"hdxdeck/internal/player"
	"hdxdeck/internal/prefs"
	"hdxdeck/internal/tui"
	"hdxdeck/pkg/defaults"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/spf13/pflag"
	"golang.org/x/term"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "[!] %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	fs := pflag.NewFlagSet("hdx-deck", pflag.ContinueOnError)
	cfgFile := fs.String("config", "", "config file (default $HOME/.hdx-deck)")
	fs.Int("start", 0, "index of the first track")
	fs.Bool("headless", false, "play silently without an audio device")
	fs.String("socket", defaults.SocketFile, "control socket path")
	fs.String("log-level", "info", "log level")
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "%s V.%d.%d\nUsage: hdx-deck [flags] [DIR|PLAYLIST.m3u|FILE]\n",
			defaults.AppName, defaults.VersionMajor, defaults.VersionMinor)
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return err
	}

	v := config.New()
	for key, flag := range map[string]string{
		"start": "start", "headless": "headless", "socket": "socket", "log_level": "log-level",
	} {
		if err := v.BindPFlag(key, fs.Lookup(flag)); err != nil {
			return err
		}
	}
	if *cfgFile != "" {
		v.SetConfigFile(*cfgFile)
	}
	cfg, err := config.Load(v)
	if err != nil {
		return err
	}
	if fs.NArg() > 0 {
		cfg.Library = fs.Arg(0)
	}

	log, logCloser, err := logging.OpenFile(cfg.LogFile, cfg.LogLevel)
	if err != nil {
		return err
	}
	defer logCloser.Close()
	log.Info().Str("library", cfg.Library).Bool("headless", cfg.Headless).Msg("starting")

	reg, err := catalog.Load(cfg.Library, log)
	if err != nil {
		return err
	}
	if cfg.Start >= reg.Len() {
		return fmt.Errorf("start %d: playlist has %d tracks", cfg.Start, reg.Len())
	}

	el, headless, err := openElement(cfg, reg, log)
	if err != nil {
		return err
	}
	defer el.Close()

	store := openPrefs(cfg, log)

	screen := tui.NewScreen(reg.Name(), reg.Tracks())

	sess, err := player.NewSession(player.Options{
		Registry:   reg,
		Element:    el,
		View:       screen,
		Prefs:      store,
		SeekStep:   cfg.SeekStep,
		VolumeStep: cfg.VolumeStep,
		Bands:      defaults.SpectrumBands,
		Log:        log,
	})
	if err != nil {
		return err
	}
	srv := ipc.NewServer(sess, log)
	sess.Observe(screen.Observe)
	sess.Observe(srv.Notify)

	if err := sess.Open(cfg.Start); err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := srv.Listen(cfg.Socket); err != nil {
		log.Warn().Err(err).Msg("control socket disabled")
	} else {
		go srv.Serve(ctx)
	}

	runErr := make(chan error, 1)
	go func() { runErr <- sess.Run(ctx) }()

	interval := defaults.TickMillis * time.Millisecond
	onTick := func() {
		if headless != nil {
			headless.Advance(interval.Seconds())
		}
		sess.Tick()
	}
	sess.Tick()

	if term.IsTerminal(int(os.Stdin.Fd())) {
		model := tui.NewModel(screen, tui.NewRouter(screen, sess.Input), interval, onTick)
		_, err := tui.NewProgram(model, tea.WithContext(ctx)).Run()
		cancel()
		if err != nil && !errors.Is(err, tea.ErrProgramKilled) {
			<-sess.Done()
			return fmt.Errorf("terminal: %w", err)
		}
	} else {
		log.Info().Msg("stdin is not a terminal, control socket only")
		go tick(ctx, interval, onTick)
	}

	if err := <-runErr; err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	log.Info().Msg("bye")
	return nil
}

// openElement picks the audio device or the silent element.
func openElement(cfg config.Config, reg *catalog.Registry, log zerolog.Logger) (media.Element, *media.Headless, error) {
	if cfg.Headless {
		h := media.NewHeadless()
		for _, t := range reg.Tracks() {
			h.SetDuration(t.Source, t.Duration.Seconds())
		}
		return h, h, nil
	}
	sp, err := media.NewSpeaker(cfg.SampleRate, defaults.BufferMillis*time.Millisecond, defaults.ResampleQuality, log)
	if err != nil {
		return nil, nil, fmt.Errorf("audio device: %w", err)
	}
	return sp, nil, nil
}

// openPrefs keeps preferences in memory when no file is configured.
func openPrefs(cfg config.Config, log zerolog.Logger) *prefs.Store {
	if cfg.Preferences == "" {
		return prefs.NewStore(prefs.NewMemoryBackend(int(cfg.PreferencesQuota)), log)
	}
	return prefs.NewStore(prefs.NewFileBackend(cfg.Preferences, cfg.PreferencesQuota), log)
}

// tick keeps position and the silent clock moving when no screen runs.
func tick(ctx context.Context, interval time.Duration, onTick func()) {
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			onTick()
		}
	}
}
