/*
 * Copyright (c) 2025 Hardiyanto Y -Ebiet.
 * This software is part of the HDX (Hardix Audio) project.
 * This code is provided "as is", without warranty of any kind.
 */

package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"net"
	"os"
	"strings"

	"hdxdeck/internal/config"
	"hdxdeck/internal/logging"
	"hdxdeck/pkg/defaults"

	"github.com/chzyer/readline"
	"github.com/spf13/pflag"
)

var verbs = []string{
	"ABOUT", "PING", "WHOAMI", "STATUS", "LIST",
	"TOGGLE", "NEXT", "PREV", "SELECT", "SEEK", "VOLUME", "MUTE", "FORGET",
}

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "[!] %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	fs := pflag.NewFlagSet("hdx-deckctl", pflag.ContinueOnError)
	fs.String("socket", defaults.SocketFile, "control socket path")
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return err
	}

	v := config.New()
	if err := v.BindPFlag("socket", fs.Lookup("socket")); err != nil {
		return err
	}
	cfg, err := config.Load(v)
	if err != nil {
		return err
	}
	log, err := logging.Console(os.Stderr, cfg.LogLevel)
	if err != nil {
		return err
	}

	conn, err := net.Dial("unix", cfg.Socket)
	if err != nil {
		return fmt.Errorf("deck not reachable: %w", err)
	}
	defer conn.Close()

	// one shot: hdx-deckctl NEXT
	if fs.NArg() > 0 {
		return oneShot(conn, strings.Join(fs.Args(), " "), os.Stdout)
	}

	fmt.Printf("\n%s V.%d.%d\n", defaults.CtlName, defaults.VersionMajor, defaults.VersionMinor)
	fmt.Println(`Type a command and press Enter, "QUIT" to exit`)

	items := make([]readline.PrefixCompleterInterface, len(verbs))
	for i, verb := range verbs {
		items[i] = readline.PcItem(verb)
	}
	rl, err := readline.NewEx(&readline.Config{
		Prompt:       "deck> ",
		AutoComplete: readline.NewPrefixCompleter(items...),
	})
	if err != nil {
		return err
	}
	defer rl.Close()

	// ============================
	// IPC -> STDOUT
	// ============================
	go func() {
		sc := bufio.NewScanner(conn)
		for sc.Scan() {
			fmt.Fprintln(rl.Stdout(), describe(sc.Text()))
		}
		log.Warn().Msg("socket closed")
		rl.Close()
	}()

	// ============================
	// STDIN -> IPC
	// ============================
	for {
		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			if line == "" {
				return nil
			}
			continue
		}
		if err != nil {
			return nil
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if strings.EqualFold(line, "QUIT") {
			fmt.Println("Bye.")
			return nil
		}
		if _, err := conn.Write([]byte(line + "\n")); err != nil {
			return fmt.Errorf("write: %w", err)
		}
	}
}

// oneShot sends line and prints the first reply that is not an event.
func oneShot(conn io.ReadWriter, line string, out io.Writer) error {
	if _, err := conn.Write([]byte(line + "\n")); err != nil {
		return err
	}
	sc := bufio.NewScanner(conn)
	for sc.Scan() {
		reply := sc.Text()
		if strings.HasPrefix(reply, "EVENT ") {
			continue
		}
		fmt.Fprintln(out, reply)
		if strings.HasPrefix(reply, "ERR ") {
			return errors.New(reply)
		}
		return nil
	}
	if err := sc.Err(); err != nil {
		return err
	}
	return io.ErrUnexpectedEOF
}
