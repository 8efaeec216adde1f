// Copyright 2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"

	"github.com/beevik/term"

	"github.com/sarch32/sarchasm/host"
)

const (
	versionMajor = 0
	versionMinor = 1
)

var (
	output  string
	origin  uint
	verbose bool
	console bool
	version bool
)

func init() {
	flag.StringVar(&output, "o", "", "output image path (default: input with .bin extension)")
	flag.UintVar(&origin, "g", 0, "load origin of the image")
	flag.BoolVar(&verbose, "v", false, "verbose assembly output")
	flag.BoolVar(&console, "c", false, "start the interactive console")
	flag.BoolVar(&version, "version", false, "print the version and exit")
	flag.CommandLine.Usage = func() {
		fmt.Println("Usage: sarchasm [options] <input file>\nOptions:")
		flag.PrintDefaults()
	}
}

func main() {
	flag.Parse()

	if version {
		fmt.Printf("sarchasm %d.%d\n", versionMajor, versionMinor)
		os.Exit(0)
	}

	if console {
		runConsole()
		return
	}

	if flag.NArg() != 1 {
		flag.CommandLine.Usage()
		os.Exit(2)
	}

	h := host.New()
	err := h.AssembleFile(flag.Arg(0), output, uint32(origin), verbose)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to assemble file '%s'.\n", flag.Arg(0))
		os.Exit(1)
	}
}

func runConsole() {
	h := host.New()

	// Break on Ctrl-C.
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt)
	go func() {
		for range c {
			h.Break()
		}
	}()

	interactive := term.IsTerminal(int(os.Stdin.Fd()))
	h.RunCommands(os.Stdin, os.Stdout, interactive)
}
