// Copyright 2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"

	"github.com/beevik/go2a03/cpu"
	"github.com/beevik/go2a03/host"
	"github.com/beevik/term"
)

var (
	binary string
	origin string
	nmos   bool
	script string
)

func init() {
	flag.StringVar(&binary, "l", "", "load raw binary file")
	flag.StringVar(&origin, "o", "$8000", "load address of the binary file")
	flag.BoolVar(&nmos, "nmos", false, "emulate an NMOS 6502 with decimal mode")
	flag.StringVar(&script, "lua", "", "run a Lua script before accepting commands")
	flag.CommandLine.Usage = func() {
		fmt.Println("Usage: go2a03 [script] ..\nOptions:")
		flag.PrintDefaults()
	}
}

func main() {
	flag.Parse()

	arch := cpu.Ricoh2A03
	if nmos {
		arch = cpu.NMOS
	}
	h := host.New(arch)

	// Load a binary image if requested.
	if binary != "" {
		addr, err := parseAddress(origin)
		if err != nil {
			exitOnError(err)
		}
		if err := h.Load(binary, addr); err != nil {
			exitOnError(err)
		}
	}

	if script != "" {
		if err := h.RunLua(script); err != nil {
			exitOnError(err)
		}
	}

	// Run commands contained in command-line files.
	for _, filename := range flag.Args() {
		file, err := os.Open(filename)
		if err != nil {
			exitOnError(err)
		}
		ok := h.RunCommands(file, os.Stdout, false)
		file.Close()
		if !ok {
			os.Exit(0)
		}
	}

	// Break on Ctrl-C.
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt)
	go handleInterrupt(h, c)

	// Run commands interactively when attached to a terminal.
	h.RunCommands(os.Stdin, os.Stdout, term.IsTerminal(int(os.Stdin.Fd())))
}

func parseAddress(s string) (uint16, error) {
	switch {
	case strings.HasPrefix(s, "$"):
		s = "0x" + s[1:]
	case strings.HasPrefix(s, "0X"):
		s = "0x" + s[2:]
	}
	v, err := strconv.ParseUint(s, 0, 16)
	if err != nil {
		return 0, fmt.Errorf("invalid address '%s'", s)
	}
	return uint16(v), nil
}

func handleInterrupt(h *host.Host, c chan os.Signal) {
	for {
		<-c
		h.Break()
	}
}

func exitOnError(err error) {
	fmt.Fprintf(os.Stderr, "ERROR: %v\n", err)
	os.Exit(1)
}
