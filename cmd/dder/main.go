// Copyright 2025 Kim Wittenburg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Dder pretty-prints BER/DER objects in the parenthesised text format.
//
// Usage:
//
//	dder [-n] [-i INDENT|none] file…
//
// Each file is sniffed for raw DER, Base64 or PEM armour. "-" reads standard
// input. The -n flag forces numeric OIDs; -i sets the per-level indentation
// prefix, with the special value "none" producing single-line output. The
// exit status is 0 on success and 1 on any failure.
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"dertext.dev/dertext/ber"
	"dertext.dev/dertext/sniff"
	"dertext.dev/dertext/text"
)

var logger = log.New(os.Stderr, "dder: ", 0)

func main() {
	numeric := flag.Bool("n", false, "print OIDs numerically")
	indent := flag.String("i", "    ", `indentation prefix, or "none"`)
	flag.Parse()

	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(1)
	}

	opts := text.PrintOptions{NumericOIDs: *numeric}
	if *indent == "none" {
		opts.Compact = true
	} else {
		opts.Indent = *indent
	}

	ok := true
	for _, name := range flag.Args() {
		if err := dump(name, opts); err != nil {
			logger.Printf("%s: %v", name, err)
			ok = false
		}
	}
	if !ok {
		os.Exit(1)
	}
}

func dump(name string, opts text.PrintOptions) error {
	var data []byte
	var err error
	if name == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(name)
	}
	if err != nil {
		return err
	}

	raw := sniff.Bytes(data)
	if raw == nil {
		return fmt.Errorf("no BER object found")
	}
	e, err := ber.Decode(raw)
	if err != nil {
		return err
	}
	if err := text.Fprint(os.Stdout, e, opts); err != nil {
		return err
	}
	if opts.Compact {
		fmt.Println()
	}
	return nil
}
