// Copyright 2025 Kim Wittenburg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Mder builds DER from a parenthesised text specification.
//
// Usage:
//
//	mder input output [param…]
//
// The input file holds the text specification; "-" reads standard input. The
// DER encoding is written to the output file, or to standard output for "-".
// Trailing arguments are bound as string parameters to the slots %0, %1 and
// so on. The exit status is 0 on success and 1 on any failure.
package main

import (
	"io"
	"log"
	"os"

	"dertext.dev/dertext/ber"
	"dertext.dev/dertext/text"
)

var logger = log.New(os.Stderr, "mder: ", 0)

func main() {
	if len(os.Args) < 3 {
		logger.Println("usage: mder input output [param…]")
		os.Exit(1)
	}
	input, output := os.Args[1], os.Args[2]

	var pp text.Params
	for _, arg := range os.Args[3:] {
		pp = append(pp, text.String(arg))
	}

	if err := build(input, output, pp); err != nil {
		logger.Println(err)
		os.Exit(1)
	}
}

func build(input, output string, pp text.Params) error {
	var src []byte
	var err error
	if input == "-" {
		src, err = io.ReadAll(os.Stdin)
	} else {
		src, err = os.ReadFile(input)
	}
	if err != nil {
		return err
	}

	e, err := text.Build(string(src), pp)
	if err != nil {
		return err
	}
	var enc []byte
	if e != nil {
		if enc, err = ber.Encode(e); err != nil {
			return err
		}
	}

	if output == "-" {
		_, err = os.Stdout.Write(enc)
		return err
	}
	return os.WriteFile(output, enc, 0o644)
}
