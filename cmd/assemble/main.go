// This file is part of PocolVM - https://github.com/John-fried/PocolVM
//
// Copyright 2024 The PocolVM Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Command assemble compiles PocolVM assembly source into an object file.
//
//	assemble [-o output] <input.pasm>
//
// The default output name is the input name with its extension replaced by
// ".pob", or "out.pob" when the input is read from standard input.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"

	"github.com/John-fried/PocolVM/asm"
	"github.com/John-fried/PocolVM/config"
	"github.com/John-fried/PocolVM/diag"
)

func main() {
	cfgPath := flag.String("config", "", "path to an optional TOML configuration file")
	outFileName := flag.String("o", "", "output `filename` (default: input name with .pob)")
	flag.Parse()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	var in io.Reader
	var name, out string
	switch flag.NArg() {
	case 0:
		in = os.Stdin
		name = "<stdin>"
		out = "out.pob"
	case 1:
		name = flag.Arg(0)
		f, err := os.Open(name)
		if err != nil {
			fmt.Fprintln(os.Stderr, errors.Wrapf(err, "open %s", name))
			os.Exit(1)
		}
		defer f.Close()
		in = f
		out = defaultOutputName(name)
	default:
		fmt.Fprintln(os.Stderr, "assemble: expected at most one input file")
		flag.Usage()
		os.Exit(2)
	}
	if *outFileName != "" {
		out = *outFileName
	}

	code, err := asm.Assemble(name, in)
	if err != nil {
		var diags diag.List
		if errors.As(err, &diags) {
			diag.Fprint(os.Stderr, diags, cfg.Diagnostics.Color)
			os.Exit(1)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	if err := writeObjectFile(out, code); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func defaultOutputName(input string) string {
	ext := filepath.Ext(input)
	base := strings.TrimSuffix(input, ext)
	return base + ".pob"
}

// writeObjectFile writes code to a temp file in the destination directory
// and renames it into place, so a crash mid-write never leaves a truncated
// object file where out used to be.
func writeObjectFile(out string, code []byte) error {
	dir := filepath.Dir(out)
	tmp, err := os.CreateTemp(dir, ".pocolvm-obj-*")
	if err != nil {
		return errors.Wrap(err, "create temp object file")
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(code); err != nil {
		tmp.Close()
		return errors.Wrap(err, "write object file")
	}
	if err := tmp.Close(); err != nil {
		return errors.Wrap(err, "close object file")
	}
	if err := os.Chmod(tmpName, 0o755); err != nil {
		return errors.Wrap(err, "chmod object file")
	}
	if err := os.Rename(tmpName, out); err != nil {
		return errors.Wrap(err, "rename object file into place")
	}
	return nil
}
