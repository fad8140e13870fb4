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

// Package config loads the optional runtime tunables for the assembler and
// the interpreter from a TOML file. Every field has a spec-mandated default,
// so a missing or partial config file is never an error.
package config

import (
	"os"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"
)

// Config holds the tunables a host may override. Zero values are never used
// at runtime directly; Default() always populates every field.
type Config struct {
	Interpreter struct {
		MemorySize       int  `toml:"memory_size"`
		DataStackSize    int  `toml:"data_stack_size"`
		RegisterCount    int  `toml:"register_count"`
		DefaultBudget    int  `toml:"default_instruction_budget"`
	} `toml:"interpreter"`

	Diagnostics struct {
		Color bool `toml:"color"`
	} `toml:"diagnostics"`
}

// Default returns the configuration matching the spec's hard-coded
// constants: 640,000 bytes of linear memory, a 1024-slot data stack, 8
// general-purpose registers, and an unbounded instruction budget.
func Default() *Config {
	c := &Config{}
	c.Interpreter.MemorySize = 640_000
	c.Interpreter.DataStackSize = 1024
	c.Interpreter.RegisterCount = 8
	c.Interpreter.DefaultBudget = -1
	c.Diagnostics.Color = true
	return c
}

// Load reads path as a TOML file layered on top of Default(). A missing file
// is not an error: Default() is returned unchanged.
func Load(path string) (*Config, error) {
	c := Default()
	if path == "" {
		return c, nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return c, nil
	}
	if _, err := toml.DecodeFile(path, c); err != nil {
		return nil, errors.Wrapf(err, "parse config %s", path)
	}
	return c, nil
}
