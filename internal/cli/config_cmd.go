// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// config_cmd.go - "ehub config" inspects and initializes configuration.
//
// Subcommands:
//   show             Print the effective configuration (default)
//   path             Print the config file location
//   init             Write a default config.toml

package cli

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/jeranaias/ehub-tui/internal/config"
)

func runConfig(args *Args) int {
	switch args.Subcommand {
	case "", "show":
		cfg, err := config.Load()
		if err != nil {
			return fail(err)
		}
		if err := toml.NewEncoder(os.Stdout).Encode(cfg); err != nil {
			return fail(err)
		}
		return 0

	case "path":
		path, err := config.ConfigPathTOML()
		if err != nil {
			return fail(err)
		}
		fmt.Println(path)
		return 0

	case "init":
		path, err := config.ConfigPathTOML()
		if err != nil {
			return fail(err)
		}
		if _, err := os.Stat(path); err == nil {
			return fail(fmt.Errorf("%s already exists", path))
		}
		if err := config.Save(config.Default()); err != nil {
			return fail(err)
		}
		fmt.Println("Wrote", path)
		return 0

	default:
		return fail(fmt.Errorf("unknown subcommand %q", args.Subcommand))
	}
}
