// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"context"
	"log"
	"time"

	"github.com/fsnotify/fsnotify"
)

// =============================================================================
// HOT RELOAD
// =============================================================================

// debounce window for editors that write config files in several events.
const reloadDebounce = 250 * time.Millisecond

// Watch watches the config directory and invokes onChange with the freshly
// loaded config whenever the config file is written. Reload failures are
// logged and skipped so a half-saved file never tears down a session.
// Watch blocks until ctx is cancelled.
func Watch(ctx context.Context, onChange func(*Config)) error {
	dir, err := ConfigDir()
	if err != nil {
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	// Watch the directory, not the file. Atomic saves replace the file,
	// which would silently drop a file-level watch.
	if err := watcher.Add(dir); err != nil {
		return err
	}

	var timer *time.Timer
	fire := make(chan struct{}, 1)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !isConfigFile(ev.Name) {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
				continue
			}
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(reloadDebounce, func() {
				select {
				case fire <- struct{}{}:
				default:
				}
			})

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Printf("config: watch error: %v", err)

		case <-fire:
			cfg, err := Load()
			if err != nil {
				log.Printf("config: reload skipped: %v", err)
				continue
			}
			onChange(cfg)
		}
	}
}

func isConfigFile(path string) bool {
	base := path
	for i := len(path) - 1; i >= 0; i-- {
		if path[i] == '/' || path[i] == '\\' {
			base = path[i+1:]
			break
		}
	}
	return base == "config.toml" || base == "config.json"
}
