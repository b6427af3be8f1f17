// Copyright (C) markbookd authors.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package ccconfig

import (
	"github.com/fsnotify/fsnotify"

	cclog "github.com/markbookdev/markbookd/internal/cclog"
)

// WatchLogLevel watches filename for changes and reloads only the log
// level on write events, per SPEC_FULL.md's ambient-stack section: the
// sqlite DSN and listen path require a process restart, but the log level
// is safe to hot-swap. Adapted from cc-lib's util/fswatcher.go, narrowed
// from a generic listener registry to this one fixed reload.
func WatchLogLevel(filename string) (*fsnotify.Watcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := w.Add(filename); err != nil {
		w.Close()
		return nil, err
	}

	go func() {
		for {
			select {
			case event, ok := <-w.Events:
				if !ok {
					return
				}
				if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
					continue
				}
				Init(filename)
				cfg := Load()
				cclog.Init(cfg.LogLevel, cfg.LogDate)
				cclog.ComponentInfo("Config", "reloaded log level:", cfg.LogLevel)
			case err, ok := <-w.Errors:
				if !ok {
					return
				}
				cclog.ComponentWarn("Config", "watcher error:", err.Error())
			}
		}
	}()

	return w, nil
}
