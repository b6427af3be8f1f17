// Copyright (C) markbookd authors.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package ccconfig loads the process-level configuration markbookd needs
// before it can open a workspace store: listen path for the request
// channel, sqlite DSN, log level, and the debug HTTP port. Adapted from
// cc-lib's ccConfig package — same flat JSON file plus "<key>-file"
// indirection, same silent-if-absent Init semantics — repurposed from
// package-keyed telemetry config to a single fixed ProcessConfig shape,
// per SPEC_FULL.md's ambient-stack section.
package ccconfig

import (
	"bytes"
	"encoding/json"
	"os"
	"strings"

	cclog "github.com/markbookdev/markbookd/internal/cclog"
)

// ProcessConfig is the fixed shape of the process-level configuration
// file: everything the workspace store has no opinion about.
type ProcessConfig struct {
	ListenPath         string `json:"listen-path"`
	SqliteDSN          string `json:"sqlite-dsn"`
	LogLevel           string `json:"log-level"`
	LogDate            bool   `json:"log-date"`
	DebugHTTPAddr      string `json:"debug-http-addr"`
	EnvFile            string `json:"env-file"`
	DropUser           string `json:"drop-user"`
	DropGroup          string `json:"drop-group"`
	ConfigCacheEntries int    `json:"config-cache-entries"`
}

var keys map[string]json.RawMessage

// Init loads and parses filename. Missing file is not an error — the
// caller gets an empty configuration and its own zero-value defaults. Any
// other read or decode failure of filename is fatal, matching ccConfig's
// Init. A "<key>-file" reference that cannot be read is logged and
// skipped.
func Init(filename string) {
	raw, err := os.ReadFile(filename)
	jkeys := make(map[string]json.RawMessage)

	if err != nil {
		if !os.IsNotExist(err) {
			cclog.Fatalf("CONFIG ERROR: %v", err)
		}
	} else {
		dec := json.NewDecoder(bytes.NewReader(raw))
		if err := dec.Decode(&jkeys); err != nil {
			cclog.Fatalf("CONFIG ERROR: could not decode %s: %v", filename, err)
		}
	}

	keys = make(map[string]json.RawMessage)
	for k, v := range jkeys {
		s := strings.Split(k, "-")
		if len(s) == 2 && s[1] == "file" {
			var ref string
			if err := json.Unmarshal(v, &ref); err != nil {
				cclog.Fatalf("CONFIG ERROR: %v", err)
			}
			b, err := os.ReadFile(ref)
			if err != nil {
				cclog.ComponentError("Config", err.Error())
				continue
			}
			keys[s[0]] = b
		} else {
			keys[k] = v
		}
	}
}

// Load decodes the process configuration from whatever Init last loaded,
// applying zero-value-safe defaults for anything unset.
func Load() ProcessConfig {
	cfg := ProcessConfig{
		ListenPath:         "./markbookd.sock",
		SqliteDSN:          "./markbookd.db",
		LogLevel:           "info",
		DebugHTTPAddr:      ":6062",
		ConfigCacheEntries: 256,
	}
	if raw, ok := keys["main"]; ok {
		if err := json.Unmarshal(raw, &cfg); err != nil {
			cclog.ComponentWarn("Config", "ignoring invalid main config block:", err.Error())
		}
	}
	return cfg
}
