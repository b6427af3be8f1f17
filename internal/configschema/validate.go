// Copyright (C) markbookd authors.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package configschema validates the free-form workspace configuration
// blobs named in spec §4.5 (user_cfg.mode_levels, user_cfg.roff, and
// their override.* counterparts) against embedded JSON Schemas before the
// engine accepts them, adapted from cc-lib's schema.Validate.
//
// A blob that fails validation is treated as absent by the mode config
// loader (it falls through to defaults) and is never fatal — see spec §4.5
// and §7 ("computation itself is total").
package configschema

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"

	cclog "github.com/markbookdev/markbookd/internal/cclog"
)

type Kind int

const (
	ModeLevels Kind = iota + 1
	Roff
)

//go:embed schemas/*
var schemaFiles embed.FS

func compiled(k Kind) (*jsonschema.Schema, error) {
	jsonschema.Loaders["embedfs"] = func(s string) (io.ReadCloser, error) {
		f := filepath.Join("schemas", strings.Split(s, "//")[1])
		return schemaFiles.Open(f)
	}

	switch k {
	case ModeLevels:
		return jsonschema.Compile("embedfs://mode_levels.schema.json")
	case Roff:
		return jsonschema.Compile("embedfs://roff.schema.json")
	default:
		return nil, fmt.Errorf("configschema: unknown schema kind %v", k)
	}
}

// Validate checks raw against the schema for k.
func Validate(k Kind, raw []byte) error {
	s, err := compiled(k)
	if err != nil {
		cclog.ComponentError("Config", "compiling schema", err.Error())
		return err
	}

	var v any
	if err := json.NewDecoder(bytes.NewReader(raw)).Decode(&v); err != nil {
		cclog.ComponentWarn("Config", "decoding config blob", err.Error())
		return err
	}

	if err := s.Validate(v); err != nil {
		return fmt.Errorf("configschema: %w", err)
	}
	return nil
}
