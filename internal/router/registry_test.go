// Copyright (C) markbookd authors.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package router

import (
	"encoding/json"
	"testing"

	"github.com/markbookdev/markbookd/internal/calcerr"
)

func TestDispatchUnknownMethod(t *testing.T) {
	reg := Registry{}
	_, err := reg.Dispatch("no.such.method", nil)
	if err == nil {
		t.Fatal("expected an error for an unknown method")
	}
	e, ok := calcerr.As(err)
	if !ok || e.Code != calcerr.CodeBadParams {
		t.Errorf("Dispatch(unknown) error = %v, want a bad_params structured error", err)
	}
}

func TestDispatchInvokesHandler(t *testing.T) {
	reg := Registry{
		"echo": func(params json.RawMessage) (any, error) {
			return map[string]any{"echo": string(params)}, nil
		},
	}
	result, err := reg.Dispatch("echo", json.RawMessage(`"hi"`))
	if err != nil {
		t.Fatalf("Dispatch returned error: %v", err)
	}
	m, ok := result.(map[string]any)
	if !ok || m["echo"] != `"hi"` {
		t.Errorf("Dispatch result = %v, want echo of the params", result)
	}
}
