// Copyright (C) markbookd authors.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package router

import (
	"encoding/json"
	"fmt"

	"github.com/markbookdev/markbookd/internal/calcerr"
)

// HandlerFunc handles one decoded request's params and returns the result
// value to be marshalled back, or an error.
type HandlerFunc func(params json.RawMessage) (any, error)

// Registry is the method name -> handler map, grounded on cc-lib's
// receiveManager.AvailableReceivers: an unknown method name is a
// structured error, never a panic.
type Registry map[string]HandlerFunc

// Dispatch looks up method and invokes its handler. An unknown method
// becomes a bad_params error, matching receiveManager's "SKIP, unknown
// type" handling translated to the request/response boundary.
func (reg Registry) Dispatch(method string, params json.RawMessage) (any, error) {
	h, ok := reg[method]
	if !ok {
		return nil, calcerr.BadParams(fmt.Sprintf("unknown method: %s", method), map[string]any{"method": method})
	}
	return h(params)
}
