// Copyright (C) markbookd authors.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package router

import (
	"bufio"
	"encoding/json"
	"io"
	"time"

	cclog "github.com/markbookdev/markbookd/internal/cclog"
)

// Serve runs the strictly sequential request/response loop over conn, per
// spec §5's scheduling model: one line read, one request handled, one
// line written, before the next read. There is no goroutine fan-out
// inside this loop — concurrent connections, if any, each get their own
// call to Serve, serialized only by the single store connection they
// share.
func Serve(r io.Reader, w io.Writer, reg Registry) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 8*1024*1024)
	enc := json.NewEncoder(w)

	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var req Request
		if err := json.Unmarshal(line, &req); err != nil {
			cclog.ComponentWarn("Router", "discarding malformed request line:", err.Error())
			continue
		}

		resp := handleOne(reg, req)
		if err := enc.Encode(resp); err != nil {
			cclog.ComponentError("Router", "writing response:", err.Error())
			return
		}
	}

	if err := scanner.Err(); err != nil {
		cclog.ComponentError("Router", "reading requests:", err.Error())
	}
}

func handleOne(reg Registry, req Request) Response {
	start := time.Now()
	result, err := reg.Dispatch(req.Method, req.Params)
	observeRequest(req.Method, time.Since(start), err == nil)

	if err != nil {
		if e, ok := asStructured(err); ok {
			return Response{ID: req.ID, Error: &ErrorBody{Code: string(e.Code), Message: e.Message, Details: e.Details}}
		}
		return Response{ID: req.ID, Error: &ErrorBody{Code: "db_query_failed", Message: err.Error()}}
	}
	return Response{ID: req.ID, Result: result}
}
