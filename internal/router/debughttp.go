// Copyright (C) markbookd authors.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package router

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	cclog "github.com/markbookdev/markbookd/internal/cclog"
)

// NewDebugHTTPHandler builds the small admin surface exposing /healthz
// and /metrics, separate from the line-delimited request channel that is
// the actual request/response surface (spec §6).
func NewDebugHTTPHandler() http.Handler {
	r := mux.NewRouter()
	r.HandleFunc("/healthz", healthzHandler).Methods(http.MethodGet)
	r.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)
	return r
}

func healthzHandler(w http.ResponseWriter, req *http.Request) {
	cclog.ComponentDebug("Router", "healthz probe from", req.RemoteAddr)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}
