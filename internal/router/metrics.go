// Copyright (C) markbookd authors.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package router

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// requestsTotal and requestDuration are purely observational, scraped
// from the debug HTTP surface (internal/router/debughttp.go); the engine
// never reads them back, per SPEC_FULL.md's DOMAIN STACK section.
var (
	requestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "markbookd",
		Name:      "requests_total",
		Help:      "Total number of requests handled by method and outcome.",
	}, []string{"method", "outcome"})

	requestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "markbookd",
		Name:      "request_duration_seconds",
		Help:      "Request handling latency by method.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method"})
)

func init() {
	prometheus.MustRegister(requestsTotal, requestDuration)
}

func observeRequest(method string, d time.Duration, ok bool) {
	outcome := "error"
	if ok {
		outcome = "ok"
	}
	requestsTotal.WithLabelValues(method, outcome).Inc()
	requestDuration.WithLabelValues(method).Observe(d.Seconds())
}
