// Copyright 2026 The Accumulate Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package client

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	mSubmissions = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "moveclient",
		Subsystem: "client",
		Name:      "submissions",
		Help:      "Number of submissions by resulting state",
	}, []string{"state"})
	mPollQueries = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "moveclient",
		Subsystem: "client",
		Name:      "poll_queries",
		Help:      "Number of transaction status queries",
	})
	mFinality = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "moveclient",
		Subsystem: "client",
		Name:      "finality_seconds",
		Help:      "Time from the first status query to a final or abandoned state",
		Buckets:   prometheus.ExponentialBuckets(0.05, 2, 12),
	}, []string{"state"})
	mHashMismatch = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "moveclient",
		Subsystem: "client",
		Name:      "hash_mismatch",
		Help:      "Number of submissions where the node reported a different hash",
	})
)
