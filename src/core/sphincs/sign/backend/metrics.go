// MIT License
//
// Copyright (c) 2024 sphinx-core
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.

// go/src/core/sphincs/sign/backend/metrics.go
package sign

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics collects Prometheus metrics for the signing backend.
type Metrics struct {
	SignCount      prometheus.Counter
	VerifyCount    prometheus.Counter
	VerifyFailures prometheus.Counter
	ErrorCount     *prometheus.CounterVec
	SignLatency    prometheus.Histogram
	VerifyLatency  prometheus.Histogram
}

// NewMetrics initializes Prometheus metrics for the signing backend.
func NewMetrics() *Metrics {
	return &Metrics{
		SignCount: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "slhdsa_sign_count",
				Help: "Number of signatures produced",
			},
		),
		VerifyCount: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "slhdsa_verify_count",
				Help: "Number of signature verifications performed",
			},
		),
		VerifyFailures: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "slhdsa_verify_failures",
				Help: "Number of signature verifications that rejected the input",
			},
		),
		ErrorCount: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "slhdsa_error_count",
				Help: "Number of backend errors",
			},
			[]string{"operation"},
		),
		SignLatency: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "slhdsa_sign_latency_seconds",
				Help:    "Latency of signing operations",
				Buckets: prometheus.DefBuckets,
			},
		),
		VerifyLatency: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "slhdsa_verify_latency_seconds",
				Help:    "Latency of verification operations",
				Buckets: prometheus.DefBuckets,
			},
		),
	}
}

// Register registers all collectors with the given registry.
func (m *Metrics) Register(reg prometheus.Registerer) error {
	for _, c := range []prometheus.Collector{
		m.SignCount, m.VerifyCount, m.VerifyFailures,
		m.ErrorCount, m.SignLatency, m.VerifyLatency,
	} {
		if err := reg.Register(c); err != nil {
			return err
		}
	}
	return nil
}
