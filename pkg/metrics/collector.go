/*
 * Copyright 2025 Carver Automation Corporation.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

// Package metrics exposes webcam-light counters in the Prometheus text format.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/carverauto/webcam-light/pkg/models"
	"github.com/carverauto/webcam-light/pkg/version"
)

const namespace = "webcam_light"

// Collector owns a private registry with the agent's counters. All methods
// are safe for concurrent use.
type Collector struct {
	registry *prometheus.Registry

	events            *prometheus.CounterVec
	decisions         *prometheus.CounterVec
	detectionFailures *prometheus.CounterVec
	streamRestarts    prometheus.Counter
}

// NewCollector registers every metric on a fresh registry.
func NewCollector() *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),
		events: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "camera_events_total",
			Help:      "Camera state transitions read from the log stream",
		}, []string{"state"}),
		decisions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "decisions_total",
			Help:      "Notifier decisions by outcome",
		}, []string{"decision"}),
		detectionFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "detection_failures_total",
			Help:      "Condition probe failures by probe",
		}, []string{"probe"}),
		streamRestarts: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "stream_restarts_total",
			Help:      "Times the log stream was restarted after terminating",
		}),
	}

	buildInfo := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "build_info",
		Help:      "Build information for the running agent",
	}, []string{"version", "build_id"})
	buildInfo.WithLabelValues(version.GetVersion(), version.GetBuildID()).Set(1)

	c.registry.MustRegister(
		c.events,
		c.decisions,
		c.detectionFailures,
		c.streamRestarts,
		buildInfo,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return c
}

// EventReceived counts a camera transition.
func (c *Collector) EventReceived(state models.CameraState) {
	c.events.WithLabelValues(string(state)).Inc()
}

// DecisionMade counts a notifier decision.
func (c *Collector) DecisionMade(decision string) {
	c.decisions.WithLabelValues(decision).Inc()
}

// DetectionFailed counts a failed condition probe.
func (c *Collector) DetectionFailed(probe string) {
	c.detectionFailures.WithLabelValues(probe).Inc()
}

// StreamRestarted counts a log stream restart.
func (c *Collector) StreamRestarted() {
	c.streamRestarts.Inc()
}

// Registry returns the underlying registry.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// Handler serves the registry.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{Registry: c.registry})
}
