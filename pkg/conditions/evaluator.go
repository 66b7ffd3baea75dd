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

package conditions

import (
	"context"
	"errors"
	"time"

	"github.com/carverauto/webcam-light/pkg/logger"
)

const (
	probeNetwork = "network"
	probeDisplay = "display"
)

// Settings holds the gating configuration.
type Settings struct {
	HomeIPPrefix           string
	RequireHomeNetwork     bool
	RequireExternalMonitor bool
	DisplaysCacheTTL       time.Duration
}

// Result is the outcome of one evaluation.
type Result struct {
	HomeNetworkPass     bool
	ExternalMonitorPass bool

	OnHomeNetwork   bool
	ExternalMonitor bool
	IPAddresses     []string
}

// Pass reports whether both gates are satisfied.
func (r Result) Pass() bool {
	return r.HomeNetworkPass && r.ExternalMonitorPass
}

type displayCacheEntry struct {
	value     bool
	expiresAt time.Time
}

// Evaluator checks home network membership on every call and external
// display presence through a TTL cache. It is not safe for concurrent use.
type Evaluator struct {
	settings Settings
	network  NetworkProbe
	display  DisplayProbe
	recorder FailureRecorder
	logger   logger.Logger
	nowFn    func() time.Time

	displayCache *displayCacheEntry
}

// EvaluatorOption customises an Evaluator.
type EvaluatorOption func(*Evaluator)

// WithClock sets the time source used for cache expiry.
func WithClock(now func() time.Time) EvaluatorOption {
	return func(e *Evaluator) { e.nowFn = now }
}

// WithFailureRecorder registers a recorder for probe failures.
func WithFailureRecorder(r FailureRecorder) EvaluatorOption {
	return func(e *Evaluator) { e.recorder = r }
}

// NewEvaluator wires the probes into an Evaluator.
func NewEvaluator(settings Settings, network NetworkProbe, display DisplayProbe, log logger.Logger,
	opts ...EvaluatorOption) *Evaluator {
	e := &Evaluator{
		settings: settings,
		network:  network,
		display:  display,
		logger:   log,
		nowFn:    time.Now,
	}

	for _, opt := range opts {
		opt(e)
	}

	return e
}

// Evaluate runs both checks. The external display is probed even when it is
// not required so the result always describes the host.
func (e *Evaluator) Evaluate(ctx context.Context) Result {
	ips, err := e.network.IPv4Addresses(ctx)
	if err != nil {
		e.probeFailed(probeNetwork, err)

		ips = nil
	}

	if ips == nil {
		ips = []string{}
	}

	onHome := matchesPrefix(ips, e.settings.HomeIPPrefix)
	external := e.externalMonitor(ctx)

	return Result{
		HomeNetworkPass:     !e.settings.RequireHomeNetwork || onHome,
		ExternalMonitorPass: !e.settings.RequireExternalMonitor || external,
		OnHomeNetwork:       onHome,
		ExternalMonitor:     external,
		IPAddresses:         ips,
	}
}

func (e *Evaluator) externalMonitor(ctx context.Context) bool {
	now := e.nowFn()

	if e.displayCache != nil && !now.After(e.displayCache.expiresAt) {
		return e.displayCache.value
	}

	value, err := e.display.HasExternalDisplay(ctx)
	if err != nil {
		e.probeFailed(probeDisplay, err)

		value = false
	}

	e.displayCache = &displayCacheEntry{
		value:     value,
		expiresAt: now.Add(e.settings.DisplaysCacheTTL),
	}

	e.logger.Debug().
		Bool("external_monitor", value).
		Time("expires_at", e.displayCache.expiresAt).
		Msg("Refreshed display cache")

	return value
}

func (e *Evaluator) probeFailed(probe string, err error) {
	ev := e.logger.Warn().Err(err).Str("probe", probe)
	if errors.Is(err, ErrDetectionTimeout) {
		ev = ev.Bool("timeout", true)
	}

	ev.Msg("Condition probe failed, treating as not satisfied")

	if e.recorder != nil {
		e.recorder.DetectionFailed(probe)
	}
}
