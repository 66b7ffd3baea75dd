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

// Package notifier holds the debounced camera notification state machine.
package notifier

import (
	"context"
	"os"
	"time"

	"github.com/carverauto/webcam-light/pkg/conditions"
	"github.com/carverauto/webcam-light/pkg/logger"
	"github.com/carverauto/webcam-light/pkg/models"
)

// Decision is the outcome of handling one camera event.
type Decision string

const (
	DecisionIgnored        Decision = "ignored"
	DecisionDebounced      Decision = "debounced"
	DecisionRejected       Decision = "rejected"
	DecisionDispatched     Decision = "dispatched"
	DecisionDispatchFailed Decision = "dispatch_failed"
)

// State is the debounce state of the notifier.
type State int

const (
	// StateIdle accepts the next ON event.
	StateIdle State = iota
	// StateSuppressed discards ON events until the debounce window has passed.
	StateSuppressed
)

func (s State) String() string {
	if s == StateSuppressed {
		return "suppressed"
	}

	return "idle"
}

// DebounceState records the last dispatch decision.
type DebounceState struct {
	LastNotifiedAt time.Time
	Set            bool
}

// Notifier turns camera events into at most one webhook per debounce window.
// It is driven from a single goroutine and holds no locks.
type Notifier struct {
	evaluator  ConditionEvaluator
	dispatcher Dispatcher
	publisher  EventPublisher
	recorder   Recorder
	logger     logger.Logger
	debounce   time.Duration
	hostname   string
	nowFn      func() time.Time

	debounceState DebounceState
}

// Option customises a Notifier.
type Option func(*Notifier)

// WithClock sets the time source used for debouncing.
func WithClock(now func() time.Time) Option {
	return func(n *Notifier) { n.nowFn = now }
}

// WithPublisher mirrors events to an event bus.
func WithPublisher(p EventPublisher) Option {
	return func(n *Notifier) { n.publisher = p }
}

// WithRecorder records event and decision counters.
func WithRecorder(r Recorder) Option {
	return func(n *Notifier) { n.recorder = r }
}

// WithHostname overrides the hostname attached to published events.
func WithHostname(name string) Option {
	return func(n *Notifier) { n.hostname = name }
}

// New creates a Notifier in StateIdle.
func New(evaluator ConditionEvaluator, dispatcher Dispatcher, debounce time.Duration, log logger.Logger,
	opts ...Option) *Notifier {
	hostname, _ := os.Hostname()

	n := &Notifier{
		evaluator:  evaluator,
		dispatcher: dispatcher,
		logger:     log,
		debounce:   debounce,
		hostname:   hostname,
		nowFn:      time.Now,
	}

	for _, opt := range opts {
		opt(n)
	}

	return n
}

// State reports whether an ON event arriving now would be debounced.
func (n *Notifier) State() State {
	if n.suppressed(n.nowFn()) {
		return StateSuppressed
	}

	return StateIdle
}

// DebounceState returns a copy of the current debounce record.
func (n *Notifier) DebounceState() DebounceState {
	return n.debounceState
}

func (n *Notifier) suppressed(now time.Time) bool {
	return n.debounceState.Set && now.Sub(n.debounceState.LastNotifiedAt) < n.debounce
}

// Handle processes a single camera event.
func (n *Notifier) Handle(ctx context.Context, evt models.CameraEvent) Decision {
	if n.recorder != nil {
		n.recorder.EventReceived(evt.State)
	}

	decision := n.handle(ctx, evt)

	if n.recorder != nil {
		n.recorder.DecisionMade(string(decision))
	}

	return decision
}

func (n *Notifier) handle(ctx context.Context, evt models.CameraEvent) Decision {
	if evt.State != models.CameraOn {
		n.logger.Debug().Str("state", string(evt.State)).Msg("Camera off")
		n.publish(ctx, evt, DecisionIgnored, nil)

		return DecisionIgnored
	}

	now := n.nowFn()

	if n.suppressed(now) {
		n.logger.Debug().
			Time("last_notified_at", n.debounceState.LastNotifiedAt).
			Dur("debounce", n.debounce).
			Msg("Camera on debounced")

		return DecisionDebounced
	}

	res := n.evaluator.Evaluate(ctx)

	n.logger.Info().
		Bool("home_network", res.OnHomeNetwork).
		Bool("external_monitor", res.ExternalMonitor).
		Strs("ip_addresses", res.IPAddresses).
		Bool("conditions_met", res.Pass()).
		Msgf("Camera on | home network: %t | external monitor: %t", res.OnHomeNetwork, res.ExternalMonitor)

	if !res.Pass() {
		n.logger.Info().
			Bool("home_network_pass", res.HomeNetworkPass).
			Bool("external_monitor_pass", res.ExternalMonitorPass).
			Msg("Conditions not met, skipping notification")
		n.publish(ctx, evt, DecisionRejected, &res)

		return DecisionRejected
	}

	payload := models.NewWebhookPayload(res.OnHomeNetwork, res.IPAddresses, res.ExternalMonitor)
	err := n.dispatcher.Send(ctx, payload)

	// The window advances whether or not the POST succeeded.
	n.debounceState = DebounceState{LastNotifiedAt: now, Set: true}

	decision := DecisionDispatched
	if err != nil {
		n.logger.Error().Err(err).Msg("Failed to send webhook")

		decision = DecisionDispatchFailed
	}

	n.publish(ctx, evt, decision, &res)

	return decision
}

func (n *Notifier) publish(ctx context.Context, evt models.CameraEvent, decision Decision, res *conditions.Result) {
	if n.publisher == nil {
		return
	}

	data := &models.CameraEventData{
		State:     evt.State,
		Timestamp: evt.Timestamp,
		Hostname:  n.hostname,
		Decision:  string(decision),
	}

	if res != nil {
		home, external := res.OnHomeNetwork, res.ExternalMonitor
		data.HomeNetwork = &home
		data.External = &external
		data.IPAddresses = res.IPAddresses
	}

	if err := n.publisher.PublishCameraEvent(ctx, data); err != nil {
		n.logger.Warn().Err(err).Str("state", string(evt.State)).Msg("Failed to publish camera event")
	}
}
