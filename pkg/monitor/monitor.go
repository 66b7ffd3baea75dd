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

// Package monitor drives the camera event stream into the notifier.
package monitor

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v5"

	"github.com/carverauto/webcam-light/pkg/camera"
	"github.com/carverauto/webcam-light/pkg/logger"
	"github.com/carverauto/webcam-light/pkg/models"
	"github.com/carverauto/webcam-light/pkg/notifier"
)

const (
	defaultInitialInterval = time.Second
	defaultMaxInterval     = 30 * time.Second
	defaultStableAfter     = time.Minute
)

var errStreamRecovered = errors.New("stream failed after running stably")

// EventHandler consumes camera events.
type EventHandler interface {
	Handle(ctx context.Context, evt models.CameraEvent) notifier.Decision
}

// RestartRecorder is told about every stream restart.
type RestartRecorder interface {
	StreamRestarted()
}

// Settings controls the restart policy.
type Settings struct {
	RestartStream   bool
	MaxRestarts     int
	InitialInterval time.Duration
	MaxInterval     time.Duration
	// StableAfter is how long a stream must run before a failure no longer
	// counts against MaxRestarts.
	StableAfter time.Duration
}

func (s *Settings) normalize() {
	if s.InitialInterval <= 0 {
		s.InitialInterval = defaultInitialInterval
	}

	if s.MaxInterval <= 0 {
		s.MaxInterval = defaultMaxInterval
	}

	if s.StableAfter <= 0 {
		s.StableAfter = defaultStableAfter
	}
}

// Monitor runs the single control loop: stream, classify, handle.
type Monitor struct {
	source   camera.EventSource
	handler  EventHandler
	settings Settings
	recorder RestartRecorder
	logger   logger.Logger
	nowFn    func() time.Time
}

// Option customises a Monitor.
type Option func(*Monitor)

// WithRestartRecorder records stream restarts.
func WithRestartRecorder(r RestartRecorder) Option {
	return func(m *Monitor) { m.recorder = r }
}

// WithClock sets the time source used to judge stream stability.
func WithClock(now func() time.Time) Option {
	return func(m *Monitor) { m.nowFn = now }
}

// New builds a Monitor.
func New(source camera.EventSource, handler EventHandler, settings Settings, log logger.Logger, opts ...Option) *Monitor {
	settings.normalize()

	m := &Monitor{
		source:   source,
		handler:  handler,
		settings: settings,
		logger:   log,
		nowFn:    time.Now,
	}

	for _, opt := range opts {
		opt(m)
	}

	return m
}

// Run blocks until ctx is cancelled (returning nil) or the stream fails for good.
func (m *Monitor) Run(ctx context.Context) error {
	handle := func(evt models.CameraEvent) {
		decision := m.handler.Handle(ctx, evt)

		m.logger.Debug().
			Str("state", string(evt.State)).
			Str("decision", string(decision)).
			Msg("Handled camera event")
	}

	if !m.settings.RestartStream {
		return m.source.Stream(ctx, handle)
	}

	for {
		err := m.runWithRestarts(ctx, handle)

		if ctx.Err() != nil {
			return nil
		}

		if !errors.Is(err, errStreamRecovered) {
			return err
		}

		m.restarted(err, 0)
	}
}

func (m *Monitor) runWithRestarts(ctx context.Context, handle func(models.CameraEvent)) error {
	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = m.settings.InitialInterval
	bo.MaxInterval = m.settings.MaxInterval

	operation := func() (struct{}, error) {
		started := m.nowFn()

		err := m.source.Stream(ctx, handle)
		if err == nil || ctx.Err() != nil {
			return struct{}{}, nil
		}

		if !errors.Is(err, camera.ErrStream) {
			return struct{}{}, backoff.Permanent(err)
		}

		if m.nowFn().Sub(started) >= m.settings.StableAfter {
			return struct{}{}, backoff.Permanent(fmt.Errorf("%w: %w", errStreamRecovered, err))
		}

		return struct{}{}, err
	}

	_, err := backoff.Retry(ctx, operation,
		backoff.WithBackOff(bo),
		backoff.WithMaxTries(uint(m.settings.MaxRestarts)+1),
		backoff.WithMaxElapsedTime(0),
		backoff.WithNotify(m.restarted),
	)

	return err
}

func (m *Monitor) restarted(err error, wait time.Duration) {
	m.logger.Warn().Err(err).Dur("retry_in", wait).Msg("Camera log stream terminated, restarting")

	if m.recorder != nil {
		m.recorder.StreamRestarted()
	}
}
