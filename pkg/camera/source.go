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

// Package camera turns the macOS unified log into a stream of camera state changes.
package camera

//go:generate mockgen -destination=mock_source.go -package=camera github.com/carverauto/webcam-light/pkg/camera EventSource

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"time"

	"github.com/carverauto/webcam-light/pkg/logger"
	"github.com/carverauto/webcam-light/pkg/models"
)

const (
	defaultLogBinary = "/usr/bin/log"

	// DefaultPredicate selects AVCaptureSession running transitions from the camera capture subsystem.
	DefaultPredicate = `subsystem == "com.apple.cameracapture" AND eventMessage CONTAINS "AVCaptureSession" AND ` +
		`(eventMessage CONTAINS "running -> 1" OR eventMessage CONTAINS "running -> 0")`

	maxLineSize      = 1024 * 1024
	processWaitDelay = 2 * time.Second
)

// EventSource produces camera events until the context is cancelled or the
// underlying stream fails.
type EventSource interface {
	Stream(ctx context.Context, handler func(models.CameraEvent)) error
}

// CommandFactory builds the subprocess used to read the log stream.
type CommandFactory func(ctx context.Context, name string, args ...string) *exec.Cmd

// LogStreamSource reads camera transitions from `log stream`.
type LogStreamSource struct {
	binary     string
	predicate  string
	newCommand CommandFactory
	now        func() time.Time
	logger     logger.Logger
}

// Option customises a LogStreamSource.
type Option func(*LogStreamSource)

// WithBinary overrides the path of the log binary.
func WithBinary(path string) Option {
	return func(s *LogStreamSource) { s.binary = path }
}

// WithPredicate overrides the log predicate.
func WithPredicate(predicate string) Option {
	return func(s *LogStreamSource) { s.predicate = predicate }
}

// WithCommandFactory replaces exec.CommandContext.
func WithCommandFactory(factory CommandFactory) Option {
	return func(s *LogStreamSource) { s.newCommand = factory }
}

// WithClock sets the function used to timestamp events.
func WithClock(now func() time.Time) Option {
	return func(s *LogStreamSource) { s.now = now }
}

// NewLogStreamSource constructs a source backed by the unified log.
func NewLogStreamSource(log logger.Logger, opts ...Option) *LogStreamSource {
	s := &LogStreamSource{
		binary:     defaultLogBinary,
		predicate:  DefaultPredicate,
		newCommand: exec.CommandContext,
		now:        time.Now,
		logger:     log,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

func (s *LogStreamSource) args() []string {
	return []string{"stream", "--style", "syslog", "--predicate", s.predicate}
}

// Stream runs the log subprocess and forwards every classified line to handler.
// It returns nil when ctx is cancelled and an error wrapping ErrStream when the
// subprocess ends on its own.
func (s *LogStreamSource) Stream(ctx context.Context, handler func(models.CameraEvent)) error {
	if handler == nil {
		return errHandlerNil
	}

	streamCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	cmd := s.newCommand(streamCtx, s.binary, s.args()...)
	cmd.WaitDelay = processWaitDelay

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return fmt.Errorf("%w: stdout pipe: %w", ErrStream, err)
	}

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("%w: start %s: %w", ErrStream, s.binary, err)
	}

	s.logger.Info().
		Str("binary", s.binary).
		Int("pid", cmd.Process.Pid).
		Msg("Monitoring camera log stream")

	scanErr := s.scan(streamCtx, stdout, handler)

	// Kill the process if it is still alive, then reap it.
	cancel()

	waitErr := cmd.Wait()

	if ctx.Err() != nil {
		s.logger.Debug().Msg("Camera log stream stopped")

		return nil
	}

	if scanErr != nil {
		return fmt.Errorf("%w: read: %w", ErrStream, scanErr)
	}

	if waitErr != nil && !errors.Is(waitErr, context.Canceled) {
		return fmt.Errorf("%w: %s exited: %w", ErrStream, s.binary, waitErr)
	}

	return fmt.Errorf("%w: %s closed its output", ErrStream, s.binary)
}

func (s *LogStreamSource) scan(ctx context.Context, r io.Reader, handler func(models.CameraEvent)) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	for scanner.Scan() {
		if ctx.Err() != nil {
			return nil
		}

		line := scanner.Text()

		state, ok := Classify(line)
		if !ok {
			continue
		}

		s.logger.Trace().Str("line", line).Str("state", string(state)).Msg("Camera transition")

		handler(models.CameraEvent{Timestamp: s.now(), State: state})
	}

	return scanner.Err()
}
