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

// Package natsutil publishes camera transitions to NATS JetStream as CloudEvents.
package natsutil

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"

	"github.com/carverauto/webcam-light/pkg/logger"
	"github.com/carverauto/webcam-light/pkg/models"
)

const (
	cameraSubjectPrefix = "camera.events"
	cameraEventSource   = "webcam-light"
	cameraEventType     = "com.carverauto.webcamlight.camera."

	connectTimeout = 5 * time.Second
)

var errNilEventData = errors.New("camera event data is nil")

// CameraSubject returns the subject camera events in the given state are published on.
func CameraSubject(state models.CameraState) string {
	return cameraSubjectPrefix + "." + string(state)
}

// EventPublisher provides methods for publishing CloudEvents to NATS JetStream.
type EventPublisher struct {
	js     jetstream.JetStream
	stream string
	logger logger.Logger
}

// NewEventPublisher creates a new EventPublisher for the specified stream.
func NewEventPublisher(js jetstream.JetStream, streamName string, log logger.Logger) *EventPublisher {
	return &EventPublisher{
		js:     js,
		stream: streamName,
		logger: log,
	}
}

// PublishCameraEvent wraps data in a CloudEvent and publishes it on camera.events.<state>.
func (p *EventPublisher) PublishCameraEvent(ctx context.Context, data *models.CameraEventData) error {
	if data == nil {
		return errNilEventData
	}

	ts := data.Timestamp
	if ts.IsZero() {
		ts = time.Now()
	}

	event := models.CloudEvent{
		SpecVersion:     "1.0",
		ID:              uuid.New().String(),
		Source:          cameraEventSource + "/" + data.Hostname,
		Type:            cameraEventType + string(data.State),
		DataContentType: "application/json",
		Subject:         CameraSubject(data.State),
		Time:            &ts,
		Data:            data,
	}

	eventBytes, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal camera event: %w", err)
	}

	ack, err := p.js.Publish(ctx, event.Subject, eventBytes)
	if err != nil {
		return fmt.Errorf("failed to publish camera event: %w", err)
	}

	p.logger.Debug().
		Str("event_id", event.ID).
		Str("subject", event.Subject).
		Uint64("seq", ack.Sequence).
		Msg("Published camera event")

	return nil
}

// Connect opens a NATS connection for cfg with logging handlers attached.
func Connect(cfg *models.NATSConfig, log logger.Logger, extraOpts ...nats.Option) (*nats.Conn, error) {
	opts := []nats.Option{
		nats.Name(cameraEventSource),
		nats.Timeout(connectTimeout),
	}

	if cfg.TLS != nil {
		tlsConf, err := TLSConfig(cfg.TLS)
		if err != nil {
			return nil, fmt.Errorf("failed to build NATS TLS config: %w", err)
		}

		opts = append(opts, nats.Secure(tlsConf))
	}

	opts = append(opts,
		nats.ErrorHandler(func(_ *nats.Conn, _ *nats.Subscription, err error) {
			log.Error().Err(err).Msg("NATS error")
		}),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			log.Warn().Err(err).Msg("NATS disconnected")
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			log.Info().Str("url", nc.ConnectedUrl()).Msg("NATS reconnected")
		}),
	)

	opts = append(opts, extraOpts...)

	nc, err := nats.Connect(cfg.URL, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}

	log.Info().Str("url", nc.ConnectedUrl()).Msg("Connected to NATS")

	return nc, nil
}

// ConnectWithEventPublisher creates a NATS connection with JetStream, makes
// sure the stream captures camera subjects and returns an EventPublisher.
func ConnectWithEventPublisher(ctx context.Context, cfg *models.NATSConfig, log logger.Logger,
	opts ...nats.Option) (*EventPublisher, *nats.Conn, error) {
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}

	nc, err := Connect(cfg, log, opts...)
	if err != nil {
		return nil, nil, err
	}

	js, err := jetstream.New(nc)
	if err != nil {
		nc.Close()

		return nil, nil, fmt.Errorf("failed to create JetStream context: %w", err)
	}

	if err := ensureStream(ctx, js, cfg.Stream, cameraSubjectPrefix+".*"); err != nil {
		nc.Close()

		return nil, nil, err
	}

	return NewEventPublisher(js, cfg.Stream, log), nc, nil
}

func ensureStream(ctx context.Context, js jetstream.JetStream, streamName, subject string) error {
	stream, err := js.Stream(ctx, streamName)
	if err != nil {
		if !isStreamMissingErr(err) {
			return fmt.Errorf("failed to look up stream %s: %w", streamName, err)
		}

		_, err = js.CreateStream(ctx, jetstream.StreamConfig{
			Name:     streamName,
			Subjects: []string{subject},
		})
		if err != nil {
			return fmt.Errorf("failed to create stream %s: %w", streamName, err)
		}

		return nil
	}

	streamCfg := stream.CachedInfo().Config

	subjects := ensureSubjectList(streamCfg.Subjects, subject)
	if len(subjects) == len(streamCfg.Subjects) {
		return nil
	}

	streamCfg.Subjects = subjects

	if _, err := js.UpdateStream(ctx, streamCfg); err != nil {
		return fmt.Errorf("failed to add %s to stream %s: %w", subject, streamName, err)
	}

	return nil
}

func isStreamMissingErr(err error) bool {
	return errors.Is(err, jetstream.ErrStreamNotFound) ||
		errors.Is(err, jetstream.ErrNoStreamResponse) ||
		errors.Is(err, nats.ErrStreamNotFound) ||
		errors.Is(err, nats.ErrNoStreamResponse) ||
		errors.Is(err, nats.ErrNoResponders)
}

// ensureSubjectList appends subject unless an existing pattern already covers it.
func ensureSubjectList(subjects []string, subject string) []string {
	for _, pattern := range subjects {
		if matchesSubject(pattern, subject) {
			return subjects
		}
	}

	return append(subjects, subject)
}

// matchesSubject reports whether pattern (which may use * and >) covers subject.
// A subject containing wildcards only matches an identical pattern token.
func matchesSubject(pattern, subject string) bool {
	pTokens := strings.Split(pattern, ".")
	sTokens := strings.Split(subject, ".")

	for i, p := range pTokens {
		if p == ">" {
			return i < len(sTokens)
		}

		if i >= len(sTokens) {
			return false
		}

		if p != "*" && p != sTokens[i] {
			return false
		}
	}

	return len(pTokens) == len(sTokens)
}
