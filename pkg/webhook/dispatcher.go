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

// Package webhook posts camera notifications to a Home Assistant webhook.
package webhook

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/carverauto/webcam-light/pkg/config"
	"github.com/carverauto/webcam-light/pkg/logger"
	"github.com/carverauto/webcam-light/pkg/models"
	"github.com/carverauto/webcam-light/pkg/version"
)

// Dispatcher sends a single JSON POST per notification. It never retries.
type Dispatcher struct {
	url      string
	redacted string
	client   *resty.Client
	logger   logger.Logger
}

// NewDispatcher builds a dispatcher for url with a per-request timeout.
func NewDispatcher(webhookURL string, timeout time.Duration, log logger.Logger) *Dispatcher {
	client := resty.New().
		SetTimeout(timeout).
		SetRetryCount(0).
		SetHeader("Content-Type", "application/json").
		SetHeader("User-Agent", version.UserAgent())

	return &Dispatcher{
		url:      webhookURL,
		redacted: config.RedactURL(webhookURL),
		client:   client,
		logger:   log,
	}
}

// Send posts payload and returns an error wrapping ErrDispatch on any failure.
func (d *Dispatcher) Send(ctx context.Context, payload models.WebhookPayload) error {
	start := time.Now()

	resp, err := d.client.R().
		SetContext(ctx).
		SetBody(payload).
		Post(d.url)
	if err != nil {
		return fmt.Errorf("%w: POST %s: %w", ErrDispatch, d.redacted, d.scrub(err))
	}

	if !resp.IsSuccess() {
		return fmt.Errorf("%w: POST %s: status %d", ErrDispatch, d.redacted, resp.StatusCode())
	}

	d.logger.Info().
		Str("url", d.redacted).
		Int("status", resp.StatusCode()).
		Dur("elapsed", time.Since(start)).
		Msg("Webhook sent successfully")

	return nil
}

// scrub replaces the webhook URL carried by transport errors.
func (d *Dispatcher) scrub(err error) error {
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		urlErr.URL = d.redacted
	}

	return err
}
