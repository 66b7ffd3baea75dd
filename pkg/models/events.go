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

package models

import (
	"errors"
	"time"
)

var errNATSURLRequired = errors.New("nats url is required")

const defaultEventsStream = "camera-events"

// NATSConfig configures the optional camera event publication to NATS JetStream.
type NATSConfig struct {
	URL    string     `json:"url"`
	Stream string     `json:"stream,omitempty"`
	TLS    *TLSConfig `json:"tls,omitempty"`
}

// TLSConfig holds client certificate material for NATS.
type TLSConfig struct {
	CertFile string `json:"cert_file"`
	KeyFile  string `json:"key_file"`
	CAFile   string `json:"ca_file,omitempty"`
}

// Enabled reports whether a NATS URL has been configured.
func (c *NATSConfig) Enabled() bool {
	return c != nil && c.URL != ""
}

// Validate ensures the NATS configuration is valid
func (c *NATSConfig) Validate() error {
	if c.URL == "" {
		return errNATSURLRequired
	}

	if c.Stream == "" {
		c.Stream = defaultEventsStream
	}

	return nil
}

// CloudEvent represents a CloudEvents v1.0 compliant event.
type CloudEvent struct {
	SpecVersion     string      `json:"specversion"`
	ID              string      `json:"id"`
	Source          string      `json:"source"`
	Type            string      `json:"type"`
	DataContentType string      `json:"datacontenttype"`
	Subject         string      `json:"subject,omitempty"`
	Time            *time.Time  `json:"time,omitempty"`
	Data            interface{} `json:"data,omitempty"`
}
