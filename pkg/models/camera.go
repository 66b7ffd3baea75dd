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

import "time"

// CameraState is the activation state reported by the camera subsystem.
type CameraState string

const (
	CameraOn  CameraState = "on"
	CameraOff CameraState = "off"
)

// CameraEvent is a single classified camera state transition.
type CameraEvent struct {
	Timestamp time.Time   `json:"timestamp"`
	State     CameraState `json:"state"`
}

// WebhookPayload is the body POSTed to the automation webhook when the camera turns on.
type WebhookPayload struct {
	State           CameraState `json:"state"`
	HomeNetwork     bool        `json:"home_network"`
	IPAddresses     []string    `json:"ip_addresses"`
	ExternalMonitor bool        `json:"external_monitor"`
}

// NewWebhookPayload builds an "on" payload. IPAddresses is never nil so it
// serializes as an empty array rather than null.
func NewWebhookPayload(homeNetwork bool, ips []string, externalMonitor bool) WebhookPayload {
	addrs := make([]string, len(ips))
	copy(addrs, ips)

	return WebhookPayload{
		State:           CameraOn,
		HomeNetwork:     homeNetwork,
		IPAddresses:     addrs,
		ExternalMonitor: externalMonitor,
	}
}

// CameraEventData is the data section of a camera CloudEvent.
type CameraEventData struct {
	State       CameraState `json:"state"`
	Timestamp   time.Time   `json:"timestamp"`
	Hostname    string      `json:"hostname"`
	Decision    string      `json:"decision"`
	HomeNetwork *bool       `json:"home_network,omitempty"`
	External    *bool       `json:"external_monitor,omitempty"`
	IPAddresses []string    `json:"ip_addresses,omitempty"`
}
