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

// Package conditions evaluates the host preconditions that gate camera notifications.
package conditions

//go:generate mockgen -destination=mock_conditions.go -package=conditions github.com/carverauto/webcam-light/pkg/conditions NetworkProbe,DisplayProbe,FailureRecorder

import "context"

// NetworkProbe lists the IPv4 addresses currently assigned to the host.
type NetworkProbe interface {
	IPv4Addresses(ctx context.Context) ([]string, error)
}

// DisplayProbe reports whether a non built-in display is attached.
type DisplayProbe interface {
	HasExternalDisplay(ctx context.Context) (bool, error)
}

// FailureRecorder is notified whenever a probe fails.
type FailureRecorder interface {
	DetectionFailed(probe string)
}
