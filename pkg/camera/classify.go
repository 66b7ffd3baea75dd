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

package camera

import (
	"strings"

	"github.com/carverauto/webcam-light/pkg/models"
)

const (
	bannerPrefix = "Filtering the log data using"
	markerOn     = "running -> 1"
	markerOff    = "running -> 0"
)

// Classify maps a single log stream line to a camera state. The banner and
// any line without a running marker are reported as not relevant.
func Classify(line string) (models.CameraState, bool) {
	if strings.Contains(line, bannerPrefix) {
		return "", false
	}

	switch {
	case strings.Contains(line, markerOn):
		return models.CameraOn, true
	case strings.Contains(line, markerOff):
		return models.CameraOff, true
	default:
		return "", false
	}
}
