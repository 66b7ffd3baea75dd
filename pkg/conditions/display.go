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
	"encoding/json"
	"errors"
	"fmt"
	"os/exec"
	"regexp"
	"strings"
	"time"
)

const (
	defaultSystemProfiler = "/usr/sbin/system_profiler"

	connectionInternal = "spdisplays_internal"
	builtinYes         = "spdisplays_yes"
)

var (
	connectionTypeRe = regexp.MustCompile(`(?im)^\s*Connection Type:\s*(.+?)\s*$`)
	displayHeaderRe  = regexp.MustCompile(`(?m)^\s{8}.+:\s*$`)
)

// CommandRunner executes a command and returns its standard output.
type CommandRunner func(ctx context.Context, name string, args ...string) ([]byte, error)

func runCommand(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).Output()
}

// SystemProfilerProbe detects external displays with system_profiler.
type SystemProfilerProbe struct {
	binary  string
	timeout time.Duration
	run     CommandRunner
}

// NewSystemProfilerProbe returns a probe bounded by timeout.
func NewSystemProfilerProbe(timeout time.Duration) *SystemProfilerProbe {
	return &SystemProfilerProbe{
		binary:  defaultSystemProfiler,
		timeout: timeout,
		run:     runCommand,
	}
}

// HasExternalDisplay runs system_profiler and inspects the attached displays.
func (p *SystemProfilerProbe) HasExternalDisplay(ctx context.Context) (bool, error) {
	if p.timeout > 0 {
		var cancel context.CancelFunc

		ctx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}

	out, err := p.run(ctx, p.binary, "SPDisplaysDataType", "-json")
	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return false, fmt.Errorf("%w: %s after %s", ErrDetectionTimeout, p.binary, p.timeout)
		}

		return false, fmt.Errorf("%w: %s: %w", ErrDetectionFailed, p.binary, err)
	}

	return parseDisplays(out), nil
}

type spDisplaysReport struct {
	Displays []struct {
		Name    string            `json:"_name"`
		Screens []spDisplayScreen `json:"spdisplays_ndrvs"`
	} `json:"SPDisplaysDataType"`
}

type spDisplayScreen struct {
	Name           string `json:"_name"`
	ConnectionType string `json:"spdisplays_connection_type"`
	DisplayType    string `json:"spdisplays_display_type"`
	Builtin        string `json:"spdisplays_builtin"`
}

func (s *spDisplayScreen) internal() bool {
	return s.ConnectionType == connectionInternal ||
		s.Builtin == builtinYes ||
		strings.Contains(s.DisplayType, "built-in")
}

// parseDisplays accepts the JSON report and falls back to the plain text layout.
func parseDisplays(out []byte) bool {
	var report spDisplaysReport
	if err := json.Unmarshal(out, &report); err != nil {
		return parseDisplaysText(string(out))
	}

	for _, gpu := range report.Displays {
		for i := range gpu.Screens {
			if !gpu.Screens[i].internal() {
				return true
			}
		}
	}

	return false
}

func parseDisplaysText(out string) bool {
	for _, m := range connectionTypeRe.FindAllStringSubmatch(out, -1) {
		if !strings.EqualFold(strings.TrimSpace(m[1]), "internal") {
			return true
		}
	}

	return len(displayHeaderRe.FindAllString(out, -1)) >= 2
}
