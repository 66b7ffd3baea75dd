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
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/carverauto/webcam-light/pkg/logger"
)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)}
}

func defaultSettings() Settings {
	return Settings{
		HomeIPPrefix:           "192.168.137.",
		RequireHomeNetwork:     true,
		RequireExternalMonitor: true,
		DisplaysCacheTTL:       15 * time.Second,
	}
}

func TestEvaluatePassesOnHomeWithExternalDisplay(t *testing.T) {
	ctrl := gomock.NewController(t)

	network := NewMockNetworkProbe(ctrl)
	display := NewMockDisplayProbe(ctrl)

	network.EXPECT().IPv4Addresses(gomock.Any()).Return([]string{"10.0.0.2", "192.168.137.50"}, nil)
	display.EXPECT().HasExternalDisplay(gomock.Any()).Return(true, nil)

	e := NewEvaluator(defaultSettings(), network, display, logger.NewTestLogger())

	res := e.Evaluate(context.Background())

	assert.True(t, res.Pass())
	assert.True(t, res.OnHomeNetwork)
	assert.True(t, res.ExternalMonitor)
	assert.Equal(t, []string{"10.0.0.2", "192.168.137.50"}, res.IPAddresses)
}

func TestEvaluateRejectsForeignNetwork(t *testing.T) {
	ctrl := gomock.NewController(t)

	network := NewMockNetworkProbe(ctrl)
	display := NewMockDisplayProbe(ctrl)

	network.EXPECT().IPv4Addresses(gomock.Any()).Return([]string{"10.0.0.5"}, nil)
	display.EXPECT().HasExternalDisplay(gomock.Any()).Return(true, nil)

	res := NewEvaluator(defaultSettings(), network, display, logger.NewTestLogger()).Evaluate(context.Background())

	assert.False(t, res.Pass())
	assert.False(t, res.HomeNetworkPass)
	assert.True(t, res.ExternalMonitorPass)
	assert.Equal(t, []string{"10.0.0.5"}, res.IPAddresses)
}

func TestEvaluateDisabledChecksAlwaysPass(t *testing.T) {
	ctrl := gomock.NewController(t)

	network := NewMockNetworkProbe(ctrl)
	display := NewMockDisplayProbe(ctrl)

	network.EXPECT().IPv4Addresses(gomock.Any()).Return(nil, nil)
	display.EXPECT().HasExternalDisplay(gomock.Any()).Return(false, nil)

	settings := defaultSettings()
	settings.RequireHomeNetwork = false
	settings.RequireExternalMonitor = false

	res := NewEvaluator(settings, network, display, logger.NewTestLogger()).Evaluate(context.Background())

	assert.True(t, res.Pass())
	assert.False(t, res.OnHomeNetwork)
	assert.False(t, res.ExternalMonitor)
	assert.NotNil(t, res.IPAddresses)
	assert.Empty(t, res.IPAddresses)
}

func TestEvaluateDisplayCacheTTL(t *testing.T) {
	ctrl := gomock.NewController(t)
	clock := newFakeClock()

	network := NewMockNetworkProbe(ctrl)
	display := NewMockDisplayProbe(ctrl)

	network.EXPECT().IPv4Addresses(gomock.Any()).Return([]string{"192.168.137.50"}, nil).Times(4)

	gomock.InOrder(
		display.EXPECT().HasExternalDisplay(gomock.Any()).Return(true, nil),
		display.EXPECT().HasExternalDisplay(gomock.Any()).Return(false, nil),
	)

	e := NewEvaluator(defaultSettings(), network, display, logger.NewTestLogger(), WithClock(clock.Now))

	require.True(t, e.Evaluate(context.Background()).ExternalMonitor)

	clock.Advance(10 * time.Second)
	require.True(t, e.Evaluate(context.Background()).ExternalMonitor, "served from cache")

	clock.Advance(5 * time.Second)
	require.True(t, e.Evaluate(context.Background()).ExternalMonitor, "entry is live at exactly the expiry instant")

	clock.Advance(time.Millisecond)
	require.False(t, e.Evaluate(context.Background()).ExternalMonitor, "expired entry is refreshed")
}

func TestEvaluateDisplayTimeoutIsCachedAsFalse(t *testing.T) {
	ctrl := gomock.NewController(t)
	clock := newFakeClock()

	network := NewMockNetworkProbe(ctrl)
	display := NewMockDisplayProbe(ctrl)
	recorder := NewMockFailureRecorder(ctrl)

	network.EXPECT().IPv4Addresses(gomock.Any()).Return([]string{"192.168.137.50"}, nil).AnyTimes()
	display.EXPECT().HasExternalDisplay(gomock.Any()).Return(false, ErrDetectionTimeout).Times(2)
	recorder.EXPECT().DetectionFailed(probeDisplay).Times(2)

	e := NewEvaluator(defaultSettings(), network, display, logger.NewTestLogger(),
		WithClock(clock.Now), WithFailureRecorder(recorder))

	for i := 0; i < 3; i++ {
		res := e.Evaluate(context.Background())
		assert.False(t, res.Pass())
		assert.False(t, res.ExternalMonitor)

		clock.Advance(5 * time.Second)
	}

	// 15s elapsed; one more step crosses the TTL.
	clock.Advance(time.Second)

	res := e.Evaluate(context.Background())
	assert.False(t, res.ExternalMonitorPass)
}

func TestEvaluateNetworkFailureIsNotHome(t *testing.T) {
	ctrl := gomock.NewController(t)

	network := NewMockNetworkProbe(ctrl)
	display := NewMockDisplayProbe(ctrl)
	recorder := NewMockFailureRecorder(ctrl)

	network.EXPECT().IPv4Addresses(gomock.Any()).Return(nil, ErrDetectionFailed)
	display.EXPECT().HasExternalDisplay(gomock.Any()).Return(true, nil)
	recorder.EXPECT().DetectionFailed(probeNetwork)

	res := NewEvaluator(defaultSettings(), network, display, logger.NewTestLogger(),
		WithFailureRecorder(recorder)).Evaluate(context.Background())

	assert.False(t, res.HomeNetworkPass)
	assert.Equal(t, []string{}, res.IPAddresses)
}

func TestMatchesPrefix(t *testing.T) {
	t.Parallel()

	assert.True(t, matchesPrefix([]string{"10.0.0.1", "192.168.137.9"}, "192.168.137."))
	assert.False(t, matchesPrefix([]string{"192.168.13.7"}, "192.168.137."))
	assert.False(t, matchesPrefix(nil, "192.168.137."))
}
