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

package monitor

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/carverauto/webcam-light/pkg/camera"
	"github.com/carverauto/webcam-light/pkg/logger"
	"github.com/carverauto/webcam-light/pkg/models"
	"github.com/carverauto/webcam-light/pkg/notifier"
)

var errPermission = errors.New("log: permission denied")

type recordingHandler struct {
	events []models.CameraEvent
}

func (h *recordingHandler) Handle(_ context.Context, evt models.CameraEvent) notifier.Decision {
	h.events = append(h.events, evt)

	return notifier.DecisionIgnored
}

type countingRecorder struct {
	restarts int
}

func (r *countingRecorder) StreamRestarted() { r.restarts++ }

func streamErr() error {
	return fmt.Errorf("%w: /usr/bin/log closed its output", camera.ErrStream)
}

func fastSettings(maxRestarts int) Settings {
	return Settings{
		RestartStream:   true,
		MaxRestarts:     maxRestarts,
		InitialInterval: time.Millisecond,
		MaxInterval:     5 * time.Millisecond,
		StableAfter:     time.Hour,
	}
}

func TestRunForwardsEventsToHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	source := camera.NewMockEventSource(ctrl)
	handler := &recordingHandler{}

	source.EXPECT().Stream(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, handle func(models.CameraEvent)) error {
			handle(models.CameraEvent{State: models.CameraOn})
			handle(models.CameraEvent{State: models.CameraOff})

			return nil
		})

	m := New(source, handler, Settings{}, logger.NewTestLogger())

	require.NoError(t, m.Run(context.Background()))
	require.Len(t, handler.events, 2)
	assert.Equal(t, models.CameraOn, handler.events[0].State)
	assert.Equal(t, models.CameraOff, handler.events[1].State)
}

func TestRunWithoutRestartReturnsStreamError(t *testing.T) {
	ctrl := gomock.NewController(t)
	source := camera.NewMockEventSource(ctrl)

	source.EXPECT().Stream(gomock.Any(), gomock.Any()).Return(streamErr()).Times(1)

	m := New(source, &recordingHandler{}, Settings{}, logger.NewTestLogger())

	require.ErrorIs(t, m.Run(context.Background()), camera.ErrStream)
}

func TestRunRestartsUntilStreamStops(t *testing.T) {
	ctrl := gomock.NewController(t)
	source := camera.NewMockEventSource(ctrl)
	recorder := &countingRecorder{}

	gomock.InOrder(
		source.EXPECT().Stream(gomock.Any(), gomock.Any()).Return(streamErr()),
		source.EXPECT().Stream(gomock.Any(), gomock.Any()).Return(streamErr()),
		source.EXPECT().Stream(gomock.Any(), gomock.Any()).Return(nil),
	)

	m := New(source, &recordingHandler{}, fastSettings(5), logger.NewTestLogger(), WithRestartRecorder(recorder))

	require.NoError(t, m.Run(context.Background()))
	assert.Equal(t, 2, recorder.restarts)
}

func TestRunGivesUpAfterMaxRestarts(t *testing.T) {
	ctrl := gomock.NewController(t)
	source := camera.NewMockEventSource(ctrl)

	source.EXPECT().Stream(gomock.Any(), gomock.Any()).Return(streamErr()).Times(3)

	m := New(source, &recordingHandler{}, fastSettings(2), logger.NewTestLogger())

	require.ErrorIs(t, m.Run(context.Background()), camera.ErrStream)
}

func TestRunDoesNotRestartOtherErrors(t *testing.T) {
	ctrl := gomock.NewController(t)
	source := camera.NewMockEventSource(ctrl)

	source.EXPECT().Stream(gomock.Any(), gomock.Any()).Return(errPermission).Times(1)

	m := New(source, &recordingHandler{}, fastSettings(5), logger.NewTestLogger())

	require.ErrorIs(t, m.Run(context.Background()), errPermission)
}

func TestRunStableFailureResetsBudget(t *testing.T) {
	ctrl := gomock.NewController(t)
	source := camera.NewMockEventSource(ctrl)
	recorder := &countingRecorder{}

	now := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	clock := func() time.Time { return now }

	settings := fastSettings(1)
	settings.StableAfter = time.Minute

	gomock.InOrder(
		source.EXPECT().Stream(gomock.Any(), gomock.Any()).
			DoAndReturn(func(context.Context, func(models.CameraEvent)) error {
				now = now.Add(2 * time.Minute)

				return streamErr()
			}),
		source.EXPECT().Stream(gomock.Any(), gomock.Any()).Return(streamErr()),
		source.EXPECT().Stream(gomock.Any(), gomock.Any()).Return(streamErr()),
	)

	m := New(source, &recordingHandler{}, settings, logger.NewTestLogger(),
		WithClock(clock), WithRestartRecorder(recorder))

	require.ErrorIs(t, m.Run(context.Background()), camera.ErrStream)
	assert.Equal(t, 2, recorder.restarts)
}

func TestRunCancelledDuringBackoff(t *testing.T) {
	ctrl := gomock.NewController(t)
	source := camera.NewMockEventSource(ctrl)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	source.EXPECT().Stream(gomock.Any(), gomock.Any()).
		DoAndReturn(func(context.Context, func(models.CameraEvent)) error {
			cancel()

			return streamErr()
		})

	settings := fastSettings(5)
	settings.InitialInterval = time.Hour
	settings.MaxInterval = time.Hour

	m := New(source, &recordingHandler{}, settings, logger.NewTestLogger())

	require.NoError(t, m.Run(ctx))
}
