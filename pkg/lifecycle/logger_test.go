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

package lifecycle

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carverauto/webcam-light/pkg/logger"
)

func TestCreateComponentLogger(t *testing.T) {
	t.Parallel()

	log, err := CreateComponentLogger(context.Background(), "monitor", &logger.Config{Level: "warn", Output: "stderr"})
	require.NoError(t, err)
	require.NotNil(t, log)

	impl, ok := log.(*LoggerImpl)
	require.True(t, ok)
	assert.Equal(t, zerolog.WarnLevel, impl.logger.GetLevel())

	impl.SetDebug(true)
	assert.Equal(t, zerolog.DebugLevel, impl.logger.GetLevel())
}

func TestCreateComponentLoggerInvalidLevel(t *testing.T) {
	t.Parallel()

	_, err := CreateComponentLogger(context.Background(), "monitor", &logger.Config{Level: "shouty"})
	require.Error(t, err)
}

func TestComponentChildLogger(t *testing.T) {
	t.Parallel()

	parent, err := NewLoggerImpl(context.Background(), &logger.Config{Level: "info", Output: "stdout"})
	require.NoError(t, err)

	child := parent.Component("webhook")
	assert.NotNil(t, child)
	assert.Implements(t, (*logger.Logger)(nil), child)
}
