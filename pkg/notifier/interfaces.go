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

package notifier

//go:generate mockgen -destination=mock_notifier.go -package=notifier github.com/carverauto/webcam-light/pkg/notifier ConditionEvaluator,Dispatcher,EventPublisher,Recorder

import (
	"context"

	"github.com/carverauto/webcam-light/pkg/conditions"
	"github.com/carverauto/webcam-light/pkg/models"
)

// ConditionEvaluator checks whether a notification may be sent.
type ConditionEvaluator interface {
	Evaluate(ctx context.Context) conditions.Result
}

// Dispatcher delivers the webhook payload.
type Dispatcher interface {
	Send(ctx context.Context, payload models.WebhookPayload) error
}

// EventPublisher mirrors handled camera events onto an event bus.
type EventPublisher interface {
	PublishCameraEvent(ctx context.Context, data *models.CameraEventData) error
}

// Recorder receives counters for every handled event.
type Recorder interface {
	EventReceived(state models.CameraState)
	DecisionMade(decision string)
}
