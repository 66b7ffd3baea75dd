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

// Package app wires configuration, logging and the camera monitor together.
package app

import (
	"context"
	"errors"
	"flag"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/carverauto/webcam-light/pkg/camera"
	"github.com/carverauto/webcam-light/pkg/conditions"
	"github.com/carverauto/webcam-light/pkg/config"
	"github.com/carverauto/webcam-light/pkg/lifecycle"
	"github.com/carverauto/webcam-light/pkg/logger"
	"github.com/carverauto/webcam-light/pkg/metrics"
	"github.com/carverauto/webcam-light/pkg/monitor"
	"github.com/carverauto/webcam-light/pkg/natsutil"
	"github.com/carverauto/webcam-light/pkg/notifier"
	"github.com/carverauto/webcam-light/pkg/version"
	"github.com/carverauto/webcam-light/pkg/webhook"
)

// Options contains runtime configuration derived from CLI flags.
type Options struct {
	Flags   *config.Flags
	FlagSet *flag.FlagSet

	// source replaces the unified log stream in tests.
	source camera.EventSource
}

// Run loads configuration and blocks until ctx is cancelled or the camera
// stream fails for good.
func Run(ctx context.Context, opts Options) error {
	cfg, err := loadConfig(ctx, opts)
	if err != nil {
		return err
	}

	base, err := lifecycle.NewLoggerImpl(ctx, cfg.Logging)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}

	defer func() { _ = lifecycle.ShutdownLogger() }()

	mainLogger := base.Component("webcam-light")
	mainLogger.Info().
		Str("version", version.GetFullVersion()).
		Str("webhook_url", config.RedactURL(cfg.WebhookURL)).
		Str("home_ip_prefix", cfg.HomeIPPrefix).
		Bool("require_home_network", cfg.RequireHomeNetwork).
		Bool("require_external_monitor", cfg.RequireExternalMonitor).
		Dur("debounce", cfg.Debounce()).
		Msg("Starting webcam-light")
	mainLogger.Debug().Interface("config", cfg.Redacted()).Msg("Effective configuration")

	return runAgent(ctx, cfg, base, opts.source)
}

func loadConfig(ctx context.Context, opts Options) (*config.Config, error) {
	bootCfg := logger.DefaultConfig()
	bootCfg.OTel.Enabled = false

	bootLogger, err := lifecycle.CreateComponentLogger(ctx, "config", bootCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create bootstrap logger: %w", err)
	}

	configPath := ""
	if opts.Flags != nil {
		configPath = opts.Flags.ConfigPath
	}

	cfg, err := config.NewLoader(bootLogger).Load(ctx, configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if opts.Flags != nil && opts.FlagSet != nil {
		if err := opts.Flags.Apply(opts.FlagSet, cfg); err != nil {
			return nil, err
		}
	}

	cfg.Normalize()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

func runAgent(ctx context.Context, cfg *config.Config, base *lifecycle.LoggerImpl, source camera.EventSource) error {
	collector := metrics.NewCollector()

	evaluator := conditions.NewEvaluator(
		conditions.Settings{
			HomeIPPrefix:           cfg.HomeIPPrefix,
			RequireHomeNetwork:     cfg.RequireHomeNetwork,
			RequireExternalMonitor: cfg.RequireExternalMonitor,
			DisplaysCacheTTL:       cfg.DisplaysCacheTTL(),
		},
		conditions.NewInterfaceProbe(cfg.CommandTimeoutDuration()),
		conditions.NewSystemProfilerProbe(cfg.DetectMonitorTimeoutDuration()),
		base.Component("conditions"),
		conditions.WithFailureRecorder(collector),
	)

	dispatcher := webhook.NewDispatcher(cfg.WebhookURL, cfg.HTTPTimeoutDuration(), base.Component("webhook"))

	notifierOpts := []notifier.Option{notifier.WithRecorder(collector)}

	if cfg.NATS.Enabled() {
		natsLogger := base.Component("nats")

		publisher, nc, err := natsutil.ConnectWithEventPublisher(ctx, cfg.NATS, natsLogger)
		if err != nil {
			return fmt.Errorf("failed to set up NATS publisher: %w", err)
		}

		defer nc.Close()

		notifierOpts = append(notifierOpts, notifier.WithPublisher(publisher))
	}

	n := notifier.New(evaluator, dispatcher, cfg.Debounce(), base.Component("notifier"), notifierOpts...)

	if source == nil {
		source = camera.NewLogStreamSource(base.Component("camera"))
	}

	mon := monitor.New(source, n,
		monitor.Settings{
			RestartStream: cfg.RestartStream,
			MaxRestarts:   cfg.MaxStreamRestarts,
		},
		base.Component("monitor"),
		monitor.WithRestartRecorder(collector),
	)

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	g, gCtx := errgroup.WithContext(runCtx)

	g.Go(func() error {
		// Stop the metrics server once the monitor returns.
		defer cancel()

		return mon.Run(gCtx)
	})

	if cfg.MetricsAddr != "" {
		server := metrics.NewServer(cfg.MetricsAddr, collector, base.Component("metrics"))

		g.Go(func() error {
			return server.Run(gCtx)
		})
	}

	err := g.Wait()
	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}

	return nil
}
