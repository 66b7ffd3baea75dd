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

package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/carverauto/webcam-light/cmd/webcam-light/app"
	"github.com/carverauto/webcam-light/pkg/config"
	"github.com/carverauto/webcam-light/pkg/version"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("webcam-light failed: %v", err)
	}
}

func run() error {
	flags := config.RegisterFlags(flag.CommandLine)
	flag.Parse()

	if flags.ShowVersion {
		fmt.Println(version.GetFullVersion())

		return nil
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return app.Run(ctx, app.Options{
		Flags:   flags,
		FlagSet: flag.CommandLine,
	})
}
