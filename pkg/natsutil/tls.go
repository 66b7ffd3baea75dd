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

package natsutil

import (
	"crypto/tls"
	"crypto/x509"
	"errors"
	"fmt"
	"os"

	"github.com/carverauto/webcam-light/pkg/models"
)

var (
	// ErrTLSConfigRequired is returned when TLS is requested without any material.
	ErrTLSConfigRequired = errors.New("tls configuration required")
	// ErrCAParsingFailed is returned when CA certificate cannot be parsed
	ErrCAParsingFailed = errors.New("failed to parse CA certificate")
)

// TLSConfig builds a tls.Config for connecting to NATS. The client
// certificate is optional; a CA file replaces the system roots.
func TLSConfig(sec *models.TLSConfig) (*tls.Config, error) {
	if sec == nil {
		return nil, ErrTLSConfigRequired
	}

	conf := &tls.Config{MinVersion: tls.VersionTLS12}

	if sec.CertFile != "" || sec.KeyFile != "" {
		cert, err := tls.LoadX509KeyPair(sec.CertFile, sec.KeyFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load client certificate: %w", err)
		}

		conf.Certificates = []tls.Certificate{cert}
	}

	if sec.CAFile != "" {
		caCert, err := os.ReadFile(sec.CAFile)
		if err != nil {
			return nil, fmt.Errorf("failed to read CA certificate: %w", err)
		}

		caPool := x509.NewCertPool()
		if !caPool.AppendCertsFromPEM(caCert) {
			return nil, ErrCAParsingFailed
		}

		conf.RootCAs = caPool
	}

	return conf, nil
}
