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

package config

import (
	"net/url"
	"strings"
)

const redactedMarker = "REDACTED"

// RedactURL hides the final path segment of a webhook URL, which carries the
// webhook secret, along with any userinfo and query string.
func RedactURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return redactedMarker
	}

	u.User = nil
	u.RawQuery = ""
	u.Fragment = ""

	path := strings.TrimSuffix(u.Path, "/")
	if idx := strings.LastIndex(path, "/"); idx >= 0 && idx < len(path)-1 {
		u.Path = path[:idx+1] + redactedMarker
	}

	return u.String()
}

// Redacted returns a copy of c that is safe to log.
func (c *Config) Redacted() Config {
	out := *c
	out.WebhookURL = RedactURL(c.WebhookURL)

	if c.Logging != nil {
		logging := *c.Logging
		if len(logging.OTel.Headers) > 0 {
			headers := make(map[string]string, len(logging.OTel.Headers))
			for k := range logging.OTel.Headers {
				headers[k] = redactedMarker
			}

			logging.OTel.Headers = headers
		}

		out.Logging = &logging
	}

	if c.NATS != nil {
		natsCfg := *c.NATS
		if natsCfg.URL != "" {
			if u, err := url.Parse(natsCfg.URL); err == nil && u.User != nil {
				u.User = url.User(redactedMarker)
				natsCfg.URL = u.String()
			}
		}

		out.NATS = &natsCfg
	}

	return out
}
