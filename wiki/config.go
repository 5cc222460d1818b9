// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package wiki

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// DefaultAPIURL is the Action API endpoint template. %s is replaced by
// the language code.
const DefaultAPIURL = "https://%s.wikipedia.org/w/api.php"

// DefaultUserAgent identifies wikiscope to the API operators.
const DefaultUserAgent = "wikiscope/1.0 (https://github.com/poiesic/wikiscope)"

// Config holds configuration for MediaWiki service providers.
type Config struct {
	// APIURL is the Action API endpoint. A single %s verb, if present, is
	// replaced by the language code of each request.
	// Example: "https://%s.wikipedia.org/w/api.php"
	APIURL string

	// UserAgent is sent with every request, as required by the API etiquette.
	UserAgent string

	// Timeout bounds a single HTTP request.
	// Default: 30s
	Timeout time.Duration

	// RequestsPerSecond limits the request rate across all services.
	// Default: 5
	RequestsPerSecond float64

	// Burst is the number of requests allowed above the steady rate.
	// Default: 1
	Burst int

	// MaxRetries is the number of attempts for transient failures.
	// Default: 3
	MaxRetries int

	// RetryDelay is the delay before the first retry; it doubles each time.
	// Default: 500ms
	RetryDelay time.Duration

	// SearchLimit is the number of search results requested when the
	// caller does not specify one.
	// Default: 50
	SearchLimit int
}

// ConfigOption is a functional option for configuring a Config.
type ConfigOption func(*Config)

// WithAPIURL sets the Action API endpoint template.
func WithAPIURL(url string) ConfigOption {
	return func(c *Config) {
		c.APIURL = url
	}
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(ua string) ConfigOption {
	return func(c *Config) {
		c.UserAgent = ua
	}
}

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) ConfigOption {
	return func(c *Config) {
		c.Timeout = d
	}
}

// WithRateLimit sets the steady request rate and burst size.
func WithRateLimit(perSecond float64, burst int) ConfigOption {
	return func(c *Config) {
		c.RequestsPerSecond = perSecond
		c.Burst = burst
	}
}

// WithRetries sets the attempt count and initial backoff delay.
func WithRetries(attempts int, delay time.Duration) ConfigOption {
	return func(c *Config) {
		c.MaxRetries = attempts
		c.RetryDelay = delay
	}
}

// WithSearchLimit sets the default number of search results.
func WithSearchLimit(limit int) ConfigOption {
	return func(c *Config) {
		c.SearchLimit = limit
	}
}

// DefaultConfig returns a Config targeting the public Wikipedia API.
func DefaultConfig() *Config {
	return &Config{
		APIURL:            DefaultAPIURL,
		UserAgent:         DefaultUserAgent,
		Timeout:           30 * time.Second,
		RequestsPerSecond: 5,
		Burst:             1,
		MaxRetries:        3,
		RetryDelay:        500 * time.Millisecond,
		SearchLimit:       50,
	}
}

// NewConfig creates a Config with the default values and applies the provided options.
//
// Example:
//
//	cfg := NewConfig(
//	    WithUserAgent("my-tool/0.1 (me@example.org)"),
//	    WithRateLimit(2, 1),
//	)
func NewConfig(opts ...ConfigOption) *Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// Normalize ensures the configuration is in a canonical form.
func (c *Config) Normalize() {
	c.APIURL = strings.TrimSpace(c.APIURL)
	c.APIURL = strings.TrimSuffix(c.APIURL, "/")
	c.UserAgent = strings.TrimSpace(c.UserAgent)
	if c.Burst < 1 {
		c.Burst = 1
	}
}

// EndpointFor returns the API endpoint for a language code.
func (c *Config) EndpointFor(lang string) string {
	if strings.Contains(c.APIURL, "%s") {
		return fmt.Sprintf(c.APIURL, lang)
	}
	return c.APIURL
}

// Validate checks that the configuration is valid and complete.
// It automatically normalizes the configuration before validation.
func (c *Config) Validate() error {
	c.Normalize()

	if c.APIURL == "" {
		return errors.New("wiki config: APIURL is required")
	}
	if strings.Count(c.APIURL, "%s") > 1 {
		return errors.New("wiki config: APIURL may only contain a single %s verb")
	}
	if c.UserAgent == "" {
		return errors.New("wiki config: UserAgent is required")
	}
	if c.Timeout <= 0 {
		return errors.New("wiki config: Timeout must be positive")
	}
	if c.RequestsPerSecond <= 0 {
		return errors.New("wiki config: RequestsPerSecond must be positive")
	}
	if c.MaxRetries < 1 {
		return errors.New("wiki config: MaxRetries must be at least 1")
	}
	if c.RetryDelay < 0 {
		return errors.New("wiki config: RetryDelay cannot be negative")
	}
	if c.SearchLimit < 1 || c.SearchLimit > 500 {
		return errors.New("wiki config: SearchLimit must be between 1 and 500")
	}
	return nil
}
