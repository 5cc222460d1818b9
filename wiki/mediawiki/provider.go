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

package mediawiki

import (
	"log/slog"
	"net/http"

	"github.com/poiesic/wikiscope/wiki"
)

// Provider implements wiki.Provider against the MediaWiki Action API.
type Provider struct {
	config     *wiki.Config
	client     *client
	search     *SearchService
	summaries  *SummaryService
	categories *CategoryService
	logger     *slog.Logger
}

// Option configures a Provider.
type Option func(*providerOptions)

type providerOptions struct {
	httpClient *http.Client
	logger     *slog.Logger
}

// WithHTTPClient sets the HTTP client used for all requests.
// Default is a client with the configured timeout.
func WithHTTPClient(c *http.Client) Option {
	return func(o *providerOptions) {
		o.httpClient = c
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(o *providerOptions) {
		o.logger = logger
	}
}

// NewProvider creates a new MediaWiki provider.
// The config is validated and normalized before use.
//
// Returns wiki.Provider interface (not *Provider) so callers stay
// independent of the transport.
func NewProvider(config *wiki.Config, opts ...Option) (wiki.Provider, error) {
	if config == nil {
		config = wiki.DefaultConfig()
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}

	options := &providerOptions{}
	for _, opt := range opts {
		opt(options)
	}
	if options.logger == nil {
		options.logger = slog.Default()
	}
	logger := options.logger.With("component", "mediawiki-provider")

	c := newClient(config, options.httpClient, logger)
	return &Provider{
		config:     config,
		client:     c,
		search:     &SearchService{client: c},
		summaries:  &SummaryService{client: c},
		categories: &CategoryService{client: c},
		logger:     logger,
	}, nil
}

// Search returns the full text search service.
func (p *Provider) Search() wiki.SearchService {
	return p.search
}

// Summaries returns the article summary service.
func (p *Provider) Summaries() wiki.SummaryService {
	return p.summaries
}

// Categories returns the category lookup service.
func (p *Provider) Categories() wiki.CategoryService {
	return p.categories
}

// Close releases idle connections.
func (p *Provider) Close() error {
	p.logger.Debug("closing MediaWiki provider")
	p.client.http.CloseIdleConnections()
	return nil
}
