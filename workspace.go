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

package wikiscope

import (
	"context"
	"log/slog"
	"time"

	"github.com/poiesic/wikiscope/core"
	"github.com/poiesic/wikiscope/graph"
	"github.com/poiesic/wikiscope/i18n"
	"github.com/poiesic/wikiscope/query"
	"github.com/poiesic/wikiscope/search"
	"github.com/poiesic/wikiscope/storage"
	"github.com/poiesic/wikiscope/storage/badger"
	"github.com/poiesic/wikiscope/wiki"
	"github.com/poiesic/wikiscope/wiki/mediawiki"
)

// Workspace ties together the query history, the snapshot store, the
// wiki provider and the query compiler.
type Workspace struct {
	backend   *badger.Backend
	history   storage.HistoryRepository
	snapshots storage.SnapshotRepository
	provider  wiki.Provider
	compiler  *query.Compiler
	logger    *slog.Logger
}

// WorkspaceOption configures a Workspace.
type WorkspaceOption func(*workspaceOptions)

type workspaceOptions struct {
	wikiConfig *wiki.Config
	provider   wiki.Provider
	inMemory   bool
	logger     *slog.Logger
}

// WithWikiConfig sets the configuration of the MediaWiki provider.
// Default is wiki.DefaultConfig().
func WithWikiConfig(config *wiki.Config) WorkspaceOption {
	return func(o *workspaceOptions) {
		o.wikiConfig = config
	}
}

// WithProvider replaces the MediaWiki provider. The workspace takes
// ownership and closes it.
func WithProvider(provider wiki.Provider) WorkspaceOption {
	return func(o *workspaceOptions) {
		o.provider = provider
	}
}

// WithInMemory keeps all state in memory; the path is ignored.
func WithInMemory() WorkspaceOption {
	return func(o *workspaceOptions) {
		o.inMemory = true
	}
}

// WithLogger sets the logger handed to every component.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) WorkspaceOption {
	return func(o *workspaceOptions) {
		o.logger = logger
	}
}

// NewWorkspace opens the workspace stored in the directory filePath.
func NewWorkspace(filePath string, opts ...WorkspaceOption) (*Workspace, error) {
	options := &workspaceOptions{
		wikiConfig: wiki.DefaultConfig(),
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(options)
	}
	if options.logger == nil {
		options.logger = slog.Default()
	}

	backend, err := badger.OpenBackend(filePath, options.inMemory, badger.WithLogger(options.logger))
	if err != nil {
		return nil, err
	}

	provider := options.provider
	if provider == nil {
		provider, err = mediawiki.NewProvider(options.wikiConfig, mediawiki.WithLogger(options.logger))
		if err != nil {
			backend.Close()
			return nil, err
		}
	}

	return &Workspace{
		backend:   backend,
		history:   badger.NewHistoryRepository(backend),
		snapshots: badger.NewSnapshotRepository(backend),
		provider:  provider,
		compiler:  query.NewCompiler(query.WithLogger(options.logger)),
		logger:    options.logger,
	}, nil
}

func (w *Workspace) Close() error {
	if err := w.provider.Close(); err != nil {
		w.logger.Error("error closing wiki provider", "err", err)
	}

	if err := w.backend.Close(); err != nil {
		w.logger.Error("error closing backend storage", "err", err)
		return err
	}
	return nil
}

func (w *Workspace) History() storage.HistoryRepository {
	return w.history
}

func (w *Workspace) Snapshots() storage.SnapshotRepository {
	return w.snapshots
}

func (w *Workspace) Provider() wiki.Provider {
	return w.provider
}

// Compile compiles fs for the language edition lang.
func (w *Workspace) Compile(fs core.FieldSet, lang string) core.CompiledQuery {
	return w.compiler.Compile(fs, i18n.NewLocale(lang))
}

// Record adds a compiled query to the history, named after its browser
// form. Returns nil, nil for an empty query.
func (w *Workspace) Record(ctx context.Context, fs core.FieldSet, q core.CompiledQuery) (*core.HistoryEntry, error) {
	if q.IsEmpty() {
		return nil, nil
	}
	name := q.BrowserQuery
	if name == "" {
		name = q.APIQuery
	}
	entry := core.NewHistoryEntry(name, q.SearchURL(), q.Lang, fs, time.Now())
	return w.history.AddEntry(ctx, entry)
}

func (w *Workspace) NewSearcher(opts ...search.Option) (*search.Searcher, error) {
	opts = append([]search.Option{search.WithLogger(w.logger)}, opts...)
	return search.NewSearcher(w.provider, opts...)
}

// NewAnalyzer creates an analyzer storing into the workspace. Runs of the
// same analyzer supersede each other.
func (w *Workspace) NewAnalyzer(opts ...graph.Option) (*graph.Analyzer, error) {
	opts = append([]graph.Option{graph.WithLogger(w.logger)}, opts...)
	builder, err := graph.NewBuilder(w.provider.Categories(), opts...)
	if err != nil {
		return nil, err
	}
	return graph.NewAnalyzer(builder, w.snapshots, graph.WithAnalyzerLogger(w.logger))
}
