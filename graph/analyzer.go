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

package graph

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/poiesic/wikiscope/core"
	"github.com/poiesic/wikiscope/i18n"
	"github.com/poiesic/wikiscope/storage"
)

// Analyzer runs graph builds and keeps the latest successful snapshot.
//
// Runs supersede each other: starting a run cancels the one in flight,
// and a run that is no longer the newest when it finishes returns
// ErrSuperseded without storing anything.
type Analyzer struct {
	builder   *Builder
	snapshots storage.SnapshotRepository
	logger    *slog.Logger

	mu         sync.Mutex
	generation uint64
	cancel     context.CancelFunc
}

// AnalyzerOption configures an Analyzer.
type AnalyzerOption func(*Analyzer)

// WithAnalyzerLogger sets a custom logger.
// Default is slog.Default().
func WithAnalyzerLogger(logger *slog.Logger) AnalyzerOption {
	return func(a *Analyzer) {
		if logger != nil {
			a.logger = logger
		}
	}
}

// NewAnalyzer creates an analyzer that stores snapshots in snapshots.
func NewAnalyzer(builder *Builder, snapshots storage.SnapshotRepository, opts ...AnalyzerOption) (*Analyzer, error) {
	if builder == nil {
		return nil, ErrBuilderRequired
	}
	if snapshots == nil {
		return nil, ErrSnapshotRepositoryRequired
	}
	a := &Analyzer{
		builder:   builder,
		snapshots: snapshots,
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a, nil
}

// Run builds a graph over items and stores its snapshot.
//
// An aborted run (no articles) returns its result and leaves the stored
// snapshot untouched, as does a failed one.
func (a *Analyzer) Run(ctx context.Context, sourceQuery string, items []core.ResultItem, loc i18n.Locale) (*Result, error) {
	runCtx, gen := a.begin(ctx)
	defer a.end(gen)

	result, err := a.builder.Build(runCtx, sourceQuery, items, loc)
	if a.superseded(gen) {
		a.logger.Debug("analysis superseded", "query", sourceQuery, "generation", gen)
		return nil, ErrSuperseded
	}
	if err != nil {
		return nil, err
	}
	if result.State != StateRendered {
		return result, nil
	}

	// holding the lock keeps a newer run from starting to store first
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.generation != gen {
		return nil, ErrSuperseded
	}
	if err := a.snapshots.SaveSnapshot(ctx, result.Snapshot); err != nil {
		return nil, fmt.Errorf("failed to store snapshot: %w", err)
	}
	return result, nil
}

// Cancel stops the run in flight, if any; that run returns ErrSuperseded.
func (a *Analyzer) Cancel() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.generation++
	if a.cancel != nil {
		a.cancel()
		a.cancel = nil
	}
}

// Latest returns the most recently stored snapshot, or nil.
func (a *Analyzer) Latest(ctx context.Context) (*core.AnalysisSnapshot, error) {
	return a.snapshots.LoadSnapshot(ctx)
}

func (a *Analyzer) begin(ctx context.Context) (context.Context, uint64) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.cancel != nil {
		a.cancel()
	}
	a.generation++
	runCtx, cancel := context.WithCancel(ctx)
	a.cancel = cancel
	return runCtx, a.generation
}

func (a *Analyzer) end(gen uint64) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.generation == gen && a.cancel != nil {
		a.cancel()
		a.cancel = nil
	}
}

func (a *Analyzer) superseded(gen uint64) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.generation != gen
}
