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

// Package search runs compiled queries against a wiki provider.
//
// The Searcher sends the API form of a core.CompiledQuery to the provider's
// search service and turns the ranked hits into core.ResultItem values with
// article URLs. Article summaries are fetched concurrently on a worker pool
// and written back by rank, so the item order always matches the search
// ranking.
//
// A failed search call does not return an error. It yields an empty Results
// with Failed set and the cause in Err, which keeps a failure
// distinguishable from a search that matched nothing. Only context
// cancellation is returned as an error. A summary that cannot be fetched is
// replaced by SummaryUnavailable.
package search
