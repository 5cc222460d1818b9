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

// Package graph builds relationship graphs over search results.
//
// A Builder fetches the categories of up to 250 result titles in
// sequential batches of 50, scores every pair of articles, and selects
// the ten strongest articles for drawing:
//
//	strength(a, b) = |shared categories| + 2 * |shared title words|
//
// Title words are lowercased whitespace tokens longer than three runes.
// Both sides are compared as sets, so strength is symmetric and the node
// totals do not depend on pair order. An edge exists only when its
// strength is positive.
//
// The complete node and edge sets go into a core.AnalysisSnapshot; only
// the visual subset gets canvas positions, on a circle around the canvas
// center. A RenderPlan carries the drawing instructions and WriteSVG
// renders it.
//
// An Analyzer wraps a Builder and stores successful snapshots. Starting a
// run cancels the run in flight; a run that has been superseded returns
// ErrSuperseded and never overwrites a newer snapshot.
package graph
