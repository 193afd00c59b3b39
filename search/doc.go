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

// Package search provides relevance search over rights and template entries.
//
// Matching is a case-insensitive substring test of the trimmed query against
// each entry's fields. Every matched field adds a fixed weight:
//
//	title                    10
//	any tag (counted once)    7
//	category (templates)      6
//	summary (rights)          5
//	body / detailed content   2
//
// Rights entries are listed before templates, the combined list is stably
// sorted by descending score and the top MaxResults are kept. Ranking is pure
// and never fails.
//
// When a TextGenerator is configured, each non-empty search also requests a
// short educational advisory. A failed advisory is logged and reported as the
// empty string; the results are unaffected.
//
// Session wraps a Searcher with the mutable state of an interactive view:
// results are replaced synchronously and the advisory arrives later from a
// worker pool.
package search
