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

// Package query compiles a structured FieldSet into CirrusSearch query
// text.
//
// A compiled query has four parallel outputs:
//
//   - APIQuery: the full operator syntax sent to the search API
//   - BrowserQuery: a readable form holding only the free-text fields
//   - SearchParams: ordered Special:Search parameters, repeated keys allowed
//   - Explanation: one localized line per contributing field
//
// Fields are emitted in a fixed order regardless of which fields are set:
// main query, exact phrase, excluded words, any-words, incategory,
// deepcat, linksto, prefix, insource, hastemplate, filetype, filesize,
// dateafter/datebefore, namespaces.
//
// # File sizes
//
// filesize:>=N and filesize:<=N are added to the API query and to the
// search parameter of Special:Search. They are never added to the browser
// query, since the search page has no visible size operator.
//
// Compilation never fails. An empty FieldSet yields empty strings, no
// parameters and no explanation.
package query
