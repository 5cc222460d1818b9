// Package wiki defines the remote collaborators used by wikiscope: full
// text search, article summaries and batched category lookups, together
// with the configuration shared by their implementations.
//
// The mediawiki subpackage talks to the MediaWiki Action API. The mock
// subpackage provides deterministic doubles for tests.
package wiki
