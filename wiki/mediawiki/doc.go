// Package mediawiki implements the wiki services against the MediaWiki
// Action API (api.php).
//
// All services of one provider share an HTTP client and a token bucket
// rate limiter. Transport errors, 429 and 5xx responses are retried with
// exponential backoff; other failures are returned immediately.
//
// Responses are requested with formatversion=2 and read with gjson, so
// only the fields wikiscope needs are ever decoded.
package mediawiki
