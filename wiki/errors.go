package wiki

import "errors"

var (
	// ErrNoSummary is returned when an article has no introduction extract.
	ErrNoSummary = errors.New("summary not available")

	// ErrTooManyTitles is returned when a category lookup exceeds MaxCategoryTitles.
	ErrTooManyTitles = errors.New("too many titles for one request")

	// ErrUnexpectedStatus is returned for a non-success HTTP status.
	ErrUnexpectedStatus = errors.New("unexpected response status")

	// ErrAPI is returned when the API reports an error in its response body.
	ErrAPI = errors.New("api error")
)
