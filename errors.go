package watchlist

import "errors"

// Validation errors, returned by the pure price functions. During a sync
// they only mark the record as errored.
var (
	ErrInvalidInput   = errors.New("invalid input")
	ErrInvalidPrice   = errors.New("invalid price")
	ErrZeroEntryPrice = errors.New("entry price cannot be zero")
)

// ErrFetch marks a quote that could not be obtained or had no usable price.
var ErrFetch = errors.New("fetch error")

// Fatal errors, they abort a sync.
var (
	ErrPersistence    = errors.New("persistence error")
	ErrVersionControl = errors.New("version control error")
)
