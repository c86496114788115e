package sources

import "errors"

// Sentinel kinds for source payload errors.
var (
	ErrInvalidPayload = errors.New("invalid source payload")
	ErrUnknownKind    = errors.New("unknown source kind")
	ErrUnknownItem    = errors.New("item not in catalog")
)
