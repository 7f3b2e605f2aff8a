package types

import "errors"

var (
	ErrNotFound          = errors.New("not found")
	ErrUnknownCity       = errors.New("city does not exist")
	ErrLookupUnavailable = errors.New("city lookup unavailable")
)
