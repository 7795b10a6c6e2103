package domain

import "errors"

// ErrUnknownContentType indicates a catalog that is neither movies nor shows
var ErrUnknownContentType = errors.New("unknown content type")
