package domain

import "errors"

// ErrProductNotFound is returned by catalog lookups for unknown product ids.
var ErrProductNotFound = errors.New("product not found")
