package penalty

import "errors"

// Penalty domain errors
var (
	ErrPenaltyNotFound = errors.New("penalty entry not found")
	ErrAlreadyRemoved  = errors.New("penalty entry has already been removed")
)
