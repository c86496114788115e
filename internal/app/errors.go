package service

import "errors"

// Sentinel kinds for service errors.
var (
	ErrNotStarted  = errors.New("service not started")
	ErrNotEligible = errors.New("character not eligible for loot")
	ErrUnknownLoot = errors.New("loot was not evaluated")
)
