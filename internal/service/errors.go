package service

import "errors"

var (
	// ErrNotFound: unknown recommendation or confirmed trade id.
	ErrNotFound = errors.New("trade not found")
	// ErrAlreadyConfirmed: a confirmed trade with that id exists.
	ErrAlreadyConfirmed = errors.New("trade already confirmed")
	// ErrAlreadyClosed: re-close attempted while strict close is on.
	ErrAlreadyClosed = errors.New("trade already closed")
	// ErrInvalidOutcome: close outcome is not win, loss or neutral.
	ErrInvalidOutcome = errors.New("invalid outcome")
	// ErrInvalidSeed: the recommendation seed file is unusable.
	ErrInvalidSeed = errors.New("invalid recommendation seed")
)
