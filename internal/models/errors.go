package models

import "errors"

// Business-rule violations surfaced to the end user. None are transient, so
// there is no retry path; handlers render them as an apology page.
var (
	ErrNotFound           = errors.New("not found")
	ErrUsernameTaken      = errors.New("username already taken")
	ErrInvalidCredentials = errors.New("invalid username and/or password")
	ErrUnknownSymbol      = errors.New("unknown symbol")
	ErrNoHolding          = errors.New("no holding in symbol")
	ErrInsufficientFunds  = errors.New("insufficient funds")
	ErrInsufficientShares = errors.New("insufficient shares")
)

// ValidationError carries the user-facing message for malformed input.
type ValidationError string

func (e ValidationError) Error() string { return string(e) }
