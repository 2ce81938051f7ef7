package errors

import (
	"errors"
)

// Business-rule errors returned by the authentication facade. The handler
// layer maps them to HTTP statuses; anything else is treated as a 500.
var (
	ErrPseudoAlreadyTaken         = errors.New("pseudo already taken")
	ErrEmailAlreadyTaken          = errors.New("email already taken")
	ErrPseudoAndEmailAlreadyTaken = errors.New("pseudo and email already taken")
	ErrUnknownUser                = errors.New("unknown user")
	ErrWrongPassword              = errors.New("wrong password")
	ErrAlreadyDisconnected        = errors.New("user already disconnected")
)

var (
	ErrInvalidToken = errors.New("invalid token")
)
