package models

import "errors"

var (
	// ErrInvalidStatus is returned for an unknown order status.
	ErrInvalidStatus = errors.New("invalid order status")
	// ErrInvalidRole is returned for an unknown account role.
	ErrInvalidRole = errors.New("invalid role")
)
