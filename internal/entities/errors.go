package entities

import "errors"

var (
	ErrInvalidReference = errors.New("invalid verse reference")
	ErrInvalidWords     = errors.New("invalid word positions")
	ErrInvalidColor     = errors.New("invalid highlight color")
	ErrInvalidSettings  = errors.New("invalid settings")
	ErrInvalidPlan      = errors.New("invalid reading plan")
)
