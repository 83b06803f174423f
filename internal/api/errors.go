package api

import "errors"

var (
	ErrInvalidSchema    = errors.New("invalid form schema")
	ErrDuplicateControl = errors.New("duplicate control name")
	ErrUnknownType      = errors.New("unknown control type")
	ErrUnknownValidator = errors.New("unknown validator")
	ErrUnknownReference = errors.New("reference to unknown control")
	ErrInvalidArgument  = errors.New("invalid rule argument")
)
