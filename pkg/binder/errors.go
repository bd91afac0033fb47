package binder

import "errors"

var (
	// ErrBinderNotApplicable tells the caller to skip this binder for the request.
	ErrBinderNotApplicable = errors.New("binder not applicable")

	ErrFailedToParseForm  = errors.New("failed to parse form data")
	ErrFailedToParseQuery = errors.New("failed to parse query parameters")
)
