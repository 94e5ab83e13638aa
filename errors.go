package colorize

import "errors"

var (
	// ErrNotBound is returned when an operation needs a surface and none is bound.
	ErrNotBound = errors.New("colorize: surface not bound")
	// ErrAlreadyBound is returned by a second BindSurface call on the same session.
	ErrAlreadyBound = errors.New("colorize: surface already bound")
	// ErrInvalidSize is returned for negative, infinite or NaN surface dimensions.
	ErrInvalidSize = errors.New("colorize: invalid surface size")
	// ErrBackgroundTimeout is returned when the line art is not ready in time for an export.
	ErrBackgroundTimeout = errors.New("colorize: timed out waiting for the background image")
	// ErrNoBackground is returned when an export is requested before any line art was set.
	ErrNoBackground = errors.New("colorize: no background image")
	// ErrUnknownTool is returned when parsing a tool name fails.
	ErrUnknownTool = errors.New("colorize: unknown tool")
)
