package contract

import "errors"

var (
	ErrModelInvoke          = errors.New("model invoke failed")
	ErrGeneratorUnavailable = errors.New("text generator is unavailable")
	ErrUnknownTool          = errors.New("unknown tool")
	ErrValidation           = errors.New("validation failed")
)
