package style

import "errors"

var (
	ErrWindowExists  = errors.New("window already registered")
	ErrUnknownWindow = errors.New("window not registered")
	ErrNilWindow     = errors.New("nil window")
)
