package ui

import "errors"

var ErrAlreadyRunning = errors.New("runtime is already running")
