package runner

import "errors"

var (
	ErrStart = errors.New("failed to start command")
	ErrStdin = errors.New("failed to open command input")
)
