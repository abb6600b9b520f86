package tui

import "errors"

var (
	// ErrAborted signals the user aborted input (e.g., Ctrl+C).
	ErrAborted = errors.New("tui: aborted")
	// ErrNoController is returned by Fill when called without a controller.
	ErrNoController = errors.New("tui: controller is required")
)
