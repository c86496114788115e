package queue

import "errors"

// Sentinel kinds for enqueue failures.
var (
	ErrQueueClosed = errors.New("queue closed")
	ErrQueueFull   = errors.New("queue full")
)
