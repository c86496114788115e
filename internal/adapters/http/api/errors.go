package api

import (
	"errors"
	"fmt"
)

// ErrBadRequest marks malformed or incomplete requests.
var ErrBadRequest = errors.New("bad request")

// Wrap tags err with op.
func Wrap(op string, err error) error {
	return fmt.Errorf("%s: %w", op, err)
}
