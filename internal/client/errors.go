package client

import (
	"fmt"

	"github.com/kingrea/trainlog/internal/training"
)

// RequestError reports a failed exchange: either the server answered with a
// status other than 200 or the request never completed. StatusCode is zero
// for transport failures.
type RequestError struct {
	Action     training.Action
	StatusCode int
	Err        error
}

func (e *RequestError) Error() string {
	switch {
	case e.Err != nil && e.StatusCode != 0:
		return fmt.Sprintf("client: %s (status %d): %v", e.Action.Label(), e.StatusCode, e.Err)
	case e.Err != nil:
		return fmt.Sprintf("client: %s: %v", e.Action.Label(), e.Err)
	default:
		return fmt.Sprintf("client: %s failed with status %d", e.Action.Label(), e.StatusCode)
	}
}

func (e *RequestError) Unwrap() error {
	return e.Err
}

// UserMessage is the fixed text shown for the failed action.
func (e *RequestError) UserMessage() string {
	return e.Action.FailureMessage()
}
