package training

import "errors"

// ValidationError reports user input rejected before any request is made.
// Message is the text shown to the user.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return "training: invalid " + e.Field + ": " + e.Message
}

// UserMessage extracts the user-facing message from a validation error, or
// returns "" if err is not one.
func UserMessage(err error) string {
	var verr *ValidationError
	if errors.As(err, &verr) {
		return verr.Message
	}
	return ""
}
