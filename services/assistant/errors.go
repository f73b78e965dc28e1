package assistant

import "fmt"

// ValidationError marks a malformed or out-of-range action parameter. It is
// reported back to the model as a failed tool result so it can self-correct,
// and never causes side effects.
type ValidationError struct {
	Param   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid parameter %q: %s", e.Param, e.Message)
}

func NewValidationError(param, msg string) error {
	return &ValidationError{Param: param, Message: msg}
}
