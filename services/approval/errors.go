package approval

import "fmt"

// GateError is a resolution failure with a stable code for handlers to map
// onto HTTP statuses.
type GateError struct {
	Code    string // "not_found" | "conflict" | "execution_failed" | "internal"
	Message string
}

func (e *GateError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func newGateError(code, format string, args ...any) error {
	return &GateError{Code: code, Message: fmt.Sprintf(format, args...)}
}
