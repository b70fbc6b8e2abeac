package narrative

import "fmt"

// ExpansionError reports a failure to obtain a valid narrative record from
// the text-expansion service, after retries. It always carries the
// underlying cause when one exists.
type ExpansionError struct {
	Message string
	Cause   error
}

func (e *ExpansionError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("narrative expansion failed: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("narrative expansion failed: %s", e.Message)
}

func (e *ExpansionError) Unwrap() error {
	return e.Cause
}
