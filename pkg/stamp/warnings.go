package stamp

import "errors"

// Warnings are soft errors collected while resolving the offset
type Warnings []error

// Err joins all warnings, or returns nil when there are none
func (w Warnings) Err() error {
	return errors.Join(w...)
}

// Strings returns the message of each warning
func (w Warnings) Strings() []string {
	if len(w) == 0 {
		return nil
	}
	out := make([]string, len(w))
	for i, err := range w {
		out[i] = err.Error()
	}
	return out
}
