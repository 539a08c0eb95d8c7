package engine

import "fmt"

// InvalidDurationError reports a negative or non-finite duration or
// estimate. The whole batch is rejected, never clamped.
type InvalidDurationError struct {
	TaskID string
	Field  string
	Value  float64
}

func (e *InvalidDurationError) Error() string {
	return fmt.Sprintf("task %s: invalid %s %v", e.TaskID, e.Field, e.Value)
}
