package interpreter

import (
	"fmt"

	"github.com/arthur-debert/mflash/pkg/flashing"
)

// StepError attributes a failure to the step that caused it. It unwraps to
// the underlying coded error, so errors.IsErrorCode sees through it.
type StepError struct {
	// Index is the zero-based position of the step in the document
	Index int
	Step  flashing.Step
	Err   error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("step %d (%s) failed: %v", e.Index+1, e.Step.Describe(), e.Err)
}

func (e *StepError) Unwrap() error {
	return e.Err
}
