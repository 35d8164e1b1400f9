package answers

import "fmt"

// ErrInvalidSheet indicates a submitted answer sheet could not be decoded or
// does not satisfy the sheet schema.
type ErrInvalidSheet struct {
	Err error
}

func (e *ErrInvalidSheet) Error() string {
	return fmt.Sprintf("invalid answer sheet: %v", e.Err)
}

func (e *ErrInvalidSheet) Unwrap() error { return e.Err }
