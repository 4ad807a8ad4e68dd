/*
errors.go - Rejection reasons and error types for the grading engine

PURPOSE:
  The engine has a single failure kind: the inputs are not acceptable.
  Rejections are returned as Result values; the error types here let
  callers that prefer Go errors branch on them with errors.Is/As.

USAGE:
  if err := grading.CalculateYGPA(5, 0, 6, 0).Err(); err != nil {
      var inv *grading.InvalidInputError
      if errors.As(err, &inv) {
          fmt.Println(inv.Reason) // Total credits cannot be zero.
      }
  }
*/
package grading

import (
	"errors"
	"fmt"
)

// =============================================================================
// REJECTION REASONS - Shown to the user verbatim
// =============================================================================

const (
	ReasonInvalidSGPA       = "Please enter a valid SGPA (0-10)."
	ReasonInvalidYGPAFields = "Fill all fields with valid numbers."
	ReasonZeroTotalCredits  = "Total credits cannot be zero."
	ReasonInvalidDegreeType = "Invalid degree type."
	ReasonInvalidCGPAFields = "Enter valid credit points and credits."
)

// =============================================================================
// ERRORS
// =============================================================================

// ErrInvalidInput is the sentinel behind every rejection.
var ErrInvalidInput = errors.New("invalid input")

// InvalidInputError carries the user-facing reason for a rejection.
type InvalidInputError struct {
	Kind   Kind
	Reason string
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Reason)
}

func (e *InvalidInputError) Unwrap() error {
	return ErrInvalidInput
}

// IsInvalidInput returns true if err is a rejected calculation.
func IsInvalidInput(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}
