/*
Package grading provides the grade aggregation engine.

PURPOSE:
  Turns raw grade inputs (semester averages, credit points, credits, yearly
  averages) into a reported average and its percentage equivalent. Every
  operation is a pure function: no state, no I/O, safe to call from any
  number of goroutines.

KEY CONCEPTS IN THIS FILE (types.go):
  - Kind: Which calculation produced a result (sgpa, ygpa, dgpa, cgpa)
  - Status: Whether the inputs were accepted
  - Result: Average + percentage + message, the only output of the engine
  - Input: One calculation's inputs, ready to be evaluated

VALIDATION POLICY:
  Validation is deliberately NOT uniform across operations:
    SGPA:  finite, 0 < gpa <= 10
    YGPA:  finite, every value >= 0, total credits != 0
    DGPA:  never rejects numbers; NaN/Inf yearly values count as 0
    CGPA:  finite, both values > 0
  Only the program type can make DGPA invalid.

PRECISION:
  Arithmetic uses decimal.Decimal. Averages and percentages are rounded to
  2 places, and the percentage is always derived from the rounded average.

USAGE:
  res := grading.CalculateCGPA(75, 10)
  if res.OK() {
      fmt.Println(res.Average.Decimal.StringFixed(2)) // 7.50
  }

SEE ALSO:
  - percentage.go: Shared rounding and percentage conversion
  - semester.go: SGPA and YGPA
  - degree.go: DGPA policy table and field visibility
  - cumulative.go: CGPA
*/
package grading

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// =============================================================================
// KIND - Which calculation
// =============================================================================

type Kind string

const (
	KindSGPA Kind = "sgpa"
	KindYGPA Kind = "ygpa"
	KindDGPA Kind = "dgpa"
	KindCGPA Kind = "cgpa"
)

// Kinds lists every calculation kind in display order.
func Kinds() []Kind {
	return []Kind{KindSGPA, KindYGPA, KindDGPA, KindCGPA}
}

// Valid reports whether k is one of the known kinds.
func (k Kind) Valid() bool {
	switch k {
	case KindSGPA, KindYGPA, KindDGPA, KindCGPA:
		return true
	}
	return false
}

// Label is the upper-case abbreviation used in messages ("YGPA").
func (k Kind) Label() string {
	switch k {
	case KindSGPA:
		return "SGPA"
	case KindYGPA:
		return "YGPA"
	case KindDGPA:
		return "DGPA"
	case KindCGPA:
		return "CGPA"
	}
	return string(k)
}

// =============================================================================
// RESULT - Output of every operation
// =============================================================================

type Status string

const (
	StatusOK      Status = "ok"
	StatusInvalid Status = "invalid"
)

// Result is the outcome of one calculation.
// Average and Percentage are only Valid when Status is StatusOK.
type Result struct {
	Kind       Kind
	Status     Status
	Average    decimal.NullDecimal
	Percentage decimal.NullDecimal
	Message    string
}

// OK reports whether the inputs were accepted.
func (r Result) OK() bool { return r.Status == StatusOK }

// Err returns the rejection as an error, or nil for a successful result.
func (r Result) Err() error {
	if r.OK() {
		return nil
	}
	return &InvalidInputError{Kind: r.Kind, Reason: r.Message}
}

func ok(kind Kind, average, percentage decimal.Decimal, message string) Result {
	return Result{
		Kind:       kind,
		Status:     StatusOK,
		Average:    decimal.NewNullDecimal(average),
		Percentage: decimal.NewNullDecimal(percentage),
		Message:    message,
	}
}

func invalid(kind Kind, reason string) Result {
	return Result{Kind: kind, Status: StatusInvalid, Message: reason}
}

// aggregated builds the success result shared by YGPA, DGPA and CGPA:
// "YGPA: 0.55, Percentage: -2.00%".
func aggregated(kind Kind, average decimal.Decimal) Result {
	avg := Round(average)
	pct := Percentage(avg)
	msg := fmt.Sprintf("%s: %s, Percentage: %s%%", kind.Label(), avg.StringFixed(2), pct.StringFixed(2))
	return ok(kind, avg, pct, msg)
}

// =============================================================================
// INPUT - One calculation's inputs
// =============================================================================

// Input is a calculation request that the engine can evaluate on its own.
type Input interface {
	Kind() Kind
	Calculate() Result
}

var (
	_ Input = SingleValue{}
	_ Input = SemesterPair{}
	_ Input = DegreeInput{}
	_ Input = CumulativeTotals{}
)
