package grading

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// MaxGPA is the top of the grading scale.
const MaxGPA = 10

// =============================================================================
// SGPA - Single semester average to percentage
// =============================================================================

// SingleValue is one semester average.
type SingleValue struct {
	GPA float64
}

func (SingleValue) Kind() Kind          { return KindSGPA }
func (v SingleValue) Calculate() Result { return ConvertSGPAToPercentage(v.GPA) }

// ConvertSGPAToPercentage accepts 0 < gpa <= 10. The average is reported as
// entered; only the percentage is rounded.
func ConvertSGPAToPercentage(gpa float64) Result {
	if !finite(gpa) || gpa <= 0 || gpa > MaxGPA {
		return invalid(KindSGPA, ReasonInvalidSGPA)
	}

	avg := decimal.NewFromFloat(gpa)
	pct := Percentage(avg)
	return ok(KindSGPA, avg, pct, fmt.Sprintf("Percentage: %s%%", pct.StringFixed(2)))
}

// =============================================================================
// YGPA - Credit-weighted average of two semesters
// =============================================================================

// SemesterPair holds the odd and even semester totals of one year.
type SemesterPair struct {
	OddCreditPoints  float64
	OddCredits       float64
	EvenCreditPoints float64
	EvenCredits      float64
}

func (SemesterPair) Kind() Kind { return KindYGPA }

func (p SemesterPair) Calculate() Result {
	return CalculateYGPA(p.OddCreditPoints, p.OddCredits, p.EvenCreditPoints, p.EvenCredits)
}

// CalculateYGPA divides the year's credit points by its credits.
// Zero is a valid value for any single field, but not for the credit total.
func CalculateYGPA(oddCreditPoints, oddCredits, evenCreditPoints, evenCredits float64) Result {
	for _, v := range []float64{oddCreditPoints, oddCredits, evenCreditPoints, evenCredits} {
		if !finite(v) || v < 0 {
			return invalid(KindYGPA, ReasonInvalidYGPAFields)
		}
	}

	totalCreditPoints := decimal.NewFromFloat(oddCreditPoints).Add(decimal.NewFromFloat(evenCreditPoints))
	totalCredits := decimal.NewFromFloat(oddCredits).Add(decimal.NewFromFloat(evenCredits))

	if totalCredits.IsZero() {
		return invalid(KindYGPA, ReasonZeroTotalCredits)
	}

	return aggregated(KindYGPA, totalCreditPoints.Div(totalCredits))
}
