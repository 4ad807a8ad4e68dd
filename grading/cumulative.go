package grading

import "github.com/shopspring/decimal"

// CumulativeTotals are the credit points and credits summed over every term.
type CumulativeTotals struct {
	CreditPoints float64
	Credits      float64
}

func (CumulativeTotals) Kind() Kind { return KindCGPA }

func (t CumulativeTotals) Calculate() Result {
	return CalculateCGPA(t.CreditPoints, t.Credits)
}

// CalculateCGPA requires both totals to be strictly positive. This is stricter
// than YGPA, where zero is accepted per field.
func CalculateCGPA(creditPoints, credits float64) Result {
	if !finite(creditPoints) || !finite(credits) || creditPoints <= 0 || credits <= 0 {
		return invalid(KindCGPA, ReasonInvalidCGPAFields)
	}

	return aggregated(KindCGPA, decimal.NewFromFloat(creditPoints).Div(decimal.NewFromFloat(credits)))
}
