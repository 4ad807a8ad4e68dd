/*
degree.go - DGPA policy table and yearly input visibility

PURPOSE:
  A degree average is a weighted mean of yearly averages. Which years count,
  and how much, depends on the program length. Each program type maps to
  one DegreePolicy row; the same row decides which yearly inputs a form
  should show.

POLICY TABLE:
  ONE_YEAR            y1
  TWO_YEAR            (y1 + y2) / 2
  THREE_YEAR          (y1 + y2 + y3) / 3
  THREE_YEAR_LATERAL  (y2 + 1.5*y3 + 1.5*y4) / 4
  FOUR_YEAR           (y1 + y2 + 1.5*y3 + 1.5*y4) / 5

  Lateral entry students join in the second year, so slot 0 is unused.

LENIENCY:
  Yearly values are never rejected. NaN and +/-Inf count as 0, matching a
  form where an empty field simply contributes nothing. Only an unknown
  program type makes the calculation invalid.
*/
package grading

import (
	"strings"

	"github.com/shopspring/decimal"
)

// YearSlots is the number of yearly average inputs.
const YearSlots = 4

// =============================================================================
// PROGRAM TYPE - Closed set of program lengths
// =============================================================================

// ProgramType values are the option codes used by the program selector.
type ProgramType string

const (
	ProgramUnknown          ProgramType = ""
	ProgramOneYear          ProgramType = "1"
	ProgramTwoYear          ProgramType = "2"
	ProgramThreeYear        ProgramType = "3"
	ProgramThreeYearLateral ProgramType = "3l"
	ProgramFourYear         ProgramType = "4"
)

// ProgramTypes lists the recognized program types in selector order.
func ProgramTypes() []ProgramType {
	return []ProgramType{
		ProgramOneYear,
		ProgramTwoYear,
		ProgramThreeYear,
		ProgramThreeYearLateral,
		ProgramFourYear,
	}
}

var programNames = map[ProgramType]string{
	ProgramOneYear:          "ONE_YEAR",
	ProgramTwoYear:          "TWO_YEAR",
	ProgramThreeYear:        "THREE_YEAR",
	ProgramThreeYearLateral: "THREE_YEAR_LATERAL",
	ProgramFourYear:         "FOUR_YEAR",
}

// ParseProgramType accepts a selector code ("3l") or an enum name
// ("three_year_lateral"), case-insensitively. Anything else is ProgramUnknown.
func ParseProgramType(s string) ProgramType {
	s = strings.TrimSpace(s)
	for _, p := range ProgramTypes() {
		if strings.EqualFold(s, string(p)) || strings.EqualFold(s, programNames[p]) {
			return p
		}
	}
	return ProgramUnknown
}

// Valid reports whether p is a recognized program type.
func (p ProgramType) Valid() bool {
	_, ok := degreePolicies[p]
	return ok
}

// Name is the enum name ("FOUR_YEAR"), or "UNKNOWN".
func (p ProgramType) Name() string {
	if n, ok := programNames[p]; ok {
		return n
	}
	return "UNKNOWN"
}

// =============================================================================
// DEGREE POLICY - Weights per yearly slot
// =============================================================================

// DegreePolicy weights each yearly slot and divides by a fixed divisor.
// A zero weight means the slot does not take part.
type DegreePolicy struct {
	Program ProgramType
	Weights [YearSlots]decimal.Decimal
	Divisor decimal.Decimal
	Formula string
}

var (
	one     = decimal.NewFromInt(1)
	oneHalf = decimal.RequireFromString("1.5")
	none    = decimal.Zero
)

var degreePolicies = map[ProgramType]DegreePolicy{
	ProgramOneYear: {
		Program: ProgramOneYear,
		Weights: [YearSlots]decimal.Decimal{one, none, none, none},
		Divisor: decimal.NewFromInt(1),
		Formula: "y1",
	},
	ProgramTwoYear: {
		Program: ProgramTwoYear,
		Weights: [YearSlots]decimal.Decimal{one, one, none, none},
		Divisor: decimal.NewFromInt(2),
		Formula: "(y1 + y2) / 2",
	},
	ProgramThreeYear: {
		Program: ProgramThreeYear,
		Weights: [YearSlots]decimal.Decimal{one, one, one, none},
		Divisor: decimal.NewFromInt(3),
		Formula: "(y1 + y2 + y3) / 3",
	},
	ProgramThreeYearLateral: {
		Program: ProgramThreeYearLateral,
		Weights: [YearSlots]decimal.Decimal{none, one, oneHalf, oneHalf},
		Divisor: decimal.NewFromInt(4),
		Formula: "(y2 + 1.5*y3 + 1.5*y4) / 4",
	},
	ProgramFourYear: {
		Program: ProgramFourYear,
		Weights: [YearSlots]decimal.Decimal{one, one, oneHalf, oneHalf},
		Divisor: decimal.NewFromInt(5),
		Formula: "(y1 + y2 + 1.5*y3 + 1.5*y4) / 5",
	},
}

// PolicyFor returns the policy row for p.
func PolicyFor(p ProgramType) (DegreePolicy, bool) {
	policy, ok := degreePolicies[p]
	return policy, ok
}

// Apply computes the unrounded weighted average.
func (dp DegreePolicy) Apply(years [YearSlots]float64) decimal.Decimal {
	sum := decimal.Zero
	for i, w := range dp.Weights {
		if w.IsZero() {
			continue
		}
		sum = sum.Add(w.Mul(yearValue(years[i])))
	}
	return sum.Div(dp.Divisor)
}

// Slots returns the 0-based yearly slots the policy reads.
func (dp DegreePolicy) Slots() []int {
	slots := []int{}
	for i, w := range dp.Weights {
		if !w.IsZero() {
			slots = append(slots, i)
		}
	}
	return slots
}

func yearValue(v float64) decimal.Decimal {
	if !finite(v) {
		return decimal.Zero
	}
	return decimal.NewFromFloat(v)
}

// =============================================================================
// DGPA
// =============================================================================

// DegreeInput is a program type plus up to four yearly averages.
type DegreeInput struct {
	Program ProgramType
	Years   [YearSlots]float64
}

func (DegreeInput) Kind() Kind { return KindDGPA }

func (d DegreeInput) Calculate() Result {
	return CalculateDGPA(d.Program, d.Years[0], d.Years[1], d.Years[2], d.Years[3])
}

// CalculateDGPA applies the program's policy row. Yearly values outside the
// policy's slots are ignored.
func CalculateDGPA(program ProgramType, y1, y2, y3, y4 float64) Result {
	policy, ok := degreePolicies[program]
	if !ok {
		return invalid(KindDGPA, ReasonInvalidDegreeType)
	}
	return aggregated(KindDGPA, policy.Apply([YearSlots]float64{y1, y2, y3, y4}))
}

// FieldVisibilityFor returns the yearly slots relevant to program, in
// ascending order. Unknown programs get an empty, non-nil slice.
func FieldVisibilityFor(program ProgramType) []int {
	policy, ok := degreePolicies[program]
	if !ok {
		return []int{}
	}
	return policy.Slots()
}
