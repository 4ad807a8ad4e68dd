package grading

import "fmt"

// Formula is one entry of the formula reference.
type Formula struct {
	Kind       Kind
	Title      string
	Expression string
	Notes      string
}

// Formulas returns the reference list shown alongside the calculators:
// percentage conversion first, then YGPA, one entry per DGPA program, CGPA.
func Formulas() []Formula {
	formulas := []Formula{
		{
			Kind:       KindSGPA,
			Title:      "SGPA to Percentage",
			Expression: "Percentage = (SGPA - 0.75) * 10",
			Notes:      fmt.Sprintf("SGPA must be greater than 0 and at most %d.", MaxGPA),
		},
		{
			Kind:       KindYGPA,
			Title:      "YGPA",
			Expression: "YGPA = (Odd Credit Points + Even Credit Points) / (Odd Credits + Even Credits)",
			Notes:      "All values must be 0 or more and total credits cannot be zero.",
		},
	}

	for _, p := range ProgramTypes() {
		policy := degreePolicies[p]
		formulas = append(formulas, Formula{
			Kind:       KindDGPA,
			Title:      "DGPA (" + p.Name() + ")",
			Expression: "DGPA = " + policy.Formula,
			Notes:      "y1..y4 are yearly averages (YGPA); empty years count as 0.",
		})
	}

	return append(formulas, Formula{
		Kind:       KindCGPA,
		Title:      "CGPA",
		Expression: "CGPA = Total Credit Points / Total Credits",
		Notes:      "Both totals must be greater than 0.",
	})
}
