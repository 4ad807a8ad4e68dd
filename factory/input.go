/*
Package factory provides raw input to engine input conversion.

PURPOSE:
  The calculators receive their numbers as text typed into form fields, or
  as JSON documents from the HTTP API and the CLI. The factory turns both
  into grading.Input values. It never decides whether a number is
  acceptable: unparseable text becomes NaN and the engine applies each
  operation's own validation policy to it.

NUMBER PARSING:
  ParseNumber follows the browser's parseFloat:
    "7.5"      -> 7.5
    "  7.5abc" -> 7.5   (longest numeric prefix)
    ".5"       -> 0.5
    "1e3x"     -> 1000
    "Infinity" -> +Inf
    "" / "abc" -> NaN

JSON SCHEMA:
  {
    "kind": "dgpa",
    "program_type": "3l",
    "y1": null, "y2": 6, "y3": "7", "y4": 8
  }

  Every numeric field accepts a JSON number, a string (parsed with
  ParseNumber) or null. Absent and null fields are NaN.

  Fields per kind:
    sgpa: sgpa
    ygpa: odd_credit_points, odd_credits, even_credit_points, even_credits
    dgpa: program_type, y1, y2, y3, y4
    cgpa: credit_points, credits

USAGE:
  f := factory.NewInputFactory()
  in, err := f.ParseCalculation([]byte(`{"kind":"cgpa","credit_points":75,"credits":10}`))
  if err != nil {
      return err // malformed document or unknown kind
  }
  res := in.Calculate()

SEE ALSO:
  - grading/types.go: Input and Result
  - api/handlers.go: HTTP endpoints built on this factory
*/
package factory

import (
	"bytes"
	"encoding/json"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/warp/gradepoint/grading"
)

// =============================================================================
// NUMBER PARSING
// =============================================================================

var numericPrefix = regexp.MustCompile(`^[+-]?(Infinity|(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?)`)

// ParseNumber parses the longest numeric prefix of s, or returns NaN.
func ParseNumber(s string) float64 {
	m := numericPrefix.FindStringSubmatch(strings.TrimLeft(s, " \t\n\r\v\f\u00a0\ufeff"))
	if m == nil {
		return math.NaN()
	}

	if m[1] == "Infinity" {
		if strings.HasPrefix(m[0], "-") {
			return math.Inf(-1)
		}
		return math.Inf(1)
	}

	// Out-of-range literals come back as +/-Inf with ErrRange, which is the
	// value we want.
	v, err := strconv.ParseFloat(m[0], 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return math.NaN()
	}
	return v
}

// Number is a numeric form field. The zero value is an empty field.
type Number struct {
	value float64
	set   bool
}

// NewNumber returns a filled field.
func NewNumber(v float64) Number {
	return Number{value: v, set: true}
}

// NumberFromText parses a text field with ParseNumber.
func NumberFromText(s string) Number {
	return NewNumber(ParseNumber(s))
}

// Float returns the field value, NaN when the field is empty.
func (n Number) Float() float64 {
	if !n.set {
		return math.NaN()
	}
	return n.value
}

// IsSet reports whether the field carried a value (even an unparseable one).
func (n Number) IsSet() bool { return n.set }

func (n *Number) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		*n = Number{}
		return nil
	case len(data) > 0 && data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return errors.Wrap(err, "decode numeric field")
		}
		*n = NumberFromText(s)
		return nil
	}

	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return errors.Wrapf(err, "numeric field must be a number, string or null, got %s", data)
	}
	*n = NewNumber(v)
	return nil
}

// MarshalJSON writes null for empty and non-finite values.
func (n Number) MarshalJSON() ([]byte, error) {
	v := n.Float()
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return []byte("null"), nil
	}
	return json.Marshal(v)
}

// =============================================================================
// JSON SCHEMA TYPES
// =============================================================================

// CalculationJSON is the JSON representation of one calculation.
type CalculationJSON struct {
	Kind string `json:"kind" validate:"required,oneof=sgpa ygpa dgpa cgpa"`

	SGPA Number `json:"sgpa"`

	OddCreditPoints  Number `json:"odd_credit_points"`
	OddCredits       Number `json:"odd_credits"`
	EvenCreditPoints Number `json:"even_credit_points"`
	EvenCredits      Number `json:"even_credits"`

	ProgramType string `json:"program_type,omitempty"`
	Y1          Number `json:"y1"`
	Y2          Number `json:"y2"`
	Y3          Number `json:"y3"`
	Y4          Number `json:"y4"`

	CreditPoints Number `json:"credit_points"`
	Credits      Number `json:"credits"`
}

// =============================================================================
// INPUT FACTORY
// =============================================================================

// ErrUnknownKind is returned for a document whose kind is not a calculation.
var ErrUnknownKind = errors.New("unknown calculation kind")

// InputFactory converts calculation documents to engine inputs.
type InputFactory struct{}

// NewInputFactory creates a new input factory.
func NewInputFactory() *InputFactory {
	return &InputFactory{}
}

// ParseCalculation decodes a JSON document and builds its input.
func (f *InputFactory) ParseCalculation(data []byte) (grading.Input, error) {
	var doc CalculationJSON
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, errors.Wrap(err, "invalid calculation JSON")
	}
	return f.Build(doc)
}

// Build converts a decoded document. Only the fields of the document's kind
// are read.
func (f *InputFactory) Build(doc CalculationJSON) (grading.Input, error) {
	switch grading.Kind(strings.ToLower(strings.TrimSpace(doc.Kind))) {
	case grading.KindSGPA:
		return grading.SingleValue{GPA: doc.SGPA.Float()}, nil

	case grading.KindYGPA:
		return grading.SemesterPair{
			OddCreditPoints:  doc.OddCreditPoints.Float(),
			OddCredits:       doc.OddCredits.Float(),
			EvenCreditPoints: doc.EvenCreditPoints.Float(),
			EvenCredits:      doc.EvenCredits.Float(),
		}, nil

	case grading.KindDGPA:
		return grading.DegreeInput{
			Program: grading.ParseProgramType(doc.ProgramType),
			Years: [grading.YearSlots]float64{
				doc.Y1.Float(), doc.Y2.Float(), doc.Y3.Float(), doc.Y4.Float(),
			},
		}, nil

	case grading.KindCGPA:
		return grading.CumulativeTotals{
			CreditPoints: doc.CreditPoints.Float(),
			Credits:      doc.Credits.Float(),
		}, nil
	}

	return nil, errors.Wrapf(ErrUnknownKind, "%q", doc.Kind)
}

// Evaluate builds and calculates in one step.
func (f *InputFactory) Evaluate(doc CalculationJSON) (grading.Result, error) {
	in, err := f.Build(doc)
	if err != nil {
		return grading.Result{}, err
	}
	return in.Calculate(), nil
}
