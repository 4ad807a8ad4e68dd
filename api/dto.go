/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  Defines the JSON structures for API communication. Request bodies reuse
  factory.CalculationJSON so the HTTP API, the CLI and stored fixtures all
  speak the same document format.

NAMING CONVENTION:
  - *DTO: Response types returned to clients
  - *Request: Request body types from clients
  - *Response: Complex response wrappers

TYPES:
  Calculations:
    ResultDTO, BatchRequest, BatchResponse

  Programs:
    ProgramDTO, FieldsDTO

  Reference:
    FormulaDTO

VALIDATION:
  Structural validation uses `validate` struct tags (go-playground/validator).
  Whether the numbers themselves are acceptable is decided by the engine and
  reported in ResultDTO, never as a validation error.

SEE ALSO:
  - handlers.go: Uses these types
  - factory/input.go: CalculationJSON
*/
package api

import "github.com/warp/gradepoint/factory"

// =============================================================================
// CALCULATIONS
// =============================================================================

// ResultDTO is a calculation result ready for display.
type ResultDTO struct {
	Kind        string  `json:"kind"`
	Status      string  `json:"status"`
	StatusClass string  `json:"status_class"` // "success" or "error"
	Average     *string `json:"average"`
	Percentage  *string `json:"percentage"`
	Message     string  `json:"message"`
	Display     string  `json:"display"`
}

// BatchRequest evaluates several calculations in one call.
type BatchRequest struct {
	Calculations []factory.CalculationJSON `json:"calculations" validate:"required,min=1,max=100,dive"`
}

// BatchResponse holds one result per calculation, in request order.
type BatchResponse struct {
	Results []ResultDTO `json:"results"`
	OK      int         `json:"ok"`
	Invalid int         `json:"invalid"`
}

// =============================================================================
// PROGRAMS
// =============================================================================

// ProgramDTO describes one program type and its degree formula.
type ProgramDTO struct {
	Code          string `json:"code"`
	Name          string `json:"name"`
	VisibleFields []int  `json:"visible_fields"`
	Formula       string `json:"formula"`
}

// FieldsDTO lists the yearly inputs to show for a program type.
type FieldsDTO struct {
	ProgramType   string `json:"program_type"`
	Recognized    bool   `json:"recognized"`
	VisibleFields []int  `json:"visible_fields"`
}

// =============================================================================
// REFERENCE
// =============================================================================

// FormulaDTO is one entry of the formula reference.
type FormulaDTO struct {
	Kind       string `json:"kind"`
	Title      string `json:"title"`
	Expression string `json:"expression"`
	Notes      string `json:"notes,omitempty"`
}

// =============================================================================
// ERRORS / HEALTH
// =============================================================================

// ErrorResponse is returned for requests that could not be evaluated at all.
type ErrorResponse struct {
	Error   string   `json:"error"`
	Details string   `json:"details,omitempty"`
	Fields  []string `json:"fields,omitempty"`
}

// HealthDTO is the health check response.
type HealthDTO struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}
