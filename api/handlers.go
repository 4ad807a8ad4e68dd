/*
handlers.go - HTTP API handlers for the grade calculators

PURPOSE:
  Exposes the grading engine via REST API. Handles HTTP request/response,
  JSON serialization, and delegates every calculation to the engine.

ENDPOINTS:
  Calculators:
    POST   /api/sgpa                   SGPA to percentage
    POST   /api/ygpa                   Yearly average from two semesters
    POST   /api/dgpa                   Degree average from yearly averages
    POST   /api/cgpa                   Cumulative average from totals
    POST   /api/calculate              Any calculation ("kind" in body)
    POST   /api/batch                  Several calculations at once

  Programs:
    GET    /api/programs               Program types with visible fields
    GET    /api/programs/{type}/fields Yearly inputs to show for a program

  Reference:
    GET    /api/formulas               Formula reference

REQUEST FLOW:
  1. Decode body into factory.CalculationJSON
  2. Validate structure (batch size, kind)
  3. Build input with the factory, calculate with the engine
  4. Render result for display

ERROR HANDLING:
  - 400: Malformed JSON, failed structural validation, unknown kind
  - 422: The engine rejected the inputs (body is the rendered result)
  A batch always answers 200; each item carries its own status.

SEE ALSO:
  - dto.go: Request/response data structures
  - render.go: Result display formatting
  - server.go: Router setup and middleware
*/
package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/warp/gradepoint/factory"
	"github.com/warp/gradepoint/grading"
)

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Factory  *factory.InputFactory
	Version  string
	validate *validator.Validate
}

// NewHandler creates a new handler.
func NewHandler(version string) *Handler {
	return &Handler{
		Factory:  factory.NewInputFactory(),
		Version:  version,
		validate: newValidator(),
	}
}

// =============================================================================
// CALCULATOR HANDLERS
// =============================================================================

// ConvertSGPA converts a semester average to a percentage.
func (h *Handler) ConvertSGPA(w http.ResponseWriter, r *http.Request) {
	h.calculateKind(w, r, grading.KindSGPA)
}

// CalculateYGPA computes a yearly average.
func (h *Handler) CalculateYGPA(w http.ResponseWriter, r *http.Request) {
	h.calculateKind(w, r, grading.KindYGPA)
}

// CalculateDGPA computes a degree average.
func (h *Handler) CalculateDGPA(w http.ResponseWriter, r *http.Request) {
	h.calculateKind(w, r, grading.KindDGPA)
}

// CalculateCGPA computes a cumulative average.
func (h *Handler) CalculateCGPA(w http.ResponseWriter, r *http.Request) {
	h.calculateKind(w, r, grading.KindCGPA)
}

func (h *Handler) calculateKind(w http.ResponseWriter, r *http.Request, kind grading.Kind) {
	var doc factory.CalculationJSON
	if err := json.NewDecoder(r.Body).Decode(&doc); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	doc.Kind = string(kind)
	h.evaluate(w, doc)
}

// Calculate evaluates one calculation document of any kind.
func (h *Handler) Calculate(w http.ResponseWriter, r *http.Request) {
	var doc factory.CalculationJSON
	if err := json.NewDecoder(r.Body).Decode(&doc); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if err := h.validate.Struct(doc); err != nil {
		writeValidationError(w, err)
		return
	}
	h.evaluate(w, doc)
}

func (h *Handler) evaluate(w http.ResponseWriter, doc factory.CalculationJSON) {
	res, err := h.Factory.Evaluate(doc)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid calculation", err)
		return
	}

	status := http.StatusOK
	if !res.OK() {
		status = http.StatusUnprocessableEntity
	}
	writeJSON(w, status, Render(res))
}

// Batch evaluates several calculations; each result carries its own status.
func (h *Handler) Batch(w http.ResponseWriter, r *http.Request) {
	var req BatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		writeValidationError(w, err)
		return
	}

	resp := BatchResponse{Results: make([]ResultDTO, 0, len(req.Calculations))}
	for _, doc := range req.Calculations {
		res, err := h.Factory.Evaluate(doc)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid calculation", err)
			return
		}
		if res.OK() {
			resp.OK++
		} else {
			resp.Invalid++
		}
		resp.Results = append(resp.Results, Render(res))
	}

	writeJSON(w, http.StatusOK, resp)
}

// =============================================================================
// PROGRAM HANDLERS
// =============================================================================

// ListPrograms returns every program type with its visible fields and formula.
func (h *Handler) ListPrograms(w http.ResponseWriter, r *http.Request) {
	programs := grading.ProgramTypes()
	dtos := make([]ProgramDTO, 0, len(programs))
	for _, p := range programs {
		policy, _ := grading.PolicyFor(p)
		dtos = append(dtos, ProgramDTO{
			Code:          string(p),
			Name:          p.Name(),
			VisibleFields: grading.FieldVisibilityFor(p),
			Formula:       policy.Formula,
		})
	}
	writeJSON(w, http.StatusOK, dtos)
}

// GetProgramFields returns the yearly inputs to show. Unknown types get an
// empty list rather than 404 so a form can simply hide every input.
func (h *Handler) GetProgramFields(w http.ResponseWriter, r *http.Request) {
	raw := chi.URLParam(r, "type")
	program := grading.ParseProgramType(raw)

	writeJSON(w, http.StatusOK, FieldsDTO{
		ProgramType:   raw,
		Recognized:    program.Valid(),
		VisibleFields: grading.FieldVisibilityFor(program),
	})
}

// =============================================================================
// REFERENCE / HEALTH
// =============================================================================

// ListFormulas returns the formula reference.
func (h *Handler) ListFormulas(w http.ResponseWriter, r *http.Request) {
	formulas := grading.Formulas()
	dtos := make([]FormulaDTO, len(formulas))
	for i, f := range formulas {
		dtos[i] = FormulaDTO{
			Kind:       string(f.Kind),
			Title:      f.Title,
			Expression: f.Expression,
			Notes:      f.Notes,
		}
	}
	writeJSON(w, http.StatusOK, dtos)
}

// Health reports liveness.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthDTO{Status: "ok", Version: h.Version})
}

// =============================================================================
// HELPERS
// =============================================================================

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}

func writeValidationError(w http.ResponseWriter, err error) {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		writeError(w, http.StatusBadRequest, "Invalid request", err)
		return
	}
	writeJSON(w, http.StatusBadRequest, ErrorResponse{
		Error:  "Validation failed",
		Fields: fieldErrors(err),
	})
}
