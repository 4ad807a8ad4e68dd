/*
handlers_test.go - Tests for API handlers

Tests for:
- Per-kind calculator endpoints (success and rejection)
- Generic and batch calculation, structural validation
- Program listing, field visibility, formula reference
*/
package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/gradepoint/grading"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	router := NewRouter(NewHandler("test"), RouterOptions{
		AllowedOrigins: []string{"http://localhost:5173"},
		Logger:         zerolog.Nop(),
	})
	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return srv
}

func postJSON(t *testing.T, srv *httptest.Server, path, body string) *http.Response {
	t.Helper()
	resp, err := http.Post(srv.URL+path, "application/json", bytes.NewBufferString(body))
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func getJSON(t *testing.T, srv *httptest.Server, path string) *http.Response {
	t.Helper()
	resp, err := http.Get(srv.URL + path)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&v))
	return v
}

// =============================================================================
// CALCULATORS
// =============================================================================

func TestConvertSGPA_Success(t *testing.T) {
	srv := newTestServer(t)

	resp := postJSON(t, srv, "/api/sgpa", `{"sgpa": "7.5"}`)

	require.Equal(t, http.StatusOK, resp.StatusCode)
	dto := decode[ResultDTO](t, resp)
	assert.Equal(t, "sgpa", dto.Kind)
	assert.Equal(t, "ok", dto.Status)
	assert.Equal(t, "success", dto.StatusClass)
	require.NotNil(t, dto.Average)
	require.NotNil(t, dto.Percentage)
	assert.Equal(t, "7.5", *dto.Average)
	assert.Equal(t, "67.50", *dto.Percentage)
	assert.Equal(t, "✅ Percentage: 67.50%", dto.Display)
}

func TestConvertSGPA_Rejected(t *testing.T) {
	srv := newTestServer(t)

	resp := postJSON(t, srv, "/api/sgpa", `{"sgpa": "eleven"}`)

	require.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	dto := decode[ResultDTO](t, resp)
	assert.Equal(t, "invalid", dto.Status)
	assert.Equal(t, "error", dto.StatusClass)
	assert.Nil(t, dto.Average)
	assert.Nil(t, dto.Percentage)
	assert.Equal(t, grading.ReasonInvalidSGPA, dto.Message)
	assert.Equal(t, "❌ Please enter a valid SGPA (0-10).", dto.Display)
}

func TestCalculateYGPA_Endpoint(t *testing.T) {
	srv := newTestServer(t)

	resp := postJSON(t, srv, "/api/ygpa",
		`{"odd_credit_points": 5, "odd_credits": 10, "even_credit_points": 6, "even_credits": 10}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	dto := decode[ResultDTO](t, resp)
	assert.Equal(t, "0.55", *dto.Average)
	assert.Equal(t, "YGPA: 0.55, Percentage: -2.00%", dto.Message)

	resp = postJSON(t, srv, "/api/ygpa",
		`{"odd_credit_points": 5, "odd_credits": 0, "even_credit_points": 6, "even_credits": 0}`)
	require.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	assert.Equal(t, grading.ReasonZeroTotalCredits, decode[ResultDTO](t, resp).Message)
}

func TestCalculateDGPA_Endpoint(t *testing.T) {
	srv := newTestServer(t)

	resp := postJSON(t, srv, "/api/dgpa", `{"program_type": "3l", "y2": 6, "y3": 7, "y4": 8}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	dto := decode[ResultDTO](t, resp)
	assert.Equal(t, "7.13", *dto.Average)
	assert.Equal(t, "63.80", *dto.Percentage)

	resp = postJSON(t, srv, "/api/dgpa", `{"program_type": "", "y1": 8}`)
	require.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	assert.Equal(t, "Invalid degree type.", decode[ResultDTO](t, resp).Message)
}

func TestCalculateCGPA_Endpoint(t *testing.T) {
	srv := newTestServer(t)

	resp := postJSON(t, srv, "/api/cgpa", `{"credit_points": 75, "credits": 10}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "CGPA: 7.50, Percentage: 67.50%", decode[ResultDTO](t, resp).Message)

	resp = postJSON(t, srv, "/api/cgpa", `{"credit_points": 0, "credits": 10}`)
	require.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	assert.Equal(t, grading.ReasonInvalidCGPAFields, decode[ResultDTO](t, resp).Message)
}

func TestCalculator_KindInBodyIsIgnored(t *testing.T) {
	// The path decides the calculation.
	srv := newTestServer(t)

	resp := postJSON(t, srv, "/api/cgpa", `{"kind": "sgpa", "sgpa": 7.5, "credit_points": 75, "credits": 10}`)

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "cgpa", decode[ResultDTO](t, resp).Kind)
}

func TestCalculator_MalformedBody(t *testing.T) {
	srv := newTestServer(t)

	resp := postJSON(t, srv, "/api/sgpa", `{"sgpa": true}`)

	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Invalid request body", decode[ErrorResponse](t, resp).Error)
}

func TestCalculate_Generic(t *testing.T) {
	srv := newTestServer(t)

	resp := postJSON(t, srv, "/api/calculate", `{"kind": "dgpa", "program_type": "FOUR_YEAR", "y1": 8, "y2": 8, "y3": 8, "y4": 8}`)

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "8.00", *decode[ResultDTO](t, resp).Average)
}

func TestCalculate_UnknownKind(t *testing.T) {
	srv := newTestServer(t)

	resp := postJSON(t, srv, "/api/calculate", `{"kind": "gpa"}`)

	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	errResp := decode[ErrorResponse](t, resp)
	assert.Equal(t, "Validation failed", errResp.Error)
	assert.Equal(t, []string{"kind: oneof=sgpa ygpa dgpa cgpa"}, errResp.Fields)
}

// =============================================================================
// BATCH
// =============================================================================

func TestBatch_MixedResults(t *testing.T) {
	srv := newTestServer(t)

	resp := postJSON(t, srv, "/api/batch", `{"calculations": [
		{"kind": "sgpa", "sgpa": 7.5},
		{"kind": "cgpa", "credit_points": 0, "credits": 10},
		{"kind": "dgpa", "program_type": "2", "y1": 7, "y2": 8}
	]}`)

	require.Equal(t, http.StatusOK, resp.StatusCode)
	batch := decode[BatchResponse](t, resp)
	require.Len(t, batch.Results, 3)
	assert.Equal(t, 2, batch.OK)
	assert.Equal(t, 1, batch.Invalid)
	assert.Equal(t, "sgpa", batch.Results[0].Kind)
	assert.Equal(t, "error", batch.Results[1].StatusClass)
	assert.Equal(t, "7.50", *batch.Results[2].Average)
}

func TestBatch_Validation(t *testing.T) {
	srv := newTestServer(t)

	tests := []struct {
		name   string
		body   string
		fields []string
	}{
		{"empty", `{"calculations": []}`, []string{"calculations: min=1"}},
		{"missing", `{}`, []string{"calculations: required"}},
		{"bad kind", `{"calculations": [{"kind": "sgpa"}, {"kind": "xgpa"}]}`,
			[]string{"calculations[1].kind: oneof=sgpa ygpa dgpa cgpa"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := postJSON(t, srv, "/api/batch", tt.body)
			require.Equal(t, http.StatusBadRequest, resp.StatusCode)
			assert.Equal(t, tt.fields, decode[ErrorResponse](t, resp).Fields)
		})
	}
}

// =============================================================================
// PROGRAMS / REFERENCE
// =============================================================================

func TestListPrograms(t *testing.T) {
	srv := newTestServer(t)

	resp := getJSON(t, srv, "/api/programs")

	require.Equal(t, http.StatusOK, resp.StatusCode)
	programs := decode[[]ProgramDTO](t, resp)
	require.Len(t, programs, 5)
	assert.Equal(t, "3l", programs[3].Code)
	assert.Equal(t, "THREE_YEAR_LATERAL", programs[3].Name)
	assert.Equal(t, []int{1, 2, 3}, programs[3].VisibleFields)
	assert.Equal(t, "(y2 + 1.5*y3 + 1.5*y4) / 4", programs[3].Formula)
}

func TestGetProgramFields(t *testing.T) {
	srv := newTestServer(t)

	tests := []struct {
		program    string
		recognized bool
		fields     []int
	}{
		{"1", true, []int{0}},
		{"2", true, []int{0, 1}},
		{"3", true, []int{0, 1, 2}},
		{"3l", true, []int{1, 2, 3}},
		{"4", true, []int{0, 1, 2, 3}},
		{"four_year", true, []int{0, 1, 2, 3}},
		{"9", false, []int{}},
	}

	for _, tt := range tests {
		resp := getJSON(t, srv, "/api/programs/"+tt.program+"/fields")
		require.Equal(t, http.StatusOK, resp.StatusCode)

		dto := decode[FieldsDTO](t, resp)
		assert.Equal(t, tt.program, dto.ProgramType)
		assert.Equal(t, tt.recognized, dto.Recognized, tt.program)
		assert.Equal(t, tt.fields, dto.VisibleFields, tt.program)
	}
}

func TestListFormulas(t *testing.T) {
	srv := newTestServer(t)

	resp := getJSON(t, srv, "/api/formulas")

	require.Equal(t, http.StatusOK, resp.StatusCode)
	formulas := decode[[]FormulaDTO](t, resp)
	require.Len(t, formulas, 8)
	assert.Equal(t, "Percentage = (SGPA - 0.75) * 10", formulas[0].Expression)
}

func TestHealth(t *testing.T) {
	srv := newTestServer(t)

	resp := getJSON(t, srv, "/health")

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, HealthDTO{Status: "ok", Version: "test"}, decode[HealthDTO](t, resp))
}

func TestCORS_AllowedOrigin(t *testing.T) {
	srv := newTestServer(t)

	req, err := http.NewRequest(http.MethodOptions, srv.URL+"/api/sgpa", nil)
	require.NoError(t, err)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", "POST")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, "http://localhost:5173", resp.Header.Get("Access-Control-Allow-Origin"))
}
