package api

import "github.com/warp/gradepoint/grading"

const (
	statusClassSuccess = "success"
	statusClassError   = "error"

	iconSuccess = "✅"
	iconError   = "❌"
)

// Render turns an engine result into its display form.
// SGPA averages are shown as entered; every other figure with two decimals.
func Render(res grading.Result) ResultDTO {
	dto := ResultDTO{
		Kind:    string(res.Kind),
		Status:  string(res.Status),
		Message: res.Message,
	}

	if !res.OK() {
		dto.StatusClass = statusClassError
		dto.Display = iconError + " " + res.Message
		return dto
	}

	avg := res.Average.Decimal.StringFixed(grading.Places)
	if res.Kind == grading.KindSGPA {
		avg = res.Average.Decimal.String()
	}
	pct := res.Percentage.Decimal.StringFixed(grading.Places)

	dto.StatusClass = statusClassSuccess
	dto.Average = &avg
	dto.Percentage = &pct
	dto.Display = iconSuccess + " " + res.Message
	return dto
}
