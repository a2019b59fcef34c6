package fmt

import (
	"fmt"
	"strings"
)

// SprintFloat formats value with up to decimal places, trimming trailing
// zeros. For human-readable output only: emitted g-code words keep the full
// fixed-point form.
func SprintFloat(value float64, decimal uint) string {
	var floatStr string
	if decimal > 0 {
		floatFormat := fmt.Sprintf("%%.%df", decimal)
		floatStr = fmt.Sprintf(floatFormat, value)
		floatStr = strings.TrimRight(strings.TrimRight(floatStr, "0"), ".")
	} else {
		floatStr = fmt.Sprintf("%.0f", value)
	}
	return floatStr
}

// SprintFloats formats values like SprintFloat, comma separated.
func SprintFloats(values []float64, decimal uint) string {
	strs := make([]string, len(values))
	for i, value := range values {
		strs[i] = SprintFloat(value, decimal)
	}
	return strings.Join(strs, ", ")
}
