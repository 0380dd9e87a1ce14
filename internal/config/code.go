package config

import (
	"fmt"

	"millet/internal/diag"
)

// parseCode parses a millet.toml `diagnostics` table key, written in the
// same "M%04d" form diag.Code.String() produces, back into a diag.Code.
func parseCode(s string) (diag.Code, bool) {
	var n uint16
	if _, err := fmt.Sscanf(s, "M%04d", &n); err != nil {
		return 0, false
	}
	code := diag.Code(n)
	if code.String() != s {
		return 0, false
	}
	return code, true
}
