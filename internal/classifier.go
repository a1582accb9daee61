package internal

import (
	"github.com/7noue/Indefinite-Integration-Generator-Basic-Patterns/internal/symbolic"
)

// classifyShape maps the top-level shape of an integrand headed for
// direct evaluation to an optional narration step: the sum rule for
// additive integrands, the constant-multiple rule for products scaled
// by a numeric coefficient. The note is purely narrative and does not
// change how the integral is evaluated.
func classifyShape(expr symbolic.Expr) (string, bool) {
	switch v := expr.(type) {
	case *symbolic.Add:
		return `\text{Apply the sum rule: integrate each term separately.}`, true
	case *symbolic.Mul:
		factors := v.Factors()
		if len(factors) > 0 {
			if _, leadingNum := factors[0].(*symbolic.Num); leadingNum {
				return `\text{Factor out the constant and integrate the remaining pattern.}`, true
			}
		}
	}
	return "", false
}
