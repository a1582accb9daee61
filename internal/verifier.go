package internal

import (
	"fmt"

	"github.com/7noue/Indefinite-Integration-Generator-Basic-Patterns/internal/symbolic"
)

// verify differentiates the antiderivative and compares it against the
// original integrand. The returned text is the display-form back-check
// line; ok reports whether the residual simplified exactly to zero.
// A false report is not proof of incorrectness, only that automatic
// simplification could not establish equivalence.
func (e *Engine) verify(integrand, antiderivative symbolic.Expr) (text string, ok bool) {
	derivative := symbolic.Diff(antiderivative, e.variable)
	residual := symbolic.Simplify(symbolic.Expand(symbolic.SubOf(
		symbolic.NormalizeTrig(integrand),
		symbolic.NormalizeTrig(derivative),
	)))

	text = fmt.Sprintf(`\text{Back-check by differentiating: } \frac{d}{d%s}\left[%s\right] = %s`,
		e.variable, symbolic.LaTeX(antiderivative), symbolic.LaTeX(derivative))
	return text, symbolic.IsZero(residual)
}
