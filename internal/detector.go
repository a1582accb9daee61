package internal

import (
	"github.com/7noue/Indefinite-Integration-Generator-Basic-Patterns/internal/symbolic"
)

// Candidate is an accepted substitution proposal. U is the inner
// sub-expression chosen as the new variable, Du its derivative with
// respect to the integration variable, and Rewritten the integrand
// divided by Du and expressed purely in the placeholder symbol.
type Candidate struct {
	U         symbolic.Expr
	Du        symbolic.Expr
	Rewritten symbolic.Expr
}

// detectSubstitution searches the integrand for the simplest
// substitution shape f(g(x))*g'(x), possibly scaled by a constant.
//
// Only top-level products are considered. Each factor contributes
// candidates: the base and exponent of a power, or the argument of one
// of the elementary calls sin, cos, tan, exp, log, whenever that
// sub-expression depends on the variable and is not the bare variable
// itself. Candidates are tested in harvesting order against the
// canonical factor layout, and the first one whose rewritten quotient
// is free of the variable wins; nothing is ranked or revisited.
func (e *Engine) detectSubstitution(expr symbolic.Expr) (Candidate, bool) {
	product, ok := expr.(*symbolic.Mul)
	if !ok {
		return Candidate{}, false
	}

	var candidates []symbolic.Expr
	for _, factor := range product.Factors() {
		switch f := factor.(type) {
		case *symbolic.Pow:
			if e.viable(f.Base()) {
				candidates = append(candidates, f.Base())
			}
			if e.viable(f.Exponent()) {
				candidates = append(candidates, f.Exponent())
			}
		case *symbolic.Call:
			switch f.Name() {
			case "sin", "cos", "tan", "exp", "log":
				if e.viable(f.Arg()) {
					candidates = append(candidates, f.Arg())
				}
			}
		}
	}

	placeholder := symbolic.S(e.placeholder)
	for _, u := range candidates {
		du := symbolic.Diff(u, e.variable)
		if symbolic.IsZero(du) {
			continue
		}
		rewritten := symbolic.Simplify(symbolic.DivOf(symbolic.Replace(expr, u, placeholder), du))
		if symbolic.HasSym(rewritten, e.variable) {
			continue
		}
		return Candidate{U: u, Du: du, Rewritten: rewritten}, true
	}
	return Candidate{}, false
}

// viable reports whether a sub-expression qualifies as a substitution
// candidate: it must depend on the integration variable without being
// the variable itself.
func (e *Engine) viable(sub symbolic.Expr) bool {
	return symbolic.HasSym(sub, e.variable) && !sub.Equal(symbolic.S(e.variable))
}
