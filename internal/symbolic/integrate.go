package symbolic

// Integrate returns an antiderivative of e with respect to the named
// variable, omitting the constant of integration. The second result
// reports whether the integrand matched a supported pattern: rational
// powers, sums, constant multiples, and the elementary functions sin,
// cos, tan, exp and log applied to linear arguments. Unsupported
// shapes return false rather than an approximation.
func Integrate(e Expr, name string) (Expr, bool) {
	if !HasSym(e, name) {
		return MulOf(e, S(name)), true
	}
	switch v := e.(type) {
	case *Sym:
		return MulOf(Frac(1, 2), PowOf(v, N(2))), true
	case *Add:
		terms := make([]Expr, len(v.terms))
		for i, t := range v.terms {
			anti, ok := Integrate(t, name)
			if !ok {
				return nil, false
			}
			terms[i] = anti
		}
		return AddOf(terms...), true
	case *Mul:
		return integrateMul(v, name)
	case *Pow:
		return integratePow(v, name)
	case *Call:
		return integrateCall(v, name)
	}
	return nil, false
}

// integrateMul peels constant factors off a product. A single variable
// dependent factor is integrated directly; two or more are beyond the
// basic pattern set.
func integrateMul(m *Mul, name string) (Expr, bool) {
	constants := make([]Expr, 0, len(m.factors))
	var dependent []Expr
	for _, f := range m.factors {
		if HasSym(f, name) {
			dependent = append(dependent, f)
		} else {
			constants = append(constants, f)
		}
	}
	if len(dependent) != 1 {
		return nil, false
	}
	anti, ok := Integrate(dependent[0], name)
	if !ok {
		return nil, false
	}
	return MulOf(append(constants, anti)...), true
}

func integratePow(p *Pow, name string) (Expr, bool) {
	baseDep := HasSym(p.base, name)
	expDep := HasSym(p.exp, name)
	if baseDep && expDep {
		return nil, false
	}

	if baseDep {
		a, _, linear := linearParts(p.base, name)
		if !linear {
			// A positive integer power of a polynomial still yields to
			// termwise integration after expansion. Expand leaves very
			// high powers alone, so recurse only on a changed shape.
			if n, isNum := p.exp.(*Num); isNum && n.IsInteger() && n.Sign() > 0 {
				if _, isAdd := p.base.(*Add); isAdd {
					if expanded := Expand(p); !expanded.Equal(p) {
						return Integrate(expanded, name)
					}
				}
			}
			return nil, false
		}
		next := AddOf(p.exp, N(1))
		if IsZero(next) {
			return DivOf(LogOf(p.base), a), true
		}
		return DivOf(PowOf(p.base, next), MulOf(a, next)), true
	}

	// Constant base: a^(cx+d) integrates to a^(cx+d) / (c log a).
	c, _, linear := linearParts(p.exp, name)
	if !linear {
		return nil, false
	}
	return DivOf(p, MulOf(c, LogOf(p.base))), true
}

func integrateCall(c *Call, name string) (Expr, bool) {
	a, _, linear := linearParts(c.arg, name)
	if !linear {
		return nil, false
	}
	switch c.name {
	case "sin":
		return DivOf(MulOf(N(-1), CosOf(c.arg)), a), true
	case "cos":
		return DivOf(SinOf(c.arg), a), true
	case "tan":
		return DivOf(MulOf(N(-1), LogOf(CosOf(c.arg))), a), true
	case "exp":
		return DivOf(c, a), true
	case "log":
		return DivOf(SubOf(MulOf(c.arg, c), c.arg), a), true
	}
	return nil, false
}

// linearParts decomposes e as a*x + b with a and b free of the
// variable and a non-zero. It reports false for any other shape.
func linearParts(e Expr, name string) (a, b Expr, ok bool) {
	switch v := e.(type) {
	case *Sym:
		if v.name == name {
			return N(1), N(0), true
		}
	case *Mul:
		coeffs := make([]Expr, 0, len(v.factors))
		seen := false
		for _, f := range v.factors {
			if s, isSym := f.(*Sym); isSym && s.name == name {
				seen = true
				continue
			}
			if HasSym(f, name) {
				return nil, nil, false
			}
			coeffs = append(coeffs, f)
		}
		if !seen {
			return nil, nil, false
		}
		return MulOf(coeffs...), N(0), true
	case *Add:
		slopes := make([]Expr, 0, len(v.terms))
		offsets := make([]Expr, 0, len(v.terms))
		for _, t := range v.terms {
			if !HasSym(t, name) {
				offsets = append(offsets, t)
				continue
			}
			slope, _, linear := linearParts(t, name)
			if !linear {
				return nil, nil, false
			}
			slopes = append(slopes, slope)
		}
		if len(slopes) == 0 {
			return nil, nil, false
		}
		return AddOf(slopes...), AddOf(offsets...), true
	}
	return nil, nil, false
}
