package symbolic

// Diff returns the derivative of e with respect to the named variable.
// Symbols other than the variable are treated as constants.
func Diff(e Expr, name string) Expr {
	switch v := e.(type) {
	case *Num:
		return N(0)
	case *Sym:
		if v.name == name {
			return N(1)
		}
		return N(0)
	case *Add:
		terms := make([]Expr, len(v.terms))
		for i, t := range v.terms {
			terms[i] = Diff(t, name)
		}
		return AddOf(terms...)
	case *Mul:
		// n-ary product rule: sum over i of f_i' * prod_{j!=i} f_j.
		terms := make([]Expr, 0, len(v.factors))
		for i := range v.factors {
			parts := make([]Expr, 0, len(v.factors))
			parts = append(parts, Diff(v.factors[i], name))
			for j, f := range v.factors {
				if j != i {
					parts = append(parts, f)
				}
			}
			terms = append(terms, MulOf(parts...))
		}
		return AddOf(terms...)
	case *Pow:
		return diffPow(v, name)
	case *Call:
		return MulOf(diffCall(v), Diff(v.arg, name))
	}
	return N(0)
}

func diffPow(p *Pow, name string) Expr {
	if n, ok := p.exp.(*Num); ok {
		// d/dx b^n = n * b^(n-1) * b'
		return MulOf(n, PowOf(p.base, numAdd(n, N(-1))), Diff(p.base, name))
	}
	if _, ok := p.base.(*Num); ok {
		// d/dx a^g = a^g * log(a) * g'
		return MulOf(p, LogOf(p.base), Diff(p.exp, name))
	}
	// General case: d/dx f^g = f^g * (g' log f + g f'/f).
	return MulOf(p, AddOf(
		MulOf(Diff(p.exp, name), LogOf(p.base)),
		MulOf(p.exp, DivOf(Diff(p.base, name), p.base)),
	))
}

// diffCall returns the outer derivative of an elementary function,
// evaluated at its argument. The chain-rule factor is applied by Diff.
func diffCall(c *Call) Expr {
	switch c.name {
	case "sin":
		return CosOf(c.arg)
	case "cos":
		return MulOf(N(-1), SinOf(c.arg))
	case "tan":
		return AddOf(N(1), PowOf(TanOf(c.arg), N(2)))
	case "exp":
		return ExpOf(c.arg)
	case "log":
		return PowOf(c.arg, N(-1))
	}
	return &Call{name: c.name + "'", arg: c.arg}
}
