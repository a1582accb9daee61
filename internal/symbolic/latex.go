package symbolic

import (
	"fmt"
	"math/big"
	"strings"
)

var (
	bigOne  = big.NewInt(1)
	ratHalf = big.NewRat(1, 2)
)

// LaTeX renders e in display-math notation. Negative exponents and
// rational coefficients fold into \frac, half powers render as \sqrt,
// and the symbol pi renders as \pi.
func LaTeX(e Expr) string {
	switch v := e.(type) {
	case *Num:
		return latexNum(v)
	case *Sym:
		if v.name == "pi" {
			return `\pi`
		}
		return v.name
	case *Add:
		return latexAdd(v)
	case *Mul:
		return latexMul(v)
	case *Pow:
		return latexPow(v)
	case *Call:
		return latexCall(v)
	}
	return ""
}

func latexNum(n *Num) string {
	if n.IsInteger() {
		return n.val.RatString()
	}
	sign := ""
	r := n.val
	if r.Sign() < 0 {
		sign = "-"
		r = new(big.Rat).Neg(r)
	}
	return fmt.Sprintf(`%s\frac{%s}{%s}`, sign, r.Num().String(), r.Denom().String())
}

func latexAdd(a *Add) string {
	var sb strings.Builder
	for i, t := range a.terms {
		neg, magnitude := termSign(t)
		if i > 0 {
			if neg {
				sb.WriteString(" - ")
				sb.WriteString(LaTeX(magnitude))
				continue
			}
			sb.WriteString(" + ")
		}
		sb.WriteString(LaTeX(t))
	}
	return sb.String()
}

func latexMul(m *Mul) string {
	sign := ""
	var num, den []string
	for _, f := range m.factors {
		switch v := f.(type) {
		case *Num:
			r := v.val
			if r.Sign() < 0 {
				sign = "-"
				r = new(big.Rat).Neg(r)
			}
			if p := r.Num(); p.Cmp(bigOne) != 0 {
				num = append(num, p.String())
			}
			if q := r.Denom(); q.Cmp(bigOne) != 0 {
				den = append(den, q.String())
			}
		case *Pow:
			if n, ok := v.exp.(*Num); ok && n.Sign() < 0 {
				den = append(den, LaTeX(PowOf(v.base, numNeg(n))))
				continue
			}
			num = append(num, LaTeX(f))
		case *Add:
			num = append(num, `\left(`+LaTeX(f)+`\right)`)
		default:
			num = append(num, LaTeX(f))
		}
	}
	numStr := "1"
	if len(num) > 0 {
		numStr = strings.Join(num, " ")
	}
	if len(den) == 0 {
		return sign + numStr
	}
	return fmt.Sprintf(`%s\frac{%s}{%s}`, sign, numStr, strings.Join(den, " "))
}

func latexPow(p *Pow) string {
	if n, ok := p.exp.(*Num); ok {
		if n.val.Cmp(ratHalf) == 0 {
			return `\sqrt{` + LaTeX(p.base) + `}`
		}
		if n.Sign() < 0 {
			return fmt.Sprintf(`\frac{1}{%s}`, LaTeX(PowOf(p.base, numNeg(n))))
		}
	}
	baseStr := LaTeX(p.base)
	switch b := p.base.(type) {
	case *Add, *Mul:
		baseStr = `\left(` + baseStr + `\right)`
	case *Num:
		if b.Sign() < 0 || !b.IsInteger() {
			baseStr = `\left(` + baseStr + `\right)`
		}
	}
	return baseStr + "^{" + LaTeX(p.exp) + "}"
}

func latexCall(c *Call) string {
	arg := LaTeX(c.arg)
	switch c.name {
	case "exp":
		return "e^{" + arg + "}"
	case "sin", "cos", "tan", "log":
		return `\` + c.name + `\left(` + arg + `\right)`
	}
	return fmt.Sprintf(`\operatorname{%s}\left(%s\right)`, c.name, arg)
}
