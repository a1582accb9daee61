package symbolic

import (
	"math/big"
	"sort"
	"strings"
)

// Expr is an immutable symbolic expression. The concrete shapes form a
// closed set: *Num, *Sym, *Add, *Mul, *Pow and *Call. Constructors
// canonicalize on build (flattening, numeric folding, like-term and
// like-base combining, deterministic ordering), so structural equality
// via Equal doubles as a light symbolic equality check.
type Expr interface {
	String() string
	Equal(other Expr) bool

	// rank orders the closed shape set for canonical sorting.
	rank() int
}

const (
	rankNum = iota
	rankSym
	rankPow
	rankCall
	rankAdd
	rankMul
)

// Num is an exact rational constant.
type Num struct{ val *big.Rat }

// N builds an integer constant.
func N(n int64) *Num { return &Num{val: new(big.Rat).SetInt64(n)} }

// Frac builds the rational constant p/q. q must be non-zero.
func Frac(p, q int64) *Num {
	if q == 0 {
		panic("symbolic: Frac with zero denominator")
	}
	return &Num{val: big.NewRat(p, q)}
}

func numFromString(s string) (*Num, bool) {
	r, ok := new(big.Rat).SetString(s)
	if !ok {
		return nil, false
	}
	return &Num{val: r}, true
}

func (n *Num) String() string { return n.val.RatString() }
func (n *Num) Equal(other Expr) bool {
	o, ok := other.(*Num)
	return ok && n.val.Cmp(o.val) == 0
}
func (n *Num) rank() int { return rankNum }

func (n *Num) IsZero() bool    { return n.val.Sign() == 0 }
func (n *Num) IsOne() bool     { return n.val.Cmp(ratOne) == 0 }
func (n *Num) IsNegOne() bool  { return n.val.Cmp(ratNegOne) == 0 }
func (n *Num) IsInteger() bool { return n.val.IsInt() }
func (n *Num) Sign() int       { return n.val.Sign() }
func (n *Num) Rat() *big.Rat   { return new(big.Rat).Set(n.val) }

var (
	ratOne    = new(big.Rat).SetInt64(1)
	ratNegOne = new(big.Rat).SetInt64(-1)
)

func numAdd(a, b *Num) *Num { return &Num{val: new(big.Rat).Add(a.val, b.val)} }
func numMul(a, b *Num) *Num { return &Num{val: new(big.Rat).Mul(a.val, b.val)} }
func numNeg(a *Num) *Num    { return &Num{val: new(big.Rat).Neg(a.val)} }
func numRecip(a *Num) *Num {
	if a.IsZero() {
		panic("symbolic: reciprocal of zero")
	}
	return &Num{val: new(big.Rat).Inv(a.val)}
}

// Sym is a named symbol: the integration variable, the substitution
// placeholder, or a constant such as pi.
type Sym struct{ name string }

func S(name string) *Sym { return &Sym{name: name} }

func (s *Sym) String() string { return s.name }
func (s *Sym) Equal(other Expr) bool {
	o, ok := other.(*Sym)
	return ok && s.name == o.name
}
func (s *Sym) rank() int    { return rankSym }
func (s *Sym) Name() string { return s.name }

// Add is a sum of two or more terms in canonical order.
type Add struct{ terms []Expr }

// Mul is a product of two or more factors: an optional leading numeric
// coefficient followed by symbolic factors in canonical order.
type Mul struct{ factors []Expr }

// Pow is base raised to exponent.
type Pow struct{ base, exp Expr }

// Call is a named elementary function applied to one argument.
type Call struct {
	name string
	arg  Expr
}

func (a *Add) Terms() []Expr   { return a.terms }
func (m *Mul) Factors() []Expr { return m.factors }
func (p *Pow) Base() Expr      { return p.base }
func (p *Pow) Exponent() Expr  { return p.exp }
func (c *Call) Name() string   { return c.name }
func (c *Call) Arg() Expr      { return c.arg }

func (a *Add) rank() int  { return rankAdd }
func (m *Mul) rank() int  { return rankMul }
func (p *Pow) rank() int  { return rankPow }
func (c *Call) rank() int { return rankCall }

// AddOf builds the canonical sum of the given terms: nested sums are
// flattened, numeric terms folded into one constant, and terms sharing
// a symbolic core have their coefficients combined.
func AddOf(terms ...Expr) Expr {
	flat := make([]Expr, 0, len(terms))
	for _, t := range terms {
		if inner, ok := t.(*Add); ok {
			flat = append(flat, inner.terms...)
		} else {
			flat = append(flat, t)
		}
	}

	constant := N(0)
	coeffs := map[string]*Num{}
	cores := map[string]Expr{}
	order := []string{}
	for _, t := range flat {
		if n, ok := t.(*Num); ok {
			constant = numAdd(constant, n)
			continue
		}
		coeff, core := splitCoeff(t)
		key := core.String()
		if _, seen := coeffs[key]; !seen {
			order = append(order, key)
			coeffs[key] = N(0)
			cores[key] = core
		}
		coeffs[key] = numAdd(coeffs[key], coeff)
	}

	result := make([]Expr, 0, len(order)+1)
	for _, key := range order {
		coeff := coeffs[key]
		if coeff.IsZero() {
			continue
		}
		if coeff.IsOne() {
			result = append(result, cores[key])
		} else {
			result = append(result, MulOf(coeff, cores[key]))
		}
	}
	sortTermsCanonical(result)
	if !constant.IsZero() {
		result = append(result, constant)
	}

	switch len(result) {
	case 0:
		return N(0)
	case 1:
		return result[0]
	}
	return &Add{terms: result}
}

// sortTermsCanonical orders sum terms by descending core shape rank and
// rendered form, which keeps polynomials in falling-degree order.
func sortTermsCanonical(terms []Expr) {
	type keyed struct {
		e    Expr
		rank int
		key  string
	}
	ks := make([]keyed, len(terms))
	for i, t := range terms {
		_, core := splitCoeff(t)
		ks[i] = keyed{e: t, rank: core.rank(), key: core.String()}
	}
	sort.SliceStable(ks, func(i, j int) bool {
		if ks[i].rank != ks[j].rank {
			return ks[i].rank > ks[j].rank
		}
		return ks[i].key > ks[j].key
	})
	for i := range ks {
		terms[i] = ks[i].e
	}
}

// SubOf builds a - b.
func SubOf(a, b Expr) Expr { return AddOf(a, MulOf(N(-1), b)) }

// MulOf builds the canonical product of the given factors: nested
// products are flattened, numeric factors folded into one leading
// coefficient, and factors sharing a base have their exponents summed.
func MulOf(factors ...Expr) Expr {
	flat := make([]Expr, 0, len(factors))
	for _, f := range factors {
		if inner, ok := f.(*Mul); ok {
			flat = append(flat, inner.factors...)
		} else {
			flat = append(flat, f)
		}
	}

	coeff := N(1)
	type group struct {
		base Expr
		exps []Expr
	}
	groups := map[string]*group{}
	order := []string{}
	for _, f := range flat {
		if n, ok := f.(*Num); ok {
			coeff = numMul(coeff, n)
			continue
		}
		base, exp := splitPower(f)
		key := base.String()
		g, seen := groups[key]
		if !seen {
			g = &group{base: base}
			groups[key] = g
			order = append(order, key)
		}
		g.exps = append(g.exps, exp)
	}
	if coeff.IsZero() {
		return N(0)
	}

	rest := make([]Expr, 0, len(order))
	for _, key := range order {
		g := groups[key]
		combined := PowOf(g.base, AddOf(g.exps...))
		if n, ok := combined.(*Num); ok {
			coeff = numMul(coeff, n)
			continue
		}
		rest = append(rest, combined)
	}
	if coeff.IsZero() {
		return N(0)
	}
	sortFactorsCanonical(rest)

	if len(rest) == 0 {
		return coeff
	}
	if coeff.IsOne() {
		if len(rest) == 1 {
			return rest[0]
		}
		return &Mul{factors: rest}
	}
	return &Mul{factors: append([]Expr{coeff}, rest...)}
}

func sortFactorsCanonical(factors []Expr) {
	type keyed struct {
		e    Expr
		rank int
		key  string
	}
	ks := make([]keyed, len(factors))
	for i, f := range factors {
		ks[i] = keyed{e: f, rank: f.rank(), key: f.String()}
	}
	sort.SliceStable(ks, func(i, j int) bool {
		if ks[i].rank != ks[j].rank {
			return ks[i].rank < ks[j].rank
		}
		return ks[i].key < ks[j].key
	})
	for i := range ks {
		factors[i] = ks[i].e
	}
}

// DivOf builds a / b as a * b^-1.
func DivOf(a, b Expr) Expr { return MulOf(a, PowOf(b, N(-1))) }

// PowOf builds the canonical power base^exp.
func PowOf(base, exp Expr) Expr {
	if en, ok := exp.(*Num); ok {
		if en.IsZero() {
			return N(1)
		}
		if en.IsOne() {
			return base
		}
	}
	if bn, ok := base.(*Num); ok {
		if bn.IsZero() {
			if en, ok2 := exp.(*Num); ok2 && en.Sign() > 0 {
				return N(0)
			}
			return &Pow{base: base, exp: exp}
		}
		if bn.IsOne() {
			return N(1)
		}
		if en, ok2 := exp.(*Num); ok2 && en.IsInteger() {
			if folded, ok3 := powNum(bn, en); ok3 {
				return folded
			}
		}
	}
	// Integer powers distribute over products, so quotients built as
	// a*b^-1 cancel factor by factor.
	if en, ok := exp.(*Num); ok && en.IsInteger() {
		if m, ok2 := base.(*Mul); ok2 {
			parts := make([]Expr, len(m.factors))
			for i, f := range m.factors {
				parts[i] = PowOf(f, en)
			}
			return MulOf(parts...)
		}
	}
	if inner, ok := base.(*Pow); ok {
		return PowOf(inner.base, MulOf(inner.exp, exp))
	}
	return &Pow{base: base, exp: exp}
}

// powNum folds an integer power of a rational, bounded to keep results
// small.
func powNum(base, exp *Num) (*Num, bool) {
	e := exp.val.Num().Int64()
	if e > 20 || e < -20 {
		return nil, false
	}
	result := N(1)
	neg := e < 0
	if neg {
		e = -e
	}
	for i := int64(0); i < e; i++ {
		result = numMul(result, base)
	}
	if neg {
		result = numRecip(result)
	}
	return result, true
}

// SqrtOf builds the square root as a rational power.
func SqrtOf(arg Expr) Expr { return PowOf(arg, Frac(1, 2)) }

// CallOf builds a named function application with a few exact
// simplifications (sin 0, cos 0, exp 0, log 1, exp∘log, log∘exp).
func CallOf(name string, arg Expr) Expr {
	if n, ok := arg.(*Num); ok {
		switch {
		case name == "sin" && n.IsZero():
			return N(0)
		case name == "cos" && n.IsZero():
			return N(1)
		case name == "tan" && n.IsZero():
			return N(0)
		case name == "exp" && n.IsZero():
			return N(1)
		case name == "log" && n.IsOne():
			return N(0)
		}
	}
	if inner, ok := arg.(*Call); ok {
		if name == "exp" && inner.name == "log" {
			return inner.arg
		}
		if name == "log" && inner.name == "exp" {
			return inner.arg
		}
	}
	return &Call{name: name, arg: arg}
}

func SinOf(arg Expr) Expr { return CallOf("sin", arg) }
func CosOf(arg Expr) Expr { return CallOf("cos", arg) }
func TanOf(arg Expr) Expr { return CallOf("tan", arg) }
func ExpOf(arg Expr) Expr { return CallOf("exp", arg) }
func LogOf(arg Expr) Expr { return CallOf("log", arg) }

// splitCoeff peels the leading numeric coefficient off a canonical
// product, returning (1, e) when there is none.
func splitCoeff(e Expr) (*Num, Expr) {
	m, ok := e.(*Mul)
	if !ok || len(m.factors) < 2 {
		return N(1), e
	}
	coeff, ok := m.factors[0].(*Num)
	if !ok {
		return N(1), e
	}
	rest := m.factors[1:]
	if len(rest) == 1 {
		return coeff, rest[0]
	}
	return coeff, &Mul{factors: rest}
}

// splitPower views any factor as base^exp.
func splitPower(e Expr) (base, exp Expr) {
	if p, ok := e.(*Pow); ok {
		return p.base, p.exp
	}
	return e, N(1)
}

func (a *Add) Equal(other Expr) bool {
	o, ok := other.(*Add)
	if !ok || len(a.terms) != len(o.terms) {
		return false
	}
	for i := range a.terms {
		if !a.terms[i].Equal(o.terms[i]) {
			return false
		}
	}
	return true
}

func (m *Mul) Equal(other Expr) bool {
	o, ok := other.(*Mul)
	if !ok || len(m.factors) != len(o.factors) {
		return false
	}
	for i := range m.factors {
		if !m.factors[i].Equal(o.factors[i]) {
			return false
		}
	}
	return true
}

func (p *Pow) Equal(other Expr) bool {
	o, ok := other.(*Pow)
	return ok && p.base.Equal(o.base) && p.exp.Equal(o.exp)
}

func (c *Call) Equal(other Expr) bool {
	o, ok := other.(*Call)
	return ok && c.name == o.name && c.arg.Equal(o.arg)
}

func (a *Add) String() string {
	var sb strings.Builder
	for i, t := range a.terms {
		neg, magnitude := termSign(t)
		switch {
		case i == 0 && neg:
			sb.WriteString("-")
			sb.WriteString(magnitude.String())
		case i == 0:
			sb.WriteString(t.String())
		case neg:
			sb.WriteString(" - ")
			sb.WriteString(magnitude.String())
		default:
			sb.WriteString(" + ")
			sb.WriteString(t.String())
		}
	}
	return sb.String()
}

// termSign splits a term into its sign and magnitude for rendering
// sums with " - " between terms instead of leading minus signs.
func termSign(t Expr) (negative bool, magnitude Expr) {
	if n, ok := t.(*Num); ok {
		if n.Sign() < 0 {
			return true, numNeg(n)
		}
		return false, t
	}
	coeff, core := splitCoeff(t)
	if coeff.Sign() < 0 {
		return true, MulOf(numNeg(coeff), core)
	}
	return false, t
}

func (m *Mul) String() string {
	parts := make([]string, 0, len(m.factors))
	for _, f := range m.factors {
		s := f.String()
		if _, isAdd := f.(*Add); isAdd {
			s = "(" + s + ")"
		}
		parts = append(parts, s)
	}
	return strings.Join(parts, "*")
}

func (p *Pow) String() string {
	baseStr := p.base.String()
	switch b := p.base.(type) {
	case *Add, *Mul:
		baseStr = "(" + baseStr + ")"
	case *Num:
		if b.Sign() < 0 || !b.IsInteger() {
			baseStr = "(" + baseStr + ")"
		}
	}
	expStr := p.exp.String()
	switch e := p.exp.(type) {
	case *Num:
		if e.Sign() < 0 || !e.IsInteger() {
			expStr = "(" + expStr + ")"
		}
	case *Sym:
	default:
		expStr = "(" + expStr + ")"
	}
	return baseStr + "^" + expStr
}

func (c *Call) String() string { return c.name + "(" + c.arg.String() + ")" }

// Simplify rebuilds an expression bottom-up through the canonicalizing
// constructors. Constructor-built trees are already canonical, so this
// is mainly useful after structural surgery such as Replace.
func Simplify(e Expr) Expr {
	switch v := e.(type) {
	case *Add:
		terms := make([]Expr, len(v.terms))
		for i, t := range v.terms {
			terms[i] = Simplify(t)
		}
		return AddOf(terms...)
	case *Mul:
		factors := make([]Expr, len(v.factors))
		for i, f := range v.factors {
			factors[i] = Simplify(f)
		}
		return MulOf(factors...)
	case *Pow:
		return PowOf(Simplify(v.base), Simplify(v.exp))
	case *Call:
		return CallOf(v.name, Simplify(v.arg))
	}
	return e
}

// HasSym reports whether the named symbol occurs anywhere in e.
func HasSym(e Expr, name string) bool {
	switch v := e.(type) {
	case *Sym:
		return v.name == name
	case *Add:
		for _, t := range v.terms {
			if HasSym(t, name) {
				return true
			}
		}
	case *Mul:
		for _, f := range v.factors {
			if HasSym(f, name) {
				return true
			}
		}
	case *Pow:
		return HasSym(v.base, name) || HasSym(v.exp, name)
	case *Call:
		return HasSym(v.arg, name)
	}
	return false
}

// Replace substitutes every occurrence of target inside e with repl,
// rebuilding the surrounding structure canonically.
func Replace(e, target, repl Expr) Expr {
	if e.Equal(target) {
		return repl
	}
	switch v := e.(type) {
	case *Add:
		terms := make([]Expr, len(v.terms))
		for i, t := range v.terms {
			terms[i] = Replace(t, target, repl)
		}
		return AddOf(terms...)
	case *Mul:
		factors := make([]Expr, len(v.factors))
		for i, f := range v.factors {
			factors[i] = Replace(f, target, repl)
		}
		return MulOf(factors...)
	case *Pow:
		return PowOf(Replace(v.base, target, repl), Replace(v.exp, target, repl))
	case *Call:
		return CallOf(v.name, Replace(v.arg, target, repl))
	}
	return e
}

// Expand distributes products over sums and unrolls small integer
// powers of sums, so that subtraction of equivalent polynomials
// cancels term by term.
func Expand(e Expr) Expr {
	switch v := e.(type) {
	case *Add:
		terms := make([]Expr, len(v.terms))
		for i, t := range v.terms {
			terms[i] = Expand(t)
		}
		return AddOf(terms...)
	case *Mul:
		expanded := make([]Expr, len(v.factors))
		for i, f := range v.factors {
			expanded[i] = Expand(f)
		}
		for i, f := range expanded {
			a, ok := f.(*Add)
			if !ok {
				continue
			}
			rest := make([]Expr, 0, len(expanded)-1)
			for j, other := range expanded {
				if j != i {
					rest = append(rest, other)
				}
			}
			terms := make([]Expr, len(a.terms))
			for k, t := range a.terms {
				terms[k] = Expand(MulOf(append([]Expr{t}, rest...)...))
			}
			return AddOf(terms...)
		}
		return MulOf(expanded...)
	case *Pow:
		if n, ok := v.exp.(*Num); ok && n.IsInteger() && n.Sign() > 0 {
			if deg := n.val.Num().Int64(); deg <= 10 {
				base := Expand(v.base)
				result := Expr(N(1))
				for i := int64(0); i < deg; i++ {
					result = Expand(MulOf(result, base))
				}
				return result
			}
		}
		return PowOf(Expand(v.base), Expand(v.exp))
	case *Call:
		return CallOf(v.name, Expand(v.arg))
	}
	return e
}

// NormalizeTrig rewrites tangents as sine/cosine quotients so that
// residual comparison can cancel derivative forms against the original
// integrand.
func NormalizeTrig(e Expr) Expr {
	switch v := e.(type) {
	case *Add:
		terms := make([]Expr, len(v.terms))
		for i, t := range v.terms {
			terms[i] = NormalizeTrig(t)
		}
		return AddOf(terms...)
	case *Mul:
		factors := make([]Expr, len(v.factors))
		for i, f := range v.factors {
			factors[i] = NormalizeTrig(f)
		}
		return MulOf(factors...)
	case *Pow:
		return PowOf(NormalizeTrig(v.base), NormalizeTrig(v.exp))
	case *Call:
		arg := NormalizeTrig(v.arg)
		if v.name == "tan" {
			return DivOf(SinOf(arg), CosOf(arg))
		}
		return CallOf(v.name, arg)
	}
	return e
}

// IsZero reports whether e is the numeric constant zero.
func IsZero(e Expr) bool {
	n, ok := e.(*Num)
	return ok && n.IsZero()
}
