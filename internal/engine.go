package internal

import (
	"fmt"
	"time"

	"github.com/7noue/Indefinite-Integration-Generator-Basic-Patterns/internal/symbolic"
	"github.com/7noue/Indefinite-Integration-Generator-Basic-Patterns/internal/types"
)

// unsupportedMsg is the limitation wording shown when neither the
// basic pattern table nor substitution produces a closed form.
const unsupportedMsg = "Requires advanced techniques beyond Basic Patterns/U-Sub, or has no closed-form solution."

// Verification qualifiers appended below the back-check line.
const (
	verifySuccess = "**Verification Successful:** Derivative matches the integrand."
	verifyWarning = "**Verification Warning:** Symbolic equivalence to 0 not trivially established."
)

// Engine derives indefinite integrals and narrates each derivation as
// an ordered trail of display-form steps. It holds only the two symbol
// names it narrates with, so one instance is safe for concurrent use.
type Engine struct {
	variable    string
	placeholder string
	cache       *Cache
}

// NewEngine returns an engine narrating in the given integration
// variable and substitution placeholder. Empty names fall back to the
// conventional x and u. The two names must be distinct bare symbols.
func NewEngine(variable, placeholder string) (*Engine, error) {
	if variable == "" {
		variable = "x"
	}
	if placeholder == "" {
		placeholder = "u"
	}
	for _, name := range []string{variable, placeholder} {
		if err := checkSymbolName(name); err != nil {
			return nil, err
		}
	}
	if variable == placeholder {
		return nil, fmt.Errorf("integration variable and substitution placeholder must differ, both are %q", variable)
	}
	return &Engine{variable: variable, placeholder: placeholder}, nil
}

func checkSymbolName(name string) error {
	expr, err := symbolic.Parse(name)
	if err != nil {
		return fmt.Errorf("invalid symbol name %q: %w", name, err)
	}
	if _, ok := expr.(*symbolic.Sym); !ok {
		return fmt.Errorf("symbol name %q is not a bare identifier", name)
	}
	return nil
}

// Variable returns the integration variable name.
func (e *Engine) Variable() string { return e.variable }

// Placeholder returns the substitution symbol name.
func (e *Engine) Placeholder() string { return e.placeholder }

// SetCache attaches a derivation cache. Compute consults it before
// deriving and stores every finished record, so a hit replays the
// originally computed record, summary included.
func (e *Engine) SetCache(c *Cache) { e.cache = c }

// Compute derives the indefinite integral of the given expression text
// and returns the full derivation record. All failures, from malformed
// input to unsupported integrands, are encoded in the record; Compute
// never panics and never returns an error value.
func (e *Engine) Compute(input string) *types.Result {
	if e.cache != nil {
		if cached, ok := e.cache.Get(input); ok {
			return cached
		}
	}
	result := e.compute(input)
	if e.cache != nil {
		_ = e.cache.Set(input, result)
	}
	return result
}

func (e *Engine) compute(input string) (result *types.Result) {
	start := time.Now()
	result = &types.Result{}
	defer func() {
		if r := recover(); r != nil {
			result.IsSuccess = false
			result.ErrorMessage = fmt.Sprintf("Error: %v", r)
		}
	}()

	expr, err := symbolic.Parse(input)
	if err != nil {
		return fail(result, err.Error())
	}

	integrandLatex := symbolic.LaTeX(expr)
	result.Given = fmt.Sprintf(`\int \left( %s \right) \, d%s`, integrandLatex, e.variable)
	result.Steps = append(result.Steps,
		fmt.Sprintf(`\text{Identify the integrand: } f(%s) = %s`, e.variable, integrandLatex))

	var antiderivative symbolic.Expr
	if candidate, found := e.detectSubstitution(expr); found {
		result.Method = types.MethodSubstitution
		anti, ok := e.deriveBySubstitution(result, candidate)
		if !ok {
			return fail(result, unsupportedMsg)
		}
		antiderivative = anti
	} else {
		result.Method = types.MethodBasicPatterns
		if note, ok := classifyShape(expr); ok {
			result.Steps = append(result.Steps, note)
		}
		anti, ok := symbolic.Integrate(expr, e.variable)
		if !ok {
			return fail(result, unsupportedMsg)
		}
		antiderivative = anti
		result.Steps = append(result.Steps,
			fmt.Sprintf(`\text{Evaluate using basic rules: } %s`, symbolic.LaTeX(antiderivative)),
			`\text{Add the constant of integration, } C.`)
	}

	result.FinalAnswer = symbolic.LaTeX(antiderivative) + " + C"

	backCheck, verified := e.verify(expr, antiderivative)
	if verified {
		result.Verification = backCheck + "\n\n" + verifySuccess
	} else {
		result.Verification = backCheck + "\n\n" + verifyWarning
	}

	result.Summary = types.Summary{
		Runtime:    fmt.Sprintf("%.2f ms", time.Since(start).Seconds()*1000),
		Iterations: "1",
		Timestamp:  time.Now().Format("2006-01-02 15:04:05"),
	}
	result.IsSuccess = true
	return result
}

// deriveBySubstitution narrates the substitution sub-steps in fixed
// order and returns the back-substituted antiderivative. It reports
// false when the rewritten integrand has no closed form in the
// placeholder variable.
func (e *Engine) deriveBySubstitution(result *types.Result, c Candidate) (symbolic.Expr, bool) {
	duLatex := symbolic.LaTeX(c.Du)
	result.Steps = append(result.Steps,
		fmt.Sprintf(`\text{Let } %s = %s`, e.placeholder, symbolic.LaTeX(c.U)),
		fmt.Sprintf(`\text{Differentiate } %s \text{: } \frac{d%s}{d%s} = %s`,
			e.placeholder, e.placeholder, e.variable, duLatex),
		fmt.Sprintf(`\text{Isolate } d%s \text{: } d%s = \frac{d%s}{%s}`,
			e.variable, e.variable, e.placeholder, duLatex),
		`\text{Substitute into original integral:}`,
		fmt.Sprintf(`\int \left( %s \right) \, d%s`, symbolic.LaTeX(c.Rewritten), e.placeholder),
	)

	antiU, ok := symbolic.Integrate(c.Rewritten, e.placeholder)
	if !ok {
		return nil, false
	}
	result.Steps = append(result.Steps,
		fmt.Sprintf(`\text{Evaluate integral: } %s`, symbolic.LaTeX(antiU)))

	anti := symbolic.Replace(antiU, symbolic.S(e.placeholder), c.U)
	result.Steps = append(result.Steps,
		fmt.Sprintf(`\text{Substitute } %s \text{ back: } %s`, e.placeholder, symbolic.LaTeX(anti)),
		`\text{Add the constant of integration, } C.`)
	return anti, true
}

func fail(result *types.Result, msg string) *types.Result {
	result.IsSuccess = false
	result.ErrorMessage = "Error: " + msg
	return result
}
