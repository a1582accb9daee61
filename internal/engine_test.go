package internal

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/7noue/Indefinite-Integration-Generator-Basic-Patterns/internal/types"
)

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	engine, err := NewEngine("", "")
	require.NoError(t, err)
	return engine
}

func TestNewEngine(t *testing.T) {
	t.Run("defaults to x and u", func(t *testing.T) {
		engine, err := NewEngine("", "")
		require.NoError(t, err)
		assert.Equal(t, "x", engine.Variable())
		assert.Equal(t, "u", engine.Placeholder())
	})

	t.Run("custom symbols", func(t *testing.T) {
		engine, err := NewEngine("t", "w")
		require.NoError(t, err)
		assert.Equal(t, "t", engine.Variable())
		assert.Equal(t, "w", engine.Placeholder())
	})

	t.Run("rejects identical symbols", func(t *testing.T) {
		_, err := NewEngine("x", "x")
		assert.Error(t, err)
	})

	t.Run("rejects non-identifier names", func(t *testing.T) {
		_, err := NewEngine("2x", "u")
		assert.Error(t, err)

		_, err = NewEngine("x+1", "u")
		assert.Error(t, err)
	})
}

func TestComputeBasicPolynomial(t *testing.T) {
	result := newTestEngine(t).Compute("3*x**2 + 2*x")

	require.True(t, result.IsSuccess)
	assert.Empty(t, result.ErrorMessage)
	assert.Equal(t, types.MethodBasicPatterns, result.Method)
	assert.Equal(t, `\int \left( 3 x^{2} + 2 x \right) \, dx`, result.Given)
	assert.Equal(t, `x^{3} + x^{2} + C`, result.FinalAnswer)

	expectedSteps := []string{
		`\text{Identify the integrand: } f(x) = 3 x^{2} + 2 x`,
		`\text{Apply the sum rule: integrate each term separately.}`,
		`\text{Evaluate using basic rules: } x^{3} + x^{2}`,
		`\text{Add the constant of integration, } C.`,
	}
	assert.Equal(t, expectedSteps, result.Steps)

	assert.Contains(t, result.Verification, "**Verification Successful:**")
	assert.Equal(t, "1", result.Summary.Iterations)
	assert.NotEmpty(t, result.Summary.Runtime)
	assert.NotEmpty(t, result.Summary.Timestamp)
}

func TestComputeSubstitution(t *testing.T) {
	result := newTestEngine(t).Compute("x*sin(x**2)")

	require.True(t, result.IsSuccess)
	assert.Equal(t, types.MethodSubstitution, result.Method)
	assert.Equal(t, `\int \left( x \sin\left(x^{2}\right) \right) \, dx`, result.Given)
	assert.Equal(t, `-\frac{\cos\left(x^{2}\right)}{2} + C`, result.FinalAnswer)

	expectedSteps := []string{
		`\text{Identify the integrand: } f(x) = x \sin\left(x^{2}\right)`,
		`\text{Let } u = x^{2}`,
		`\text{Differentiate } u \text{: } \frac{du}{dx} = 2 x`,
		`\text{Isolate } dx \text{: } dx = \frac{du}{2 x}`,
		`\text{Substitute into original integral:}`,
		`\int \left( \frac{\sin\left(u\right)}{2} \right) \, du`,
		`\text{Evaluate integral: } -\frac{\cos\left(u\right)}{2}`,
		`\text{Substitute } u \text{ back: } -\frac{\cos\left(x^{2}\right)}{2}`,
		`\text{Add the constant of integration, } C.`,
	}
	assert.Equal(t, expectedSteps, result.Steps)

	wantBackCheck := `\text{Back-check by differentiating: } ` +
		`\frac{d}{dx}\left[-\frac{\cos\left(x^{2}\right)}{2}\right] = x \sin\left(x^{2}\right)`
	assert.True(t, strings.HasPrefix(result.Verification, wantBackCheck))
	assert.Contains(t, result.Verification, "**Verification Successful:**")
}

func TestComputeChainThroughPowerBase(t *testing.T) {
	result := newTestEngine(t).Compute("x*(x**2 + 1)**3")

	require.True(t, result.IsSuccess)
	assert.Equal(t, types.MethodSubstitution, result.Method)
	assert.Equal(t, `\frac{\left(x^{2} + 1\right)^{4}}{8} + C`, result.FinalAnswer)
	assert.Contains(t, result.Steps, `\text{Let } u = x^{2} + 1`)
	assert.Contains(t, result.Verification, "**Verification Successful:**")
}

func TestComputeConstantMultipleNote(t *testing.T) {
	result := newTestEngine(t).Compute("2*cos(x)")

	require.True(t, result.IsSuccess)
	assert.Equal(t, types.MethodBasicPatterns, result.Method)
	assert.Contains(t, result.Steps, `\text{Factor out the constant and integrate the remaining pattern.}`)
	assert.Equal(t, `2 \sin\left(x\right) + C`, result.FinalAnswer)
}

func TestComputeUnsupportedIntegrand(t *testing.T) {
	result := newTestEngine(t).Compute("exp(-x**2)")

	require.False(t, result.IsSuccess)
	assert.Equal(t, "Error: "+unsupportedMsg, result.ErrorMessage)
	assert.Equal(t, types.MethodBasicPatterns, result.Method)
	assert.Empty(t, result.FinalAnswer)
	assert.Empty(t, result.Verification)
	assert.Empty(t, result.Summary.Runtime)
}

func TestComputeSubstitutionWithoutClosedForm(t *testing.T) {
	// u = x**2 clears x, but the rewritten integrand u*sin(u)/2 has no
	// closed form in the basic pattern table.
	result := newTestEngine(t).Compute("u*x*sin(x**2)")

	require.False(t, result.IsSuccess)
	assert.Equal(t, types.MethodSubstitution, result.Method)
	assert.Equal(t, "Error: "+unsupportedMsg, result.ErrorMessage)
}

func TestComputeMalformedInput(t *testing.T) {
	result := newTestEngine(t).Compute("3x^^2")

	require.False(t, result.IsSuccess)
	assert.True(t, strings.HasPrefix(result.ErrorMessage, "Error: "))
	assert.Contains(t, result.ErrorMessage, "unexpected")
	assert.Contains(t, result.ErrorMessage, "expected notation")
	assert.Empty(t, result.Given)
	assert.Empty(t, result.Steps)
	assert.Empty(t, result.FinalAnswer)
}

func TestComputeIsDeterministic(t *testing.T) {
	engine := newTestEngine(t)
	for _, input := range []string{"3*x**2 + 2*x", "x*sin(x**2)", "exp(-x**2)", "3x^^2"} {
		first := engine.Compute(input)
		second := engine.Compute(input)
		diff := cmp.Diff(first, second, cmpopts.IgnoreFields(types.Result{}, "Summary"))
		assert.Empty(t, diff, "input %q", input)
	}
}

func TestComputeWithCustomSymbols(t *testing.T) {
	engine, err := NewEngine("t", "w")
	require.NoError(t, err)

	result := engine.Compute("t*cos(t**2)")
	require.True(t, result.IsSuccess)
	assert.Equal(t, `\int \left( t \cos\left(t^{2}\right) \right) \, dt`, result.Given)
	assert.Contains(t, result.Steps, `\text{Let } w = t^{2}`)
	assert.Contains(t, result.Steps, `\text{Differentiate } w \text{: } \frac{dw}{dt} = 2 t`)
	assert.Equal(t, `\frac{\sin\left(t^{2}\right)}{2} + C`, result.FinalAnswer)
}
