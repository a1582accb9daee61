package formatter

import (
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"

	"github.com/7noue/Indefinite-Integration-Generator-Basic-Patterns/internal/types"
)

func init() {
	color.NoColor = true
}

const (
	verMath   = `\text{Back-check by differentiating: } \frac{d}{dx}\left[x^{3} + x^{2}\right] = 3 x^{2} + 2 x`
	verStatus = `**Verification Successful:** Derivative matches the integrand.`
)

func successResult() *types.Result {
	return &types.Result{
		Given:  `\int \left( 3 x^{2} + 2 x \right) \, dx`,
		Method: types.MethodBasicPatterns,
		Steps: []string{
			`\text{Identify the integrand: } f(x) = 3 x^{2} + 2 x`,
			`\text{Apply the sum rule: integrate each term separately.}`,
			`\text{Evaluate using basic rules: } x^{3} + x^{2}`,
			`\text{Add the constant of integration, } C.`,
		},
		FinalAnswer:  `x^{3} + x^{2} + C`,
		Verification: verMath + "\n\n" + verStatus,
		Summary: types.Summary{
			Runtime:    "0.42 ms",
			Iterations: "1",
			Timestamp:  "2026-08-25 14:03:22",
		},
		IsSuccess: true,
	}
}

func TestTerminalSuccess(t *testing.T) {
	expected := `Solution
Method: Basic Standard Patterns
Given: \int \left( 3 x^{2} + 2 x \right) \, dx
Step 1. \text{Identify the integrand: } f(x) = 3 x^{2} + 2 x
Step 2. \text{Apply the sum rule: integrate each term separately.}
Step 3. \text{Evaluate using basic rules: } x^{3} + x^{2}
Step 4. \text{Add the constant of integration, } C.
Final Answer: x^{3} + x^{2} + C
Verification:
  \text{Back-check by differentiating: } \frac{d}{dx}\left[x^{3} + x^{2}\right] = 3 x^{2} + 2 x
  Verification Successful: Derivative matches the integrand.
Runtime: 0.42 ms  Iterations: 1  Computed At: 14:03:22
`

	assert.Equal(t, expected, Terminal(successResult()))
}

func TestTerminalParseFailure(t *testing.T) {
	result := &types.Result{
		ErrorMessage: `Error: unexpected "x" at offset 1`,
		IsSuccess:    false,
	}

	expected := "Solution\nError: unexpected \"x\" at offset 1\n"
	assert.Equal(t, expected, Terminal(result))
}

func TestTerminalUnsupportedIntegrand(t *testing.T) {
	result := &types.Result{
		Given:  `\int \left( e^{-x^{2}} \right) \, dx`,
		Method: types.MethodBasicPatterns,
		Steps: []string{
			`\text{Identify the integrand: } f(x) = e^{-x^{2}}`,
		},
		ErrorMessage: "Error: Requires advanced techniques beyond Basic Patterns/U-Sub, or has no closed-form solution.",
		IsSuccess:    false,
	}

	expected := `Solution
Method: Basic Standard Patterns
Given: \int \left( e^{-x^{2}} \right) \, dx
Step 1. \text{Identify the integrand: } f(x) = e^{-x^{2}}
Error: Requires advanced techniques beyond Basic Patterns/U-Sub, or has no closed-form solution.
`
	assert.Equal(t, expected, Terminal(result))
}

func TestTerminalVerificationWarning(t *testing.T) {
	result := successResult()
	result.Verification = verMath + "\n\n" + `**Verification Warning:** Symbolic equivalence to 0 not trivially established.`

	out := Terminal(result)
	assert.Contains(t, out, "  Verification Warning: Symbolic equivalence to 0 not trivially established.\n")
	assert.NotContains(t, out, "**")
}

func TestMarkdownSuccess(t *testing.T) {
	result := successResult()

	expected := "## Solution\n\n" +
		"**Method:** " + types.MethodBasicPatterns + "\n\n" +
		"**Given:**\n" + mathBlock(result.Given) + "\n" +
		"**Step 1.**\n" + mathBlock(result.Steps[0]) + "\n" +
		"**Step 2.**\n" + mathBlock(result.Steps[1]) + "\n" +
		"**Step 3.**\n" + mathBlock(result.Steps[2]) + "\n" +
		"**Step 4.**\n" + mathBlock(result.Steps[3]) + "\n" +
		"**Final Answer:**\n" + mathBlock(result.FinalAnswer) + "\n" +
		"**Verification:**\n" + mathBlock(verMath) + "\n" +
		verStatus + "\n\n" +
		"_Runtime: 0.42 ms | Iterations: 1 | Computed At: 14:03:22_\n"

	assert.Equal(t, expected, Markdown(result))
}

func TestMarkdownParseFailure(t *testing.T) {
	result := &types.Result{
		ErrorMessage: "Error: unexpected end of input",
		IsSuccess:    false,
	}

	expected := "## Solution\n\nError: unexpected end of input\n"
	assert.Equal(t, expected, Markdown(result))
}

func TestSplitVerification(t *testing.T) {
	math, status := splitVerification(verMath + "\n\n" + verStatus)
	assert.Equal(t, verMath, math)
	assert.Equal(t, verStatus, status)

	math, status = splitVerification("lone formula")
	assert.Equal(t, "lone formula", math)
	assert.Empty(t, status)
}
