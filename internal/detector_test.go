package internal

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/7noue/Indefinite-Integration-Generator-Basic-Patterns/internal/symbolic"
)

func mustExpr(t *testing.T, input string) symbolic.Expr {
	t.Helper()
	expr, err := symbolic.Parse(input)
	require.NoError(t, err)
	return expr
}

func TestDetectSubstitution(t *testing.T) {
	engine := newTestEngine(t)
	integrand := mustExpr(t, "x*sin(x**2)")

	candidate, found := engine.detectSubstitution(integrand)
	require.True(t, found)

	assert.True(t, candidate.U.Equal(mustExpr(t, "x**2")))
	assert.True(t, candidate.Du.Equal(mustExpr(t, "2*x")))

	wantRewritten := symbolic.MulOf(symbolic.Frac(1, 2), symbolic.SinOf(symbolic.S("u")))
	assert.True(t, candidate.Rewritten.Equal(wantRewritten))
}

func TestDetectSubstitutionFromPowerBase(t *testing.T) {
	engine := newTestEngine(t)
	integrand := mustExpr(t, "x*(x**2 + 1)**3")

	candidate, found := engine.detectSubstitution(integrand)
	require.True(t, found)
	assert.True(t, candidate.U.Equal(mustExpr(t, "x**2 + 1")))
	assert.True(t, candidate.Du.Equal(mustExpr(t, "2*x")))
}

func TestDetectSubstitutionFromExponent(t *testing.T) {
	engine := newTestEngine(t)
	integrand := mustExpr(t, "x**2*exp(x**3)")

	candidate, found := engine.detectSubstitution(integrand)
	require.True(t, found)
	assert.True(t, candidate.U.Equal(mustExpr(t, "x**3")))
	assert.True(t, candidate.Du.Equal(mustExpr(t, "3*x**2")))

	wantRewritten := symbolic.MulOf(symbolic.Frac(1, 3), symbolic.ExpOf(symbolic.S("u")))
	assert.True(t, candidate.Rewritten.Equal(wantRewritten))
}

// Substituting u back into the rewritten integrand and multiplying by
// du must reconstruct the original integrand exactly.
func TestDetectSubstitutionRoundTrip(t *testing.T) {
	engine := newTestEngine(t)
	for _, input := range []string{"x*sin(x**2)", "x*(x**2 + 1)**3", "x**2*exp(x**3)", "2*x*cos(x**2)"} {
		t.Run(input, func(t *testing.T) {
			integrand := mustExpr(t, input)
			candidate, found := engine.detectSubstitution(integrand)
			require.True(t, found)

			restored := symbolic.Simplify(symbolic.MulOf(
				symbolic.Replace(candidate.Rewritten, symbolic.S(engine.Placeholder()), candidate.U),
				candidate.Du,
			))
			assert.True(t, restored.Equal(integrand), "got %s", restored)
		})
	}
}

func TestDetectSubstitutionNoCandidate(t *testing.T) {
	engine := newTestEngine(t)
	tests := []struct {
		name  string
		input string
	}{
		{"not a product", "sin(x**2)"},
		{"sum shape", "3*x**2 + 2*x"},
		{"atomic", "x"},
		{"residual factor does not clear", "x**2*sin(x**2)"},
		{"argument is the bare variable", "x*sin(x)"},
		{"constant argument", "x*sin(2)"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, found := engine.detectSubstitution(mustExpr(t, tt.input))
			assert.False(t, found)
		})
	}
}
