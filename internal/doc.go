// Package internal provides the core derivation engine for indefinite
// integration.
//
// The engine takes a textual integrand, classifies which technique
// applies, and produces a complete derivation trail: the typeset
// problem statement, ordered justification steps, the antiderivative
// with its integration constant, and an independent verification by
// differentiation.
//
// Key components:
//
// Engine: the orchestrator. Its sole public operation, Compute, parses
// the input, runs the substitution detector, narrates either the
// substitution sub-steps or the direct pattern evaluation, composes
// the final answer, and attaches the verifier's back-check.
//
// Candidate: a substitution proposal (u, du/dx, and the integrand
// rewritten in terms of u) produced by the detector's conservative
// first-match search over a product's factors.
//
// classifyShape: an optional narration step noting sum-rule or
// constant-multiple applicability for integrands evaluated directly.
//
// verify: differentiates the computed antiderivative and compares the
// expanded residual against the original integrand, reporting either a
// successful back-check or a soft warning.
//
// All failures, from malformed input to unsupported integrands, are
// converted into failed result records; Compute never panics and never
// returns an error value.
//
// Usage:
//
//	engine, err := internal.NewEngine("x", "u")
//	if err != nil {
//	    // handle error
//	}
//
//	result := engine.Compute("x*sin(x**2)")
//	if result.IsSuccess {
//	    fmt.Println(result.FinalAnswer)
//	}
//
// This package is intended for internal use within the derivation tool
// and should not be imported by external packages.
package internal
