// Package symbolic is the computer-algebra kernel behind the derivation
// engine. It parses expression text into immutable trees drawn from a
// closed set of shapes (rational constants, symbols, sums, products,
// powers and elementary function calls), and operates on them with
// explicit pattern matching: differentiation, pattern-based indefinite
// integration, substitution, expansion and LaTeX rendering.
//
// Constructors canonicalize as they build. Sums fold numeric terms and
// combine like terms, products fold coefficients and sum exponents of
// like bases, and both order their operands deterministically. The same
// input text therefore always yields the same tree, and structural
// equality acts as a light symbolic equality test.
package symbolic
