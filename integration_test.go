package integration

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/7noue/Indefinite-Integration-Generator-Basic-Patterns/internal/types"
)

func TestDefaultConfig(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	assert.Equal(t, "integen", cfg.Name)
	assert.Equal(t, "x", cfg.Variable)
	assert.Equal(t, "u", cfg.Placeholder)
	assert.Equal(t, ":8591", cfg.Server.Addr)
}

func TestLoadConfig(t *testing.T) {
	t.Parallel()

	t.Run("empty path returns defaults", func(t *testing.T) {
		cfg, err := LoadConfig("")
		require.NoError(t, err)
		assert.Equal(t, DefaultConfig(), cfg)
	})

	t.Run("partial file keeps defaults for absent fields", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), ".integen.yaml")
		content := "variable: t\nserver:\n  addr: \":9000\"\n"
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

		cfg, err := LoadConfig(path)
		require.NoError(t, err)
		assert.Equal(t, "t", cfg.Variable)
		assert.Equal(t, "u", cfg.Placeholder)
		assert.Equal(t, ":9000", cfg.Server.Addr)
		assert.Equal(t, "integen", cfg.Name)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
		assert.Error(t, err)
	})

	t.Run("malformed yaml", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), ".integen.yaml")
		require.NoError(t, os.WriteFile(path, []byte("variable: [unclosed"), 0o644))

		_, err := LoadConfig(path)
		assert.Error(t, err)
	})
}

func TestNewAppliesConfiguredSymbols(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	cfg.Variable = "t"
	cfg.Placeholder = "w"

	engine, err := New(cfg)
	require.NoError(t, err)
	assert.Equal(t, "t", engine.Variable())
	assert.Equal(t, "w", engine.Placeholder())
}

func TestComputeOneShot(t *testing.T) {
	t.Parallel()

	result, err := Compute("3*x**2")
	require.NoError(t, err)
	require.True(t, result.IsSuccess)
	assert.Equal(t, `x^{3} + C`, result.FinalAnswer)
}

func TestNewRejectsIdenticalSymbols(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	cfg.Variable = "u"
	cfg.Placeholder = "u"

	_, err := New(cfg)
	assert.Error(t, err)
}

func TestProcessExpressionsPreservesInputOrder(t *testing.T) {
	t.Parallel()

	engine, err := New(DefaultConfig())
	require.NoError(t, err)

	exprs := []string{"3*x**2", "exp(-x**2)", "x*sin(x**2)", "cos(x)"}
	results, err := ProcessExpressions(context.Background(), nil, engine, exprs, false)
	require.NoError(t, err)
	require.Len(t, results, len(exprs))

	assert.True(t, results[0].IsSuccess)
	assert.Equal(t, `x^{3} + C`, results[0].FinalAnswer)

	assert.False(t, results[1].IsSuccess)
	assert.Equal(t, types.MethodBasicPatterns, results[1].Method)

	assert.True(t, results[2].IsSuccess)
	assert.Equal(t, types.MethodSubstitution, results[2].Method)

	assert.True(t, results[3].IsSuccess)
	assert.Equal(t, `\sin\left(x\right) + C`, results[3].FinalAnswer)
}

func TestProcessExpressionsContextCancellation(t *testing.T) {
	t.Parallel()

	engine, err := New(DefaultConfig())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	exprs := []string{"x", "x**2", "x**3"}
	results, err := ProcessExpressions(ctx, nil, engine, exprs, false)

	assert.ErrorIs(t, err, context.Canceled)
	// Records completed before cancellation stay in place.
	assert.Len(t, results, len(exprs))
}

func TestReadExpressionList(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "batch.txt")
	content := "# polynomial warm-up\n3*x**2\n\n  x*sin(x**2)  \n# done\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	exprs, err := ReadExpressionList(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"3*x**2", "x*sin(x**2)"}, exprs)
}

func TestReadExpressionListMissingFile(t *testing.T) {
	t.Parallel()

	_, err := ReadExpressionList(filepath.Join(t.TempDir(), "absent.txt"))
	assert.Error(t, err)
}
