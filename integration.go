// Package integration derives indefinite integrals of single-variable
// expressions and records each derivation as an ordered trail of LaTeX
// steps.
package integration

import (
	"context"
	"fmt"
	"os"
	"runtime"
	"strings"
	"sync"

	"github.com/schollz/progressbar/v3"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/7noue/Indefinite-Integration-Generator-Basic-Patterns/internal"
	"github.com/7noue/Indefinite-Integration-Generator-Basic-Patterns/internal/types"
)

// Deriver produces a derivation record for one integrand expression.
type Deriver interface {
	Compute(input string) *types.Result
	Variable() string
	Placeholder() string
}

// Config controls the engine symbols and the HTTP server address.
type Config struct {
	Name        string       `yaml:"name"`
	Variable    string       `yaml:"variable"`
	Placeholder string       `yaml:"placeholder"`
	Server      ServerConfig `yaml:"server"`
}

// ServerConfig holds the listen address for the derivation server.
type ServerConfig struct {
	Addr string `yaml:"addr"`
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() Config {
	return Config{
		Name:        "integen",
		Variable:    "x",
		Placeholder: "u",
		Server:      ServerConfig{Addr: ":8591"},
	}
}

// LoadConfig reads a YAML configuration file. An empty path returns
// DefaultConfig; fields absent from the file keep their defaults.
func LoadConfig(path string) (Config, error) {
	config := DefaultConfig()
	if path == "" {
		return config, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return config, err
	}
	defer f.Close()

	if err := yaml.NewDecoder(f).Decode(&config); err != nil {
		return config, fmt.Errorf("parse %s: %w", path, err)
	}

	defaults := DefaultConfig()
	if config.Name == "" {
		config.Name = defaults.Name
	}
	if config.Variable == "" {
		config.Variable = defaults.Variable
	}
	if config.Placeholder == "" {
		config.Placeholder = defaults.Placeholder
	}
	if config.Server.Addr == "" {
		config.Server.Addr = defaults.Server.Addr
	}
	return config, nil
}

// New builds a derivation engine from configuration.
func New(cfg Config) (*internal.Engine, error) {
	return internal.NewEngine(cfg.Variable, cfg.Placeholder)
}

// Compute derives a single expression with the default configuration.
func Compute(input string) (*types.Result, error) {
	engine, err := New(DefaultConfig())
	if err != nil {
		return nil, err
	}
	return engine.Compute(input), nil
}

// ProcessExpressions derives every expression concurrently and returns
// the records in input order. A failed derivation is still a record;
// the only error returned is context cancellation, with the records
// completed so far left in place.
func ProcessExpressions(
	ctx context.Context,
	logger *zap.Logger,
	deriver Deriver,
	exprs []string,
	showProgress bool,
) ([]*types.Result, error) {
	results := make([]*types.Result, len(exprs))

	var bar *progressbar.ProgressBar
	if showProgress {
		bar = progressbar.NewOptions(len(exprs),
			progressbar.OptionSetDescription("deriving"),
			progressbar.OptionEnableColorCodes(true),
			progressbar.OptionSetWidth(40),
			progressbar.OptionShowCount(),
			progressbar.OptionSetTheme(progressbar.Theme{
				Saucer:        "[green]=[reset]",
				SaucerHead:    "[green]>[reset]",
				SaucerPadding: " ",
				BarStart:      "[",
				BarEnd:        "]",
			}))
	}

	maxWorkers := runtime.NumCPU()
	sem := make(chan struct{}, maxWorkers)

	var wg sync.WaitGroup
	for i, expr := range exprs {
		if err := ctx.Err(); err != nil {
			wg.Wait()
			return results, err
		}
		select {
		case <-ctx.Done():
			wg.Wait()
			return results, ctx.Err()
		case sem <- struct{}{}:
		}

		wg.Add(1)
		go func(slot int, input string) {
			defer wg.Done()
			defer func() { <-sem }()

			result := deriver.Compute(input)
			results[slot] = result
			if !result.IsSuccess && logger != nil {
				logger.Warn("derivation failed",
					zap.String("expression", input),
					zap.String("reason", result.ErrorMessage))
			}
			if bar != nil {
				bar.Add(1)
			}
		}(i, expr)
	}
	wg.Wait()

	if bar != nil {
		fmt.Println()
	}
	return results, nil
}

// ReadExpressionList reads a batch file with one expression per line.
// Blank lines and lines starting with # are skipped.
func ReadExpressionList(filename string) ([]string, error) {
	content, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}

	var exprs []string
	for _, line := range strings.Split(string(content), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		exprs = append(exprs, line)
	}
	return exprs, nil
}
