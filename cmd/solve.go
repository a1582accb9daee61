package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	integration "github.com/7noue/Indefinite-Integration-Generator-Basic-Patterns"
	"github.com/7noue/Indefinite-Integration-Generator-Basic-Patterns/formatter"
	"github.com/7noue/Indefinite-Integration-Generator-Basic-Patterns/internal/types"
)

// solve command flags
var (
	solveJSONOutput bool
	solveMarkdown   bool
	solveOutPath    string
)

var solveCmd = &cobra.Command{
	Use:   "solve [expressions...]",
	Short: "Derive indefinite integrals step by step",
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) == 0 {
			fmt.Println("error: Please provide at least one expression")
			os.Exit(1)
		}

		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		engine, _ := buildEngine()
		runSolve(ctx, logger, engine, args, solveJSONOutput, solveMarkdown, solveOutPath)
	},
}

func init() {
	solveCmd.Flags().BoolVar(&solveJSONOutput, "json", false, "Output derivation records in JSON format")
	solveCmd.Flags().BoolVar(&solveMarkdown, "markdown", false, "Render derivations as markdown")
	solveCmd.Flags().StringVarP(&solveOutPath, "output", "o", "", "Output path (stdout when empty)")
}

func runSolve(ctx context.Context, logger *zap.Logger, deriver integration.Deriver, exprs []string, isJSON, isMarkdown bool, outPath string) {
	var results []*types.Result
	err := runWithTimeout(ctx, func() {
		results, _ = integration.ProcessExpressions(ctx, logger, deriver, exprs, false)
	})
	if err != nil {
		logger.Error("Derivation timed out", zap.Error(err))
		os.Exit(1)
	}

	emitResults(logger, results, isJSON, isMarkdown, outPath)

	if countFailures(results) > 0 {
		os.Exit(1)
	}
}

// renderResults turns derivation records into one output document in
// the requested mode.
func renderResults(results []*types.Result, isJSON, isMarkdown bool) (string, error) {
	if isJSON {
		d, err := json.MarshalIndent(results, "", "  ")
		if err != nil {
			return "", err
		}
		return string(d), nil
	}

	var builder strings.Builder
	for i, result := range results {
		if result == nil {
			continue
		}
		if isMarkdown {
			builder.WriteString(formatter.Markdown(result))
		} else {
			builder.WriteString(formatter.Terminal(result))
		}
		if i < len(results)-1 {
			builder.WriteString("\n")
		}
	}
	return builder.String(), nil
}

func emitResults(logger *zap.Logger, results []*types.Result, isJSON, isMarkdown bool, outPath string) {
	output, err := renderResults(results, isJSON, isMarkdown)
	if err != nil {
		logger.Error("Error rendering derivations", zap.Error(err))
		return
	}

	if outPath == "" {
		fmt.Println(output)
		return
	}

	if err := os.WriteFile(outPath, []byte(output), 0o644); err != nil {
		logger.Error("Error writing output file", zap.String("path", outPath), zap.Error(err))
		return
	}
	fmt.Printf("Derivations written to %s\n", outPath)
}

func countFailures(results []*types.Result) int {
	failures := 0
	for _, result := range results {
		if result == nil || !result.IsSuccess {
			failures++
		}
	}
	return failures
}
