package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	integration "github.com/7noue/Indefinite-Integration-Generator-Basic-Patterns"
	"github.com/7noue/Indefinite-Integration-Generator-Basic-Patterns/internal/types"
	"github.com/7noue/Indefinite-Integration-Generator-Basic-Patterns/scanner"
)

// batch command flags
var (
	batchJSONOutput bool
	batchMarkdown   bool
	batchOutPath    string
	batchQuiet      bool
	batchExtension  string
)

var batchCmd = &cobra.Command{
	Use:   "batch [files or directories...]",
	Short: "Derive every expression listed in sheet files",
	Long: `Reads expression sheets (one expression per line, # starts a comment)
and derives each expression. Directory arguments are scanned recursively
for sheets with the configured extension. Example) integen batch exercises.txt`,
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) == 0 {
			fmt.Println("error: Please provide sheet file paths")
			os.Exit(1)
		}

		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		engine, _ := buildEngine()
		runBatch(ctx, logger, engine, args, batchJSONOutput, batchMarkdown, batchOutPath, batchQuiet)
	},
}

func init() {
	batchCmd.Flags().BoolVar(&batchJSONOutput, "json", false, "Output derivation records in JSON format")
	batchCmd.Flags().BoolVar(&batchMarkdown, "markdown", false, "Render derivations as markdown")
	batchCmd.Flags().StringVarP(&batchOutPath, "output", "o", "", "Output path (stdout when empty)")
	batchCmd.Flags().BoolVarP(&batchQuiet, "quiet", "q", false, "Disable the progress bar")
	batchCmd.Flags().StringVar(&batchExtension, "ext", ".txt", "Sheet extension used when scanning directories")
}

// collectSheets expands directory arguments into the sheet files they
// contain; file arguments pass through untouched.
func collectSheets(paths []string, extension string) ([]string, error) {
	var sheets []string
	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			sheets = append(sheets, path)
			continue
		}

		found, err := scanner.New(path, extension).Scan()
		if err != nil {
			return nil, err
		}
		sheets = append(sheets, found...)
	}
	return sheets, nil
}

func runBatch(ctx context.Context, logger *zap.Logger, deriver integration.Deriver, paths []string, isJSON, isMarkdown bool, outPath string, quiet bool) {
	sheets, err := collectSheets(paths, batchExtension)
	if err != nil {
		logger.Error("Error collecting expression sheets", zap.Error(err))
		os.Exit(1)
	}

	var exprs []string
	for _, sheet := range sheets {
		fileExprs, err := integration.ReadExpressionList(sheet)
		if err != nil {
			logger.Error("Error reading expression sheet", zap.String("path", sheet), zap.Error(err))
			os.Exit(1)
		}
		exprs = append(exprs, fileExprs...)
	}
	if len(exprs) == 0 {
		fmt.Println("no expressions found in the given sheets")
		return
	}

	var results []*types.Result
	err = runWithTimeout(ctx, func() {
		results, _ = integration.ProcessExpressions(ctx, logger, deriver, exprs, !quiet)
	})
	if err != nil {
		logger.Error("Batch derivation timed out", zap.Error(err))
		os.Exit(1)
	}

	emitResults(logger, results, isJSON, isMarkdown, outPath)

	failures := countFailures(results)
	fmt.Printf("%d derived, %d failed\n", len(results)-failures, failures)
	if failures > 0 {
		os.Exit(1)
	}
}
