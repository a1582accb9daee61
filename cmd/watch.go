package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	integration "github.com/7noue/Indefinite-Integration-Generator-Basic-Patterns"
	"github.com/7noue/Indefinite-Integration-Generator-Basic-Patterns/formatter"
)

var watchMarkdown bool

var watchCmd = &cobra.Command{
	Use:   "watch [files...]",
	Short: "Watch expression sheets and re-derive them on change",
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) == 0 {
			fmt.Println("error: Please provide sheet file paths")
			os.Exit(1)
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		engine, _ := buildEngine()
		if err := runWatch(ctx, logger, engine, args, watchMarkdown); err != nil {
			logger.Error("Watcher stopped", zap.Error(err))
			os.Exit(1)
		}
	},
}

func init() {
	watchCmd.Flags().BoolVar(&watchMarkdown, "markdown", false, "Render derivations as markdown")
}

type sheetWatcher struct {
	deriver  integration.Deriver
	logger   *zap.Logger
	markdown bool
	tracked  map[string]bool
}

func runWatch(ctx context.Context, logger *zap.Logger, deriver integration.Deriver, paths []string, markdown bool) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("error creating watcher: %w", err)
	}
	defer watcher.Close()

	w := &sheetWatcher{
		deriver:  deriver,
		logger:   logger,
		markdown: markdown,
		tracked:  make(map[string]bool),
	}

	// Editors replace files on save, so the parent directory is watched
	// and events are filtered back to the named sheets.
	sheets := make([]string, 0, len(paths))
	for _, path := range paths {
		abs, err := filepath.Abs(path)
		if err != nil {
			return fmt.Errorf("error resolving %s: %w", path, err)
		}
		if w.tracked[abs] {
			continue
		}
		w.tracked[abs] = true
		sheets = append(sheets, abs)
		if err := watcher.Add(filepath.Dir(abs)); err != nil {
			return fmt.Errorf("error adding directory to watcher: %w", err)
		}
	}

	// derive everything once before waiting for changes
	for _, path := range sheets {
		w.derive(ctx, path)
	}
	logger.Info("watching expression sheets", zap.Int("sheets", len(w.tracked)))

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			w.handleEvent(ctx, event)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Error("Watcher error", zap.Error(err))
		}
	}
}

func (w *sheetWatcher) handleEvent(ctx context.Context, event fsnotify.Event) {
	if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
		return
	}

	abs, err := filepath.Abs(event.Name)
	if err != nil || !w.tracked[abs] {
		return
	}

	// wait for a while after the change to consider multiple writes as one
	time.Sleep(100 * time.Millisecond)
	w.derive(ctx, abs)
}

func (w *sheetWatcher) derive(ctx context.Context, path string) {
	exprs, err := integration.ReadExpressionList(path)
	if err != nil {
		w.logger.Error("Error reading expression sheet", zap.String("file", path), zap.Error(err))
		return
	}

	results, err := integration.ProcessExpressions(ctx, w.logger, w.deriver, exprs, false)
	if err != nil {
		w.logger.Error("Error deriving expression sheet", zap.String("file", path), zap.Error(err))
		return
	}

	for _, result := range results {
		if result == nil {
			continue
		}
		if w.markdown {
			fmt.Println(formatter.Markdown(result))
		} else {
			fmt.Println(formatter.Terminal(result))
		}
	}

	w.logger.Info("sheet derived",
		zap.String("file", path),
		zap.Int("expressions", len(results)),
		zap.Int("failures", countFailures(results)))
}
