package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/fsnotify/fsnotify"
	"github.com/leapstack-labs/meshlint/pkg/templater"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

// NewWatchCommand creates the watch command.
func NewWatchCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch [dir]",
		Short: "Re-extract model scripts whenever they change",
		Long: `Watch a directory for changes to .sql model scripts and re-run the
templater on every save, reporting whether each script still yields a
lintable SELECT statement.

Intended as a fast feedback loop while editing models; pair it with your
editor's linter running on the extracted SQL.`,
		Example: `  # Watch the current directory
  meshlint watch

  # Watch a models directory
  meshlint watch ./models`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}
			return runWatch(cmd, dir)
		},
	}

	return cmd
}

func runWatch(cmd *cobra.Command, dir string) error {
	cmdCtx := NewCommandContext(cmd)
	logger := cmdCtx.Logger
	r := cmdCtx.Renderer

	opts, err := cmdCtx.Cfg.TemplaterOptions()
	if err != nil {
		return err
	}

	if _, err := os.Stat(dir); err != nil {
		return fmt.Errorf("cannot watch %s: %w", dir, err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer watcher.Close()

	// Watch the directory and all subdirectories.
	err = filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() && !strings.HasPrefix(info.Name(), ".") {
			return watcher.Add(path)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to watch %s: %w", dir, err)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	r.Notice(fmt.Sprintf("Watching %s for model changes (Ctrl-C to stop)", dir))

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		for {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case event, ok := <-watcher.Events:
				if !ok {
					return nil
				}
				handleWatchEvent(cmdCtx, watcher, event, opts)
			case err, ok := <-watcher.Errors:
				if !ok {
					return nil
				}
				logger.Warn("watch error", "error", err)
			}
		}
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

func handleWatchEvent(cmdCtx *CommandContext, watcher *fsnotify.Watcher, event fsnotify.Event, opts templater.Options) {
	logger := cmdCtx.Logger
	r := cmdCtx.Renderer

	// Newly created directories need to be watched too.
	if event.Has(fsnotify.Create) {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			if err := watcher.Add(event.Name); err != nil {
				logger.Warn("failed to watch new directory", "dir", event.Name, "error", err)
			}
			return
		}
	}

	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
		return
	}
	if !strings.HasSuffix(event.Name, ".sql") {
		return
	}

	logger.Debug("model changed", "file", event.Name, "op", event.Op.String())

	src, err := os.ReadFile(event.Name)
	if err != nil {
		logger.Warn("failed to read changed file", "file", event.Name, "error", err)
		return
	}

	tf, err := templater.Process(string(src), opts)
	switch {
	case errors.Is(err, templater.ErrNoSelect), errors.Is(err, templater.ErrEmptyInput):
		r.Printf("%s  %s\n", r.Styles().Warning.Render("skip"), fmt.Sprintf("%s: %v", event.Name, err))
	case err != nil:
		r.Printf("%s  %s: %v\n", r.Styles().Error.Render("fail"), event.Name, err)
	default:
		r.Printf("%s    %s (%d bytes extracted)\n", r.Styles().Success.Render("ok"), event.Name, len(tf.Templated))
	}
}
