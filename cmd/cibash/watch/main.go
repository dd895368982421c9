package watch_cmd

import (
	"context"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"
	"gopkg.in/fsnotify.v1"

	"github.com/walteh/cibash/pkg/highlight"
)

type Handler struct {
	debounce time.Duration
}

func NewWatchCommand() *cobra.Command {
	me := &Handler{}

	cmd := &cobra.Command{
		Use:   "watch <file>",
		Short: "re-highlight a CI configuration file whenever it changes",
		Args:  cobra.ExactArgs(1),
	}

	cmd.Flags().DurationVar(&me.debounce, "debounce", highlight.DefaultDebounce, "quiescence window before re-analysis")

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		return me.Run(cmd.Context(), args[0])
	}

	return cmd
}

func (me *Handler) Run(ctx context.Context, path string) error {
	logger := zerolog.Ctx(ctx)

	kind := highlight.KindFromPath(path)
	if !kind.TriggersAnalysis() {
		return errors.Errorf("unsupported document kind %q for %s", kind, path)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.Errorf("creating file watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(path); err != nil {
		return errors.Errorf("watching %s: %w", path, err)
	}

	analyzer := highlight.NewAnalyzer()
	analyze := func() {
		data, err := os.ReadFile(path)
		if err != nil {
			logger.Warn().Err(err).Str("file", path).Msg("could not re-read file")
			return
		}
		source := string(data)
		highlights := analyzer.Analyze(ctx, path, source)
		os.Stdout.WriteString(highlight.Render(source, highlights))
	}

	scheduler := highlight.NewScheduler(me.debounce, analyze)
	defer scheduler.Close()

	analyze()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) != 0 {
				logger.Debug().Str("file", event.Name).Msg("change detected, rescheduling analysis")
				scheduler.Trigger()
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn().Err(err).Msg("watcher error")
		}
	}
}
