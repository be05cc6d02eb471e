package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/tapelang/tapec/internal/dump"
	"github.com/tapelang/tapec/internal/logio"
	"github.com/tapelang/tapec/vm"
)

func newRunCmd(log *logio.Logger, flags *globalFlags) *cobra.Command {
	var batchGlob string
	var watch bool
	var bench bool
	var teePath string

	cmd := &cobra.Command{
		Use:   "run <file>",
		Short: "Compile and execute a program against stdin/stdout",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if batchGlob != "" {
				if teePath != "" {
					return fmt.Errorf("--tee cannot be combined with --batch: concurrent VMs would interleave writes to one file")
				}
				return runBatch(batchGlob, flags, log)
			}
			if len(args) != 1 {
				return fmt.Errorf("run requires exactly one file, or --batch <glob>")
			}
			if watch {
				return runWatch(cmd.Context(), args[0], flags, log, bench, teePath)
			}
			return runOnce(cmd.Context(), args[0], flags, log, bench, teePath)
		},
	}

	cmd.Flags().StringVar(&batchGlob, "batch", "", "run every file matching this glob concurrently, one VM each")
	cmd.Flags().BoolVar(&watch, "watch", false, "recompile and rerun on save")
	cmd.Flags().BoolVar(&bench, "bench", false, "report dispatch counts and wall-clock duration")
	cmd.Flags().StringVar(&teePath, "tee", "", "also write program output to this file")

	return cmd
}

func runOnce(ctx context.Context, path string, flags *globalFlags, log *logio.Logger, bench bool, teePath string) error {
	program, err := compileFile(path, flags, log)
	if err != nil {
		return err
	}

	if flags.timeout != 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, flags.timeout)
		defer cancel()
	}

	var stats *vm.Stats
	if bench {
		stats = &vm.Stats{}
	}

	var extra []vm.Option
	if teePath != "" {
		f, err := os.Create(teePath)
		if err != nil {
			return fmt.Errorf("opening --tee file %s: %w", teePath, err)
		}
		defer f.Close()
		extra = append(extra, vm.WithTeeOutput(f))
	}

	start := time.Now()
	tape, err := vm.Execute(ctx, program, vmOptions(flags, log, stats, os.Stdin, os.Stdout, extra...)...)
	elapsed := time.Since(start)
	if err != nil {
		return fmt.Errorf("executing %s: %w", path, err)
	}

	if bench {
		rate := float64(stats.Total()) / elapsed.Seconds()
		log.Printf("BENCH", "%d instructions in %v (%.0f/s)", stats.Total(), elapsed, rate)
	}
	if flags.dump {
		return dump.Tape(os.Stderr, tape)
	}
	return nil
}

// runBatch runs every file matching glob concurrently, one single-threaded
// VM per file. Parallelism is across independent programs, not within one;
// --tee is rejected upstream since concurrent VMs would interleave writes
// to a single file.
func runBatch(glob string, flags *globalFlags, log *logio.Logger) error {
	paths, err := filepath.Glob(glob)
	if err != nil {
		return fmt.Errorf("invalid --batch glob %q: %w", glob, err)
	}
	if len(paths) == 0 {
		return fmt.Errorf("--batch glob %q matched no files", glob)
	}

	g, ctx := errgroup.WithContext(context.Background())
	for _, path := range paths {
		path := path
		g.Go(func() error {
			return runOnce(ctx, path, flags, log, false, "")
		})
	}
	return g.Wait()
}

// runWatch reruns path every time it changes on disk, until ctx is
// cancelled or the watcher closes. Each rerun truncates and reopens teePath, if
// set, so the tee file always reflects the latest run.
func runWatch(ctx context.Context, path string, flags *globalFlags, log *logio.Logger, bench bool, teePath string) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("starting watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(path); err != nil {
		return fmt.Errorf("watching %s: %w", path, err)
	}

	log.ErrorIf(runOnce(ctx, path, flags, log, bench, teePath))
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			log.ErrorIf(runOnce(ctx, path, flags, log, bench, teePath))
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.ErrorIf(err)
		}
	}
}
