package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/andyrewlee/autoscroll/internal/config"
	"github.com/andyrewlee/autoscroll/internal/driver"
	"github.com/andyrewlee/autoscroll/internal/logging"
	"github.com/andyrewlee/autoscroll/internal/safego"
)

type runOptions struct {
	width    int
	height   int
	duration time.Duration
	refresh  time.Duration
	window   bool
	watch    bool
}

func defaultRunOptions() runOptions {
	return runOptions{
		width:   40,
		height:  5,
		refresh: 250 * time.Millisecond,
		watch:   true,
	}
}

func buildRunCommand(env Env, flags *globalFlags) *cobra.Command {
	opts := defaultRunOptions()
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the ticker in real time without a terminal UI",
		Long: `Run the ticker in real time without a terminal UI.

By default one line is printed whenever the item at the leading edge of the
viewport changes. --window prints the whole visible window instead.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHeadless(cmd, env, flags, opts)
		},
	}
	cmd.Flags().IntVar(&opts.width, "width", opts.width, "Viewport width in cells")
	cmd.Flags().IntVar(&opts.height, "height", opts.height, "Viewport height in rows")
	cmd.Flags().DurationVar(&opts.duration, "duration", 0, "Stop after this long (0 runs until interrupted)")
	cmd.Flags().DurationVar(&opts.refresh, "refresh", opts.refresh, "How often the output is refreshed")
	cmd.Flags().BoolVar(&opts.window, "window", false, "Print the visible window on every change")
	cmd.Flags().BoolVar(&opts.watch, "watch", opts.watch, "Reload the items file when it changes")
	return cmd
}

func runHeadless(cmd *cobra.Command, env Env, flags *globalFlags, opts runOptions) error {
	s, err := flags.load()
	if err != nil {
		return failCommand(env, flags, "run", "config_invalid", err)
	}
	logging.SetOutput(env.Stderr, s.logLevel())
	for _, note := range s.notes {
		logging.Warn("config: %s", note)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if opts.duration > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.duration)
		defer cancel()
	}
	return runLoop(ctx, env.Stdout, s, opts)
}

// runLoop drives a headless scroller on a driver loop until ctx is done.
// Every scroller call happens on the loop goroutine. The loop outlives ctx
// long enough to close the scroller.
func runLoop(ctx context.Context, out io.Writer, s *settings, opts runOptions) error {
	loopCtx, stopLoop := context.WithCancel(context.WithoutCancel(ctx))
	defer stopLoop()
	loop := driver.New(0)
	loop.Start(loopCtx)
	_, err := runOn(ctx, loop, out, s, opts)
	return err
}

func runOn(ctx context.Context, loop *driver.Loop, out io.Writer, s *settings, opts runOptions) (*headless, error) {
	var h *headless
	if err := loop.Call(ctx, func() {
		h = newHeadless(s.cfg, s.items, loop, opts.width, opts.height)
	}); err != nil {
		return nil, unlessCancelled(ctx, err)
	}
	defer func() {
		if err := loop.Call(context.Background(), h.scroller.Close); err != nil {
			logging.Warn("close scroller: %v", err)
		}
	}()

	if opts.watch && s.cfg.ItemsPath != "" {
		if w := watchItems(ctx, loop, h, s.cfg.ItemsPath); w != nil {
			defer w.Close()
		}
	}

	refresh := opts.refresh
	if refresh <= 0 {
		refresh = s.cfg.Scroll.FrameInterval
	}
	tick := time.NewTicker(refresh)
	defer tick.Stop()

	var last string
	for {
		var frame string
		if err := loop.Call(ctx, func() {
			if opts.window {
				frame = h.window()
			} else {
				frame = h.currentText()
			}
		}); err != nil {
			return h, unlessCancelled(ctx, err)
		}
		if frame != last {
			last = frame
			if opts.window {
				fmt.Fprintf(out, "%s\n\n", frame)
			} else {
				fmt.Fprintln(out, frame)
			}
		}
		select {
		case <-ctx.Done():
			return h, nil
		case <-tick.C:
		}
	}
}

// unlessCancelled drops err when ctx ending is what caused it.
func unlessCancelled(ctx context.Context, err error) error {
	if ctx.Err() != nil {
		return nil
	}
	return fmt.Errorf("run loop: %w", err)
}

// watchItems reloads the items file on change and hands the new items to
// the loop.
func watchItems(ctx context.Context, loop *driver.Loop, h *headless, path string) *config.Watcher {
	w, err := config.NewWatcher(func(changed string) {
		items, err := config.LoadItems(changed)
		if err != nil {
			logging.Warn("reload items: %v", err)
			return
		}
		loop.Do(func() { h.setItems(items) })
		logging.Info("reloaded %d items from %s", len(items), changed)
	}, config.WatchDebounce, path)
	if err != nil {
		logging.Warn("items watcher unavailable: %v", err)
		return nil
	}
	safego.GoContext(ctx, "items-watcher", w.Run)
	return w
}
