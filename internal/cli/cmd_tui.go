package cli

import (
	"errors"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/spf13/cobra"

	"github.com/andyrewlee/autoscroll/internal/app"
	"github.com/andyrewlee/autoscroll/internal/logging"
)

func buildTUICommand(env Env, flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Open the interactive ticker",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd, env, flags)
		},
	}
}

func runTUI(cmd *cobra.Command, env Env, flags *globalFlags) error {
	s, err := flags.load()
	if err != nil {
		return failCommand(env, flags, "tui", "config_invalid", err)
	}
	if err := s.cfg.Paths.EnsureDirectories(); err != nil {
		Errorf(env.Stderr, "could not create %s: %v", s.cfg.Paths.Home, err)
	}
	if err := logging.Initialize(s.cfg.Paths.LogsDir, s.logLevel()); err != nil {
		Errorf(env.Stderr, "could not initialize logging: %v", err)
	}
	defer logging.Close()

	logging.Info("Starting autoscroll %s", env.Version)
	for _, note := range s.notes {
		logging.Warn("config: %s", note)
	}

	a := app.New(s.cfg, s.items, app.Options{Overrides: s.overrides, Watch: true})
	throttle := newMouseThrottle(15 * time.Millisecond)
	p := tea.NewProgram(a,
		tea.WithContext(cmd.Context()),
		tea.WithFilter(throttle.filter),
	)
	_, err = p.Run()
	a.Shutdown()
	if err != nil && !errors.Is(err, tea.ErrInterrupted) {
		logging.Error("App exited with error: %v", err)
		return err
	}
	logging.Info("autoscroll shutdown complete")
	return nil
}

// mouseThrottle drops motion events that repeat the last position within
// window. Terminals in all-motion mode can report the same cell many times
// per frame; wheel events always pass since each notch moves the ticker.
type mouseThrottle struct {
	window time.Duration
	now    func() time.Time

	last   time.Time
	x, y   int
	primed bool
}

func newMouseThrottle(window time.Duration) *mouseThrottle {
	return &mouseThrottle{window: window, now: time.Now}
}

func (m *mouseThrottle) filter(_ tea.Model, msg tea.Msg) tea.Msg {
	motion, ok := msg.(tea.MouseMotionMsg)
	if !ok {
		return msg
	}
	now := m.now()
	if !m.primed || motion.X != m.x || motion.Y != m.y {
		m.primed = true
		m.x, m.y = motion.X, motion.Y
		m.last = now
		return msg
	}
	if now.Sub(m.last) < m.window {
		return nil
	}
	m.last = now
	return msg
}
