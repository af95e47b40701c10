package app

import "github.com/andyrewlee/autoscroll/internal/perf"

// Shutdown releases resources that may outlive the Bubble Tea program.
func (a *App) Shutdown() {
	a.shutdownOnce.Do(func() {
		if a.cancel != nil {
			a.cancel()
		}
		if a.watcher != nil {
			_ = a.watcher.Close()
		}
		if a.ticker != nil {
			a.ticker.Close()
		}
		if a.zone != nil {
			a.zone.Close()
		}
		perf.Flush("shutdown")
	})
}
