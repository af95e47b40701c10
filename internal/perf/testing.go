package perf

// EnableForTest forces collection on with periodic logging disabled and
// returns a function restoring the previous settings.
func EnableForTest() func() {
	prevEnabled := enabled.Load()
	prevInterval := logInterval.Load()
	enabled.Store(true)
	logInterval.Store(0)
	lastLog.Store(0)
	Snapshot()
	return func() {
		Snapshot()
		enabled.Store(prevEnabled)
		logInterval.Store(prevInterval)
	}
}
