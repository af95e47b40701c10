package scroll

import (
	"time"

	"github.com/andyrewlee/autoscroll/internal/clock"
)

type timerKind int

const (
	timerAutoplay timerKind = iota
	timerStep
	timerWheel
	timerKinds
)

func (k timerKind) String() string {
	switch k {
	case timerAutoplay:
		return "autoplay"
	case timerStep:
		return "singleStep"
	case timerWheel:
		return "wheelResume"
	default:
		return "unknown"
	}
}

// timerSet holds at most one live timer per kind. Arming a kind cancels
// the previous timer of that kind. Each arm bumps a per-kind generation
// and callbacks from older generations are dropped, so a cancelled timer
// never runs even if the host already queued its callback.
type timerSet struct {
	sched clock.Scheduler
	live  [timerKinds]clock.Timer
	gen   [timerKinds]uint64
	due   [timerKinds]time.Time
}

func (s *timerSet) arm(kind timerKind, d time.Duration, fn func()) {
	s.cancel(kind)
	if d < 0 {
		d = 0
	}
	gen := s.gen[kind]
	s.due[kind] = s.sched.Now().Add(d)
	s.live[kind] = s.sched.AfterFunc(d, func() {
		if s.gen[kind] != gen || s.live[kind] == nil {
			return
		}
		s.live[kind] = nil
		fn()
	})
}

func (s *timerSet) cancel(kind timerKind) {
	s.gen[kind]++
	if s.live[kind] != nil {
		s.live[kind].Stop()
		s.live[kind] = nil
	}
}

func (s *timerSet) cancelAll() {
	for k := timerKind(0); k < timerKinds; k++ {
		s.cancel(k)
	}
}

func (s *timerSet) pending(kind timerKind) bool {
	return s.live[kind] != nil
}

// remaining is the time left on a pending timer, 0 if none.
func (s *timerSet) remaining(kind timerKind) time.Duration {
	if s.live[kind] == nil {
		return 0
	}
	left := s.due[kind].Sub(s.sched.Now())
	if left < 0 {
		return 0
	}
	return left
}
