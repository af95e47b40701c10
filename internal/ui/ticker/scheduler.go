package ticker

import (
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/andyrewlee/autoscroll/internal/clock"
	"github.com/andyrewlee/autoscroll/internal/ui/common"
)

// timerFiredMsg is delivered back into Update when a scheduled tea.Tick
// fires. Owner keeps several tickers in one program apart.
type timerFiredMsg struct {
	Owner uint64
	ID    uint64
}

// teaScheduler implements clock.Scheduler on top of tea.Tick. Callbacks
// run inside Update, on the program's goroutine. Commands produced while
// handling a message are collected and returned by drain.
type teaScheduler struct {
	owner   uint64
	next    uint64
	live    map[uint64]func()
	pending []tea.Cmd
	now     func() time.Time
}

func newTeaScheduler(owner uint64) *teaScheduler {
	return &teaScheduler{
		owner: owner,
		live:  make(map[uint64]func()),
		now:   time.Now,
	}
}

func (s *teaScheduler) Now() time.Time {
	return s.now()
}

func (s *teaScheduler) AfterFunc(d time.Duration, fn func()) clock.Timer {
	s.next++
	id := s.next
	s.live[id] = fn
	owner := s.owner
	s.pending = append(s.pending, common.SafeTick(d, func(time.Time) tea.Msg {
		return timerFiredMsg{Owner: owner, ID: id}
	}))
	return teaTimer{s: s, id: id}
}

// fire runs the callback for id. A stopped timer's tick still arrives and
// is dropped here.
func (s *teaScheduler) fire(id uint64) {
	fn, ok := s.live[id]
	if !ok {
		return
	}
	delete(s.live, id)
	fn()
}

func (s *teaScheduler) drain() tea.Cmd {
	if len(s.pending) == 0 {
		return nil
	}
	cmds := s.pending
	s.pending = nil
	return tea.Batch(cmds...)
}

func (s *teaScheduler) stopAll() {
	clear(s.live)
	s.pending = nil
}

type teaTimer struct {
	s  *teaScheduler
	id uint64
}

func (t teaTimer) Stop() bool {
	if _, ok := t.s.live[t.id]; !ok {
		return false
	}
	delete(t.s.live, t.id)
	return true
}
