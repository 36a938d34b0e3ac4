// ABOUTME: Runner drives the machine's two periodic ticks from wall clock.
// ABOUTME: Stop is idempotent and guarantees no tick lands after teardown.
package session

import (
	"sync"
	"time"
)

// Runner owns the session's two one-second tickers: the elapsed clock and
// the cardio countdown. The machine itself is single-threaded, so the
// runner serializes every tick and every caller mutation through one mutex.
type Runner struct {
	mu      sync.Mutex
	machine *Machine

	done     chan struct{}
	finished sync.WaitGroup
	stopOnce sync.Once
}

// NewRunner wraps a machine. Call Start to begin ticking.
func NewRunner(m *Machine) *Runner {
	return &Runner{machine: m, done: make(chan struct{})}
}

// Start launches the ticking goroutine.
func (r *Runner) Start() {
	r.finished.Add(1)
	go r.loop()
}

func (r *Runner) loop() {
	defer r.finished.Done()

	elapsed := time.NewTicker(time.Second)
	cardio := time.NewTicker(time.Second)
	defer elapsed.Stop()
	defer cardio.Stop()

	for {
		select {
		case <-r.done:
			return
		case <-elapsed.C:
			r.mu.Lock()
			r.machine.TickElapsed()
			r.mu.Unlock()
		case <-cardio.C:
			r.mu.Lock()
			r.machine.TickCardio()
			r.mu.Unlock()
		}
	}
}

// Do runs fn with exclusive access to the machine. All caller mutation
// during a live run goes through here.
func (r *Runner) Do(fn func(*Machine) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return fn(r.machine)
}

// Stop halts the tickers and waits for the loop to exit. Safe to call more
// than once; after it returns the machine receives no further ticks.
func (r *Runner) Stop() {
	r.stopOnce.Do(func() { close(r.done) })
	r.finished.Wait()
}
