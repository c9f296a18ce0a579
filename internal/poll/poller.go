package poll

import (
	"context"
	"log"
	"sync/atomic"
	"time"
)

// Status mirrors the most recent cycle outcome for logging/inspection.
type Status struct {
	LastRunAt  string
	LastOkAt   string
	LastError  string
	Dispatched int
	Running    bool
}

// Poller runs one cycle immediately, then on a fixed interval until the
// context is cancelled. The loop is sequential: a tick that fires while a
// cycle is still running is coalesced, never queued, so two cycles can
// never overlap. An in-flight cycle is allowed to finish after cancel.
type Poller struct {
	Interval time.Duration
	Cycle    *Cycle

	running atomic.Bool
	status  atomic.Value // Status
}

func (p *Poller) Run(ctx context.Context) {
	log.Printf("[poll] starting, interval=%s", p.Interval)

	p.runCycle(ctx)

	t := time.NewTicker(p.Interval)
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Printf("[poll] stopped")
			return
		case <-t.C:
			p.runCycle(ctx)
		}
	}
}

func (p *Poller) runCycle(ctx context.Context) {
	if !p.running.CompareAndSwap(false, true) {
		log.Printf("[poll] cycle still running, skipping tick")
		return
	}
	defer p.running.Store(false)

	st := Status{Running: true, LastRunAt: time.Now().Format(time.RFC3339)}
	p.status.Store(st)

	n, err := p.Cycle.Run(ctx)

	st.Running = false
	st.Dispatched = n
	if err != nil {
		st.LastError = err.Error()
	} else {
		st.LastOkAt = time.Now().Format(time.RFC3339)
	}
	p.status.Store(st)
}

func (p *Poller) Status() Status {
	if v := p.status.Load(); v != nil {
		return v.(Status)
	}
	return Status{}
}
