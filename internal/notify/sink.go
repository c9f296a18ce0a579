// Package notify fans normalized filings out to downstream sinks.
package notify

import (
	"context"
	"log"

	"golang.org/x/sync/errgroup"

	"insiderwatch/internal/domain"
)

// Sink is one downstream delivery target (webhook, chat, email).
type Sink interface {
	Name() string
	Deliver(ctx context.Context, f domain.Filing) error
}

// Result is the outcome of one sink's delivery attempt.
type Result struct {
	Sink string
	Err  error
}

// Dispatcher delivers a filing to every configured sink. Deliveries for a
// single filing run concurrently and independently: a failing sink is
// logged and never blocks the others, the seen-mark, or the next filing.
// There are no same-cycle retries.
type Dispatcher struct {
	sinks []Sink
}

func NewDispatcher(sinks ...Sink) *Dispatcher {
	var kept []Sink
	for _, s := range sinks {
		if s != nil {
			kept = append(kept, s)
		}
	}
	return &Dispatcher{sinks: kept}
}

func (d *Dispatcher) Sinks() int { return len(d.sinks) }

func (d *Dispatcher) Dispatch(ctx context.Context, f domain.Filing) []Result {
	results := make([]Result, len(d.sinks))

	var g errgroup.Group
	for i, s := range d.sinks {
		i, s := i, s
		g.Go(func() error {
			err := s.Deliver(ctx, f)
			if err != nil {
				log.Printf("[notify:%s] deliver failed id=%s: %v", s.Name(), f.ID, err)
			} else {
				log.Printf("[notify:%s] sent id=%s ticker=%q", s.Name(), f.ID, f.Ticker)
			}
			results[i] = Result{Sink: s.Name(), Err: err}
			return nil
		})
	}
	_ = g.Wait()

	return results
}
