// Package poll drives the ingestion pipeline: fetch, parse, dedup,
// dispatch, persist, on a recurring schedule.
package poll

import (
	"context"
	"log"

	"insiderwatch/internal/archive"
	"insiderwatch/internal/edgar"
	"insiderwatch/internal/notify"
	"insiderwatch/internal/seen"
)

// Cycle is one complete fetch → parse → filter → dispatch pass.
type Cycle struct {
	Source     edgar.Source
	Seen       *seen.Store
	Dispatcher *notify.Dispatcher
	Archive    *archive.Store // optional; nil disables archiving
}

// Run processes one cycle. Fetch and parse failures degrade the cycle to
// zero new filings; nothing here is fatal to the scheduler. Records are
// processed in feed order, and each is marked seen before its sink
// deliveries go out: a crash loses at most a delivery, never produces a
// duplicate.
func (c *Cycle) Run(ctx context.Context) (dispatched int, err error) {
	filings, err := c.Source.Fetch(ctx)
	if err != nil {
		log.Printf("[poll] fetch failed source=%s: %v (zero filings this cycle)", c.Source.Name(), err)
		return 0, nil
	}
	log.Printf("[poll] source=%s entries=%d", c.Source.Name(), len(filings))

	for _, f := range filings {
		// cancellation is observed between records, never mid-delivery
		if ctx.Err() != nil {
			break
		}

		if f.ID == "" || c.Seen.IsSeen(f.ID) {
			continue
		}
		c.Seen.MarkSeen(f.ID)

		c.Dispatcher.Dispatch(ctx, f)

		if c.Archive != nil {
			if aerr := c.Archive.InsertFiling(ctx, f); aerr != nil {
				log.Printf("[poll] archive insert failed id=%s: %v", f.ID, aerr)
			}
		}
		dispatched++
	}

	if perr := c.Seen.Persist(); perr != nil {
		log.Printf("[poll] seen-set persist failed (in-memory state stays authoritative): %v", perr)
	}

	log.Printf("[poll] processed %d new filings", dispatched)
	return dispatched, ctx.Err()
}
