package orchestrator

import (
	"context"

	contractx "github.com/tanpawarit/Recruitment-Dispatcher/agent/contract"
	"golang.org/x/sync/errgroup"
)

// BatchItem is the outcome of one request in a batch. Err is set per item;
// one failed candidate does not abort the others.
type BatchItem struct {
	Index   int                     `json:"index"`
	Request Request                 `json:"request"`
	Result  contractx.HandlerResult `json:"result"`
	Err     error                   `json:"-"`
}

// DispatchBatch runs independent dispatches concurrently, at most limit at a
// time, and returns the items in input order. The returned error is only set
// when ctx is cancelled.
func (d *Dispatcher) DispatchBatch(ctx context.Context, reqs []Request, limit int) ([]BatchItem, error) {
	if limit <= 0 {
		limit = d.batchLimit
	}

	items := make([]BatchItem, len(reqs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)

	for i, req := range reqs {
		items[i] = BatchItem{Index: i, Request: req}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			result, err := d.DispatchResult(gctx, req)
			items[i].Result = result
			items[i].Err = err
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return items, err
	}
	return items, nil
}
