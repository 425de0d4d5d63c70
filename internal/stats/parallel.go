package stats

import (
	"context"

	"golang.org/x/sync/errgroup"

	"cellstats/pkg/contracts/domain"
)

// FoldParallel folds a device slice using worker goroutines over contiguous
// partitions, then merges the partial aggregators in partition order. The
// result is identical to Fold on the same input, including every tie-break
// and the ordering of the mismatch list.
func FoldParallel(ctx context.Context, devices []domain.Device, workers int) (*Aggregator, error) {
	if workers <= 1 || len(devices) < workers {
		return Fold(devices), nil
	}

	partials := make([]*Aggregator, workers)
	chunk := (len(devices) + workers - 1) / workers

	g, ctx := errgroup.WithContext(ctx)
	for w := 0; w < workers; w++ {
		w := w
		start := w * chunk
		if start >= len(devices) {
			// Ceil division can exhaust the slice before the last
			// worker; leave the remaining partials nil.
			break
		}
		end := start + chunk
		if end > len(devices) {
			end = len(devices)
		}

		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			partials[w] = Fold(devices[start:end])
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	merged := New()
	for _, partial := range partials {
		if partial == nil {
			continue
		}
		merged.Merge(partial)
	}
	return merged, nil
}
