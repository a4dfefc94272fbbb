package pv

import (
	"context"
	"fmt"
	"sync"
)

// ComputeCells sweeps every cell of params concurrently.
// Results keep the order of params and are identical to sequential NewCell calls.
func ComputeCells(ctx context.Context, params []Params) ([]*Cell, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	cells := make([]*Cell, len(params))
	errs := make([]error, len(params))

	var wg sync.WaitGroup
	for x, p := range params {
		wg.Add(1)
		go func() {
			defer wg.Done()

			// force quit if context is done
			select {
			case <-ctx.Done():
				errs[x] = ctx.Err()

				return
			default:
			}

			cells[x], errs[x] = NewCell(p)
		}()
	}
	wg.Wait()

	for x, err := range errs {
		if err != nil {
			return nil, fmt.Errorf("cell %d (%s): %w", x, params[x].Label, err)
		}
	}

	return cells, nil
}
