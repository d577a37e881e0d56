package analysis

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/decibelcooper/phicp/event"
)

// Run processes events on workers goroutines until events is closed. sink is
// called for every Result from a single goroutine, so it needs no locking. The
// first error from sink or ctx stops the run.
func (a *Analysis) Run(ctx context.Context, events <-chan *event.Event, workers int, sink func(Result) error) error {
	if workers < 1 {
		workers = 1
	}

	g, ctx := errgroup.WithContext(ctx)
	results := make(chan Result, workers)

	g.Go(func() error {
		for r := range results {
			if err := sink(r); err != nil {
				return err
			}
		}
		return nil
	})

	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		g.Go(func() error {
			defer wg.Done()
			for {
				select {
				case <-ctx.Done():
					return ctx.Err()
				case ev, ok := <-events:
					if !ok {
						return nil
					}
					select {
					case results <- a.Process(ev):
					case <-ctx.Done():
						return ctx.Err()
					}
				}
			}
		})
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	return g.Wait()
}
