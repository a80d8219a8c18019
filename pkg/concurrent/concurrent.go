package concurrent

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/zeusync/zeusui/pkg/sequence"
)

// Concurrent runs the action function for each element of the iterator in a separate goroutine.
// It waits for all goroutines to finish. If action returns an error, it returns the first error encountered.
func Concurrent[T any](i *sequence.Iterator[T], action func(T) error) error {
	errGroup := errgroup.Group{}
	next, stop := i.Pull()
	defer stop()

	for {
		value, valid := next()
		if !valid {
			break
		}

		errGroup.Go(func() error {
			return action(value)
		})
	}

	return errGroup.Wait()
}

// Each runs action for every element with at most limit goroutines at a time
// and collects every failure instead of stopping at the first. The context
// passed to action is cancelled when ctx is.
func Each[T any](ctx context.Context, i *sequence.Iterator[T], limit int, action func(context.Context, T) error) []error {
	errGroup, gctx := errgroup.WithContext(ctx)
	if limit > 0 {
		errGroup.SetLimit(limit)
	}

	in := i.Collect()
	errs := make([]error, len(in))
	for idx, value := range in {
		errGroup.Go(func() error {
			errs[idx] = action(gctx, value)
			return nil
		})
	}
	_ = errGroup.Wait()

	out := errs[:0]
	for _, err := range errs {
		if err != nil {
			out = append(out, err)
		}
	}
	return out
}
