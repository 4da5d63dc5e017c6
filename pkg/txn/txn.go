package txn

import "context"

// The storage layer persists whole collections without transactions, so
// mutations that touch more than one collection (a loan plus its book)
// run as an ordered list of steps. When a later step fails, the
// compensations of the completed steps run in reverse order, restoring
// the earlier collections.

// Step is one mutation in a multi-collection change.
type Step struct {
	Apply      func(ctx context.Context) error
	Compensate func(ctx context.Context)
}

// Run applies steps in order. On the first failure it compensates every
// completed step, newest first, and returns the failing step's error.
func Run(ctx context.Context, steps ...Step) error {
	done := make([]Step, 0, len(steps))

	for _, step := range steps {
		if err := step.Apply(ctx); err != nil {
			for i := len(done) - 1; i >= 0; i-- {
				if done[i].Compensate != nil {
					done[i].Compensate(ctx)
				}
			}
			return err
		}
		done = append(done, step)
	}

	return nil
}
