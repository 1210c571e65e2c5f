package manager

import (
	"context"
	"fmt"

	"skillset/pkg/result"
)

// probe asks the store a yes/no question about current state.
type probe func(ctx context.Context) (bool, error)

// attempt runs a repository call and converts a panic into an error so that it
// enters reconciliation like any other write failure.
func attempt[R any](ctx context.Context, fn func(ctx context.Context) (R, error)) (r R, err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("repository panic: %v", p)
		}
	}()
	return fn(ctx)
}

// ask runs a probe. ok is false when the probe failed or panicked; the failure is
// logged at debug and otherwise dropped so it can never replace the write's cause.
func (b *base) ask(ctx context.Context, c *call, name string, p probe) (found, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			b.logger.DebugContext(ctx, "reconciliation probe panicked",
				"entity", b.entity,
				"operation", c.op,
				"probe", name,
				"panic", r,
			)
			found, ok = false, false
		}
	}()
	found, err := p(ctx)
	if err != nil {
		b.logger.DebugContext(ctx, "reconciliation probe failed",
			"entity", b.entity,
			"operation", c.op,
			"probe", name,
			"error", err,
		)
		return false, false
	}
	return found, true
}

// reconcileCreate: the record now existing means someone else holds the key.
func (b *base) reconcileCreate(ctx context.Context, c *call, cause error, exists probe, field string) result.CreateResult {
	c.reconciled = true
	if found, ok := b.ask(ctx, c, "exists", exists); ok && found {
		return result.Conflict{Field: field}
	}
	return result.RepositoryFailure{Cause: cause}
}

// reconcileDelete: only an affirmative "absent" turns the failure into NotFound.
func (b *base) reconcileDelete(ctx context.Context, c *call, cause error, exists probe) result.DeleteResult {
	c.reconciled = true
	if found, ok := b.ask(ctx, c, "exists", exists); ok && !found {
		return result.NotFound{}
	}
	return result.RepositoryFailure{Cause: cause}
}

// reconcileUpdate probes the old key first, then whether the new value collides
// with an existing record. Any inconclusive answer keeps the original cause.
func (b *base) reconcileUpdate(ctx context.Context, c *call, cause error, existsOld, collides probe) result.UpdateResult {
	c.reconciled = true
	found, ok := b.ask(ctx, c, "exists", existsOld)
	if !ok {
		return result.RepositoryFailure{Cause: cause}
	}
	if !found {
		return result.NotFound{}
	}
	if taken, ok := b.ask(ctx, c, "collision", collides); ok && taken {
		return result.Conflict{Field: "name"}
	}
	return result.RepositoryFailure{Cause: cause}
}
