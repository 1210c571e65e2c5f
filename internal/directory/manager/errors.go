package manager

import (
	"context"

	dErrors "skillset/pkg/domain-errors"
	"skillset/pkg/requestcontext"
)

// violation reports a caller bug (nil entity, empty key). The store is never touched.
func (b *base) violation(ctx context.Context, op, msg string) error {
	b.logger.WarnContext(ctx, "directory contract violation",
		"entity", b.entity,
		"operation", op,
		"reason", msg,
		"request_id", requestcontext.RequestID(ctx),
	)
	return dErrors.New(dErrors.CodeInvariantViolation, msg)
}
