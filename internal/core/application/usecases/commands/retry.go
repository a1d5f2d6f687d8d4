package commands

import (
	"context"
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/inventory"
	"fulfillment/internal/pkg/errs"

	"github.com/cenkalti/backoff/v4"
)

// maxTransitionAttempts bounds the automatic retry of version-guarded writes.
// After the last attempt the conflict surfaces to the caller.
const maxTransitionAttempts = 3

// withConflictRetry runs op, retrying with jittered exponential backoff while
// it fails with errs.ErrVersionConflict or inventory.ErrShelfContention. Every
// other error, including insufficient inventory, stops immediately: only
// losing a concurrent-write race is worth another read-modify-write cycle.
func withConflictRetry(ctx context.Context, op func(ctx context.Context) error) error {
	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = 10 * time.Millisecond
	bo.MaxInterval = 100 * time.Millisecond

	policy := backoff.WithContext(backoff.WithMaxRetries(bo, maxTransitionAttempts-1), ctx)

	return backoff.Retry(func() error {
		err := op(ctx)
		if err == nil {
			return nil
		}
		if errors.Is(err, errs.ErrVersionConflict) || errors.Is(err, inventory.ErrShelfContention) {
			return err
		}
		return backoff.Permanent(err)
	}, policy)
}
