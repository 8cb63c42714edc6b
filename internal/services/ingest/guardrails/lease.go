// Package guardrails holds the run lease and phase timeouts for ingestion
package guardrails

import (
	"context"
	"time"

	"tjmwatch/internal/modkit/repokit"
	"tjmwatch/internal/platform/logger"
	"tjmwatch/internal/services/ingest/domain"
)

// LeaseFunc runs do while owner holds the named lease
type LeaseFunc func(ctx context.Context, owner string, do func(context.Context) error) error

// MakeLease claims the ingest_lease row for name before running do and releases it afterwards.
// A lease left behind by a crashed owner is taken over once ttl has elapsed.
// Returns domain.ErrRunInProgress when someone else holds it.
func MakeLease(db repokit.TxRunner, binder repokit.Binder[domain.StorageRepo], name string, ttl time.Duration) LeaseFunc {
	return func(ctx context.Context, owner string, do func(context.Context) error) error {
		var claimed bool
		err := repokit.WithTx(ctx, db, func(q repokit.Queryer) error {
			ok, err := repokit.MustBind(binder, q).ClaimLease(ctx, name, owner, ttl)
			claimed = ok
			return err
		})
		if err != nil {
			return err
		}
		if !claimed {
			return domain.ErrRunInProgress
		}

		defer func() {
			// release even when ctx was canceled mid run
			rctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
			defer cancel()
			err := repokit.WithTx(rctx, db, func(q repokit.Queryer) error {
				return repokit.MustBind(binder, q).ReleaseLease(rctx, name, owner)
			})
			if err != nil {
				logger.C(ctx).Warn().Err(err).Str("lease", name).Msg("lease release failed; it will expire")
			}
		}()
		return do(ctx)
	}
}

// NoLease runs do directly
func NoLease(ctx context.Context, _ string, do func(context.Context) error) error { return do(ctx) }
