package reconciler

import (
	"context"
	"sync"

	"github.com/cenkalti/backoff/v3"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/core-telecoms/bucketctl/pkg/api"
)

// subResourceParallelism bounds concurrent sub-resource operations within one
// run; the four sub-resources are mutually independent.
const subResourceParallelism = 4

func (r *reconciler) Apply(ctx context.Context, params api.ReconcileParams) (*api.ReconcileResult, error) {
	desired, accessor, err := r.prepare(ctx, params)
	if err != nil {
		return nil, err
	}

	r.log.Info(ctx, "Refreshing state of bucket %q...", desired.BucketName)
	observed, err := accessor.FetchState(ctx, desired)
	if err != nil {
		return nil, err
	}

	plan := ComputePlan(desired, observed)
	result := &api.ReconcileResult{RunID: plan.RunID}

	changes := plan.Changes()
	if len(changes) == 0 {
		r.log.Info(ctx, "Bucket %q is in sync, nothing to apply", desired.BucketName)
		result.FinalState = observed
		return result, nil
	}

	// the bucket must exist before any sub-resource referencing it
	rest := changes
	if changes[0].Kind == api.OpCreateBucket {
		r.log.Info(ctx, "Applying %s...", changes[0])
		if err := r.runOp(ctx, accessor, desired, changes[0]); err != nil {
			result.Errors = append(result.Errors, err)
			return result, errors.Wrapf(err, "failed to apply %s", changes[0].Kind)
		}
		result.Applied = append(result.Applied, changes[0])
		rest = changes[1:]
	}

	var mu sync.Mutex
	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(subResourceParallelism)
	for _, change := range rest {
		change := change
		eg.Go(func() error {
			r.log.Info(egCtx, "Applying %s...", change)
			if err := r.runOp(egCtx, accessor, desired, change); err != nil {
				mu.Lock()
				result.Errors = append(result.Errors, err)
				mu.Unlock()
				return errors.Wrapf(err, "failed to apply %s", change.Kind)
			}
			mu.Lock()
			result.Applied = append(result.Applied, change)
			mu.Unlock()
			return nil
		})
	}
	applyErr := eg.Wait()

	if final, err := accessor.FetchState(ctx, desired); err != nil {
		r.log.Warn(ctx, "failed to refresh final state: %v", err)
	} else {
		result.FinalState = final
	}

	if applyErr != nil {
		return result, applyErr
	}
	r.log.Info(ctx, "Applied %d operation(s) to bucket %q", len(result.Applied), desired.BucketName)
	return result, nil
}

// runOp executes a single plan operation under the per-operation timeout,
// retrying once with backoff on transient provider errors. All other errors
// are fatal for the operation.
func (r *reconciler) runOp(ctx context.Context, accessor api.StateAccessor, desired api.DesiredState, op api.Operation) error {
	attempt := func() error {
		opCtx, cancel := context.WithTimeout(ctx, r.opTimeout)
		defer cancel()

		err := r.callAccessor(opCtx, accessor, desired, op)
		if err == nil {
			return nil
		}
		if api.IsTransient(err) {
			r.log.Warn(ctx, "transient error during %s, will retry: %v", op.Kind, err)
			return err
		}
		return backoff.Permanent(err)
	}

	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = r.retryInterval
	return backoff.Retry(attempt, backoff.WithContext(backoff.WithMaxRetries(policy, 1), ctx))
}

func (r *reconciler) callAccessor(ctx context.Context, accessor api.StateAccessor, desired api.DesiredState, op api.Operation) error {
	switch op.Kind {
	case api.OpCreateBucket:
		return accessor.CreateBucket(ctx, desired)
	case api.OpTagEnvironment:
		return accessor.TagEnvironment(ctx, desired.BucketName, desired.EnvironmentTag)
	case api.OpApplyEncryption:
		return accessor.ApplyEncryption(ctx, desired.BucketName, desired.Encryption)
	case api.OpConfigureVersioning:
		return accessor.ConfigureVersioning(ctx, desired.BucketName, desired.VersioningEnabled)
	case api.OpBlockPublicAccess:
		return accessor.BlockPublicAccess(ctx, desired.BucketName, desired.BlockPublicAccess)
	case api.OpCreateFolderObject:
		return accessor.PutFolderObject(ctx, desired.BucketName, desired.FolderObjectKey())
	default:
		return errors.Errorf("unknown operation kind %q", op.Kind)
	}
}
