package reconciler

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/core-telecoms/bucketctl/pkg/api"
)

func (r *reconciler) Plan(ctx context.Context, params api.ReconcileParams) (*api.Plan, error) {
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
	r.log.Debug(ctx, "plan %s: %d operation(s), %d change(s)", plan.RunID, len(plan.Operations), len(plan.Changes()))
	return plan, nil
}

// ComputePlan diffs desired against observed state and returns the ordered
// operation set that eliminates the drift. Bucket creation is always first;
// the sub-resource operations that follow are mutually independent. The plan
// never contains a destructive operation.
func ComputePlan(desired api.DesiredState, observed *api.ObservedState) *api.Plan {
	plan := &api.Plan{
		RunID:      uuid.New().String(),
		BucketName: desired.BucketName,
	}

	if !observed.Exists {
		plan.Operations = []api.Operation{
			{Kind: api.OpCreateBucket, Action: api.ActionCreate, Detail: fmt.Sprintf("bucket %q", desired.BucketName)},
			{Kind: api.OpTagEnvironment, Action: api.ActionCreate, Detail: fmt.Sprintf("%s=%q", "Environment", desired.EnvironmentTag)},
			{Kind: api.OpApplyEncryption, Action: api.ActionCreate, Detail: string(desired.Encryption)},
			{Kind: api.OpConfigureVersioning, Action: api.ActionCreate, Detail: versioningDetail(desired.VersioningEnabled)},
			{Kind: api.OpBlockPublicAccess, Action: api.ActionCreate, Detail: publicAccessDetail(desired.BlockPublicAccess)},
			{Kind: api.OpCreateFolderObject, Action: api.ActionCreate, Detail: fmt.Sprintf("object %q", desired.FolderObjectKey())},
		}
		return plan
	}

	plan.Operations = append(plan.Operations,
		api.Operation{Kind: api.OpCreateBucket, Action: api.ActionNoop, Detail: fmt.Sprintf("bucket %q exists", desired.BucketName)})

	plan.Operations = append(plan.Operations, diffOp(
		api.OpTagEnvironment,
		desired.EnvironmentTag == observed.EnvironmentTag,
		fmt.Sprintf("%s %q -> %q", "Environment", observed.EnvironmentTag, desired.EnvironmentTag),
	))
	plan.Operations = append(plan.Operations, diffOp(
		api.OpApplyEncryption,
		desired.Encryption == observed.Encryption,
		fmt.Sprintf("encryption %s -> %s", observed.Encryption, desired.Encryption),
	))
	plan.Operations = append(plan.Operations, diffOp(
		api.OpConfigureVersioning,
		desired.VersioningEnabled == observed.VersioningEnabled,
		fmt.Sprintf("versioning %s -> %s", versioningDetail(observed.VersioningEnabled), versioningDetail(desired.VersioningEnabled)),
	))
	plan.Operations = append(plan.Operations, diffOp(
		api.OpBlockPublicAccess,
		desired.BlockPublicAccess == observed.BlockPublicAccess,
		fmt.Sprintf("public access %s -> %s", publicAccessDetail(observed.BlockPublicAccess), publicAccessDetail(desired.BlockPublicAccess)),
	))

	if observed.FolderPrefix == desired.FolderPrefix {
		plan.Operations = append(plan.Operations, api.Operation{
			Kind:   api.OpCreateFolderObject,
			Action: api.ActionNoop,
			Detail: fmt.Sprintf("object %q exists", desired.FolderObjectKey()),
		})
	} else {
		plan.Operations = append(plan.Operations, api.Operation{
			Kind:   api.OpCreateFolderObject,
			Action: api.ActionCreate,
			Detail: fmt.Sprintf("object %q", desired.FolderObjectKey()),
		})
	}

	return plan
}

func diffOp(kind api.OpKind, inSync bool, detail string) api.Operation {
	if inSync {
		return api.Operation{Kind: kind, Action: api.ActionNoop, Detail: "in sync"}
	}
	return api.Operation{Kind: kind, Action: api.ActionUpdate, Detail: detail}
}

func versioningDetail(enabled bool) string {
	if enabled {
		return "enabled"
	}
	return "disabled"
}

func publicAccessDetail(blocked bool) string {
	if blocked {
		return "blocked"
	}
	return "unblocked"
}
