package reconciler

import (
	"testing"

	. "github.com/onsi/gomega"
	"github.com/samber/lo"

	"github.com/core-telecoms/bucketctl/pkg/api"
)

func desiredFixture() api.DesiredState {
	return api.DesiredState{
		BucketName:        "ingestion-bucket",
		FolderPrefix:      "raw",
		EnvironmentTag:    "dev",
		Encryption:        api.EncryptionAES256,
		VersioningEnabled: false,
		BlockPublicAccess: true,
	}
}

func observedInSync() *api.ObservedState {
	return &api.ObservedState{
		Exists:            true,
		BucketName:        "ingestion-bucket",
		FolderPrefix:      "raw",
		EnvironmentTag:    "dev",
		Encryption:        api.EncryptionAES256,
		VersioningEnabled: false,
		BlockPublicAccess: true,
	}
}

func kindsOf(ops []api.Operation) []api.OpKind {
	return lo.Map(ops, func(op api.Operation, _ int) api.OpKind {
		return op.Kind
	})
}

func TestComputePlanAbsentBucket(t *testing.T) {
	RegisterTestingT(t)

	plan := ComputePlan(desiredFixture(), &api.ObservedState{BucketName: "ingestion-bucket"})

	Expect(plan.RunID).NotTo(BeEmpty())
	Expect(kindsOf(plan.Operations)).To(Equal([]api.OpKind{
		api.OpCreateBucket,
		api.OpTagEnvironment,
		api.OpApplyEncryption,
		api.OpConfigureVersioning,
		api.OpBlockPublicAccess,
		api.OpCreateFolderObject,
	}))
	for _, op := range plan.Operations {
		Expect(op.Action).To(Equal(api.ActionCreate))
	}
	// bucket creation always precedes every sub-resource operation
	Expect(plan.Operations[0].Kind).To(Equal(api.OpCreateBucket))
	Expect(plan.Operations[len(plan.Operations)-1].Detail).To(ContainSubstring(`"raw/"`))
}

func TestComputePlanInSync(t *testing.T) {
	RegisterTestingT(t)

	plan := ComputePlan(desiredFixture(), observedInSync())

	Expect(plan.IsNoop()).To(BeTrue())
	Expect(plan.Changes()).To(BeEmpty())
	for _, op := range plan.Operations {
		Expect(op.Action).To(Equal(api.ActionNoop))
	}
}

func TestComputePlanDrift(t *testing.T) {
	RegisterTestingT(t)

	tests := []struct {
		name        string
		mutate      func(observed *api.ObservedState)
		wantKind    api.OpKind
		wantAction  api.OpAction
		wantDetail  string
		wantChanges int
	}{
		{
			name:        "encryption drift",
			mutate:      func(o *api.ObservedState) { o.Encryption = api.EncryptionNone },
			wantKind:    api.OpApplyEncryption,
			wantAction:  api.ActionUpdate,
			wantDetail:  "encryption NONE -> AES256",
			wantChanges: 1,
		},
		{
			name:        "versioning drift",
			mutate:      func(o *api.ObservedState) { o.VersioningEnabled = true },
			wantKind:    api.OpConfigureVersioning,
			wantAction:  api.ActionUpdate,
			wantDetail:  "versioning enabled -> disabled",
			wantChanges: 1,
		},
		{
			name:        "public access drift",
			mutate:      func(o *api.ObservedState) { o.BlockPublicAccess = false },
			wantKind:    api.OpBlockPublicAccess,
			wantAction:  api.ActionUpdate,
			wantDetail:  "public access unblocked -> blocked",
			wantChanges: 1,
		},
		{
			name:        "environment tag drift",
			mutate:      func(o *api.ObservedState) { o.EnvironmentTag = "staging" },
			wantKind:    api.OpTagEnvironment,
			wantAction:  api.ActionUpdate,
			wantDetail:  `Environment "staging" -> "dev"`,
			wantChanges: 1,
		},
		{
			name:        "missing folder object",
			mutate:      func(o *api.ObservedState) { o.FolderPrefix = "" },
			wantKind:    api.OpCreateFolderObject,
			wantAction:  api.ActionCreate,
			wantDetail:  `object "raw/"`,
			wantChanges: 1,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			RegisterTestingT(t)

			observed := observedInSync()
			tt.mutate(observed)
			plan := ComputePlan(desiredFixture(), observed)

			changes := plan.Changes()
			Expect(changes).To(HaveLen(tt.wantChanges))
			Expect(changes[0].Kind).To(Equal(tt.wantKind))
			Expect(changes[0].Action).To(Equal(tt.wantAction))
			Expect(changes[0].Detail).To(Equal(tt.wantDetail))
		})
	}
}
