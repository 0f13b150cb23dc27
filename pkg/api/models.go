package api

import (
	"fmt"
	"strings"

	"github.com/samber/lo"
)

type EncryptionAlgorithm string

const (
	EncryptionNone   EncryptionAlgorithm = "NONE"
	EncryptionAES256 EncryptionAlgorithm = "AES256"
)

// DesiredState describes the target configuration of the ingestion bucket.
// It is computed once per invocation and never mutated afterwards.
type DesiredState struct {
	BucketName        string              `json:"bucketName" yaml:"bucketName"`
	FolderPrefix      string              `json:"folderPrefix" yaml:"folderPrefix"`
	EnvironmentTag    string              `json:"environmentTag" yaml:"environmentTag"`
	Encryption        EncryptionAlgorithm `json:"encryption" yaml:"encryption"`
	VersioningEnabled bool                `json:"versioningEnabled" yaml:"versioningEnabled"`
	BlockPublicAccess bool                `json:"blockPublicAccess" yaml:"blockPublicAccess"`
}

// FolderObjectKey returns the key of the zero-byte placeholder object that
// materializes the folder prefix, always with a single trailing slash.
func (s DesiredState) FolderObjectKey() string {
	return strings.TrimSuffix(s.FolderPrefix, "/") + "/"
}

// ObservedState mirrors DesiredState as read back from the provider.
// Exists is false when the bucket was not found at all.
type ObservedState struct {
	Exists            bool                `json:"exists" yaml:"exists"`
	BucketName        string              `json:"bucketName" yaml:"bucketName"`
	FolderPrefix      string              `json:"folderPrefix" yaml:"folderPrefix"`
	EnvironmentTag    string              `json:"environmentTag" yaml:"environmentTag"`
	Encryption        EncryptionAlgorithm `json:"encryption" yaml:"encryption"`
	VersioningEnabled bool                `json:"versioningEnabled" yaml:"versioningEnabled"`
	BlockPublicAccess bool                `json:"blockPublicAccess" yaml:"blockPublicAccess"`
}

type OpKind string

const (
	OpCreateBucket        OpKind = "create-bucket"
	OpTagEnvironment      OpKind = "tag-environment"
	OpApplyEncryption     OpKind = "apply-encryption"
	OpConfigureVersioning OpKind = "configure-versioning"
	OpBlockPublicAccess   OpKind = "block-public-access"
	OpCreateFolderObject  OpKind = "create-folder-object"
)

type OpAction string

const (
	ActionCreate OpAction = "create"
	ActionUpdate OpAction = "update"
	ActionNoop   OpAction = "noop"
)

type Operation struct {
	Kind   OpKind   `json:"kind" yaml:"kind"`
	Action OpAction `json:"action" yaml:"action"`
	Detail string   `json:"detail,omitempty" yaml:"detail,omitempty"`
}

func (o Operation) String() string {
	if o.Detail != "" {
		return fmt.Sprintf("%s (%s): %s", o.Kind, o.Action, o.Detail)
	}
	return fmt.Sprintf("%s (%s)", o.Kind, o.Action)
}

// Plan is the ordered set of operations that eliminates drift between desired
// and observed state. Bucket creation, when needed, is always the first entry;
// the remaining operations are mutually independent. A Plan never contains a
// destructive operation.
type Plan struct {
	RunID      string      `json:"runId" yaml:"runId"`
	BucketName string      `json:"bucketName" yaml:"bucketName"`
	Operations []Operation `json:"operations" yaml:"operations"`
}

// Changes returns the operations that actually mutate remote state.
func (p *Plan) Changes() []Operation {
	return lo.Filter(p.Operations, func(op Operation, _ int) bool {
		return op.Action != ActionNoop
	})
}

func (p *Plan) IsNoop() bool {
	return len(p.Changes()) == 0
}

// ReconcileResult reports the outcome of a single reconciliation run. Applied
// holds the operations that succeeded, in completion order, so a caller can
// decide whether to retry the whole run after a partial apply.
type ReconcileResult struct {
	RunID      string         `json:"runId" yaml:"runId"`
	Applied    []Operation    `json:"applied" yaml:"applied"`
	FinalState *ObservedState `json:"finalState,omitempty" yaml:"finalState,omitempty"`
	Errors     []error        `json:"-" yaml:"-"`
}

type InitParams struct {
	RootDir string
	Profile string
	Force   bool
}

// ReconcileParams carries the per-invocation inputs of plan/apply. Empty
// fields fall back to the profile config file, then to defaults.
type ReconcileParams struct {
	Profile     string
	Region      string
	BucketName  string
	FolderName  string
	Environment string
	AutoApprove bool
}
