package api

import "context"

// StateAccessor is the injected accessor for the provider's mutable remote
// state. Implementations must not cache observed state across reconciliation
// runs. FetchState returns ObservedState with Exists=false when the bucket
// does not exist, and a ResourceConflictError when it exists but belongs to
// an unrelated account.
type StateAccessor interface {
	FetchState(ctx context.Context, desired DesiredState) (*ObservedState, error)

	CreateBucket(ctx context.Context, desired DesiredState) error
	TagEnvironment(ctx context.Context, bucketName string, env string) error
	ApplyEncryption(ctx context.Context, bucketName string, algorithm EncryptionAlgorithm) error
	ConfigureVersioning(ctx context.Context, bucketName string, enabled bool) error
	BlockPublicAccess(ctx context.Context, bucketName string, blocked bool) error
	PutFolderObject(ctx context.Context, bucketName string, key string) error
}
