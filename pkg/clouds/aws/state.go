package aws

import (
	"context"
	stderrors "errors"
	"strings"

	awssdk "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
	"github.com/pkg/errors"
	"github.com/samber/lo"

	"github.com/core-telecoms/bucketctl/pkg/api"
	"github.com/core-telecoms/bucketctl/pkg/api/logger"
)

const EnvironmentTagKey = "Environment"

type stateAccessor struct {
	s3     S3API
	region string
	log    logger.Logger
}

// NewStateAccessor wraps an S3 client into the reconciler's state accessor.
func NewStateAccessor(client S3API, region string, log logger.Logger) api.StateAccessor {
	return &stateAccessor{
		s3:     client,
		region: region,
		log:    log,
	}
}

// NewStateAccessorForRegion builds the accessor with a real S3 client.
func NewStateAccessorForRegion(ctx context.Context, region string, auth api.AuthConfig, log logger.Logger) (api.StateAccessor, error) {
	cfg, err := LoadConfig(ctx, region, auth)
	if err != nil {
		return nil, err
	}
	return NewStateAccessor(s3.NewFromConfig(cfg), region, log), nil
}

func (a *stateAccessor) FetchState(ctx context.Context, desired api.DesiredState) (*api.ObservedState, error) {
	observed := &api.ObservedState{
		BucketName: desired.BucketName,
		Encryption: api.EncryptionNone,
	}

	_, err := a.s3.HeadBucket(ctx, &s3.HeadBucketInput{Bucket: awssdk.String(desired.BucketName)})
	if err != nil {
		if isNotFound(err) {
			a.log.Debug(ctx, "bucket %q does not exist yet", desired.BucketName)
			return observed, nil
		}
		if isAccessDenied(err) {
			// HeadBucket returns 403 when the name is taken by another
			// account. Never adopt such a bucket.
			return nil, &api.ResourceConflictError{BucketName: desired.BucketName}
		}
		return nil, classify(api.OpCreateBucket, "head bucket", err)
	}
	observed.Exists = true

	if env, err := a.fetchEnvironmentTag(ctx, desired.BucketName); err != nil {
		return nil, err
	} else {
		observed.EnvironmentTag = env
	}
	if alg, err := a.fetchEncryption(ctx, desired.BucketName); err != nil {
		return nil, err
	} else {
		observed.Encryption = alg
	}
	if enabled, err := a.fetchVersioning(ctx, desired.BucketName); err != nil {
		return nil, err
	} else {
		observed.VersioningEnabled = enabled
	}
	if blocked, err := a.fetchPublicAccessBlock(ctx, desired.BucketName); err != nil {
		return nil, err
	} else {
		observed.BlockPublicAccess = blocked
	}
	if present, err := a.folderObjectExists(ctx, desired.BucketName, desired.FolderObjectKey()); err != nil {
		return nil, err
	} else if present {
		observed.FolderPrefix = desired.FolderPrefix
	}

	return observed, nil
}

func (a *stateAccessor) fetchEnvironmentTag(ctx context.Context, bucketName string) (string, error) {
	out, err := a.s3.GetBucketTagging(ctx, &s3.GetBucketTaggingInput{Bucket: awssdk.String(bucketName)})
	if err != nil {
		if hasErrorCode(err, "NoSuchTagSet") {
			return "", nil
		}
		return "", classify(api.OpTagEnvironment, "get bucket tagging", err)
	}
	if tag, found := lo.Find(out.TagSet, func(t types.Tag) bool {
		return awssdk.ToString(t.Key) == EnvironmentTagKey
	}); found {
		return awssdk.ToString(tag.Value), nil
	}
	return "", nil
}

func (a *stateAccessor) fetchEncryption(ctx context.Context, bucketName string) (api.EncryptionAlgorithm, error) {
	out, err := a.s3.GetBucketEncryption(ctx, &s3.GetBucketEncryptionInput{Bucket: awssdk.String(bucketName)})
	if err != nil {
		if hasErrorCode(err, "ServerSideEncryptionConfigurationNotFoundError") {
			return api.EncryptionNone, nil
		}
		return api.EncryptionNone, classify(api.OpApplyEncryption, "get bucket encryption", err)
	}
	if out.ServerSideEncryptionConfiguration == nil {
		return api.EncryptionNone, nil
	}
	for _, rule := range out.ServerSideEncryptionConfiguration.Rules {
		if rule.ApplyServerSideEncryptionByDefault != nil &&
			rule.ApplyServerSideEncryptionByDefault.SSEAlgorithm == types.ServerSideEncryptionAes256 {
			return api.EncryptionAES256, nil
		}
	}
	return api.EncryptionNone, nil
}

func (a *stateAccessor) fetchVersioning(ctx context.Context, bucketName string) (bool, error) {
	out, err := a.s3.GetBucketVersioning(ctx, &s3.GetBucketVersioningInput{Bucket: awssdk.String(bucketName)})
	if err != nil {
		return false, classify(api.OpConfigureVersioning, "get bucket versioning", err)
	}
	return out.Status == types.BucketVersioningStatusEnabled, nil
}

func (a *stateAccessor) fetchPublicAccessBlock(ctx context.Context, bucketName string) (bool, error) {
	out, err := a.s3.GetPublicAccessBlock(ctx, &s3.GetPublicAccessBlockInput{Bucket: awssdk.String(bucketName)})
	if err != nil {
		if hasErrorCode(err, "NoSuchPublicAccessBlockConfiguration") {
			return false, nil
		}
		return false, classify(api.OpBlockPublicAccess, "get public access block", err)
	}
	cfg := out.PublicAccessBlockConfiguration
	if cfg == nil {
		return false, nil
	}
	return awssdk.ToBool(cfg.BlockPublicAcls) &&
		awssdk.ToBool(cfg.BlockPublicPolicy) &&
		awssdk.ToBool(cfg.IgnorePublicAcls) &&
		awssdk.ToBool(cfg.RestrictPublicBuckets), nil
}

func (a *stateAccessor) folderObjectExists(ctx context.Context, bucketName, key string) (bool, error) {
	_, err := a.s3.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: awssdk.String(bucketName),
		Key:    awssdk.String(key),
	})
	if err != nil {
		if isNotFound(err) || hasErrorCode(err, "NoSuchKey") {
			return false, nil
		}
		return false, classify(api.OpCreateFolderObject, "head folder object", err)
	}
	return true, nil
}

func (a *stateAccessor) CreateBucket(ctx context.Context, desired api.DesiredState) error {
	input := &s3.CreateBucketInput{
		Bucket: awssdk.String(desired.BucketName),
	}
	// us-east-1 rejects an explicit location constraint
	if a.region != "us-east-1" {
		input.CreateBucketConfiguration = &types.CreateBucketConfiguration{
			LocationConstraint: types.BucketLocationConstraint(a.region),
		}
	}
	_, err := a.s3.CreateBucket(ctx, input)
	if err != nil {
		var owned *types.BucketAlreadyOwnedByYou
		if stderrors.As(err, &owned) {
			a.log.Debug(ctx, "bucket %q already owned by this account", desired.BucketName)
			return nil
		}
		var taken *types.BucketAlreadyExists
		if stderrors.As(err, &taken) {
			return &api.ResourceConflictError{BucketName: desired.BucketName}
		}
		return classify(api.OpCreateBucket, "create bucket", err)
	}
	return nil
}

func (a *stateAccessor) TagEnvironment(ctx context.Context, bucketName, env string) error {
	_, err := a.s3.PutBucketTagging(ctx, &s3.PutBucketTaggingInput{
		Bucket: awssdk.String(bucketName),
		Tagging: &types.Tagging{
			TagSet: []types.Tag{
				{Key: awssdk.String(EnvironmentTagKey), Value: awssdk.String(env)},
			},
		},
	})
	return classify(api.OpTagEnvironment, "put bucket tagging", err)
}

func (a *stateAccessor) ApplyEncryption(ctx context.Context, bucketName string, algorithm api.EncryptionAlgorithm) error {
	if algorithm == api.EncryptionNone {
		_, err := a.s3.DeleteBucketEncryption(ctx, &s3.DeleteBucketEncryptionInput{
			Bucket: awssdk.String(bucketName),
		})
		return classify(api.OpApplyEncryption, "reset bucket encryption", err)
	}
	_, err := a.s3.PutBucketEncryption(ctx, &s3.PutBucketEncryptionInput{
		Bucket: awssdk.String(bucketName),
		ServerSideEncryptionConfiguration: &types.ServerSideEncryptionConfiguration{
			Rules: []types.ServerSideEncryptionRule{
				{
					ApplyServerSideEncryptionByDefault: &types.ServerSideEncryptionByDefault{
						SSEAlgorithm: types.ServerSideEncryptionAes256,
					},
				},
			},
		},
	})
	return classify(api.OpApplyEncryption, "put bucket encryption", err)
}

func (a *stateAccessor) ConfigureVersioning(ctx context.Context, bucketName string, enabled bool) error {
	status := types.BucketVersioningStatusSuspended
	if enabled {
		status = types.BucketVersioningStatusEnabled
	}
	_, err := a.s3.PutBucketVersioning(ctx, &s3.PutBucketVersioningInput{
		Bucket: awssdk.String(bucketName),
		VersioningConfiguration: &types.VersioningConfiguration{
			Status: status,
		},
	})
	return classify(api.OpConfigureVersioning, "put bucket versioning", err)
}

func (a *stateAccessor) BlockPublicAccess(ctx context.Context, bucketName string, blocked bool) error {
	_, err := a.s3.PutPublicAccessBlock(ctx, &s3.PutPublicAccessBlockInput{
		Bucket: awssdk.String(bucketName),
		PublicAccessBlockConfiguration: &types.PublicAccessBlockConfiguration{
			BlockPublicAcls:       awssdk.Bool(blocked),
			BlockPublicPolicy:     awssdk.Bool(blocked),
			IgnorePublicAcls:      awssdk.Bool(blocked),
			RestrictPublicBuckets: awssdk.Bool(blocked),
		},
	})
	return classify(api.OpBlockPublicAccess, "put public access block", err)
}

func (a *stateAccessor) PutFolderObject(ctx context.Context, bucketName, key string) error {
	_, err := a.s3.PutObject(ctx, &s3.PutObjectInput{
		Bucket: awssdk.String(bucketName),
		Key:    awssdk.String(key),
		Body:   strings.NewReader(""),
	})
	return classify(api.OpCreateFolderObject, "put folder object", err)
}

var transientErrorCodes = []string{
	"Throttling",
	"ThrottlingException",
	"RequestLimitExceeded",
	"SlowDown",
	"RequestTimeout",
	"ServiceUnavailable",
	"InternalError",
}

// classify maps SDK failures onto the reconciler's error taxonomy.
func classify(op api.OpKind, action string, err error) error {
	if err == nil {
		return nil
	}
	var apiErr smithy.APIError
	if stderrors.As(err, &apiErr) {
		code := apiErr.ErrorCode()
		if code == "AccessDenied" || code == "AccessDeniedException" || code == "Forbidden" {
			return &api.PermissionError{Action: action, Cause: err}
		}
		if lo.Contains(transientErrorCodes, code) || apiErr.ErrorFault() == smithy.FaultServer {
			return &api.TransientProviderError{Op: op, Cause: err}
		}
	}
	return errors.Wrapf(err, "failed to %s", action)
}

func isNotFound(err error) bool {
	var notFound *types.NotFound
	if stderrors.As(err, &notFound) {
		return true
	}
	return hasErrorCode(err, "NotFound") || hasErrorCode(err, "NoSuchBucket")
}

func isAccessDenied(err error) bool {
	return hasErrorCode(err, "AccessDenied") || hasErrorCode(err, "Forbidden")
}

func hasErrorCode(err error, code string) bool {
	var apiErr smithy.APIError
	return stderrors.As(err, &apiErr) && apiErr.ErrorCode() == code
}
