package aws

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/pkg/errors"

	"github.com/core-telecoms/bucketctl/pkg/api"
)

// LoadConfig builds the SDK configuration for the given region. Static
// credentials from the profile config take precedence; otherwise the SDK's
// default chain (env, shared config, instance role) is used.
func LoadConfig(ctx context.Context, region string, auth api.AuthConfig) (aws.Config, error) {
	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(region),
	}
	if auth.IsStatic() {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(auth.AccessKey, auth.SecretAccessKey, ""),
		))
	}
	cfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return aws.Config{}, errors.Wrapf(err, "failed to load AWS config for region %q", region)
	}
	return cfg, nil
}
