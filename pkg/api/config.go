package api

import (
	"fmt"
	"os"
	"path"

	"github.com/mitchellh/go-homedir"
	"github.com/pkg/errors"

	"github.com/core-telecoms/bucketctl/pkg/util"
)

const (
	ConfigDirectory       = ".bucketctl"
	EnvConfigFileTemplate = "cfg.%s.yaml"
	DefaultProfile        = "default"

	DefaultRegion      = "eu-north-1"
	DefaultEnvironment = "dev"

	envVarPrefix = "BUCKETCTL"
)

// AuthConfig carries static AWS credentials. When empty the provider falls
// back to the SDK's default credential chain.
type AuthConfig struct {
	Account         string `json:"account,omitempty" yaml:"account,omitempty"`
	AccessKey       string `json:"accessKey,omitempty" yaml:"accessKey,omitempty"`
	SecretAccessKey string `json:"secretAccessKey,omitempty" yaml:"secretAccessKey,omitempty"`
}

func (a AuthConfig) IsStatic() bool {
	return a.AccessKey != "" && a.SecretAccessKey != ""
}

// ConfigFile is the per-profile configuration stored under .bucketctl/.
type ConfigFile struct {
	AwsRegion   string     `json:"awsRegion" yaml:"awsRegion"`
	BucketName  string     `json:"bucketName" yaml:"bucketName"`
	FolderName  string     `json:"folderName" yaml:"folderName"`
	Environment string     `json:"environment" yaml:"environment"`
	Auth        AuthConfig `json:"auth,omitempty" yaml:"auth,omitempty"`
}

func ConfigFilePath(rootDir, profile string) (string, error) {
	if profile == "" {
		profile = DefaultProfile
	}
	expanded, err := homedir.Expand(rootDir)
	if err != nil {
		return "", errors.Wrapf(err, "failed to expand root dir %q", rootDir)
	}
	return path.Join(expanded, ConfigDirectory, fmt.Sprintf(EnvConfigFileTemplate, profile)), nil
}

func ReadConfigFile(rootDir, profile string) (*ConfigFile, error) {
	cfgPath, err := ConfigFilePath(rootDir, profile)
	if err != nil {
		return nil, err
	}
	cfg, err := ReadDescriptor(cfgPath, &ConfigFile{})
	if err != nil {
		return nil, err
	}
	cfg.applyEnvOverrides()
	return cfg, nil
}

// applyEnvOverrides allows CI jobs to override any config field through
// BUCKETCTL_* environment variables, e.g. BUCKETCTL_BUCKET_NAME.
func (c *ConfigFile) applyEnvOverrides() {
	overrideFromEnv("AwsRegion", &c.AwsRegion)
	overrideFromEnv("BucketName", &c.BucketName)
	overrideFromEnv("FolderName", &c.FolderName)
	overrideFromEnv("Environment", &c.Environment)
	overrideFromEnv("AccessKey", &c.Auth.AccessKey)
	overrideFromEnv("SecretAccessKey", &c.Auth.SecretAccessKey)
}

func overrideFromEnv(field string, target *string) {
	envVar := envVarPrefix + "_" + util.ToEnvVariableName(field)
	if value, ok := os.LookupEnv(envVar); ok && value != "" {
		*target = value
	}
}

// DesiredState builds the immutable per-run desired state from the profile
// config merged with explicit invocation parameters. Parameters win over the
// config file; policy fields are fixed for the raw ingestion layer: AES256
// encryption, versioning off, public access blocked.
func (c *ConfigFile) DesiredState(params ReconcileParams) DesiredState {
	desired := DesiredState{
		BucketName:        c.BucketName,
		FolderPrefix:      c.FolderName,
		EnvironmentTag:    c.Environment,
		Encryption:        EncryptionAES256,
		VersioningEnabled: false,
		BlockPublicAccess: true,
	}
	if params.BucketName != "" {
		desired.BucketName = params.BucketName
	}
	if params.FolderName != "" {
		desired.FolderPrefix = params.FolderName
	}
	if params.Environment != "" {
		desired.EnvironmentTag = params.Environment
	}
	if desired.EnvironmentTag == "" {
		desired.EnvironmentTag = DefaultEnvironment
	}
	return desired
}

// Region resolves the provider region: parameter, then config, then default.
func (c *ConfigFile) Region(params ReconcileParams) string {
	if params.Region != "" {
		return params.Region
	}
	if c.AwsRegion != "" {
		return c.AwsRegion
	}
	return DefaultRegion
}
