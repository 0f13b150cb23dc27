package reconciler

import (
	"context"
	"os"
	"path"

	"github.com/pkg/errors"

	"github.com/core-telecoms/bucketctl/pkg/api"
)

// Init prepares the local configuration: creates the .bucketctl directory
// and writes a default profile config unless one already exists.
func (r *reconciler) Init(ctx context.Context, params api.InitParams) error {
	rootDir := params.RootDir
	if rootDir == "" {
		rootDir = r.rootDir
	}
	profile := params.Profile
	if profile == "" {
		profile = r.profile
	}

	cfgDir := path.Join(rootDir, api.ConfigDirectory)
	if err := os.MkdirAll(cfgDir, 0o755); err != nil {
		return errors.Wrapf(err, "failed to create config directory %q", cfgDir)
	}

	cfgPath, err := api.ConfigFilePath(rootDir, profile)
	if err != nil {
		return err
	}
	if _, err := os.Stat(cfgPath); err == nil && !params.Force {
		r.log.Info(ctx, "Profile config %q already exists, skipping", cfgPath)
		return nil
	}

	cfg := &api.ConfigFile{
		AwsRegion:   api.DefaultRegion,
		Environment: api.DefaultEnvironment,
		FolderName:  "raw",
	}
	cfgBytes, err := api.MarshalDescriptor(cfg)
	if err != nil {
		return errors.Wrapf(err, "failed to marshal default config")
	}
	if err := os.WriteFile(cfgPath, cfgBytes, 0o644); err != nil {
		return errors.Wrapf(err, "failed to write config file %q", cfgPath)
	}

	r.log.Info(ctx, "Initialized profile %q at %q", profile, cfgPath)
	r.log.Info(ctx, "Set bucketName in the config (or pass --bucket) before running plan/apply")
	return nil
}
