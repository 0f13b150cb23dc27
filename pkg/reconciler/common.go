package reconciler

import (
	"context"
	"os"
	"time"

	"github.com/pkg/errors"

	"github.com/core-telecoms/bucketctl/pkg/api"
	"github.com/core-telecoms/bucketctl/pkg/api/logger"
	"github.com/core-telecoms/bucketctl/pkg/clouds/aws"
)

// Reconciler converges the remote ingestion bucket to its desired state.
// Plan is a first-class dry run: it computes the operation set without
// applying anything. Concurrent runs against the same bucket are not
// supported; serializing invocations is the caller's responsibility.
type Reconciler interface {
	Init(ctx context.Context, params api.InitParams) error
	Plan(ctx context.Context, params api.ReconcileParams) (*api.Plan, error)
	Apply(ctx context.Context, params api.ReconcileParams) (*api.ReconcileResult, error)
}

// AccessorFactory builds the provider state accessor for a run.
type AccessorFactory func(ctx context.Context, region string, auth api.AuthConfig, log logger.Logger) (api.StateAccessor, error)

const (
	defaultOpTimeout     = 30 * time.Second
	defaultRetryInterval = 2 * time.Second
)

type reconciler struct {
	rootDir string
	profile string

	log             logger.Logger
	accessor        api.StateAccessor
	accessorFactory AccessorFactory
	opTimeout       time.Duration
	retryInterval   time.Duration
}

func New(opts ...Option) (Reconciler, error) {
	res := &reconciler{
		log:             logger.New(),
		accessorFactory: aws.NewStateAccessorForRegion,
		opTimeout:       defaultOpTimeout,
		retryInterval:   defaultRetryInterval,
	}
	for _, opt := range opts {
		if err := opt(res); err != nil {
			return nil, err
		}
	}
	if res.profile == "" {
		res.profile = api.DefaultProfile
	}
	if res.rootDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, errors.Wrapf(err, "failed to detect working directory")
		}
		res.rootDir = wd
	}
	return res, nil
}

// prepare reads the profile config, builds the immutable desired state for
// this run and resolves the state accessor. Validation happens here, before
// any remote call.
func (r *reconciler) prepare(ctx context.Context, params api.ReconcileParams) (api.DesiredState, api.StateAccessor, error) {
	cfg, err := api.ReadConfigFile(r.rootDir, r.profileOf(params))
	if err != nil {
		return api.DesiredState{}, nil, errors.Wrapf(err, "failed to read profile config, did you run `init`?")
	}

	desired := cfg.DesiredState(params)
	if err := desired.Validate(); err != nil {
		return api.DesiredState{}, nil, err
	}

	accessor := r.accessor
	if accessor == nil {
		region := cfg.Region(params)
		r.log.Debug(ctx, "connecting to provider in region %q", region)
		accessor, err = r.accessorFactory(ctx, region, cfg.Auth, r.log)
		if err != nil {
			return api.DesiredState{}, nil, errors.Wrapf(err, "failed to initialize state accessor")
		}
	}
	return desired, accessor, nil
}

func (r *reconciler) profileOf(params api.ReconcileParams) string {
	if params.Profile != "" {
		return params.Profile
	}
	return r.profile
}
