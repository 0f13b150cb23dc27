package reconciler

import (
	"time"

	"github.com/core-telecoms/bucketctl/pkg/api"
	"github.com/core-telecoms/bucketctl/pkg/api/logger"
)

type Option func(r *reconciler) error

func WithRootDir(rootDir string) Option {
	return func(r *reconciler) error {
		r.rootDir = rootDir
		return nil
	}
}

func WithProfile(profile string) Option {
	return func(r *reconciler) error {
		r.profile = profile
		return nil
	}
}

func WithLogger(log logger.Logger) Option {
	return func(r *reconciler) error {
		r.log = log
		return nil
	}
}

func WithStateAccessor(accessor api.StateAccessor) Option {
	return func(r *reconciler) error {
		r.accessor = accessor
		return nil
	}
}

func WithAccessorFactory(factory AccessorFactory) Option {
	return func(r *reconciler) error {
		r.accessorFactory = factory
		return nil
	}
}

func WithOperationTimeout(timeout time.Duration) Option {
	return func(r *reconciler) error {
		r.opTimeout = timeout
		return nil
	}
}

func WithRetryInterval(interval time.Duration) Option {
	return func(r *reconciler) error {
		r.retryInterval = interval
		return nil
	}
}
