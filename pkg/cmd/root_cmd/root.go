package root_cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"go.uber.org/atomic"

	"github.com/core-telecoms/bucketctl/pkg/api"
	"github.com/core-telecoms/bucketctl/pkg/api/logger"
	"github.com/core-telecoms/bucketctl/pkg/api/logger/color"
	"github.com/core-telecoms/bucketctl/pkg/reconciler"
)

type Params struct {
	Verbose bool
	Silent  bool
	Profile string

	IsCanceled *atomic.Bool
	CancelFunc func()
}

type RootCmd struct {
	*Params

	Logger     logger.Logger
	Reconciler reconciler.Reconciler
}

func (c *RootCmd) Init() error {
	c.Logger = logger.New()

	wd, err := os.Getwd()
	if err != nil {
		return err
	}

	c.Reconciler, err = reconciler.New(
		reconciler.WithLogger(c.Logger),
		reconciler.WithRootDir(wd),
		reconciler.WithProfile(c.Params.Profile),
	)
	return err
}

func RegisterReconcileFlags(cmd *cobra.Command, p *api.ReconcileParams) {
	cmd.Flags().StringVarP(&p.Profile, "profile", "p", p.Profile, "Use profile (default: `default`)")
	cmd.Flags().StringVarP(&p.BucketName, "bucket", "b", p.BucketName, "Bucket name (overrides profile config)")
	cmd.Flags().StringVarP(&p.FolderName, "folder", "f", p.FolderName, "Folder prefix for the raw layer (overrides profile config)")
	cmd.Flags().StringVarP(&p.Environment, "env", "e", p.Environment, "Environment tag (default: `dev`)")
	cmd.Flags().StringVarP(&p.Region, "region", "r", p.Region, "Provider region (default: `eu-north-1`)")
}

// FormatPlan renders a plan the way `plan` and `apply` display it: one line
// per pending change plus a closing summary.
func FormatPlan(plan *api.Plan) string {
	var sb strings.Builder
	changes := plan.Changes()
	if len(changes) == 0 {
		sb.WriteString(color.GreenFmt("No changes. Bucket %q matches the desired state.", plan.BucketName))
		return sb.String()
	}

	for _, op := range plan.Operations {
		switch op.Action {
		case api.ActionCreate:
			sb.WriteString(color.GreenFmt("  + %s: %s\n", op.Kind, op.Detail))
		case api.ActionUpdate:
			sb.WriteString(color.YellowFmt("  ~ %s: %s\n", op.Kind, op.Detail))
		default:
			sb.WriteString(color.GrayFmt("    %s: %s\n", op.Kind, op.Detail))
		}
	}

	creates := lo.CountBy(changes, func(op api.Operation) bool { return op.Action == api.ActionCreate })
	updates := lo.CountBy(changes, func(op api.Operation) bool { return op.Action == api.ActionUpdate })
	sb.WriteString(color.BoldFmt("\nPlan: %d to create, %d to update.", creates, updates))
	return sb.String()
}

// FormatResult renders the outcome of an apply, listing exactly which
// operations succeeded so a partial apply is easy to follow up on.
func FormatResult(result *api.ReconcileResult) string {
	var sb strings.Builder
	for _, op := range result.Applied {
		sb.WriteString(color.GreenFmt("  + %s: %s\n", op.Kind, op.Detail))
	}
	if len(result.Errors) > 0 {
		for _, err := range result.Errors {
			sb.WriteString(color.RedFmt("  ! %s\n", err.Error()))
		}
		sb.WriteString(fmt.Sprintf("\n%d operation(s) applied before failure.", len(result.Applied)))
		return sb.String()
	}
	sb.WriteString(color.BoldFmt("\nApply complete. %d operation(s) applied.", len(result.Applied)))
	return sb.String()
}
