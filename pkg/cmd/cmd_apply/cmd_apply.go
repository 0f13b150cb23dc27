package cmd_apply

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/core-telecoms/bucketctl/pkg/api"
	"github.com/core-telecoms/bucketctl/pkg/cmd/root_cmd"
)

type applyCmd struct {
	Root   *root_cmd.RootCmd
	Params api.ReconcileParams
}

func NewApplyCmd(rootCmd *root_cmd.RootCmd) *cobra.Command {
	aCmd := applyCmd{
		Root: rootCmd,
	}
	cmd := &cobra.Command{
		Use:   "apply",
		Short: "Applies the operations needed to converge the bucket to its desired state",
		RunE: func(cmd *cobra.Command, args []string) error {
			plan, err := aCmd.Root.Reconciler.Plan(cmd.Context(), aCmd.Params)
			if err != nil {
				return err
			}
			fmt.Println(root_cmd.FormatPlan(plan))
			if plan.IsNoop() {
				return nil
			}

			if !aCmd.Params.AutoApprove {
				fmt.Print("\nDo you want to apply these operations? Only 'yes' will be accepted: ")
				line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
				if err != nil {
					return errors.Wrapf(err, "failed to read confirmation")
				}
				if strings.TrimSpace(line) != "yes" {
					return errors.Errorf("apply cancelled")
				}
			}

			res, err := aCmd.Root.Reconciler.Apply(cmd.Context(), aCmd.Params)
			if res != nil {
				fmt.Println(root_cmd.FormatResult(res))
			}
			return err
		},
	}
	root_cmd.RegisterReconcileFlags(cmd, &aCmd.Params)
	cmd.Flags().BoolVarP(&aCmd.Params.AutoApprove, "auto-approve", "y", aCmd.Params.AutoApprove, "Skip interactive approval before applying")
	return cmd
}
