package cmd_plan

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/core-telecoms/bucketctl/pkg/api"
	"github.com/core-telecoms/bucketctl/pkg/cmd/root_cmd"
)

type planCmd struct {
	Root   *root_cmd.RootCmd
	Params api.ReconcileParams
}

func NewPlanCmd(rootCmd *root_cmd.RootCmd) *cobra.Command {
	pCmd := planCmd{
		Root: rootCmd,
	}
	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Computes and displays the operations needed to converge the bucket, without applying them",
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := pCmd.Root.Reconciler.Plan(cmd.Context(), pCmd.Params)
			if err != nil {
				return err
			}
			fmt.Println(root_cmd.FormatPlan(res))
			return nil
		},
	}
	root_cmd.RegisterReconcileFlags(cmd, &pCmd.Params)
	return cmd
}
