package cmd_init

import (
	"github.com/spf13/cobra"

	"github.com/core-telecoms/bucketctl/pkg/api"
	"github.com/core-telecoms/bucketctl/pkg/cmd/root_cmd"
)

type initCmd struct {
	Root   *root_cmd.RootCmd
	Params api.InitParams
}

func NewInitCmd(rootCmd *root_cmd.RootCmd) *cobra.Command {
	sCmd := &initCmd{
		Root: rootCmd,
	}
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Init local bucketctl configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			return sCmd.Root.Reconciler.Init(cmd.Context(), sCmd.Params)
		},
	}
	cmd.Flags().StringVarP(&sCmd.Params.Profile, "profile", "p", sCmd.Params.Profile, "Profile to initialize (default: `default`)")
	cmd.Flags().BoolVar(&sCmd.Params.Force, "force", sCmd.Params.Force, "Overwrite existing profile config")
	return cmd
}
