package deploy

import (
	"catalina-keeper/cmd/root"

	"github.com/spf13/cobra"
)

var rollbackCmd = &cobra.Command{
	Use:   "rollback",
	Short: "用最新的备份恢复WAR包并重启Tomcat",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return root.RunTool(cmd.Context(), "rollback_last_deployment", nil)
	},
}

func init() {
	root.RootCmd.AddCommand(rollbackCmd)
}
