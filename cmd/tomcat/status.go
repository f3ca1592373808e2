package tomcat

import (
	"catalina-keeper/cmd/root"

	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "检查Tomcat端口是否在侦听",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return root.RunTool(cmd.Context(), "check_tomcat_status", nil)
	},
}

func init() {
	tomcatCmd.AddCommand(statusCmd)
}
