package tomcat

import (
	"catalina-keeper/cmd/root"

	"github.com/spf13/cobra"
)

var startCmd = &cobra.Command{
	Use:   "start",
	Short: "启动Tomcat，只触发启动脚本，不等待就绪",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return root.RunTool(cmd.Context(), "start_tomcat", nil)
	},
}

func init() {
	tomcatCmd.AddCommand(startCmd)
}
