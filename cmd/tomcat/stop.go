package tomcat

import (
	"catalina-keeper/cmd/root"

	"github.com/spf13/cobra"
)

var stopCmd = &cobra.Command{
	Use:   "stop",
	Short: "停止Tomcat，只触发关闭脚本",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return root.RunTool(cmd.Context(), "stop_tomcat", nil)
	},
}

func init() {
	tomcatCmd.AddCommand(stopCmd)
}
