package tomcat

import (
	"catalina-keeper/cmd/root"

	"github.com/spf13/cobra"
)

var restartCmd = &cobra.Command{
	Use:   "restart",
	Short: "重启Tomcat: 停止、等待端口释放、再启动",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return root.RunTool(cmd.Context(), "restart_tomcat", nil)
	},
}

func init() {
	tomcatCmd.AddCommand(restartCmd)
}
