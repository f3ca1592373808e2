package tomcat

import (
	"catalina-keeper/cmd/root"

	"github.com/spf13/cobra"
)

var diagnoseCmd = &cobra.Command{
	Use:   "diagnose",
	Short: "分析Tomcat启动失败的原因",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return root.RunTool(cmd.Context(), "diagnose_startup_failure", nil)
	},
}

func init() {
	tomcatCmd.AddCommand(diagnoseCmd)
}
