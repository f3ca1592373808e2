package deploy

import (
	"fmt"
	"path/filepath"

	"catalina-keeper/cmd/root"

	"github.com/spf13/cobra"
)

var deployCmd = &cobra.Command{
	Use:   "deploy <war文件>",
	Short: "部署WAR包: 备份现有版本、安装新版本并重启Tomcat",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		// keeper服务的工作目录与当前目录不同，必须传绝对路径
		warPath, err := filepath.Abs(args[0])
		if err != nil {
			return fmt.Errorf("resolve '%s' failed: %w", args[0], err)
		}
		return root.RunTool(cmd.Context(), "deploy_war", map[string]string{"warPath": warPath})
	},
}

func init() {
	root.RootCmd.AddCommand(deployCmd)

	deployCmd.Example = `  catalina-keeper deploy ./target/shop.war`
}
