package misc

import (
	"fmt"
	"os"

	"catalina-keeper/cmd/root"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "配置相关操作(show/check)",
}

var showCmd = &cobra.Command{
	Use:         "show",
	Short:       "显示生效的配置（含默认值和环境变量覆盖）",
	Args:        cobra.NoArgs,
	Annotations: map[string]string{root.AnnotationConfig: root.ConfigNoValidate},
	RunE: func(cmd *cobra.Command, args []string) error {
		enc := yaml.NewEncoder(os.Stdout)
		enc.SetIndent(2)
		defer enc.Close()
		return enc.Encode(root.Config())
	},
}

var checkCmd = &cobra.Command{
	Use:         "check",
	Short:       "校验配置，目录不存在等问题逐条列出",
	Args:        cobra.NoArgs,
	Annotations: map[string]string{root.AnnotationConfig: root.ConfigNoValidate},
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := root.Config().Validate(); err != nil {
			return err
		}
		fmt.Println("Configuration OK")
		return nil
	},
}

func init() {
	configCmd.AddCommand(showCmd, checkCmd)
	root.RootCmd.AddCommand(configCmd)
}
