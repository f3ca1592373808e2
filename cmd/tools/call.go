package tools

import (
	"fmt"
	"strings"

	"catalina-keeper/cmd/root"

	"github.com/spf13/cobra"
)

var callCmd = &cobra.Command{
	Use:   "call <工具名> [参数=值...]",
	Short: "按名称调用工具",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		params, err := parseArgs(args[1:])
		if err != nil {
			return err
		}
		return root.RunTool(cmd.Context(), args[0], params)
	},
}

// parseArgs 解析 key=value 形式的工具参数
func parseArgs(args []string) (map[string]string, error) {
	params := make(map[string]string, len(args))
	for _, a := range args {
		k, v, ok := strings.Cut(a, "=")
		if !ok || k == "" {
			return nil, fmt.Errorf("invalid argument '%s', expect key=value", a)
		}
		params[k] = v
	}
	return params, nil
}

func init() {
	root.RootCmd.AddCommand(callCmd)

	callCmd.Example = `  catalina-keeper call check_tomcat_status
  catalina-keeper call deploy_war warPath=/opt/releases/shop.war`
}
