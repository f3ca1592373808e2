package diag

import (
	"catalina-keeper/cmd/root"

	"github.com/spf13/cobra"
)

var gcCmd = &cobra.Command{
	Use:   "gc",
	Short: "统计GC日志中的Young/Full GC次数",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return root.RunTool(cmd.Context(), "analyze_gc_log", nil)
	},
}

func init() {
	root.RootCmd.AddCommand(gcCmd)
}
