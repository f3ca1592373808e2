package diag

import (
	"fmt"

	"catalina-keeper/cmd/root"

	"github.com/spf13/cobra"
)

var dumpTools = map[string]string{
	"thread": "thread_dump",
	"heap":   "heap_dump",
}

var dumpCmd = &cobra.Command{
	Use:       "dump <thread|heap>",
	Short:     "对Tomcat JVM做线程转储或堆转储",
	Long:      "thread: 输出jcmd Thread.print结果\nheap: 触发jcmd GC.heap_dump，转储文件写入tomcat.heap_dump_dir，不等待完成",
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"thread", "heap"},
	RunE: func(cmd *cobra.Command, args []string) error {
		tool, ok := dumpTools[args[0]]
		if !ok {
			return fmt.Errorf("unknown dump kind '%s', expect thread or heap", args[0])
		}
		return root.RunTool(cmd.Context(), tool, nil)
	},
}

func init() {
	root.RootCmd.AddCommand(dumpCmd)

	dumpCmd.Example = `  catalina-keeper dump thread > threads.txt
  catalina-keeper dump heap`
}
