package logs

import (
	"errors"
	"fmt"

	"catalina-keeper/cmd/root"
	"catalina-keeper/internal/models"

	"github.com/spf13/cobra"
)

var (
	lineCount int
	showAll   bool
	showPath  bool
)

func init() {
	root.RootCmd.AddCommand(Cmd)
	Cmd.Flags().SortFlags = false
	Cmd.Flags().IntVarP(&lineCount, "lines", "n", 0, "显示最后N行，默认使用tomcat.tail_lines")
	Cmd.Flags().BoolVarP(&showAll, "all", "a", false, "显示整个日志文件")
	Cmd.Flags().BoolVarP(&showPath, "path", "p", false, "只显示最新日志文件的路径")
}

// 日志文件在本机读取，不经过keeper服务
var Cmd = &cobra.Command{
	Use:   "logs",
	Short: "显示最新的catalina日志",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		k := root.Keeper()
		if !showAll && !showPath {
			text, err := k.ReadLatestLog(lineCount)
			if err != nil {
				return err
			}
			fmt.Println(text)
			return nil
		}
		path, err := k.Logs().LatestLogPath(k.Config().Tomcat.LogDir)
		if errors.Is(err, models.ErrNotFound) {
			fmt.Println("No catalina logs found")
			return nil
		}
		if err != nil {
			return err
		}
		if showPath {
			fmt.Println(path)
			return nil
		}
		content, err := k.Logs().Full(path)
		if err != nil {
			return err
		}
		fmt.Print(content)
		return nil
	},
}
