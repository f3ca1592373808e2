package metrics

import (
	"context"
	"fmt"
	"time"

	"catalina-keeper/cmd/root"
	"catalina-keeper/services"

	"github.com/spf13/cobra"
)

var (
	pushGatewayAddr string
	pushTimeout     time.Duration
)

func init() {
	root.RootCmd.AddCommand(Cmd)
	Cmd.Flags().SortFlags = false
	Cmd.Flags().StringVarP(&pushGatewayAddr, "addr", "a", "", "Pushgateway地址，默认使用metrics.pushgateway")
	Cmd.Flags().DurationVarP(&pushTimeout, "timeout", "t", 30*time.Second, "指标采集及上报超时时间")
}

var Cmd = &cobra.Command{
	Use:   "metrics",
	Short: "采集一次Tomcat状态和GC指标并上报到Pushgateway",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if pushGatewayAddr == "" {
			pushGatewayAddr = root.Config().Metrics.Pushgateway
		}
		ctx, cancel := context.WithTimeout(cmd.Context(), pushTimeout)
		defer cancel()

		// 本进程内刷新一次gauge，再推送
		services.NewMonitor(root.Keeper(), "").Probe()
		if err := services.PushMetrics(ctx, pushGatewayAddr); err != nil {
			return fmt.Errorf("指标上报失败: %w\n请检查Pushgateway地址是否正确且可访问", err)
		}
		fmt.Printf("Metrics pushed to %s\n", pushGatewayAddr)
		return nil
	},
}
