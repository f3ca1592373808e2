package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"catalina-keeper/cmd/root"
	"catalina-keeper/controllers"
	"catalina-keeper/internal/config"
	"catalina-keeper/internal/logger"
	"catalina-keeper/internal/middleware"
	"catalina-keeper/internal/rpc"
	"catalina-keeper/services"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
)

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "启动HTTP服务",
	Long:  "启动keeper HTTP服务，提供工具调用、Tomcat管理、部署与指标接口，并按计划探测Tomcat状态",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return startServer(ctx, root.Config(), root.Keeper())
	},
}

/**
 * Build the gin router with every controller registered
 * @param {*services.Keeper} k - Keeper shared by all handlers
 * @returns {*gin.Engine} Router
 */
func NewRouter(k *services.Keeper) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), middleware.MetricsMiddleware())

	controllers.NewAPIController(k).RegisterRoutes(router)
	controllers.NewToolController(k.Tools()).RegisterRoutes(router)
	controllers.NewTomcatController(k).RegisterRoutes(router)
	controllers.NewDeployController(k.Deployments()).RegisterRoutes(router)
	return router
}

func listenAddrs(cfg *config.AppConfig) []ListenAddr {
	addrs := []ListenAddr{{Network: "tcp", Address: cfg.Server.Address}}
	if IsUnixSocketSupported() {
		addrs = append(addrs, ListenAddr{Network: "unix", Address: rpc.GetSocketPath("")})
	}
	return addrs
}

/**
 * Serve the keeper API until ctx is cancelled
 * @description
 * - Serves on the tcp address and, where supported, the local unix socket
 * - Fails only when no listener could be created
 * - Starts the monitor before serving and stops it on shutdown
 */
func startServer(ctx context.Context, cfg *config.AppConfig, k *services.Keeper) error {
	if cfg.Server.Mode != "" {
		gin.SetMode(cfg.Server.Mode)
	}
	router := NewRouter(k)

	listeners, err := CreateListeners(listenAddrs(cfg))
	if len(listeners) == 0 {
		return fmt.Errorf("no listener available: %w", err)
	}

	monitor := services.NewMonitor(k, cfg.Monitor.Schedule)
	if err := monitor.Start(); err != nil {
		for _, l := range listeners {
			l.Close()
		}
		return fmt.Errorf("start monitor failed: %w", err)
	}
	defer monitor.Stop()

	srv := &http.Server{Handler: router}
	errCh := make(chan error, len(listeners))
	for _, l := range listeners {
		logger.Infof("Keeper listening on %s://%s", l.Addr().Network(), l.Addr().String())
		go func(l net.Listener) {
			if err := srv.Serve(l); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errCh <- err
			}
		}(l)
	}

	select {
	case <-ctx.Done():
		logger.Info("Shutting down keeper server")
	case err = <-errCh:
		logger.Errorf("Keeper server failed: %v", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if e := srv.Shutdown(shutdownCtx); e != nil {
		logger.Warnf("Keeper server shutdown: %v", e)
	}
	os.Remove(rpc.GetSocketPath(""))
	return err
}

func init() {
	root.RootCmd.AddCommand(serverCmd)
}
