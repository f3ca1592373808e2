package root

import (
	"context"
	"encoding/json"
	"fmt"

	"catalina-keeper/internal/config"
	"catalina-keeper/internal/logger"
	"catalina-keeper/internal/rpc"
	"catalina-keeper/services"

	"github.com/spf13/cobra"
)

// 命令注解: 控制PersistentPreRunE对配置的处理
const (
	AnnotationConfig = "config"
	ConfigSkip       = "skip"     // 不加载配置
	ConfigNoValidate = "no-check" // 加载但不校验
)

var (
	ConfigFile string
	Local      bool

	appConfig *config.AppConfig
	keeper    *services.Keeper
)

var RootCmd = &cobra.Command{
	Use:   "catalina-keeper",
	Short: "Tomcat运维助手",
	Long: `catalina-keeper管理单台主机上的Tomcat: 启停、状态检查、日志诊断、
WAR部署与回滚、线程/堆转储、GC日志分析，并通过HTTP提供同名工具调用接口`,
	SilenceUsage:      true,
	PersistentPreRunE: prepare,
}

func init() {
	RootCmd.PersistentFlags().StringVarP(&ConfigFile, "config", "c", "", "配置文件路径")
	RootCmd.PersistentFlags().BoolVar(&Local, "local", false, "不经过keeper服务，直接在本进程执行")
}

/**
 * Load configuration and initialize logging before any subcommand runs
 * @description
 * - Commands annotated with config=skip run without a config
 * - Commands annotated with config=no-check load the config but skip validation
 * - Validation failure is fatal: the command does not run
 * - The server logs to file and console, other commands only to file
 */
func prepare(cmd *cobra.Command, args []string) error {
	mode := cmd.Annotations[AnnotationConfig]
	if mode == ConfigSkip || cmd.Name() == "help" {
		return nil
	}
	if cmd.HasParent() && cmd.Parent().Name() == "completion" {
		return nil
	}
	cfg, err := config.Load(ConfigFile)
	if err != nil {
		return err
	}
	if mode != ConfigNoValidate {
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("invalid configuration: %w", err)
		}
	}
	logger.InitLogger(cfg.Log.Path, cfg.Log.Level, cmd.Name() == "server", cfg.Log.MaxSize)
	appConfig = cfg
	return nil
}

func Config() *config.AppConfig {
	return appConfig
}

// Keeper 返回本进程内的keeper实例，首次调用时创建
func Keeper() *services.Keeper {
	if keeper == nil {
		keeper = services.NewKeeper(appConfig)
	}
	return keeper
}

func NewClient() rpc.HTTPClient {
	return rpc.NewHTTPClient(rpc.DefaultHTTPConfig(appConfig.Server.Address))
}

/**
 * Invoke a tool, preferring the running keeper server
 * @param {context.Context} ctx - Command context
 * @param {string} name - Tool name
 * @param {map[string]string} args - Tool arguments
 * @returns {string} Tool text output
 * @returns {error} Tool error, or the server's error response
 * @description
 * - With --local, or when the server cannot be dialed, the tool runs in this process
 * - Once the request may have reached the server, a failure is returned as is;
 *   rerunning locally could deploy or restart twice
 */
func CallTool(ctx context.Context, name string, args map[string]string) (string, error) {
	if !Local {
		client := NewClient()
		defer client.Close()

		var body interface{}
		if len(args) > 0 {
			body = args
		}
		resp, err := client.Post(ctx, "/keeper/api/v1/tools/"+name, body)
		if err != nil && !rpc.IsUnreachable(err) {
			return "", fmt.Errorf("keeper server call '%s' failed, it may have run: %w", name, err)
		}
		if err == nil {
			if !resp.OK() {
				return "", fmt.Errorf("%s: %s", resp.Code, resp.Error)
			}
			var out struct {
				Text string `json:"text"`
			}
			if err := json.Unmarshal(resp.Body, &out); err != nil {
				return "", fmt.Errorf("decode response failed: %w", err)
			}
			return out.Text, nil
		}
		logger.Debugf("keeper server unreachable, run '%s' locally: %v", name, err)
	}
	return Keeper().Tools().CallTool(ctx, name, args)
}

// RunTool 调用工具并打印结果
func RunTool(ctx context.Context, name string, args map[string]string) error {
	text, err := CallTool(ctx, name, args)
	if err != nil {
		return err
	}
	fmt.Println(text)
	return nil
}
