package services

import (
	"context"
	"fmt"
	"strings"

	"catalina-keeper/internal/logger"
	"catalina-keeper/internal/models"
)

// ToolFunc 工具实现，返回给调用方的文本结果
type ToolFunc func(ctx context.Context, args map[string]string) (string, error)

type tool struct {
	info models.ToolInfo
	call ToolFunc
}

/**
 * ToolRegistry 按名称分发工具调用
 * @description
 * - Names match what the dispatch layer exposes (start_tomcat, deploy_war ...)
 * - Listing order is registration order
 */
type ToolRegistry struct {
	tools map[string]tool
	order []string
}

func NewToolRegistry(k *Keeper) *ToolRegistry {
	r := &ToolRegistry{tools: make(map[string]tool)}

	r.Register("start_tomcat", nil, func(ctx context.Context, _ map[string]string) (string, error) {
		return k.process.Start(ctx), nil
	})
	r.Register("stop_tomcat", nil, func(ctx context.Context, _ map[string]string) (string, error) {
		return k.process.Stop(ctx), nil
	})
	r.Register("check_tomcat_status", nil, func(ctx context.Context, _ map[string]string) (string, error) {
		st, err := k.process.Status(ctx)
		if err != nil {
			return "", err
		}
		return st.Text(), nil
	})
	r.Register("read_latest_catalina_log", nil, func(_ context.Context, _ map[string]string) (string, error) {
		return k.ReadLatestLog(0)
	})
	r.Register("diagnose_startup_failure", nil, func(ctx context.Context, _ map[string]string) (string, error) {
		report, err := k.diagnosis.DiagnoseStartupFailure(ctx)
		if err != nil {
			return "", err
		}
		return report.Text(), nil
	})
	r.Register("deploy_war", []string{"warPath"}, func(ctx context.Context, args map[string]string) (string, error) {
		res, err := k.deploy.Deploy(ctx, args["warPath"])
		if err != nil {
			return "", err
		}
		return res.Text(), nil
	})
	r.Register("thread_dump", nil, func(ctx context.Context, _ map[string]string) (string, error) {
		res, err := k.capture.ThreadDump(ctx)
		if err != nil {
			return "", err
		}
		return res.Text(), nil
	})
	r.Register("analyze_gc_log", nil, func(_ context.Context, _ map[string]string) (string, error) {
		stats, err := k.gc.Analyze()
		if err != nil {
			return "", err
		}
		return stats.Text(), nil
	})
	r.Register("rollback_last_deployment", nil, func(ctx context.Context, _ map[string]string) (string, error) {
		res, err := k.deploy.Rollback(ctx)
		if err != nil {
			return "", err
		}
		return res.Text(), nil
	})
	r.Register("heap_dump", nil, func(ctx context.Context, _ map[string]string) (string, error) {
		res, err := k.capture.HeapDump(ctx)
		if err != nil {
			return "", err
		}
		return res.Text(), nil
	})
	r.Register("restart_tomcat", nil, func(ctx context.Context, _ map[string]string) (string, error) {
		if err := k.process.RestartCycle(ctx); err != nil {
			return "", err
		}
		return "Tomcat restart triggered", nil
	})
	r.Register("list_backups", nil, func(_ context.Context, _ map[string]string) (string, error) {
		backups, err := k.deploy.ListBackups()
		if err != nil {
			return "", err
		}
		if len(backups) == 0 {
			return "No backup WARs available", nil
		}
		var sb strings.Builder
		for _, b := range backups {
			fmt.Fprintf(&sb, "%s\t%s\t%d\n", b.Name, b.CreatedAt.Format("2006-01-02 15:04:05"), b.Size)
		}
		return sb.String(), nil
	})
	return r
}

// Register 注册工具，同名工具会被替换
func (r *ToolRegistry) Register(name string, params []string, fn ToolFunc) {
	if _, ok := r.tools[name]; !ok {
		r.order = append(r.order, name)
	}
	r.tools[name] = tool{
		info: models.ToolInfo{
			Name:        name,
			Description: strings.ReplaceAll(name, "_", " "),
			Params:      params,
		},
		call: fn,
	}
}

func (r *ToolRegistry) ListTools() []models.ToolInfo {
	infos := make([]models.ToolInfo, 0, len(r.order))
	for _, name := range r.order {
		infos = append(infos, r.tools[name].info)
	}
	return infos
}

/**
 * Invoke a tool by name
 * @param {context.Context} ctx - Request context
 * @param {string} name - Tool name
 * @param {map[string]string} args - Tool arguments, only deploy_war takes one
 * @returns {string} Human readable result
 * @returns {error} ErrNotFound for an unknown tool, ErrInvalidArgument for a
 *   missing required argument, otherwise the tool's own error
 */
func (r *ToolRegistry) CallTool(ctx context.Context, name string, args map[string]string) (string, error) {
	t, ok := r.tools[name]
	if !ok {
		return "", fmt.Errorf("%w: Unknown tool: %s", models.ErrNotFound, name)
	}
	for _, p := range t.info.Params {
		if args[p] == "" {
			err := fmt.Errorf("%w: tool '%s' requires argument '%s'", models.ErrInvalidArgument, name, p)
			recordToolCall(name, err)
			return "", err
		}
	}
	logger.Debugf("Call tool '%s' with %v", name, args)
	text, err := t.call(ctx, args)
	recordToolCall(name, err)
	if err != nil {
		logger.Errorf("Tool '%s' failed: %v", name, err)
	}
	return text, err
}
