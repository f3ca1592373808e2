package services

import (
	"context"
	"errors"
	"time"

	"catalina-keeper/internal/config"
	"catalina-keeper/internal/env"
	"catalina-keeper/internal/logger"
	"catalina-keeper/internal/models"
	"catalina-keeper/internal/proc"
)

/**
 * Keeper 聚合管理单个Tomcat实例的全部服务
 * @description
 * - Built once from the loaded configuration; every service receives its
 *   settings through its constructor
 */
type Keeper struct {
	cfg       *config.AppConfig
	process   *ProcessControl
	logs      *LogReader
	gc        *GCAnalyzer
	capture   *DiagnosticCapture
	deploy    *DeployManager
	diagnosis *DiagnosisService
	tools     *ToolRegistry
	startTime time.Time
}

/**
 * Create a keeper backed by the real OS capabilities
 * @param {config.AppConfig} cfg - Validated configuration
 * @returns {Keeper} Keeper using script launcher, OS port prober and jcmd
 */
func NewKeeper(cfg *config.AppConfig) *Keeper {
	return NewKeeperWith(cfg, proc.NewScriptLauncher(cfg.Tomcat.BinDir), OSPortProber{}, proc.ExecRunner{})
}

/**
 * Create a keeper with explicit capabilities
 * @param {config.AppConfig} cfg - Validated configuration
 * @param {Launcher} launcher - Spawns startup/shutdown scripts
 * @param {PortProber} prober - Port occupancy check
 * @param {CommandRunner} runner - Runs jcmd
 * @returns {Keeper} Fully wired keeper
 */
func NewKeeperWith(cfg *config.AppConfig, launcher Launcher, prober PortProber, runner CommandRunner) *Keeper {
	t := cfg.Tomcat
	k := &Keeper{
		cfg:       cfg,
		process:   NewProcessControl(t, launcher, prober),
		logs:      NewLogReader(t.LogPrefix),
		gc:        NewGCAnalyzer(t.GCLog, t.GCFullThreshold),
		startTime: time.Now(),
	}
	k.capture = NewDiagnosticCapture(t, NewProcessLocator(t, runner), runner)
	k.deploy = NewDeployManager(t, k.process)
	k.diagnosis = NewDiagnosisService(k.process, k.logs, t.LogDir, t.TailLines)
	k.tools = NewToolRegistry(k)
	return k
}

func (k *Keeper) Config() *config.AppConfig {
	return k.cfg
}

func (k *Keeper) Process() *ProcessControl {
	return k.process
}

func (k *Keeper) Logs() *LogReader {
	return k.logs
}

func (k *Keeper) GC() *GCAnalyzer {
	return k.gc
}

func (k *Keeper) Capture() *DiagnosticCapture {
	return k.capture
}

func (k *Keeper) Deployments() *DeployManager {
	return k.deploy
}

func (k *Keeper) Diagnosis() *DiagnosisService {
	return k.diagnosis
}

func (k *Keeper) Tools() *ToolRegistry {
	return k.tools
}

/**
 * Read the tail of the latest catalina log
 * @param {int} lineCount - Lines to return, <= 0 uses tomcat.tail_lines
 * @returns {string} Log tail, or "No catalina logs found"
 * @returns {error} ErrIO when the directory or file cannot be read
 */
func (k *Keeper) ReadLatestLog(lineCount int) (string, error) {
	if lineCount <= 0 {
		lineCount = k.cfg.Tomcat.TailLines
	}
	path, err := k.logs.LatestLogPath(k.cfg.Tomcat.LogDir)
	if errors.Is(err, models.ErrNotFound) {
		return "No catalina logs found", nil
	}
	if err != nil {
		return "", err
	}
	return k.logs.Tail(path, lineCount)
}

/**
 * Build the health check response
 * @param {context.Context} ctx - Cancels the Tomcat status probe
 * @returns {HealthResponse} Keeper uptime, Tomcat status and key counters
 * @description
 * - The keeper reports UP even when Tomcat is down; Tomcat's state is a field
 */
func (k *Keeper) GetHealthz(ctx context.Context) models.HealthResponse {
	tomcat := "unknown"
	if st, err := k.process.Status(ctx); err == nil {
		tomcat = string(st.Status)
	} else {
		logger.Warnf("Healthz status probe failed: %v", err)
	}
	backups := 0
	if list, err := k.deploy.ListBackups(); err == nil {
		backups = len(list)
	}
	return models.HealthResponse{
		Version:   env.Version,
		StartTime: k.startTime.Format(time.RFC3339),
		Status:    "UP",
		Uptime:    time.Since(k.startTime).Round(time.Second).String(),
		Tomcat:    tomcat,
		Metrics: models.Metrics{
			TotalRequests: GetTotalRequestCount(),
			ErrorRequests: GetTotalErrorCount(),
			Deployments:   totalDeploys.Load(),
			Rollbacks:     totalRollbacks.Load(),
			Backups:       backups,
		},
	}
}
