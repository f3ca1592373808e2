package services

import (
	"context"
	"fmt"
	"time"

	"catalina-keeper/internal/config"
	"catalina-keeper/internal/logger"
	"catalina-keeper/internal/models"
	"catalina-keeper/internal/utils"
)

// Launcher spawns a launcher script without waiting for it
type Launcher interface {
	Launch(ctx context.Context, script string) error
}

// PortProber reports whether any process occupies a local port
type PortProber interface {
	PortInUse(ctx context.Context, port int) (bool, error)
}

// OSPortProber probes the OS connection table, falling back to a connect attempt
type OSPortProber struct{}

func (OSPortProber) PortInUse(ctx context.Context, port int) (bool, error) {
	return utils.IsPortInUse(ctx, port), nil
}

/**
 * ProcessControl 管理Tomcat的启停和状态
 * @property {TomcatConfig} cfg - Tomcat settings
 * @property {Launcher} launcher - Runs startup/shutdown scripts
 * @property {PortProber} prober - Port occupancy check
 */
type ProcessControl struct {
	cfg      config.TomcatConfig
	launcher Launcher
	prober   PortProber
}

func NewProcessControl(cfg config.TomcatConfig, launcher Launcher, prober PortProber) *ProcessControl {
	return &ProcessControl{
		cfg:      cfg,
		launcher: launcher,
		prober:   prober,
	}
}

/**
 * Trigger Tomcat startup
 * @param {context.Context} ctx - Request context
 * @returns {string} Acknowledgement that startup was triggered, not that Tomcat is up
 * @description
 * - Fire-and-forget: a failure to spawn the script is logged and counted
 *   in keeper_launch_failures_total but never returned. Use Status to
 *   confirm the transition
 */
func (pc *ProcessControl) Start(ctx context.Context) string {
	pc.launch(ctx, "startup", pc.cfg.StartupScript)
	return "Tomcat startup triggered"
}

/**
 * Trigger Tomcat shutdown
 * @param {context.Context} ctx - Request context
 * @returns {string} Acknowledgement that shutdown was triggered
 * @description
 * - Does not await termination; same fire-and-forget contract as Start
 */
func (pc *ProcessControl) Stop(ctx context.Context) string {
	pc.launch(ctx, "shutdown", pc.cfg.ShutdownScript)
	return "Tomcat shutdown triggered"
}

func (pc *ProcessControl) launch(ctx context.Context, action, script string) {
	if err := pc.launcher.Launch(ctx, script); err != nil {
		logger.Errorf("Trigger %s via '%s' failed: %v", action, script, err)
		recordLaunchFailure(action)
	}
}

/**
 * Probe whether Tomcat is running
 * @param {context.Context} ctx - Cancels the OS query
 * @returns {ServerStatus} running when anything occupies the configured port
 * @returns {error} Returns ErrExternalCommand if the probe itself failed
 * @description
 * - Point-in-time and racy; treat the result as advisory
 */
func (pc *ProcessControl) Status(ctx context.Context) (models.ServerStatus, error) {
	st := models.ServerStatus{Status: models.StatusNotRunning, Port: pc.cfg.Port}
	inUse, err := pc.prober.PortInUse(ctx, pc.cfg.Port)
	if err != nil {
		return st, fmt.Errorf("%w: probe port %d: %w", models.ErrExternalCommand, pc.cfg.Port, err)
	}
	if inUse {
		st.Status = models.StatusRunning
	}
	setTomcatUp(inUse)
	return st, nil
}

/**
 * Stop, wait for the port to settle, then start
 * @param {context.Context} ctx - Cancellation cuts the settle wait short
 * @returns {error} Returns ctx.Err() if cancelled during the settle wait
 * @description
 * - A context cancelled before the call triggers nothing
 * - Once shutdown is triggered, startup is always triggered too, even when
 *   ctx is cancelled; the error is reported after startup was issued
 * - With settle_poll the wait polls Status every settle_interval and ends as
 *   soon as the port is free, never longer than settle_delay
 * - Without it the wait is a fixed settle_delay
 * - Neither guarantees full shutdown; a slow JVM may still hold the port
 *   when startup is triggered
 */
func (pc *ProcessControl) RestartCycle(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	pc.Stop(ctx)
	err := pc.settle(ctx)
	if err != nil {
		logger.Warnf("Restart settle interrupted: %v, triggering startup anyway", err)
	}
	// 停止已经触发，启动不能随请求取消
	pc.Start(context.WithoutCancel(ctx))
	return err
}

func (pc *ProcessControl) settle(ctx context.Context) error {
	if !pc.cfg.SettlePoll || pc.cfg.SettleInterval <= 0 {
		return sleepContext(ctx, pc.cfg.SettleDelay)
	}
	deadline := time.Now().Add(pc.cfg.SettleDelay)
	for {
		st, err := pc.Status(ctx)
		if err == nil && !st.Running() {
			return nil
		}
		remaining := time.Until(deadline)
		if remaining <= 0 {
			logger.Warnf("Port %d still in use after %v, starting anyway", pc.cfg.Port, pc.cfg.SettleDelay)
			return nil
		}
		wait := pc.cfg.SettleInterval
		if wait > remaining {
			wait = remaining
		}
		if err := sleepContext(ctx, wait); err != nil {
			return err
		}
	}
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
