package services

import (
	"context"
	"fmt"
	"time"

	"catalina-keeper/internal/logger"

	"github.com/robfig/cron/v3"
)

/**
 * Monitor 定时探测Tomcat状态和GC日志，刷新 tomcat_up 等指标
 * @property {string} schedule - cron spec, "@every 30s" style descriptors allowed
 */
type Monitor struct {
	keeper   *Keeper
	schedule string
	cron     *cron.Cron
}

func NewMonitor(k *Keeper, schedule string) *Monitor {
	return &Monitor{
		keeper:   k,
		schedule: schedule,
		cron:     cron.New(),
	}
}

/**
 * Start the periodic probe
 * @returns {error} Returns error if the schedule cannot be parsed
 * @description
 * - An empty schedule disables the monitor
 * - Runs one probe immediately so the gauges are set before the first tick
 */
func (m *Monitor) Start() error {
	if m.schedule == "" {
		logger.Info("Tomcat monitor is disabled (empty schedule)")
		return nil
	}
	if _, err := m.cron.AddFunc(m.schedule, m.Probe); err != nil {
		return fmt.Errorf("invalid monitor schedule '%s': %w", m.schedule, err)
	}
	m.Probe()
	m.cron.Start()
	logger.Infof("Tomcat monitor started with schedule '%s'", m.schedule)
	return nil
}

// Stop 停止调度并等待正在执行的探测结束
func (m *Monitor) Stop() {
	<-m.cron.Stop().Done()
}

// Probe 执行一次探测
func (m *Monitor) Probe() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if _, err := m.keeper.process.Status(ctx); err != nil {
		logger.Warnf("Monitor status probe failed: %v", err)
	}
	stats, err := m.keeper.gc.Analyze()
	if err != nil {
		logger.Warnf("Monitor GC analysis failed: %v", err)
		return
	}
	setGCCollections(stats.YoungCollections, stats.FullCollections)
	if stats.MemoryPressure() {
		logger.Warnf("Full GC count %d exceeds %d: possible memory pressure", stats.FullCollections, stats.Threshold)
	}
}
