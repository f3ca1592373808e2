package models

import "fmt"

type RunStatus string

const (
	// 端口上有进程在监听
	StatusRunning RunStatus = "running"
	// 端口空闲
	StatusNotRunning RunStatus = "not-running"
)

/**
 * Point-in-time status of the managed server
 * @property {RunStatus} status - running/not-running
 * @property {int} port - Probed port
 * @description
 * - Advisory only: the port may change owner right after the probe
 */
type ServerStatus struct {
	Status RunStatus `json:"status"`
	Port   int       `json:"port"`
}

func (s ServerStatus) Running() bool {
	return s.Status == StatusRunning
}

func (s ServerStatus) Text() string {
	if s.Running() {
		return fmt.Sprintf("Tomcat is running on port %d", s.Port)
	}
	return "Tomcat is NOT running"
}
