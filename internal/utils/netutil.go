package utils

import (
	"context"
	"fmt"
	"net"
	"time"

	gnet "github.com/shirou/gopsutil/v4/net"
)

// CheckPortConnectable 检查本机端口是否可以连接
func CheckPortConnectable(port int) bool {
	timeout := time.Second
	conn, err := net.DialTimeout("tcp", net.JoinHostPort("localhost", fmt.Sprintf("%d", port)), timeout)
	if err != nil {
		return false
	}
	conn.Close()
	return true
}

/**
 * List the local TCP listeners bound to a port
 * @param {context.Context} ctx - Cancels the OS query
 * @param {int} port - Local port number
 * @returns {[]int32} PIDs owning a LISTEN socket on the port (0 when the OS hides the owner)
 * @returns {error} Returns error if the connection table cannot be read
 * @description
 * - Reads the OS connection table through gopsutil, both IPv4 and IPv6
 * - A point-in-time snapshot; the port may change owner right after
 */
func FindPortListeners(ctx context.Context, port int) ([]int32, error) {
	conns, err := gnet.ConnectionsWithContext(ctx, "tcp")
	if err != nil {
		return nil, fmt.Errorf("list tcp connections failed: %w", err)
	}
	var pids []int32
	for _, c := range conns {
		if c.Status != "LISTEN" || c.Laddr.Port != uint32(port) {
			continue
		}
		pids = append(pids, c.Pid)
	}
	return pids, nil
}

/**
 * Check whether any process occupies a local TCP port
 * @param {context.Context} ctx - Cancels the OS query
 * @param {int} port - Local port number
 * @returns {bool} True when a listener exists on the port
 * @description
 * - Prefers the connection table; when it cannot be read (restricted
 *   containers, missing privileges) falls back to a connect attempt
 */
func IsPortInUse(ctx context.Context, port int) bool {
	if pids, err := FindPortListeners(ctx, port); err == nil && len(pids) > 0 {
		return true
	}
	// 连接表里可能看不到其他用户的 socket
	return CheckPortConnectable(port)
}
