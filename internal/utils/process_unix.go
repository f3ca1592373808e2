//go:build unix

package utils

import (
	"os/exec"
	"syscall"
)

// SetNewPG 设置进程属性，使子进程在父进程退出后继续运行
// Unix系统(Linux/macOS)实现
func SetNewPG(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{
		Setpgid: true,
	}
}
