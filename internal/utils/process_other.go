//go:build !unix && !windows

package utils

import (
	"os/exec"
)

// SetNewPG 设置进程属性，使子进程在父进程退出后继续运行
// 默认实现，用于不支持的构建目标
func SetNewPG(cmd *exec.Cmd) {
	// 默认不做任何处理
}
