package utils

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/shirou/gopsutil/v4/process"
)

// ProcessMatch 命令行匹配到的进程
type ProcessMatch struct {
	Pid     int32
	Cmdline string
}

/**
 * Find processes whose command line contains a pattern
 * @param {context.Context} ctx - Cancels the process table walk
 * @param {string} pattern - Substring to look for, compared case-insensitively
 * @returns {[]ProcessMatch} Matching processes in PID order reported by the OS
 * @returns {error} Returns error if the process table cannot be listed
 * @description
 * - The keeper's own process is skipped
 * - Processes that exit or deny access during the walk are ignored
 * @example
 * procs, _ := FindProcessesByCmdline(ctx, "org.apache.catalina.startup.Bootstrap")
 */
func FindProcessesByCmdline(ctx context.Context, pattern string) ([]ProcessMatch, error) {
	procs, err := process.ProcessesWithContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("list processes failed: %w", err)
	}
	selfPid := int32(os.Getpid())
	needle := strings.ToLower(pattern)

	var matches []ProcessMatch
	for _, p := range procs {
		if p.Pid == selfPid {
			continue
		}
		cmdline, err := p.CmdlineWithContext(ctx)
		if err != nil || cmdline == "" {
			continue
		}
		if strings.Contains(strings.ToLower(cmdline), needle) {
			matches = append(matches, ProcessMatch{Pid: p.Pid, Cmdline: cmdline})
		}
	}
	return matches, nil
}
