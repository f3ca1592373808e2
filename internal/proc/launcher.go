package proc

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"runtime"
	"strings"

	"catalina-keeper/internal/logger"
	"catalina-keeper/internal/utils"
)

/**
 * ScriptLauncher 以分离进程组的方式执行启动/停止脚本
 * @property {string} workDir - 脚本执行目录，一般为Tomcat的bin目录
 */
type ScriptLauncher struct {
	workDir string
}

func NewScriptLauncher(workDir string) *ScriptLauncher {
	return &ScriptLauncher{workDir: workDir}
}

/**
 * Launch a launcher script and return as soon as it is spawned
 * @param {context.Context} ctx - Only checked before spawning; the script outlives it
 * @param {string} script - Script path (startup.sh, shutdown.bat ...)
 * @returns {error} Returns error if the script could not be spawned
 * @description
 * - The child runs in its own process group so it survives the keeper
 * - Exit status is reaped in a goroutine and only logged
 * - .bat/.cmd scripts are run through cmd /c
 */
func (l *ScriptLauncher) Launch(ctx context.Context, script string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	name, args := scriptCommand(script)
	logger.Infof("Executing command: %s %s", name, strings.Join(args, " "))

	cmd := exec.Command(name, args...)
	if l.workDir != "" {
		cmd.Dir = l.workDir
	}
	// 设置进程属性，使子进程在父进程退出后继续运行
	utils.SetNewPG(cmd)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("start '%s' failed: %w", script, err)
	}
	pid := cmd.Process.Pid
	logger.Infof("Script '%s' started (PID: %d)", script, pid)

	go func() {
		if err := cmd.Wait(); err != nil {
			logger.Warnf("Script '%s' (PID: %d) exited: %v %s", script, pid, err, strings.TrimSpace(stderr.String()))
			return
		}
		logger.Debugf("Script '%s' (PID: %d) finished", script, pid)
	}()
	return nil
}

func scriptCommand(script string) (string, []string) {
	if runtime.GOOS == "windows" {
		lower := strings.ToLower(script)
		if strings.HasSuffix(lower, ".bat") || strings.HasSuffix(lower, ".cmd") {
			return "cmd", []string{"/c", script}
		}
	}
	return script, nil
}

// ExecRunner 执行外部控制命令(jcmd等)
type ExecRunner struct{}

/**
 * Run a command to completion and return its standard output
 * @param {context.Context} ctx - Kills the command when cancelled
 * @param {string} name - Executable
 * @param {...string} args - Arguments
 * @returns {string} Standard output
 * @returns {error} Returns error if the command cannot run or exits non-zero;
 *   the error text carries the command's stderr
 */
func (ExecRunner) Output(ctx context.Context, name string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	out, err := cmd.Output()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) && len(exitErr.Stderr) > 0 {
			return string(out), fmt.Errorf("%s %s: %w: %s", name, strings.Join(args, " "), err,
				strings.TrimSpace(string(exitErr.Stderr)))
		}
		return string(out), fmt.Errorf("%s %s: %w", name, strings.Join(args, " "), err)
	}
	return string(out), nil
}

/**
 * Start a command without waiting for it to finish
 * @param {context.Context} ctx - Only checked before spawning
 * @returns {error} Returns error if the command cannot be spawned
 * @description
 * - The exit status is logged from a goroutine and never reported to the caller
 */
func (ExecRunner) Start(ctx context.Context, name string, args ...string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	cmd := exec.Command(name, args...)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("%s %s: %w", name, strings.Join(args, " "), err)
	}
	go func() {
		if err := cmd.Wait(); err != nil {
			logger.Warnf("Command '%s' (PID: %d) exited: %v", name, cmd.Process.Pid, err)
		}
	}()
	return nil
}
