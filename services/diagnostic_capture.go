package services

import (
	"context"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"catalina-keeper/internal/config"
	"catalina-keeper/internal/logger"
	"catalina-keeper/internal/models"
	"catalina-keeper/internal/utils"
)

// CommandRunner runs external control commands such as jcmd
type CommandRunner interface {
	// Output runs the command to completion and returns its stdout
	Output(ctx context.Context, name string, args ...string) (string, error)
	// Start spawns the command and returns without waiting for it
	Start(ctx context.Context, name string, args ...string) error
}

// ProcessLocator finds the managed JVM. Absence is a result, not an error.
type ProcessLocator interface {
	Locate(ctx context.Context) (models.JvmProcess, error)
}

/**
 * JcmdLocator 通过 jcmd 的JVM列表查找Tomcat
 * @description
 * - jcmd without arguments prints "<pid> <main class> <args>" per JVM
 * - The first line containing the bootstrap identity (case-insensitive) wins
 */
type JcmdLocator struct {
	jcmd     string
	identity string
	runner   CommandRunner
}

func NewJcmdLocator(jcmd, identity string, runner CommandRunner) *JcmdLocator {
	return &JcmdLocator{jcmd: jcmd, identity: identity, runner: runner}
}

func (l *JcmdLocator) Locate(ctx context.Context) (models.JvmProcess, error) {
	out, err := l.runner.Output(ctx, l.jcmd)
	if err != nil {
		if strings.TrimSpace(out) == "" {
			// jcmd 不存在或没有可见的JVM，按未找到处理
			logger.Warnf("List JVMs with '%s' failed: %v", l.jcmd, err)
			return models.JvmProcess{}, nil
		}
		logger.Debugf("'%s' exited with %v, using partial output", l.jcmd, err)
	}
	needle := strings.ToLower(l.identity)
	for _, line := range strings.Split(out, "\n") {
		if !strings.Contains(strings.ToLower(line), needle) {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		pid, err := strconv.Atoi(fields[0])
		if err != nil {
			logger.Warnf("Unexpected jcmd line '%s'", strings.TrimSpace(line))
			continue
		}
		return models.JvmProcess{Found: true, Pid: pid, Line: strings.TrimSpace(line)}, nil
	}
	return models.JvmProcess{}, nil
}

// ProcTableLocator 通过操作系统进程表查找Tomcat，不依赖jcmd列出JVM
type ProcTableLocator struct {
	identity string
}

func NewProcTableLocator(identity string) *ProcTableLocator {
	return &ProcTableLocator{identity: identity}
}

func (l *ProcTableLocator) Locate(ctx context.Context) (models.JvmProcess, error) {
	matches, err := utils.FindProcessesByCmdline(ctx, l.identity)
	if err != nil {
		return models.JvmProcess{}, fmt.Errorf("%w: %w", models.ErrExternalCommand, err)
	}
	if len(matches) == 0 {
		return models.JvmProcess{}, nil
	}
	return models.JvmProcess{Found: true, Pid: int(matches[0].Pid), Line: matches[0].Cmdline}, nil
}

// NewProcessLocator picks the locator named by tomcat.locator
func NewProcessLocator(cfg config.TomcatConfig, runner CommandRunner) ProcessLocator {
	if cfg.Locator == config.LocatorProc {
		return NewProcTableLocator(cfg.BootstrapClass)
	}
	return NewJcmdLocator(cfg.Jcmd, cfg.BootstrapClass, runner)
}

/**
 * DiagnosticCapture 对运行中的JVM执行线程/堆转储
 * @property {ProcessLocator} locator - Rediscovers the JVM on every call, never cached
 * @property {CommandRunner} runner - Executes jcmd
 */
type DiagnosticCapture struct {
	locator     ProcessLocator
	runner      CommandRunner
	jcmd        string
	heapDumpDir string
	now         func() time.Time
}

func NewDiagnosticCapture(cfg config.TomcatConfig, locator ProcessLocator, runner CommandRunner) *DiagnosticCapture {
	return &DiagnosticCapture{
		locator:     locator,
		runner:      runner,
		jcmd:        cfg.Jcmd,
		heapDumpDir: cfg.HeapDumpDir,
		now:         time.Now,
	}
}

func (dc *DiagnosticCapture) LocateProcess(ctx context.Context) (models.JvmProcess, error) {
	return dc.locator.Locate(ctx)
}

/**
 * Capture a thread dump of the Tomcat JVM
 * @param {context.Context} ctx - Kills jcmd when cancelled
 * @returns {ThreadDumpResult} Raw "jcmd <pid> Thread.print" output; Found=false when no JVM
 * @returns {error} ErrExternalCommand when jcmd itself fails
 */
func (dc *DiagnosticCapture) ThreadDump(ctx context.Context) (models.ThreadDumpResult, error) {
	proc, err := dc.locator.Locate(ctx)
	if err != nil || !proc.Found {
		return models.ThreadDumpResult{Process: proc}, err
	}
	out, err := dc.runner.Output(ctx, dc.jcmd, strconv.Itoa(proc.Pid), "Thread.print")
	if err != nil {
		return models.ThreadDumpResult{Process: proc}, fmt.Errorf("%w: thread dump of PID %d: %w",
			models.ErrExternalCommand, proc.Pid, err)
	}
	return models.ThreadDumpResult{Process: proc, Output: out}, nil
}

/**
 * Issue a heap dump of the Tomcat JVM
 * @param {context.Context} ctx - Only checked before issuing
 * @returns {HeapDumpResult} PID and destination <heap_dump_dir>/heap-<epoch-ms>.hprof
 * @returns {error} ErrExternalCommand when jcmd cannot be spawned
 * @description
 * - jcmd's exit status is not awaited and the file is not verified; the
 *   result only says the command was issued. A large heap takes a while to
 *   appear and a failing dump shows up only in the keeper log
 */
func (dc *DiagnosticCapture) HeapDump(ctx context.Context) (models.HeapDumpResult, error) {
	proc, err := dc.locator.Locate(ctx)
	if err != nil || !proc.Found {
		return models.HeapDumpResult{Process: proc}, err
	}
	dumpPath := filepath.Join(dc.heapDumpDir, fmt.Sprintf("heap-%d.hprof", dc.now().UnixMilli()))
	if err := dc.runner.Start(ctx, dc.jcmd, strconv.Itoa(proc.Pid), "GC.heap_dump", dumpPath); err != nil {
		return models.HeapDumpResult{Process: proc}, fmt.Errorf("%w: heap dump of PID %d: %w",
			models.ErrExternalCommand, proc.Pid, err)
	}
	logger.Infof("Heap dump of PID %d requested: %s", proc.Pid, dumpPath)
	return models.HeapDumpResult{Process: proc, Path: dumpPath}, nil
}
