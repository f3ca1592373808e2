package models

import "fmt"

/**
 * Managed JVM lookup result. Never cached, rediscovered per operation.
 * @property {bool} found - Whether a process matched the bootstrap identity
 * @property {int} pid - Process ID when found
 */
type JvmProcess struct {
	Found bool   `json:"found"`
	Pid   int    `json:"pid,omitempty"`
	Line  string `json:"line,omitempty"`
}

const JvmNotFoundText = "Tomcat JVM process not found"

/**
 * Result of a heap dump request. The dump command is issued but its exit
 * status is not awaited, so Path may not exist yet (or ever).
 */
type HeapDumpResult struct {
	Process JvmProcess `json:"process"`
	Path    string     `json:"path,omitempty"`
}

func (r HeapDumpResult) Text() string {
	if !r.Process.Found {
		return JvmNotFoundText
	}
	return fmt.Sprintf("Heap dump command issued for PID %d, output: %s", r.Process.Pid, r.Path)
}

// ThreadDumpResult carries raw jcmd Thread.print output
type ThreadDumpResult struct {
	Process JvmProcess `json:"process"`
	Output  string     `json:"output,omitempty"`
}

func (r ThreadDumpResult) Text() string {
	if !r.Process.Found {
		return JvmNotFoundText
	}
	return r.Output
}
