package models

import (
	"fmt"
	"strings"
)

// Diagnosis is a startup-failure classification derived from log text
type Diagnosis string

const (
	DiagnosisPortConflict        Diagnosis = "port-conflict"
	DiagnosisJavaVersionMismatch Diagnosis = "java-version-mismatch"
	DiagnosisOutOfMemory         Diagnosis = "out-of-memory"
	DiagnosisMissingClasses      Diagnosis = "missing-classes"
	DiagnosisPermissionDenied    Diagnosis = "permission-denied"
	DiagnosisUnknown             Diagnosis = "unknown"
)

var diagnosisDescriptions = map[Diagnosis]string{
	DiagnosisPortConflict:        "Port conflict: another process is using the Tomcat port",
	DiagnosisJavaVersionMismatch: "Java version mismatch (compiled with newer Java)",
	DiagnosisOutOfMemory:         "JVM out of memory",
	DiagnosisMissingClasses:      "Missing or conflicting JARs",
	DiagnosisPermissionDenied:    "File or folder permission issue",
	DiagnosisUnknown:             "Unknown startup issue - check stack trace",
}

// Description returns the operator-facing explanation of the label
func (d Diagnosis) Description() string {
	if desc, ok := diagnosisDescriptions[d]; ok {
		return desc
	}
	return diagnosisDescriptions[DiagnosisUnknown]
}

/**
 * Startup failure report
 * @property {ServerStatus} status - Status at the time of the report
 * @property {bool} logFound - Whether any catalina log exists
 * @property {string} logPath - Log the diagnosis was derived from
 * @property {Diagnosis} diagnosis - Classification label
 * @property {string} tail - Last lines of the log
 */
type DiagnosisReport struct {
	Status    ServerStatus `json:"status"`
	LogFound  bool         `json:"logFound"`
	LogPath   string       `json:"logPath,omitempty"`
	Diagnosis Diagnosis    `json:"diagnosis"`
	Tail      string       `json:"tail,omitempty"`
}

func (r DiagnosisReport) Text() string {
	if !r.LogFound {
		return "Tomcat is not running and no catalina logs were found."
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "\nSTATUS:\n%s\n", r.Status.Text())
	fmt.Fprintf(&sb, "\nDIAGNOSIS:\n%s\n", r.Diagnosis.Description())
	fmt.Fprintf(&sb, "\nLAST LOGS:\n%s\n", r.Tail)
	return sb.String()
}
