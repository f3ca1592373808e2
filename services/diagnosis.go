package services

import (
	"context"
	"errors"

	"catalina-keeper/internal/models"
)

// StatusProber 提供当前运行状态
type StatusProber interface {
	Status(ctx context.Context) (models.ServerStatus, error)
}

type DiagnosisService struct {
	status    StatusProber
	logs      *LogReader
	logDir    string
	tailLines int
}

func NewDiagnosisService(status StatusProber, logs *LogReader, logDir string, tailLines int) *DiagnosisService {
	return &DiagnosisService{
		status:    status,
		logs:      logs,
		logDir:    logDir,
		tailLines: tailLines,
	}
}

/**
 * Explain why Tomcat failed to start
 * @param {context.Context} ctx - Cancels the status probe
 * @returns {DiagnosisReport} Status, diagnosis label of the latest catalina log and its tail
 * @returns {error} Status probe or log read failures
 * @description
 * - Without any catalina log the report says so and nothing is classified
 * - The whole log is classified, only the tail is shown
 * - Read-only
 */
func (ds *DiagnosisService) DiagnoseStartupFailure(ctx context.Context) (models.DiagnosisReport, error) {
	var report models.DiagnosisReport
	st, err := ds.status.Status(ctx)
	if err != nil {
		return report, err
	}
	report.Status = st

	path, err := ds.logs.LatestLogPath(ds.logDir)
	if errors.Is(err, models.ErrNotFound) {
		return report, nil
	}
	if err != nil {
		return report, err
	}
	text, err := ds.logs.Full(path)
	if err != nil {
		return report, err
	}
	report.LogFound = true
	report.LogPath = path
	report.Diagnosis = Classify(text)
	report.Tail = tailLines(text, ds.tailLines)
	return report, nil
}
