package services

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"catalina-keeper/internal/models"
)

const (
	fullGCMarker  = "Full GC"
	youngGCMarker = "Pause Young"
)

type GCAnalyzer struct {
	path      string
	threshold int
}

func NewGCAnalyzer(path string, threshold int) *GCAnalyzer {
	return &GCAnalyzer{path: path, threshold: threshold}
}

/**
 * Count GC events in the configured GC log
 * @returns {GCStats} Counts and threshold; Found=false when the log does not exist
 * @returns {error} ErrIO when the log exists but cannot be read
 * @description
 * - Markers are counted as case-sensitive substrings over the whole file,
 *   not per line
 * - A missing GC log is a normal condition (GC logging disabled) and is
 *   reported as a result
 */
func (a *GCAnalyzer) Analyze() (models.GCStats, error) {
	stats := models.GCStats{Path: a.path, Threshold: a.threshold}
	data, err := os.ReadFile(a.path)
	if errors.Is(err, fs.ErrNotExist) {
		return stats, nil
	}
	if err != nil {
		return stats, fmt.Errorf("%w: read gc log '%s': %w", models.ErrIO, a.path, err)
	}
	text := string(data)
	stats.Found = true
	stats.FullCollections = strings.Count(text, fullGCMarker)
	stats.YoungCollections = strings.Count(text, youngGCMarker)
	return stats, nil
}
