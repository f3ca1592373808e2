package models

import "fmt"

/**
 * GC log statistics, recomputed on every analysis
 * @property {bool} found - False when the GC log file does not exist
 * @property {int} youngCollections - Count of young collection markers
 * @property {int} fullCollections - Count of full collection markers
 * @property {int} threshold - Full collection count above which memory pressure is reported
 */
type GCStats struct {
	Path             string `json:"path"`
	Found            bool   `json:"found"`
	YoungCollections int    `json:"youngCollections"`
	FullCollections  int    `json:"fullCollections"`
	Threshold        int    `json:"threshold"`
}

func (s GCStats) MemoryPressure() bool {
	return s.FullCollections > s.Threshold
}

func (s GCStats) Interpretation() string {
	if s.MemoryPressure() {
		return "High Full GC count - possible memory pressure"
	}
	return "GC activity looks normal"
}

func (s GCStats) Text() string {
	if !s.Found {
		return "GC log not found"
	}
	return fmt.Sprintf("\nGC ANALYSIS:\nYoung GCs: %d\nFull GCs: %d\n\nINTERPRETATION:\n%s\n",
		s.YoungCollections, s.FullCollections, s.Interpretation())
}
