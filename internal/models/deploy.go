package models

import (
	"fmt"
	"time"
)

// DeployStage marks how far a deployment request progressed
type DeployStage string

const (
	StageValidating DeployStage = "validating"
	StageBackingUp  DeployStage = "backing-up"
	StageInstalling DeployStage = "installing"
	StageRestarting DeployStage = "restarting"
	StageDone       DeployStage = "done"
)

/**
 * Result of a deploy request
 * @property {string} id - Operation ID used in logs
 * @property {string} artifact - Deployed artifact file name
 * @property {string} target - Live path inside the webapps directory
 * @property {string} backup - Backup created from the previous version, empty if none
 * @property {DeployStage} stage - Last stage reached
 */
type DeployResult struct {
	ID       string      `json:"id"`
	Artifact string      `json:"artifact"`
	Target   string      `json:"target"`
	Backup   string      `json:"backup,omitempty"`
	Stage    DeployStage `json:"stage"`
}

func (r DeployResult) Text() string {
	return fmt.Sprintf("WAR deployed and Tomcat restarted: %s", r.Artifact)
}

/**
 * Result of a rollback request
 * @property {bool} performed - False when no backup was available
 * @property {string} backup - Backup file that was restored
 * @property {string} artifact - Artifact name recovered from the backup name
 */
type RollbackResult struct {
	ID        string `json:"id,omitempty"`
	Performed bool   `json:"performed"`
	Backup    string `json:"backup,omitempty"`
	Artifact  string `json:"artifact,omitempty"`
	Target    string `json:"target,omitempty"`
}

func (r RollbackResult) Text() string {
	if !r.Performed {
		return "No backup WARs available for rollback"
	}
	return fmt.Sprintf("Rollback completed using %s", r.Backup)
}

// BackupInfo describes one file in the backup directory
type BackupInfo struct {
	Name      string    `json:"name"`
	Artifact  string    `json:"artifact"`
	CreatedAt time.Time `json:"createdAt"`
	Size      int64     `json:"size"`
}
