package services

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"catalina-keeper/internal/config"
	"catalina-keeper/internal/logger"
	"catalina-keeper/internal/models"
	"catalina-keeper/internal/utils"

	"github.com/google/uuid"
)

// Restarter cycles the managed server after its artifacts changed
type Restarter interface {
	RestartCycle(ctx context.Context) error
}

// <artifact>.<epoch-ms>.bak
var backupPattern = regexp.MustCompile(`^(.+)\.(\d+)\.bak$`)

/**
 * DeployManager 负责WAR部署、备份和回滚
 * @property {string} webappsDir - Live artifacts
 * @property {string} backupDir - Accumulated <name>.<epoch-ms>.bak copies
 * @property {int} retention - Backups kept per artifact after a deploy, 0 keeps all
 * @description
 * - Deploy and Rollback hold the same mutex, so at most one of them
 *   touches the artifact directories at a time within this process
 */
type DeployManager struct {
	webappsDir string
	backupDir  string
	ext        string
	retention  int
	restarter  Restarter
	now        func() time.Time
	mutex      sync.Mutex
}

func NewDeployManager(cfg config.TomcatConfig, restarter Restarter) *DeployManager {
	return &DeployManager{
		webappsDir: cfg.WebappsDir,
		backupDir:  cfg.BackupDir,
		ext:        cfg.ArtifactExt,
		retention:  cfg.BackupRetention,
		restarter:  restarter,
		now:        time.Now,
	}
}

/**
 * Deploy a WAR and restart Tomcat
 * @param {context.Context} ctx - Cancels the restart settle wait
 * @param {string} src - Path of the WAR to deploy
 * @returns {DeployResult} Stage reached, artifact name and backup created
 * @returns {error} ErrInvalidArgument for a bad path (also ErrNotFound if it does not exist),
 *   ErrIO for copy failures, ctx errors from the restart
 * @description
 * - Validating: nothing is touched when the path is rejected
 * - Backing-up: an existing live artifact is copied (not moved) to
 *   <backup_dir>/<name>.<epoch-ms>.bak and synced before anything is overwritten
 * - Installing: the new content is staged next to the target and renamed
 *   over it, the target is never partially written
 * - Restarting: stop, settle, start
 * @example
 * res, err := dm.Deploy(ctx, "/tmp/app.war")
 * // res.Text() == "WAR deployed and Tomcat restarted: app.war"
 */
func (dm *DeployManager) Deploy(ctx context.Context, src string) (models.DeployResult, error) {
	dm.mutex.Lock()
	defer dm.mutex.Unlock()

	result := models.DeployResult{ID: uuid.NewString(), Stage: models.StageValidating}
	if err := dm.validateSource(src); err != nil {
		recordDeploy("deploy", err)
		return result, err
	}
	if err := ctx.Err(); err != nil {
		return result, err
	}

	name := filepath.Base(src)
	target := filepath.Join(dm.webappsDir, name)
	result.Artifact = name
	result.Target = target
	logger.Infof("[%s] Deploying '%s' to '%s'", result.ID, src, target)

	_, err := os.Stat(target)
	switch {
	case err == nil:
		result.Stage = models.StageBackingUp
		backup, err := dm.backupArtifact(target, name)
		if err != nil {
			recordDeploy("deploy", err)
			return result, err
		}
		result.Backup = backup
		logger.Infof("[%s] Previous '%s' saved as '%s'", result.ID, name, backup)
	case !errors.Is(err, fs.ErrNotExist):
		err = fmt.Errorf("%w: stat '%s': %w", models.ErrIO, target, err)
		recordDeploy("deploy", err)
		return result, err
	}

	result.Stage = models.StageInstalling
	if err := utils.InstallFile(src, target); err != nil {
		err = fmt.Errorf("%w: install '%s': %w", models.ErrIO, target, err)
		recordDeploy("deploy", err)
		return result, err
	}

	result.Stage = models.StageRestarting
	if err := dm.restarter.RestartCycle(ctx); err != nil {
		err = fmt.Errorf("restart after deploying '%s': %w", name, err)
		recordDeploy("deploy", err)
		return result, err
	}
	result.Stage = models.StageDone
	recordDeploy("deploy", nil)

	dm.pruneBackups(name)
	return result, nil
}

func (dm *DeployManager) validateSource(src string) error {
	if src == "" || !strings.HasSuffix(src, dm.ext) {
		return fmt.Errorf("%w: you must provide a valid %s file path, got '%s'", models.ErrInvalidArgument, dm.ext, src)
	}
	fi, err := os.Stat(src)
	if errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%w: %w: file '%s' does not exist", models.ErrInvalidArgument, models.ErrNotFound, src)
	}
	if err != nil {
		return fmt.Errorf("%w: stat '%s': %w", models.ErrIO, src, err)
	}
	if fi.IsDir() {
		return fmt.Errorf("%w: '%s' is a directory", models.ErrInvalidArgument, src)
	}
	return nil
}

// backupArtifact 复制当前线上版本到备份目录，同一毫秒内重复部署时递增时间戳避免覆盖
func (dm *DeployManager) backupArtifact(target, name string) (string, error) {
	ts := dm.now().UnixMilli()
	var backupPath string
	for {
		backupPath = filepath.Join(dm.backupDir, fmt.Sprintf("%s.%d.bak", name, ts))
		if _, err := os.Lstat(backupPath); errors.Is(err, fs.ErrNotExist) {
			break
		}
		ts++
	}
	if err := utils.CopyFile(target, backupPath); err != nil {
		os.Remove(backupPath)
		return "", fmt.Errorf("%w: backup '%s' to '%s': %w", models.ErrIO, target, backupPath, err)
	}
	return filepath.Base(backupPath), nil
}

/**
 * Restore the most recent backup and restart Tomcat
 * @param {context.Context} ctx - Cancels the restart settle wait
 * @returns {RollbackResult} Performed=false when the backup directory holds no usable backup
 * @returns {error} ErrIO for listing/copy failures, ctx errors from the restart
 * @description
 * - Most recent = greatest embedded timestamp, ties broken by the greater name
 * - The artifact name is recovered by stripping ".<digits>.bak"
 * - The used backup is kept; rollback never prunes
 */
func (dm *DeployManager) Rollback(ctx context.Context) (models.RollbackResult, error) {
	dm.mutex.Lock()
	defer dm.mutex.Unlock()

	result := models.RollbackResult{ID: uuid.NewString()}
	backups, err := dm.ListBackups()
	if err != nil {
		recordDeploy("rollback", err)
		return result, err
	}
	if len(backups) == 0 {
		logger.Infof("[%s] Nothing to roll back in '%s'", result.ID, dm.backupDir)
		return result, nil
	}
	if err := ctx.Err(); err != nil {
		return result, err
	}

	latest := backups[0]
	result.Backup = latest.Name
	result.Artifact = latest.Artifact
	result.Target = filepath.Join(dm.webappsDir, latest.Artifact)
	logger.Infof("[%s] Rolling back '%s' from '%s'", result.ID, result.Target, latest.Name)

	if err := utils.InstallFile(filepath.Join(dm.backupDir, latest.Name), result.Target); err != nil {
		err = fmt.Errorf("%w: restore '%s': %w", models.ErrIO, latest.Name, err)
		recordDeploy("rollback", err)
		return result, err
	}
	if err := dm.restarter.RestartCycle(ctx); err != nil {
		err = fmt.Errorf("restart after rollback to '%s': %w", latest.Name, err)
		recordDeploy("rollback", err)
		return result, err
	}
	result.Performed = true
	recordDeploy("rollback", nil)
	return result, nil
}

/**
 * List backups, newest first
 * @returns {[]BackupInfo} Entries named <artifact>.<epoch-ms>.bak
 * @returns {error} ErrIO when the backup directory cannot be read
 * @description
 * - ".bak" files without an embedded timestamp are ignored, their original
 *   name could not be recovered
 */
func (dm *DeployManager) ListBackups() ([]models.BackupInfo, error) {
	entries, err := os.ReadDir(dm.backupDir)
	if err != nil {
		return nil, fmt.Errorf("%w: read backup directory '%s': %w", models.ErrIO, dm.backupDir, err)
	}
	var backups []models.BackupInfo
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		m := backupPattern.FindStringSubmatch(e.Name())
		if m == nil {
			continue
		}
		ms, err := strconv.ParseInt(m[2], 10, 64)
		if err != nil {
			continue
		}
		info := models.BackupInfo{
			Name:      e.Name(),
			Artifact:  m[1],
			CreatedAt: time.UnixMilli(ms),
		}
		if fi, err := e.Info(); err == nil {
			info.Size = fi.Size()
		}
		backups = append(backups, info)
	}
	// 按文件名中的时间戳排序，而不是按整个文件名的字典序：
	// 多个WAR共用备份目录时，"zeta.war.1.bak" 在字典序上大于 "alpha.war.2.bak"，
	// 但后者才是最近的备份，回滚会选它
	sort.Slice(backups, func(i, j int) bool {
		if !backups[i].CreatedAt.Equal(backups[j].CreatedAt) {
			return backups[i].CreatedAt.After(backups[j].CreatedAt)
		}
		return backups[i].Name > backups[j].Name
	})
	return backups, nil
}

// pruneBackups 仅在配置了 backup_retention 时删除同一WAR的旧备份
func (dm *DeployManager) pruneBackups(artifact string) {
	if dm.retention <= 0 {
		return
	}
	backups, err := dm.ListBackups()
	if err != nil {
		logger.Warnf("Prune backups of '%s' skipped: %v", artifact, err)
		return
	}
	kept := 0
	for _, b := range backups {
		if b.Artifact != artifact {
			continue
		}
		kept++
		if kept <= dm.retention {
			continue
		}
		if err := os.Remove(filepath.Join(dm.backupDir, b.Name)); err != nil {
			logger.Warnf("Remove old backup '%s' failed: %v", b.Name, err)
			continue
		}
		logger.Infof("Old backup '%s' removed (retention %d)", b.Name, dm.retention)
	}
}
