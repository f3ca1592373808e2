package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"catalina-keeper/internal/models"
)

/**
 * Validate the configuration before any service is built
 * @returns {error} Returns every problem found, joined; nil when valid
 * @description
 * - Port must be in 1..65535
 * - bin/log/webapps/backup/heap-dump directories must exist and be directories;
 *   the keeper never creates them
 * - The GC log may be absent (analysis soft-fails) but its path must be set
 * - Artifact extension must start with "."
 * - A failure here is fatal for the whole process
 */
func (cfg *AppConfig) Validate() error {
	t := &cfg.Tomcat
	var errs []error

	if t.Port <= 0 || t.Port > 65535 {
		errs = append(errs, fmt.Errorf("tomcat.port %d is out of range", t.Port))
	}
	dirs := []struct {
		key  string
		path string
	}{
		{"tomcat.bin_dir", t.BinDir},
		{"tomcat.log_dir", t.LogDir},
		{"tomcat.webapps_dir", t.WebappsDir},
		{"tomcat.backup_dir", t.BackupDir},
		{"tomcat.heap_dump_dir", t.HeapDumpDir},
	}
	for _, d := range dirs {
		if err := checkDir(d.key, d.path); err != nil {
			errs = append(errs, err)
		}
	}
	if t.GCLog == "" {
		errs = append(errs, fmt.Errorf("tomcat.gc_log is required"))
	}
	if !strings.HasPrefix(t.ArtifactExt, ".") {
		errs = append(errs, fmt.Errorf("tomcat.artifact_ext '%s' must start with '.'", t.ArtifactExt))
	}
	if strings.TrimSpace(t.LogPrefix) == "" {
		errs = append(errs, fmt.Errorf("tomcat.log_prefix is required"))
	}
	if strings.TrimSpace(t.BootstrapClass) == "" {
		errs = append(errs, fmt.Errorf("tomcat.bootstrap_class is required"))
	}
	if t.Locator != LocatorJcmd && t.Locator != LocatorProc {
		errs = append(errs, fmt.Errorf("tomcat.locator '%s' must be '%s' or '%s'", t.Locator, LocatorJcmd, LocatorProc))
	}
	if t.SettleDelay < 0 {
		errs = append(errs, fmt.Errorf("tomcat.settle_delay must not be negative"))
	}
	if t.GCFullThreshold < 0 {
		errs = append(errs, fmt.Errorf("tomcat.gc_full_threshold must not be negative"))
	}
	if t.BackupRetention < 0 {
		errs = append(errs, fmt.Errorf("tomcat.backup_retention must not be negative"))
	}
	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %w", models.ErrInvalidArgument, errors.Join(errs...))
}

func checkDir(key, path string) error {
	if path == "" {
		return fmt.Errorf("%s is required", key)
	}
	fi, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("%s '%s': %v", key, path, err)
	}
	if !fi.IsDir() {
		return fmt.Errorf("%s '%s' is not a directory", key, path)
	}
	return nil
}
