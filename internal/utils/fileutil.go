package utils

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

/**
 * Copy a file and flush it to disk
 * @param {string} src - Source file
 * @param {string} dst - Destination file, created or truncated
 * @returns {error} Returns error if any read, write or sync fails
 * @description
 * - Returns only after the destination content is synced, so a caller may
 *   rely on the copy surviving a crash once this returns nil
 * - The destination is left partially written if the copy fails midway
 */
func CopyFile(src, dst string) error {
	srcFile, err := os.Open(src)
	if err != nil {
		return err
	}
	defer srcFile.Close()

	dstFile, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return err
	}
	if _, err := io.Copy(dstFile, srcFile); err != nil {
		dstFile.Close()
		return err
	}
	if err := dstFile.Sync(); err != nil {
		dstFile.Close()
		return err
	}
	return dstFile.Close()
}

/**
 * Replace dst with a copy of src without ever exposing a partial dst
 * @param {string} src - Source file
 * @param {string} dst - Target path, replaced by rename
 * @returns {error} Returns error if staging or renaming fails; dst is untouched then
 * @description
 * - Stages the content in the target's directory under a hidden name that
 *   does not carry the target's extension, then renames it over dst
 * - The staging file is removed on failure
 */
func InstallFile(src, dst string) error {
	dir := filepath.Dir(dst)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(dst)+".*.partial")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	tmp.Close()

	if err := CopyFile(src, tmpName); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("stage '%s' failed: %w", tmpName, err)
	}
	if err := os.Rename(tmpName, dst); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("rename '%s' to '%s' failed: %w", tmpName, dst, err)
	}
	return nil
}
