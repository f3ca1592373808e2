package services

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"catalina-keeper/internal/models"
)

const DefaultTailLines = 200

// LogReader 定位并读取Tomcat写出的catalina日志，只读
type LogReader struct {
	prefix string
}

func NewLogReader(prefix string) *LogReader {
	return &LogReader{prefix: prefix}
}

/**
 * Find the most recent log file in a directory
 * @param {string} directory - Directory to scan
 * @returns {string} Full path of the lexicographically greatest file whose name starts with the prefix
 * @returns {error} ErrNotFound when no file matches, ErrIO when the directory cannot be read
 * @description
 * - Lexicographic order coincides with recency for catalina.YYYY-MM-DD.log names
 * - Subdirectories are ignored
 * @example
 * // {"catalina.1.log","catalina.2.log","other.log"} -> ".../catalina.2.log"
 */
func (r *LogReader) LatestLogPath(directory string) (string, error) {
	entries, err := os.ReadDir(directory)
	if err != nil {
		return "", fmt.Errorf("%w: read log directory '%s': %w", models.ErrIO, directory, err)
	}
	latest := ""
	for _, e := range entries {
		if e.IsDir() || !strings.HasPrefix(e.Name(), r.prefix) {
			continue
		}
		if e.Name() > latest {
			latest = e.Name()
		}
	}
	if latest == "" {
		return "", fmt.Errorf("%w: no '%s*' logs in '%s'", models.ErrNotFound, r.prefix, directory)
	}
	return filepath.Join(directory, latest), nil
}

/**
 * Read the last lines of a file
 * @param {string} path - File to read
 * @param {int} lineCount - Number of lines, <= 0 means DefaultTailLines
 * @returns {string} Last lineCount "\n"-separated segments joined with "\n"
 * @returns {error} ErrIO when the file cannot be read
 * @description
 * - A trailing newline counts as an empty last segment, so the window of a
 *   newline-terminated file holds lineCount-1 lines plus ""
 */
func (r *LogReader) Tail(path string, lineCount int) (string, error) {
	content, err := r.Full(path)
	if err != nil {
		return "", err
	}
	return tailLines(content, lineCount), nil
}

// Full 读取整个日志文件
func (r *LogReader) Full(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("%w: read '%s': %w", models.ErrIO, path, err)
	}
	return string(data), nil
}

func tailLines(content string, lineCount int) string {
	if lineCount <= 0 {
		lineCount = DefaultTailLines
	}
	lines := strings.Split(content, "\n")
	if len(lines) > lineCount {
		lines = lines[len(lines)-lineCount:]
	}
	return strings.Join(lines, "\n")
}
