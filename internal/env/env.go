package env

import (
	"os"
	"path/filepath"
)

var Version string = "dev"

// (default: %USERPROFILE%/.catalina-keeper on Windows, $HOME/.catalina-keeper on Linux)
var KeeperDir string = GetKeeperDir()

/**
 * Get keeper directory path
 * @returns {string} Returns keeper directory path
 * @description
 * - KEEPER_HOME overrides the default location
 */
func GetKeeperDir() string {
	if dir := os.Getenv("KEEPER_HOME"); dir != "" {
		return dir
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = "."
	}
	return filepath.Join(homeDir, ".catalina-keeper")
}
