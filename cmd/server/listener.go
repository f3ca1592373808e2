package server

import (
	"net"
	"os"
	"path/filepath"
	"runtime"

	"catalina-keeper/internal/logger"
)

type ListenAddr struct {
	Network string
	Address string
}

/**
 * Test if the system supports Unix socket network type
 * @returns {bool} Returns true if Unix socket is supported, false otherwise
 * @description
 * - Non-windows systems always support it
 * - On windows, creates and removes a temporary socket to find out
 */
func IsUnixSocketSupported() bool {
	if runtime.GOOS != "windows" {
		return true
	}
	testSocketPath := filepath.Join(os.TempDir(), "catalina_keeper_test.sock")
	os.Remove(testSocketPath)

	listener, err := net.Listen("unix", testSocketPath)
	if err != nil {
		return false
	}
	listener.Close()
	os.Remove(testSocketPath)
	return true
}

/**
 * Create listeners for every address
 * @param {[]ListenAddr} addrs - Listener addresses
 * @returns {[]net.Listener} Listeners that were created
 * @returns {error} Last creation error, nil when all succeeded
 * @description
 * - A stale unix socket file is removed first, its directory created if missing
 * - A failed address is logged and skipped; callers decide whether a partial
 *   set of listeners is acceptable
 */
func CreateListeners(addrs []ListenAddr) ([]net.Listener, error) {
	var listeners []net.Listener

	var lastErr error
	for _, addr := range addrs {
		if addr.Network == "unix" {
			if err := os.MkdirAll(filepath.Dir(addr.Address), 0755); err != nil {
				logger.Errorf("Failed to create socket directory: %v", err)
				lastErr = err
				continue
			}
			if err := os.Remove(addr.Address); err != nil && !os.IsNotExist(err) {
				logger.Errorf("Failed to remove existing socket file: %v", err)
				lastErr = err
				continue
			}
		}
		l, err := net.Listen(addr.Network, addr.Address)
		if err != nil {
			logger.Errorf("Failed to create listener on %s://%s: %v", addr.Network, addr.Address, err)
			lastErr = err
			continue
		}
		listeners = append(listeners, l)
	}
	return listeners, lastErr
}
