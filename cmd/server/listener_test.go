package server

import (
	"net"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateListenersTCPAndUnix(t *testing.T) {
	addrs := []ListenAddr{{Network: "tcp", Address: "127.0.0.1:0"}}
	if runtime.GOOS != "windows" {
		addrs = append(addrs, ListenAddr{Network: "unix", Address: filepath.Join(t.TempDir(), "run", "k.sock")})
	}
	listeners, err := CreateListeners(addrs)
	require.NoError(t, err)
	require.Len(t, listeners, len(addrs))
	for _, l := range listeners {
		defer l.Close()
	}

	conn, err := net.Dial("tcp", listeners[0].Addr().String())
	require.NoError(t, err)
	conn.Close()
}

func TestCreateListenersSkipsFailedAddress(t *testing.T) {
	busy, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer busy.Close()

	listeners, err := CreateListeners([]ListenAddr{
		{Network: "tcp", Address: busy.Addr().String()},
		{Network: "tcp", Address: "127.0.0.1:0"},
	})
	assert.Error(t, err)
	require.Len(t, listeners, 1)
	listeners[0].Close()
}
