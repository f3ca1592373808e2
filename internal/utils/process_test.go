//go:build unix

package utils

import (
	"context"
	"fmt"
	"os/exec"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindProcessesByCmdline(t *testing.T) {
	marker := fmt.Sprintf("keeper-marker-%d", time.Now().UnixNano())
	cmd := exec.Command("sh", "-c", "sleep 30; : "+marker)
	require.NoError(t, cmd.Start())
	defer func() {
		cmd.Process.Kill()
		cmd.Wait()
	}()

	var matches []ProcessMatch
	assert.Eventually(t, func() bool {
		var err error
		matches, err = FindProcessesByCmdline(context.Background(), marker)
		return err == nil && len(matches) == 1
	}, 5*time.Second, 50*time.Millisecond)
	require.Len(t, matches, 1)
	assert.Equal(t, int32(cmd.Process.Pid), matches[0].Pid)

	none, err := FindProcessesByCmdline(context.Background(), marker+"-absent")
	require.NoError(t, err)
	assert.Empty(t, none)
}
