package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"catalina-keeper/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatus(t *testing.T) {
	cfg := newTestConfig(t)

	pc := NewProcessControl(cfg.Tomcat, &stubLauncher{}, &stubProber{answers: []bool{false}})
	st, err := pc.Status(context.Background())
	require.NoError(t, err)
	assert.Equal(t, models.StatusNotRunning, st.Status)
	assert.Equal(t, "Tomcat is NOT running", st.Text())

	pc = NewProcessControl(cfg.Tomcat, &stubLauncher{}, &stubProber{answers: []bool{true}})
	st, err = pc.Status(context.Background())
	require.NoError(t, err)
	assert.True(t, st.Running())
	assert.Equal(t, "Tomcat is running on port 8080", st.Text())
}

func TestStatusProbeFailure(t *testing.T) {
	cfg := newTestConfig(t)
	pc := NewProcessControl(cfg.Tomcat, &stubLauncher{}, &stubProber{err: errors.New("netlink denied")})

	_, err := pc.Status(context.Background())
	assert.ErrorIs(t, err, models.ErrExternalCommand)
}

func TestStartStopAreFireAndForget(t *testing.T) {
	cfg := newTestConfig(t)
	launcher := &stubLauncher{err: errors.New("exec format error")}
	pc := NewProcessControl(cfg.Tomcat, launcher, &stubProber{})

	assert.Equal(t, "Tomcat startup triggered", pc.Start(context.Background()))
	assert.Equal(t, "Tomcat shutdown triggered", pc.Stop(context.Background()))
	assert.Equal(t, []string{scriptBase("startup"), scriptBase("shutdown")}, launcher.launched())
}

func TestRestartCyclePollsUntilPortFree(t *testing.T) {
	cfg := newTestConfig(t)
	cfg.Tomcat.SettleDelay = 5 * time.Second
	launcher := &stubLauncher{}
	prober := &stubProber{answers: []bool{true, true, false}}
	pc := NewProcessControl(cfg.Tomcat, launcher, prober)

	begin := time.Now()
	require.NoError(t, pc.RestartCycle(context.Background()))

	assert.Less(t, time.Since(begin), 2*time.Second)
	assert.Equal(t, 3, prober.calls)
	assert.Equal(t, []string{scriptBase("shutdown"), scriptBase("startup")}, launcher.launched())
}

func TestRestartCycleStartsAfterCeiling(t *testing.T) {
	cfg := newTestConfig(t)
	cfg.Tomcat.SettleDelay = 60 * time.Millisecond
	launcher := &stubLauncher{}
	pc := NewProcessControl(cfg.Tomcat, launcher, &stubProber{answers: []bool{true}})

	begin := time.Now()
	require.NoError(t, pc.RestartCycle(context.Background()))

	assert.GreaterOrEqual(t, time.Since(begin), 60*time.Millisecond)
	assert.Equal(t, []string{scriptBase("shutdown"), scriptBase("startup")}, launcher.launched())
}

func TestRestartCycleFixedDelay(t *testing.T) {
	cfg := newTestConfig(t)
	cfg.Tomcat.SettlePoll = false
	cfg.Tomcat.SettleDelay = 40 * time.Millisecond
	prober := &stubProber{}
	pc := NewProcessControl(cfg.Tomcat, &stubLauncher{}, prober)

	begin := time.Now()
	require.NoError(t, pc.RestartCycle(context.Background()))

	assert.GreaterOrEqual(t, time.Since(begin), 40*time.Millisecond)
	assert.Equal(t, 0, prober.calls)
}

func TestRestartCycleCancelledBeforeStart(t *testing.T) {
	cfg := newTestConfig(t)
	launcher := &stubLauncher{}
	pc := NewProcessControl(cfg.Tomcat, launcher, &stubProber{answers: []bool{true}})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := pc.RestartCycle(ctx)

	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, launcher.launched())
}

func TestRestartCycleCancelledDuringSettleStillStarts(t *testing.T) {
	cfg := newTestConfig(t)
	cfg.Tomcat.SettleDelay = 5 * time.Second
	launcher := &stubLauncher{}
	pc := NewProcessControl(cfg.Tomcat, launcher, &stubProber{answers: []bool{true}})

	ctx, cancel := context.WithCancel(context.Background())
	time.AfterFunc(50*time.Millisecond, cancel)
	begin := time.Now()
	err := pc.RestartCycle(ctx)

	assert.ErrorIs(t, err, context.Canceled)
	assert.Less(t, time.Since(begin), 5*time.Second)
	assert.Equal(t, []string{scriptBase("shutdown"), scriptBase("startup")}, launcher.launched())
}
