package services

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"testing"
	"time"

	"catalina-keeper/internal/config"

	"github.com/stretchr/testify/require"
)

func newTestConfig(t *testing.T) *config.AppConfig {
	t.Helper()
	root := t.TempDir()
	dirs := map[string]string{}
	for _, d := range []string{"bin", "logs", "webapps", "backup", "dumps"} {
		dirs[d] = filepath.Join(root, d)
		require.NoError(t, os.MkdirAll(dirs[d], 0755))
	}
	cfg := &config.AppConfig{
		Tomcat: config.TomcatConfig{
			BinDir:          dirs["bin"],
			Port:            8080,
			LogDir:          dirs["logs"],
			WebappsDir:      dirs["webapps"],
			BackupDir:       dirs["backup"],
			GCLog:           filepath.Join(dirs["logs"], "gc.log"),
			HeapDumpDir:     dirs["dumps"],
			BootstrapClass:  "org.apache.catalina.startup.Bootstrap",
			Jcmd:            "jcmd",
			Locator:         config.LocatorJcmd,
			LogPrefix:       "catalina",
			ArtifactExt:     ".war",
			TailLines:       200,
			SettleDelay:     50 * time.Millisecond,
			SettlePoll:      true,
			SettleInterval:  5 * time.Millisecond,
			GCFullThreshold: 5,
		},
	}
	cfg.Correct()
	return cfg
}

type stubLauncher struct {
	mutex   sync.Mutex
	scripts []string
	err     error
}

func (l *stubLauncher) Launch(_ context.Context, script string) error {
	l.mutex.Lock()
	defer l.mutex.Unlock()
	l.scripts = append(l.scripts, filepath.Base(script))
	return l.err
}

func (l *stubLauncher) launched() []string {
	l.mutex.Lock()
	defer l.mutex.Unlock()
	return append([]string(nil), l.scripts...)
}

// stubProber answers from a sequence, repeating the last answer
type stubProber struct {
	mutex   sync.Mutex
	answers []bool
	err     error
	calls   int
}

func (p *stubProber) PortInUse(_ context.Context, _ int) (bool, error) {
	p.mutex.Lock()
	defer p.mutex.Unlock()
	p.calls++
	if p.err != nil {
		return false, p.err
	}
	if len(p.answers) == 0 {
		return false, nil
	}
	ans := p.answers[0]
	if len(p.answers) > 1 {
		p.answers = p.answers[1:]
	}
	return ans, nil
}

type stubRunner struct {
	outputs  map[string]string
	errs     map[string]error
	startErr error
	started  []string
}

func (r *stubRunner) Output(_ context.Context, name string, args ...string) (string, error) {
	key := strings.TrimSpace(name + " " + strings.Join(args, " "))
	return r.outputs[key], r.errs[key]
}

func (r *stubRunner) Start(_ context.Context, name string, args ...string) error {
	if r.startErr != nil {
		return r.startErr
	}
	r.started = append(r.started, strings.TrimSpace(name+" "+strings.Join(args, " ")))
	return nil
}

type stubRestarter struct {
	count int
	err   error
}

func (r *stubRestarter) RestartCycle(context.Context) error {
	r.count++
	return r.err
}

// 每次调用前进1毫秒的时钟
func steppingClock(start time.Time) func() time.Time {
	var mutex sync.Mutex
	now := start
	return func() time.Time {
		mutex.Lock()
		defer mutex.Unlock()
		now = now.Add(time.Millisecond)
		return now
	}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func listDir(t *testing.T, dir string) []string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names
}

func repeat(marker string, n int) string {
	var sb strings.Builder
	for i := 0; i < n; i++ {
		fmt.Fprintf(&sb, "[%d.000s] GC(%d) %s (G1 Evacuation Pause) 24M->8M(256M) 3.1ms\n", i, i, marker)
	}
	return sb.String()
}

func scriptBase(name string) string {
	if runtime.GOOS == "windows" {
		return name + ".bat"
	}
	return name + ".sh"
}
