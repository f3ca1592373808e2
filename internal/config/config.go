package config

import (
	"fmt"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"catalina-keeper/internal/env"

	"github.com/spf13/viper"
)

/**
 * Server configuration parameters
 * @property {string} address - Server listening address (e.g. "127.0.0.1:8998")
 * @property {string} mode - Application mode (debug/release/test)
 */
type ServerConfig struct {
	Address string `mapstructure:"address" yaml:"address"`
	Mode    string `mapstructure:"mode" yaml:"mode"`
}

/**
 * Logging configuration
 * @property {string} level - Log level (debug/info/warn/error)
 * @property {string} path - Log file path, empty means <keeper dir>/logs/catalina-keeper.log
 * @property {int} maxSize - Maximum size in megabytes before the log file is rotated
 */
type LogConfig struct {
	Level   string `mapstructure:"level" yaml:"level"`
	Path    string `mapstructure:"path" yaml:"path"`
	MaxSize int    `mapstructure:"max_size" yaml:"max_size"`
}

/**
 * Metrics configuration
 * @property {string} pushgateway - Pushgateway address for metrics
 */
type MetricsConfig struct {
	Pushgateway string `mapstructure:"pushgateway" yaml:"pushgateway"`
}

/**
 * Monitor configuration
 * @property {string} schedule - cron spec of the status/GC probe, empty disables it
 */
type MonitorConfig struct {
	Schedule string `mapstructure:"schedule" yaml:"schedule"`
}

/**
 * Managed Tomcat settings. Immutable after load.
 * @property {string} binDir - Directory containing startup/shutdown scripts
 * @property {int} port - HTTP port Tomcat listens on
 * @property {string} logDir - Directory containing catalina logs
 * @property {string} webappsDir - Directory of live WAR artifacts
 * @property {string} backupDir - Directory of .bak artifacts
 * @property {string} gcLog - GC log file path
 * @property {string} heapDumpDir - Directory receiving heap dumps
 */
type TomcatConfig struct {
	BinDir          string        `mapstructure:"bin_dir" yaml:"bin_dir"`
	Port            int           `mapstructure:"port" yaml:"port"`
	LogDir          string        `mapstructure:"log_dir" yaml:"log_dir"`
	WebappsDir      string        `mapstructure:"webapps_dir" yaml:"webapps_dir"`
	BackupDir       string        `mapstructure:"backup_dir" yaml:"backup_dir"`
	GCLog           string        `mapstructure:"gc_log" yaml:"gc_log"`
	HeapDumpDir     string        `mapstructure:"heap_dump_dir" yaml:"heap_dump_dir"`
	StartupScript   string        `mapstructure:"startup_script" yaml:"startup_script"`
	ShutdownScript  string        `mapstructure:"shutdown_script" yaml:"shutdown_script"`
	BootstrapClass  string        `mapstructure:"bootstrap_class" yaml:"bootstrap_class"`
	Jcmd            string        `mapstructure:"jcmd" yaml:"jcmd"`
	Locator         string        `mapstructure:"locator" yaml:"locator"`
	LogPrefix       string        `mapstructure:"log_prefix" yaml:"log_prefix"`
	ArtifactExt     string        `mapstructure:"artifact_ext" yaml:"artifact_ext"`
	TailLines       int           `mapstructure:"tail_lines" yaml:"tail_lines"`
	SettleDelay     time.Duration `mapstructure:"settle_delay" yaml:"settle_delay"`
	SettlePoll      bool          `mapstructure:"settle_poll" yaml:"settle_poll"`
	SettleInterval  time.Duration `mapstructure:"settle_interval" yaml:"settle_interval"`
	GCFullThreshold int           `mapstructure:"gc_full_threshold" yaml:"gc_full_threshold"`
	BackupRetention int           `mapstructure:"backup_retention" yaml:"backup_retention"`
}

type AppConfig struct {
	Server  ServerConfig  `mapstructure:"server" yaml:"server"`
	Log     LogConfig     `mapstructure:"log" yaml:"log"`
	Metrics MetricsConfig `mapstructure:"metrics" yaml:"metrics"`
	Monitor MonitorConfig `mapstructure:"monitor" yaml:"monitor"`
	Tomcat  TomcatConfig  `mapstructure:"tomcat" yaml:"tomcat"`
}

const (
	LocatorJcmd = "jcmd"
	LocatorProc = "proc"
)

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.address", "127.0.0.1:8998")
	v.SetDefault("server.mode", "release")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.max_size", 50)
	v.SetDefault("monitor.schedule", "@every 30s")
	v.SetDefault("tomcat.bootstrap_class", "org.apache.catalina.startup.Bootstrap")
	v.SetDefault("tomcat.jcmd", "jcmd")
	v.SetDefault("tomcat.locator", LocatorJcmd)
	v.SetDefault("tomcat.log_prefix", "catalina")
	v.SetDefault("tomcat.artifact_ext", ".war")
	v.SetDefault("tomcat.tail_lines", 200)
	v.SetDefault("tomcat.settle_delay", 3*time.Second)
	v.SetDefault("tomcat.settle_poll", true)
	v.SetDefault("tomcat.settle_interval", 250*time.Millisecond)
	v.SetDefault("tomcat.gc_full_threshold", 5)
	v.SetDefault("tomcat.backup_retention", 0)
}

/**
 * Load application configuration from YAML file
 * @param {string} file - Explicit config file, empty searches "." and the keeper directory
 * @returns {*AppConfig} Returns the loaded configuration
 * @returns {error} Returns error if the file cannot be read or decoded
 * @description
 * - Environment variables prefixed with KEEPER_ override file values
 *   (KEEPER_TOMCAT_PORT overrides tomcat.port)
 * - Fills OS specific defaults for the launcher scripts
 * - Does not validate; call Validate before handing the config to services
 */
func Load(file string) (*AppConfig, error) {
	v := viper.New()
	setDefaults(v)
	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath(env.KeeperDir)
	}
	v.SetEnvPrefix("KEEPER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read config failed: %w", err)
	}

	var cfg AppConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config failed: %w", err)
	}
	cfg.Correct()
	return &cfg, nil
}

/**
 * Fill values that depend on the platform or on other fields
 */
func (cfg *AppConfig) Correct() {
	t := &cfg.Tomcat
	if t.StartupScript == "" {
		t.StartupScript = filepath.Join(t.BinDir, scriptName("startup"))
	}
	if t.ShutdownScript == "" {
		t.ShutdownScript = filepath.Join(t.BinDir, scriptName("shutdown"))
	}
	if t.TailLines <= 0 {
		t.TailLines = 200
	}
	if t.SettleInterval <= 0 {
		t.SettleInterval = 250 * time.Millisecond
	}
	if cfg.Log.Path == "" {
		cfg.Log.Path = filepath.Join(env.KeeperDir, "logs", "catalina-keeper.log")
	}
}

func scriptName(base string) string {
	if runtime.GOOS == "windows" {
		return base + ".bat"
	}
	return base + ".sh"
}
