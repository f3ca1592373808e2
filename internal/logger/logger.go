package logger

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/natefinch/lumberjack.v2"
)

var (
	defaultLogger *Logger
)

// Logger 日志结构体
type Logger struct {
	debugLogger *log.Logger
	infoLogger  *log.Logger
	warnLogger  *log.Logger
	errorLogger *log.Logger
}

// LogLevel 日志级别类型
type LogLevel int

const (
	DEBUG LogLevel = iota
	INFO
	WARN
	ERROR
)

// GetLogLevelFromString 将字符串转换为日志级别
func GetLogLevelFromString(level string) LogLevel {
	switch strings.ToLower(level) {
	case "debug":
		return DEBUG
	case "info":
		return INFO
	case "warn":
		return WARN
	case "error":
		return ERROR
	default:
		return WARN // 默认级别
	}
}

/**
 * Initialize the logging system
 * @param {string} path - Log file path, "console" or empty writes to stdout only
 * @param {string} level - debug/info/warn/error
 * @param {bool} console - Also write to stdout (server mode)
 * @param {int} maxSize - Rotate the file after maxSize megabytes
 * @description
 * - File output goes through lumberjack so the keeper's own log is rotated
 * - Levels below the configured level are discarded
 */
func InitLogger(path string, level string, console bool, maxSize int) {
	var output io.Writer

	if path == "console" || path == "" {
		output = os.Stdout
	} else {
		output = setupLogFileOutput(path, maxSize)
		// 服务器模式同时输出到控制台
		if console {
			output = io.MultiWriter(os.Stdout, output)
		}
	}
	SetOutput(output, level)
}

/**
 * Route all levels at or above level to w
 * @param {io.Writer} w - Destination
 * @param {string} level - Minimum level
 */
func SetOutput(w io.Writer, level string) {
	logLevel := GetLogLevelFromString(level)

	flags := log.LstdFlags | log.Lshortfile

	l := &Logger{
		debugLogger: log.New(io.Discard, "DEBUG: ", flags),
		infoLogger:  log.New(io.Discard, "INFO: ", flags),
		warnLogger:  log.New(io.Discard, "WARN: ", flags),
		errorLogger: log.New(io.Discard, "ERROR: ", flags),
	}

	// 根据级别设置输出
	if logLevel <= DEBUG {
		l.debugLogger.SetOutput(w)
	}
	if logLevel <= INFO {
		l.infoLogger.SetOutput(w)
	}
	if logLevel <= WARN {
		l.warnLogger.SetOutput(w)
	}
	if logLevel <= ERROR {
		l.errorLogger.SetOutput(w)
	}
	defaultLogger = l
}

// setupLogFileOutput 设置日志文件输出
func setupLogFileOutput(logPath string, maxSize int) io.Writer {
	if err := os.MkdirAll(filepath.Dir(logPath), 0755); err != nil {
		fmt.Fprintf(os.Stderr, "create log directory failed: %v\n", err)
		return os.Stdout
	}
	if maxSize <= 0 {
		maxSize = 50
	}
	return &lumberjack.Logger{
		Filename:   logPath,
		MaxSize:    maxSize,
		MaxBackups: 5,
		MaxAge:     30,
	}
}

// Debug 输出调试日志
func Debug(v ...interface{}) {
	if defaultLogger != nil {
		defaultLogger.debugLogger.Output(2, fmt.Sprintln(v...))
	}
}

// Debugf 输出格式化调试日志
func Debugf(format string, v ...interface{}) {
	if defaultLogger != nil {
		defaultLogger.debugLogger.Output(2, fmt.Sprintf(format, v...))
	}
}

// Info 输出信息日志
func Info(v ...interface{}) {
	if defaultLogger != nil {
		defaultLogger.infoLogger.Output(2, fmt.Sprintln(v...))
	}
}

// Infof 输出格式化信息日志
func Infof(format string, v ...interface{}) {
	if defaultLogger != nil {
		defaultLogger.infoLogger.Output(2, fmt.Sprintf(format, v...))
	}
}

// Warn 输出警告日志
func Warn(v ...interface{}) {
	if defaultLogger != nil {
		defaultLogger.warnLogger.Output(2, fmt.Sprintln(v...))
	}
}

// Warnf 输出格式化警告日志
func Warnf(format string, v ...interface{}) {
	if defaultLogger != nil {
		defaultLogger.warnLogger.Output(2, fmt.Sprintf(format, v...))
	}
}

// Error 输出错误日志
func Error(v ...interface{}) {
	if defaultLogger != nil {
		defaultLogger.errorLogger.Output(2, fmt.Sprintln(v...))
	}
}

// Errorf 输出格式化错误日志
func Errorf(format string, v ...interface{}) {
	if defaultLogger != nil {
		defaultLogger.errorLogger.Output(2, fmt.Sprintf(format, v...))
	}
}

// Fatal 输出致命错误日志并退出程序
func Fatal(v ...interface{}) {
	if defaultLogger != nil {
		defaultLogger.errorLogger.Output(2, fmt.Sprintln(v...))
	}
	// 日志可能只写入文件，退出前在标准错误输出也打印一次
	fmt.Fprintln(os.Stderr, append([]interface{}{"FATAL:"}, v...)...)
	os.Exit(1)
}

// Fatalf 输出格式化致命错误日志并退出程序
func Fatalf(format string, v ...interface{}) {
	if defaultLogger != nil {
		defaultLogger.errorLogger.Output(2, fmt.Sprintf(format, v...))
	}
	fmt.Fprintf(os.Stderr, "FATAL: "+format+"\n", v...)
	os.Exit(1)
}
