package utilities

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	"gopkg.in/natefinch/lumberjack.v2"

	"tripify-backend/internal/config"
)

const (
	LevelDebug = "DEBUG"
	LevelInfo  = "INFO"
	LevelWarn  = "WARNING"
	LevelError = "ERROR"
)

var levelRank = map[string]int{
	LevelDebug: 0,
	LevelInfo:  1,
	LevelWarn:  2,
	LevelError: 3,
}

var (
	debugLog *log.Logger
	infoLog  *log.Logger
	warnLog  *log.Logger
	errorLog *log.Logger
	minLevel = LevelInfo
	logMutex sync.Mutex
	closers  []io.Closer
)

func init() {
	setWriters(os.Stdout, os.Stdout, os.Stderr)
}

// SetupLogging writes every level to the console and to its own rotated file
// under cfg.Dir.
func SetupLogging(cfg config.LoggingConfig) error {
	if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
		return fmt.Errorf("create log directory: %w", err)
	}

	rotated := func(name string) *lumberjack.Logger {
		return &lumberjack.Logger{
			Filename:   filepath.Join(cfg.Dir, name),
			MaxSize:    cfg.MaxSizeMB,
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAgeDays,
			Compress:   true,
		}
	}
	infoFile := rotated("info.log")
	warnFile := rotated("warn.log")
	errorFile := rotated("error.log")

	logMutex.Lock()
	closers = []io.Closer{infoFile, warnFile, errorFile}
	logMutex.Unlock()
	SetLevel(cfg.Level)

	setWriters(
		io.MultiWriter(os.Stdout, infoFile),
		io.MultiWriter(os.Stdout, warnFile),
		io.MultiWriter(os.Stderr, errorFile),
	)

	// Override Go's default log
	log.SetOutput(io.MultiWriter(os.Stdout, infoFile))
	return nil
}

// SetOutput sends all levels to w. Used by tests.
func SetOutput(w io.Writer) {
	setWriters(w, w, w)
}

// SetLevel changes the minimum level that gets written. Unknown levels are ignored.
func SetLevel(level string) {
	logMutex.Lock()
	defer logMutex.Unlock()
	if _, ok := levelRank[strings.ToUpper(level)]; ok {
		minLevel = strings.ToUpper(level)
	}
}

// CloseLogging flushes and closes the rotated files.
func CloseLogging() {
	logMutex.Lock()
	defer logMutex.Unlock()
	for _, c := range closers {
		_ = c.Close()
	}
	closers = nil
}

func setWriters(info, warn, errw io.Writer) {
	logMutex.Lock()
	defer logMutex.Unlock()
	debugLog = log.New(info, "DEBUG: ", log.Ldate|log.Ltime)
	infoLog = log.New(info, "INFO: ", log.Ldate|log.Ltime)
	warnLog = log.New(warn, "WARNING: ", log.Ldate|log.Ltime)
	errorLog = log.New(errw, "ERROR: ", log.Ldate|log.Ltime)
}

func getCallerInfo() string {
	pc, _, _, ok := runtime.Caller(3)
	if !ok {
		return "unknown"
	}
	return runtime.FuncForPC(pc).Name()
}

func Log(level string, format string, v ...interface{}) {
	logMutex.Lock()
	defer logMutex.Unlock()

	if levelRank[level] < levelRank[minLevel] {
		return
	}

	message := fmt.Sprintf(format, v...)
	logEntry := fmt.Sprintf("[%s] %s", getCallerInfo(), message)

	switch level {
	case LevelDebug:
		debugLog.Println(logEntry)
	case LevelWarn:
		warnLog.Println(logEntry)
	case LevelError:
		errorLog.Println(logEntry)
	default:
		infoLog.Println(logEntry)
	}
}

func Debug(format string, v ...interface{}) {
	Log(LevelDebug, format, v...)
}

func Info(format string, v ...interface{}) {
	Log(LevelInfo, format, v...)
}

func Warn(format string, v ...interface{}) {
	Log(LevelWarn, format, v...)
}

func Error(format string, v ...interface{}) {
	Log(LevelError, format, v...)
}
