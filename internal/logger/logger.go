package logger

import (
	"io"
	"time"

	"github.com/natefinch/lumberjack"
	logrus "github.com/sirupsen/logrus"
)

// ServerLogFile is where the backend writes its rotated log.
const ServerLogFile = "./logs/app.log"

// Setup initializes Logrus with a rotating file at path and returns the
// rotator so the HTTP access log can share it.
func Setup(path string, level logrus.Level) io.Writer {
	// 1) Lumberjack for file rotation
	rotator := &lumberjack.Logger{
		Filename:   path,
		MaxSize:    10, // megabytes
		MaxBackups: 7,  // keep up to 7 old files
		MaxAge:     7,  // days
		Compress:   true,
	}

	// 2) Configure Logrus to write to that file
	logrus.SetOutput(rotator)
	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
	})
	logrus.SetLevel(level)
	return rotator
}

// GormLogger returns the standard Logrus logger for GORM
func GormLogger() *logrus.Logger {
	return logrus.StandardLogger()
}
