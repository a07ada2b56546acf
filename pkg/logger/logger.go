package logger

import (
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// Log - глобальный логгер приложения.
var Log *logrus.Logger

// Init настраивает глобальный логгер.
// Вызывается один раз при старте процесса (main.go или TestMain).
func Init() {
	Log = logrus.New()

	// Уровень логирования берём из окружения, по умолчанию "info".
	// Для покадрового разбора симуляции выставляем "debug".
	logLevel, ok := os.LookupEnv("LOG_LEVEL")
	if !ok {
		logLevel = "info"
	}
	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	Log.SetLevel(level)

	// Форматтер: "json" для продакшена и сбора логов, текст для разработки.
	logFormat := strings.ToLower(os.Getenv("LOG_FORMAT"))
	if logFormat == "json" {
		Log.SetFormatter(&logrus.JSONFormatter{})
	} else {
		Log.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
			ForceColors:   true,
		})
	}

	Log.SetOutput(os.Stdout)
}

// InitSilent настраивает логгер с отброшенным выводом.
// Используется в тестах, где лог-шум мешает читать падения.
func InitSilent() {
	Log = logrus.New()
	Log.SetOutput(io.Discard)
}
