package logger

import (
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// Log является глобальным экземпляром логгера для всего приложения.
// До вызова Init он пишет в stderr с уровнем Info, чтобы пакеты и тесты
// могли логировать без явной инициализации.
var Log = newDefault()

func newDefault() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(os.Stderr)
	l.SetLevel(logrus.InfoLevel)
	return l
}

// Init настраивает глобальный логгер.
// Вызывается один раз при старте приложения в main.go.
func Init(level, format string) {
	Log = logrus.New()

	// 1. Уровень логирования. По умолчанию - "info".
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	Log.SetLevel(lvl)

	// 2. Форматтер: "json" - для сбора логов, "text" - для разработки.
	if strings.ToLower(format) == "json" {
		Log.SetFormatter(&logrus.JSONFormatter{})
	} else {
		Log.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
		})
	}

	Log.SetOutput(os.Stdout)
}

// Silence перенаправляет вывод в никуда (для тестов и бенчмарков).
func Silence() {
	Log.SetOutput(io.Discard)
}
