package logger

import (
	"os"

	"github.com/sirupsen/logrus"
)

// New создает JSON-логгер сервиса с уровнем из конфигурации.
// Некорректный уровень не валит запуск, а понижается до info.
func New(logLevel string) *logrus.Logger {
	log := logrus.New()

	log.SetFormatter(&logrus.JSONFormatter{})
	log.SetOutput(os.Stdout)

	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	log.SetLevel(level)
	return log
}
