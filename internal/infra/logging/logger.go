package logging

import (
	"os"

	"github.com/sirupsen/logrus"
)

// Setup configura o logger global: JSON em produção, texto colorido em desenvolvimento.
func Setup(level, environment string) {
	logrus.SetOutput(os.Stdout)

	if environment == "production" {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		logrus.WithField("level", level).Warn("⚠️ LOG_LEVEL inválido, usando info")
		lvl = logrus.InfoLevel
	}
	logrus.SetLevel(lvl)
}
