package main

import (
	log "github.com/sirupsen/logrus"

	"github.com/mpeshwe/TaskManager/internal/config"
	"github.com/mpeshwe/TaskManager/internal/logger"
)

func main() {
	logger.SetLogrus(*config.DefaultLoggerConfig())

	if err := rootCmd.Execute(); err != nil {
		log.WithError(err).Fatal("fatal error running taskmanager")
	}
}
