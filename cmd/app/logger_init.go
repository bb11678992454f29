package main

import (
	"github.com/osse101/Lootkeeper_Go/internal/config"
	"github.com/osse101/Lootkeeper_Go/internal/logger"
)

// initLogger initializes the logger using centralized app configuration
func initLogger(cfg *config.Config) {
	logCfg := logger.ForEnvironment(cfg.Environment).WithOverrides(cfg.LogLevel, cfg.LogFormat)
	logCfg.ServiceName = cfg.ServiceName
	logCfg.Version = cfg.Version
	logCfg.StorageDriver = cfg.StorageDriver
	logCfg.RNGSeed = cfg.RNGSeed
	logger.InitLogger(logCfg)
}
