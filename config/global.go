package config

import (
	log "github.com/sirupsen/logrus"
)

const DefaultHttpPort = 8080

type GlobalConfiguration struct {
	logLevel log.Level
	httpPort int
	workers  int
}

func (config *GlobalConfiguration) LogLevel() log.Level {
	return config.logLevel
}

func (config *GlobalConfiguration) HttpPort() int {
	return config.httpPort
}

// Workers is the number of concurrent metadata lookups per directory listing.
func (config *GlobalConfiguration) Workers() int {
	return config.workers
}

func parseGlobal(cfg Raw) *GlobalConfiguration {
	logLevel := log.InfoLevel
	if cfg.Has("log_level") {
		parsedLevel, err := log.ParseLevel(cfg.String("log_level"))
		if err == nil {
			logLevel = parsedLevel
		} else {
			log.Warnf("Cannot parse log level, defaulting to 'info': %s", err)
		}
	}

	httpPort := DefaultHttpPort
	if cfg.Has("port") {
		httpPort = int(cfg.Int64("port"))
	}

	workers := 1
	if cfg.Has("workers") {
		workers = int(cfg.Int64("workers"))
	}

	if workers < 1 {
		log.Warn("Number of workers must be at least 1, defaulting to 1.")
		workers = 1
	}

	return &GlobalConfiguration{logLevel: logLevel, httpPort: httpPort, workers: workers}
}
