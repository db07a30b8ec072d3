package config

import (
	"log/slog"
	"os"
	"sync"

	"catalog-api/internal/logger"

	"github.com/joho/godotenv"
)

type Config struct {
	AppPort     string
	AppName     string
	MongoURI    string
	MongoDBName string

	// Optional observability endpoints. Empty means the corresponding
	// transport is skipped.
	RemoteLogHttpURI       string
	RemoteTraceRpcURI      string
	RemoteProfilingHttpURI string
}

var log = logger.Instance()
var (
	configInstance *Config
	configOnce     sync.Once
)

func getenv(name, fallback string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	log.Warn("Unset " + name + "; using default " + fallback)
	return fallback
}

func Instance() *Config {
	configOnce.Do(func() {
		// Load .env file (optional)
		if err := godotenv.Load(); err != nil {
			log.Warn("No .env file found, using system environment variables")
		}

		configInstance = &Config{
			AppPort:                getenv("APP_PORT", "5000"),
			AppName:                getenv("APP_NAME", "catalog-api"),
			MongoURI:               os.Getenv("MONGO_URI"),
			MongoDBName:            os.Getenv("MONGO_DB_NAME"),
			RemoteLogHttpURI:       os.Getenv("REMOTE_LOG_HTTP_URI"),
			RemoteTraceRpcURI:      os.Getenv("REMOTE_TRACE_RPC_URI"),
			RemoteProfilingHttpURI: os.Getenv("REMOTE_PROFILING_HTTP_URI"),
		}

		if configInstance.RemoteLogHttpURI == "" {
			log.Warn("Missing REMOTE_LOG_HTTP_URI will skip sending log")
		}
		if configInstance.RemoteTraceRpcURI == "" {
			log.Warn("Missing REMOTE_TRACE_RPC_URI will skip sending trace")
		}
		if configInstance.RemoteProfilingHttpURI == "" {
			log.Warn("Missing REMOTE_PROFILING_HTTP_URI will skip profiling")
		}

		var missing []string
		if configInstance.MongoURI == "" {
			missing = append(missing, "MONGO_URI")
		}
		if configInstance.MongoDBName == "" {
			missing = append(missing, "MONGO_DB_NAME")
		}

		if len(missing) > 0 {
			log.Error("Missing required environment variables", slog.Any("missing", missing))
			os.Exit(1)
		}

		log.Info("Configuration loaded successfully",
			slog.String("data.app_port", configInstance.AppPort),
			slog.String("data.app_name", configInstance.AppName),
			slog.String("data.mongo_db_name", configInstance.MongoDBName),
		)
	})

	return configInstance
}
