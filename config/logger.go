package config

import (
	"strings"

	"github.com/spf13/viper"
)

// Logger logger config struct
type Logger struct {
	Level           int
	Format          string
	Output          string
	OutputFile      string
	SentryDSN       string
	// Environment tags Sentry events, taken from run_mode
	Environment     string
	// SensitiveFields are masked in log entries, defaults apply when empty
	SensitiveFields []string
}

func getLoggerConfig(v *viper.Viper) *Logger {
	return &Logger{
		Level:           v.GetInt("logger.level"),
		Format:          v.GetString("logger.format"),
		Output:          v.GetString("logger.output"),
		OutputFile:      v.GetString("logger.output_file"),
		SentryDSN:       getStringOrDefault(v, "logger.sentry_dsn", ""),
		SensitiveFields: v.GetStringSlice("logger.sensitive_fields"),
		Environment:     strings.ToLower(v.GetString("run_mode")),
	}
}
