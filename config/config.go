package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

var (
	config *Config
	path   string
	once   sync.Once
	mu     sync.RWMutex
)

// Config represents the configuration implementation.
type Config struct {
	AppName  string
	RunMode  string
	Host     string
	Port     int
	Logger   *Logger
	Response *Response
	Worker   *Worker
	Viper    *viper.Viper
}

// Addr returns the server listen address.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// Init initializes and loads the configuration once.
// An empty configPath searches the default locations.
func Init(configPath string) (cfg *Config, err error) {
	once.Do(func() {
		path = configPath
		cfg, err = LoadConfig(configPath)
		if err != nil {
			return
		}
		mu.Lock()
		config = cfg
		mu.Unlock()
	})
	if err != nil {
		return nil, err
	}
	return GetConfig()
}

// GetConfig returns the configuration.
// It does not handle errors internally; instead, it returns the error for the caller to handle.
func GetConfig() (*Config, error) {
	mu.RLock()
	defer mu.RUnlock()
	if config == nil {
		return nil, errors.New("config not initialized")
	}
	return config, nil
}

// LoadConfig loads the configuration from the file.
// Without an explicit path a missing config file is not an error and defaults apply.
func LoadConfig(configPath string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("envelope")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		ex, err := os.Executable()
		if err != nil {
			return nil, fmt.Errorf("failed to get executable path: %w", err)
		}
		v.SetConfigName("config")
		v.AddConfigPath("/etc/envelope")
		v.AddConfigPath("$HOME/.envelope")
		v.AddConfigPath(".")
		v.AddConfigPath(filepath.Dir(ex))
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configPath != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	response, err := getResponseConfig(v)
	if err != nil {
		return nil, err
	}

	worker, err := getWorkerConfig(v)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		AppName:  v.GetString("app_name"),
		RunMode:  v.GetString("run_mode"),
		Host:     v.GetString("server.host"),
		Port:     v.GetInt("server.port"),
		Logger:   getLoggerConfig(v),
		Response: response,
		Worker:   worker,
		Viper:    v,
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app_name", "envelope")
	v.SetDefault("run_mode", "debug")
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("response.format", "json")
	v.SetDefault("response.language", "en")
	v.SetDefault("logger.level", 4)
	v.SetDefault("logger.format", "text")
	v.SetDefault("logger.output", "stdout")
}

// Reload reloads the configuration from the file.
func Reload() error {
	newConfig, err := LoadConfig(path)
	if err != nil {
		return fmt.Errorf("failed to reload config: %w", err)
	}

	mu.Lock()
	config = newConfig
	mu.Unlock()
	return nil
}

// Watch watches the configuration file and reloads it when it changes.
func Watch(callback func(*Config)) error {
	cfg, err := GetConfig()
	if err != nil {
		return err
	}
	cfg.Viper.OnConfigChange(func(e fsnotify.Event) {
		if !e.Has(fsnotify.Write) && !e.Has(fsnotify.Create) {
			return
		}
		if err := Reload(); err != nil {
			fmt.Fprintf(os.Stderr, "Error reloading config: %v\n", err)
			return
		}
		current, _ := GetConfig()
		callback(current)
	})
	cfg.Viper.WatchConfig()
	return nil
}
