// Package config loads application configuration with Viper. YAML, JSON and
// TOML files are supported and every key can be overridden from the
// environment with the ENVELOPE_ prefix (response.error_code becomes
// ENVELOPE_RESPONSE_ERROR_CODE).
//
// # Loading
//
//	cfg, err := config.LoadConfig("./config.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// Init loads once and keeps the result for GetConfig, Reload and Watch.
//
// # Example
//
//	app_name: widgets
//	run_mode: release
//	server:
//	  host: 0.0.0.0
//	  port: 8080
//	response:
//	  error_code: 422   # fixed transport status for every failure
//	  format: json      # json | xml | text
//	  language: en
//	  pretty: false
//	logger:
//	  level: 4          # logrus level, 4 = info
//	  format: json
//	  output: stdout    # stdout | stderr | file
//	  output_file: ./logs/widgets.log
//	  sentry_dsn: ""
//
// # Hot Reload
//
//	err := config.Watch(func(cfg *config.Config) {
//	    current.Store(resp.New(resp.WithConfig(cfg.Response)))
//	})
package config
