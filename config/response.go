package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// Response response envelope config struct
type Response struct {
	// ErrorCode forces a fixed transport status on all failure responses, 0 disables it
	ErrorCode int
	Format    string
	Language  string
	Pretty    bool
}

func getResponseConfig(v *viper.Viper) (*Response, error) {
	r := &Response{
		ErrorCode: getIntOrDefault(v, "response.error_code", 0),
		Format:    getStringOrDefault(v, "response.format", "json"),
		Language:  getStringOrDefault(v, "response.language", "en"),
		Pretty:    getBoolOrDefault(v, "response.pretty", false),
	}

	if r.ErrorCode != 0 && (r.ErrorCode < 100 || r.ErrorCode > 599) {
		return nil, fmt.Errorf("response.error_code must be a valid HTTP status, got %d", r.ErrorCode)
	}

	switch r.Format {
	case "json", "xml", "text":
	default:
		return nil, fmt.Errorf("response.format must be one of json, xml, text, got %q", r.Format)
	}

	return r, nil
}
