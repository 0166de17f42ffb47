package logger

import (
	"reflect"
	"strings"

	"github.com/sirupsen/logrus"
)

// Default sensitive field patterns
var defaultSensitiveFields = []string{
	"password", "passwd", "pwd",
	"token", "access_token", "refresh_token", "auth_token",
	"secret", "api_key", "apikey",
	"credit_card", "card_number",
}

const mask = "******"

// Desensitizer is a logrus hook masking sensitive values in entry fields,
// including nested maps such as failure error details.
type Desensitizer struct {
	fields []string
}

// NewDesensitizer creates a new desensitizer, falling back to the default field names
func NewDesensitizer(fields []string) *Desensitizer {
	if len(fields) == 0 {
		fields = defaultSensitiveFields
	}
	normalized := make([]string, 0, len(fields))
	for _, f := range fields {
		if f = strings.ToLower(strings.TrimSpace(f)); f != "" {
			normalized = append(normalized, f)
		}
	}
	return &Desensitizer{fields: normalized}
}

// Levels returns all log levels
func (d *Desensitizer) Levels() []logrus.Level {
	return logrus.AllLevels
}

// Fire masks sensitive fields in place
func (d *Desensitizer) Fire(entry *logrus.Entry) error {
	entry.Data = d.DesensitizeFields(entry.Data)
	return nil
}

// DesensitizeFields processes log fields and masks sensitive data
func (d *Desensitizer) DesensitizeFields(fields logrus.Fields) logrus.Fields {
	result := make(logrus.Fields, len(fields))
	for key, value := range fields {
		result[key] = d.desensitizeValue(key, value, 0)
	}
	return result
}

// desensitizeValue processes a single value recursively
func (d *Desensitizer) desensitizeValue(key string, value any, depth int) any {
	// Prevent infinite recursion
	if depth > 10 || value == nil {
		return value
	}

	if d.isSensitiveField(key) {
		return mask
	}

	v := reflect.ValueOf(value)
	for v.Kind() == reflect.Ptr || v.Kind() == reflect.Interface {
		if v.IsNil() {
			return value
		}
		v = v.Elem()
	}

	switch v.Kind() {
	case reflect.Map:
		if v.Type().Key().Kind() != reflect.String {
			return value
		}
		out := make(map[string]any, v.Len())
		iter := v.MapRange()
		for iter.Next() {
			k := iter.Key().String()
			out[k] = d.desensitizeValue(k, iter.Value().Interface(), depth+1)
		}
		return out
	case reflect.Slice, reflect.Array:
		if v.Type().Elem().Kind() == reflect.Uint8 {
			return value
		}
		out := make([]any, v.Len())
		for i := 0; i < v.Len(); i++ {
			out[i] = d.desensitizeValue("", v.Index(i).Interface(), depth+1)
		}
		return out
	default:
		return value
	}
}

// isSensitiveField reports whether a field name contains a sensitive pattern
func (d *Desensitizer) isSensitiveField(key string) bool {
	if key == "" {
		return false
	}
	key = strings.ToLower(key)
	for _, f := range d.fields {
		if strings.Contains(key, f) {
			return true
		}
	}
	return false
}
