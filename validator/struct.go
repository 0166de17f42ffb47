package validator

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

func init() {
	validate = validator.New(validator.WithRequiredStructEnabled())
	validate.RegisterTagNameFunc(jsonName)
}

// errorMessages is a nested map of languages to validation tags to custom error messages.
var errorMessages = map[string]map[string]string{
	"en": {
		"required": "The field '%s' is required.",
		"email":    "The field '%s' must be a valid email address.",
		"min":      "The field '%s' must be at least %s characters long.",
		"max":      "The field '%s' must be no longer than %s characters.",
		"lte":      "The field '%s' must be less than or equal to %s.",
		"gte":      "The field '%s' must be greater than or equal to %s.",
		"gt":       "The field '%s' must be greater than %s.",
		"lt":       "The field '%s' must be less than %s.",
		"oneof":    "The field '%s' must be one of %s.",
		"url":      "The field '%s' must be a valid URL.",
	},
	"zh": {
		"required": "字段 '%s' 为必填项。",
		"email":    "字段 '%s' 必须是有效的电子邮箱地址。",
		"min":      "字段 '%s' 的长度不能少于 %s 个字符。",
		"max":      "字段 '%s' 的长度不能超过 %s 个字符。",
		"lte":      "字段 '%s' 的值必须小于或等于 %s。",
		"gte":      "字段 '%s' 的值必须大于或等于 %s。",
		"gt":       "字段 '%s' 的值必须大于 %s。",
		"lt":       "字段 '%s' 的值必须小于 %s。",
		"oneof":    "字段 '%s' 的值必须是 %s 之一。",
		"url":      "字段 '%s' 必须是有效的链接。",
	},
}

// jsonName reports the json name of a struct field, "-" fields keep their Go name.
func jsonName(field reflect.StructField) string {
	name := strings.Split(field.Tag.Get("json"), ",")[0]
	if name == "" || name == "-" {
		return field.Name
	}
	return name
}

// baseLanguage reduces an Accept-Language style value to a message language key.
func baseLanguage(lang ...string) string {
	if len(lang) == 0 {
		return "en"
	}
	l := strings.ToLower(strings.TrimSpace(lang[0]))
	if i := strings.IndexAny(l, "-_,;"); i >= 0 {
		l = l[:i]
	}
	if _, ok := errorMessages[l]; !ok {
		return "en"
	}
	return l
}

// parseMessage constructs a friendly error message based on the validation tag and custom messages.
func parseMessage(field string, e validator.FieldError, lang string) string {
	if msgs, exists := errorMessages[lang]; exists {
		if msg, exists := msgs[e.Tag()]; exists {
			// Check the number of %s placeholders in the custom message
			switch strings.Count(msg, "%s") {
			case 1:
				return fmt.Sprintf(msg, field)
			case 2:
				return fmt.Sprintf(msg, field, e.Param())
			}
		}
	}
	// Default error message if no custom message is defined for the tag or language.
	return fmt.Sprintf("Field '%s' is invalid: %s", field, e.Tag())
}

// ValidateStruct validates a struct and returns a map of JSON field names to friendly error messages.
// Nested fields are keyed by their dotted JSON path, e.g. "owner.email".
func ValidateStruct(s any, lang ...string) map[string]string {
	validationErrors := make(map[string]string)

	err := validate.Struct(s)
	if err == nil {
		return validationErrors
	}

	msgLang := baseLanguage(lang...)

	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		for _, e := range validationErrs {
			field := fieldPath(e.Namespace())
			validationErrors[field] = parseMessage(field, e, msgLang)
		}
		return validationErrors
	}

	var invalid *validator.InvalidValidationError
	if errors.As(err, &invalid) {
		validationErrors["_"] = invalid.Error()
	}

	return validationErrors
}

// fieldPath strips the root struct name from a validator namespace.
func fieldPath(namespace string) string {
	if i := strings.Index(namespace, "."); i >= 0 {
		return namespace[i+1:]
	}
	return namespace
}
