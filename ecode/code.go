package ecode

import (
	"net/http"
	"strings"
	"sync"

	"golang.org/x/text/language"
)

// Business codes
const (
	OK = 0

	SignCheckErr = -3

	NoLogin      = -101
	UserDisabled = -102
	Unauthorized = -103
	CaptchaErr   = -105
	UserInactive = -106

	RequestErr       = -400
	ParamErr         = -401
	AccessDenied     = -403
	NothingFound     = -404
	MethodNotAllowed = -405
	Conflict         = -409
	ValidationErr    = -422

	ServerErr          = -500
	ServiceUnavailable = -503
	Deadline           = -504
)

// NotFound is an alias of NothingFound.
const NotFound = NothingFound

var (
	mu       sync.RWMutex
	current  = language.English
	messages = map[language.Tag]map[int]string{
		language.English: {
			OK:                 "ok",
			SignCheckErr:       "Signature verification failed",
			NoLogin:            "Account not logged in",
			UserDisabled:       "Account suspended",
			Unauthorized:       "Unauthorized",
			CaptchaErr:         "Captcha verification failed",
			UserInactive:       "Account not activated",
			RequestErr:         "Invalid request",
			ParamErr:           "Invalid parameters",
			AccessDenied:       "Access denied",
			NothingFound:       "Resource not found",
			MethodNotAllowed:   "Method not allowed",
			Conflict:           "Resource conflict",
			ValidationErr:      "Validation failed",
			ServerErr:          "Internal server error",
			ServiceUnavailable: "Service unavailable",
			Deadline:           "Deadline exceeded",
		},
		language.Chinese: {
			OK:                 "成功",
			SignCheckErr:       "签名校验失败",
			NoLogin:            "账号未登录",
			UserDisabled:       "账号已停用",
			Unauthorized:       "未授权",
			CaptchaErr:         "验证码校验失败",
			UserInactive:       "账号未激活",
			RequestErr:         "请求错误",
			ParamErr:           "参数错误",
			AccessDenied:       "访问被拒绝",
			NothingFound:       "资源不存在",
			MethodNotAllowed:   "方法不允许",
			Conflict:           "资源冲突",
			ValidationErr:      "数据校验失败",
			ServerErr:          "服务器内部错误",
			ServiceUnavailable: "服务不可用",
			Deadline:           "请求超时",
		},
	}
	statuses = map[int]int{
		OK:                 http.StatusOK,
		SignCheckErr:       http.StatusBadRequest,
		NoLogin:            http.StatusUnauthorized,
		UserDisabled:       http.StatusForbidden,
		Unauthorized:       http.StatusUnauthorized,
		CaptchaErr:         http.StatusBadRequest,
		UserInactive:       http.StatusForbidden,
		RequestErr:         http.StatusBadRequest,
		ParamErr:           http.StatusBadRequest,
		AccessDenied:       http.StatusForbidden,
		NothingFound:       http.StatusNotFound,
		MethodNotAllowed:   http.StatusMethodNotAllowed,
		Conflict:           http.StatusConflict,
		ValidationErr:      http.StatusUnprocessableEntity,
		ServerErr:          http.StatusInternalServerError,
		ServiceUnavailable: http.StatusServiceUnavailable,
		Deadline:           http.StatusGatewayTimeout,
	}
)

// SetLanguage sets the default language used by Text.
// Unparseable tags are ignored.
func SetLanguage(lang string) {
	tag, err := language.Parse(lang)
	if err != nil {
		return
	}
	mu.Lock()
	current = tag
	mu.Unlock()
}

// Language returns the default message language.
func Language() language.Tag {
	mu.RLock()
	defer mu.RUnlock()
	return current
}

// Register registers or overrides the English message of a code.
func Register(code int, message string) {
	RegisterIn(language.English, code, message)
}

// RegisterIn registers or overrides the message of a code for a language.
func RegisterIn(lang language.Tag, code int, message string) {
	mu.Lock()
	defer mu.Unlock()
	if messages[lang] == nil {
		messages[lang] = make(map[int]string)
	}
	messages[lang][code] = message
}

// RegisterStatus maps a business code to a transport status.
func RegisterStatus(code, status int) {
	mu.Lock()
	statuses[code] = status
	mu.Unlock()
}

// Text returns the message of a code in the default language.
func Text(code int) string {
	return TextIn(Language().String(), code)
}

// TextIn returns the message of a code for an Accept-Language style string,
// e.g. "zh-CN" or "fr;q=0.9, en;q=0.8".
// Falls back to English, then to the HTTP status text for HTTP-like codes.
func TextIn(accept string, code int) string {
	mu.RLock()
	defer mu.RUnlock()

	if tag, ok := match(accept); ok {
		if msg, ok := messages[tag][code]; ok {
			return msg
		}
	}
	if msg, ok := messages[language.English][code]; ok {
		return msg
	}
	if text := http.StatusText(code); text != "" {
		return text
	}
	return ""
}

// match resolves accept against the registered languages. Caller holds mu.
func match(accept string) (language.Tag, bool) {
	accept = strings.TrimSpace(accept)
	if accept == "" {
		return language.Und, false
	}
	desired, _, err := language.ParseAcceptLanguage(accept)
	if err != nil || len(desired) == 0 {
		return language.Und, false
	}

	supported := make([]language.Tag, 0, len(messages))
	supported = append(supported, language.English)
	for tag := range messages {
		if tag != language.English {
			supported = append(supported, tag)
		}
	}

	_, idx, confidence := language.NewMatcher(supported).Match(desired...)
	if confidence == language.No {
		return language.Und, false
	}
	return supported[idx], true
}

// ToHTTPStatus maps a business code to a transport status.
// HTTP-like codes map to themselves; unknown negative codes map to 500.
func ToHTTPStatus(code int) int {
	if code >= 100 && code <= 599 {
		return code
	}
	mu.RLock()
	status, ok := statuses[code]
	mu.RUnlock()
	if ok {
		return status
	}
	if code < 0 {
		return http.StatusInternalServerError
	}
	return http.StatusOK
}
