package server

import (
	"net/http"

	"github.com/ncobase/envelope/ecode"
	"golang.org/x/text/language"
)

// Widget business codes
const (
	codeServing      = 20000
	codeWidgetSaved  = 20001
	codeWidgetLocked = -20409
)

func init() {
	ecode.Register(codeServing, "Service is up")
	ecode.Register(codeWidgetSaved, "Widget saved")
	ecode.Register(codeWidgetLocked, "Widget is locked")

	ecode.RegisterIn(language.Chinese, codeServing, "服务运行中")
	ecode.RegisterIn(language.Chinese, codeWidgetSaved, "组件已保存")
	ecode.RegisterIn(language.Chinese, codeWidgetLocked, "组件已锁定")

	ecode.RegisterStatus(codeWidgetLocked, http.StatusConflict)
}
