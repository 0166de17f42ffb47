// Package ecode defines business codes carried in response envelopes, their
// localized messages and their transport status mapping.
//
// # Code Convention
//
// Business codes are distinct from transport statuses:
//   - 0: Success (OK)
//   - HTTP-like codes (100-599) map to themselves
//   - -100 to -199: Authentication/authorization errors
//   - -400 to -499: Request and resource errors
//   - -500+: Server errors
//
// # Messages
//
// Messages are registered per language and resolved from an
// Accept-Language style string:
//
//	ecode.TextIn("zh-CN,zh;q=0.9", ecode.NoLogin)
//	// Returns: "账号未登录"
//
//	ecode.Text(ecode.NoLogin)
//	// Returns the message in the default language, see SetLanguage
//
// Unknown languages fall back to English, unknown codes to the HTTP status
// text when the code is HTTP-like.
//
// # Custom Codes
//
//	const OrderExpired = -1002
//
//	ecode.Register(OrderExpired, "Order has expired")
//	ecode.RegisterIn(language.Chinese, OrderExpired, "订单已过期")
//	ecode.RegisterStatus(OrderExpired, http.StatusGone)
//
// # Status Mapping
//
//	ecode.ToHTTPStatus(ecode.NotFound)  // 404
//	ecode.ToHTTPStatus(ecode.NoLogin)   // 401
//	ecode.ToHTTPStatus(-9999)           // 500, unknown negative codes are failures
package ecode
