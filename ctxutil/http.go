package ctxutil

import (
	"context"
	"net"
	"net/http"
	"strings"
)

const (
	clientIPKey    = "client_ip"
	userAgentKey   = "user_agent"
	httpRequestKey = "http_request"

	unknown = "unknown"
)

// proxyHeaders are consulted in order for the public client address.
var proxyHeaders = []string{
	"X-Forwarded-For",
	"X-Real-IP",
	"CF-Connecting-IP",
	"X-Client-IP",
}

var privateNets = func() []*net.IPNet {
	var out []*net.IPNet
	for _, cidr := range []string{
		"10.0.0.0/8",
		"172.16.0.0/12",
		"192.168.0.0/16",
		"127.0.0.0/8",
		"169.254.0.0/16",
		"::1/128",
		"fc00::/7",
		"fe80::/10",
	} {
		_, n, _ := net.ParseCIDR(cidr)
		out = append(out, n)
	}
	return out
}()

// SetHTTPRequest stores the request that response hooks receive.
func SetHTTPRequest(ctx context.Context, req *http.Request) context.Context {
	return SetValue(ctx, httpRequestKey, req)
}

// GetHTTPRequest returns the stored request, else the embedded gin request, else nil.
func GetHTTPRequest(ctx context.Context) *http.Request {
	if req, ok := GetValue(ctx, httpRequestKey).(*http.Request); ok {
		return req
	}
	if c, ok := GetGinContext(ctx); ok && c.Request != nil {
		return c.Request
	}
	return nil
}

// SetClientIP sets client IP to context.Context
func SetClientIP(ctx context.Context, ip string) context.Context {
	return SetValue(ctx, clientIPKey, ip)
}

// GetClientIP returns the stored client ip, else the first public address
// found in proxy headers, else the remote address.
func GetClientIP(ctx context.Context) string {
	if ip, ok := GetValue(ctx, clientIPKey).(string); ok && ip != "" {
		return ip
	}
	req := GetHTTPRequest(ctx)
	if req == nil {
		return unknown
	}
	if ip := forwardedIP(req.Header); ip != "" {
		return ip
	}
	if c, ok := GetGinContext(ctx); ok {
		if ip := c.ClientIP(); ip != "" {
			return ip
		}
	}
	return hostOnly(req.RemoteAddr)
}

// SetUserAgent sets user agent to context.Context
func SetUserAgent(ctx context.Context, userAgent string) context.Context {
	return SetValue(ctx, userAgentKey, userAgent)
}

// GetUserAgent gets user agent from context.Context
func GetUserAgent(ctx context.Context) string {
	if ua, ok := GetValue(ctx, userAgentKey).(string); ok && ua != "" {
		return ua
	}
	if req := GetHTTPRequest(ctx); req != nil && req.UserAgent() != "" {
		return req.UserAgent()
	}
	return unknown
}

func forwardedIP(h http.Header) string {
	for _, name := range proxyHeaders {
		v := h.Get(name)
		if v == "" {
			continue
		}
		// X-Forwarded-For lists the origin first
		ip := strings.TrimSpace(strings.Split(v, ",")[0])
		if isPublicIP(ip) {
			return ip
		}
	}
	return ""
}

func hostOnly(addr string) string {
	if addr == "" {
		return unknown
	}
	if host, _, err := net.SplitHostPort(addr); err == nil {
		return host
	}
	return addr
}

func isPublicIP(s string) bool {
	ip := net.ParseIP(s)
	if ip == nil {
		return false
	}
	for _, n := range privateNets {
		if n.Contains(ip) {
			return false
		}
	}
	return true
}
