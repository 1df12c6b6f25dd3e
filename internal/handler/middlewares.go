package handler

import (
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/sysu-ecnc-dev/newsroom/backend/internal/auth"
	"github.com/sysu-ecnc-dev/newsroom/backend/internal/metrics"
)

type ResponseWriter struct {
	http.ResponseWriter
	StatusCode int
}

func (rw *ResponseWriter) WriteHeader(statusCode int) {
	rw.StatusCode = statusCode
	rw.ResponseWriter.WriteHeader(statusCode)
}

func (h *Handler) logger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rw := &ResponseWriter{ResponseWriter: w, StatusCode: http.StatusOK}
		next.ServeHTTP(rw, r)
		duration := time.Since(start)

		// 使用路由模板作为标签，避免 id 导致标签数量无限增长
		route := r.URL.Path
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			route = rctx.RoutePattern()
		}
		metrics.HTTPRequests.WithLabelValues(r.Method, route, strconv.Itoa(rw.StatusCode)).Inc()
		metrics.HTTPRequestDuration.WithLabelValues(r.Method, route).Observe(duration.Seconds())

		slog.Info("已处理请求", "status", rw.StatusCode, "ip", r.RemoteAddr, "method", r.Method, "path", r.URL.Path, "duration", duration)
	})
}

func (h *Handler) recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				h.internalServerError(w, r, fmt.Errorf("panic: %v", err))
				stackTrace := string(debug.Stack())
				fmt.Print(stackTrace) // 这里如果用 slog 的话会很乱
			}
		}()
		next.ServeHTTP(w, r)
	})
}

// tokenFromRequest 优先从 cookie 中获取令牌，其次是 Authorization 头
func (h *Handler) tokenFromRequest(r *http.Request) string {
	if cookie, err := r.Cookie(h.config.JWT.CookieName); err == nil && cookie.Value != "" {
		return cookie.Value
	}

	header := r.Header.Get("Authorization")
	if token, ok := strings.CutPrefix(header, "Bearer "); ok {
		return strings.TrimSpace(token)
	}

	return ""
}

func (h *Handler) parseClaims(r *http.Request) (*auth.Claims, bool) {
	token := h.tokenFromRequest(r)
	if token == "" {
		return nil, false
	}

	claims, err := h.tokens.Parse(token)
	if err != nil {
		return nil, false
	}
	return claims, true
}

func (h *Handler) auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if h.tokenFromRequest(r) == "" {
			h.unauthorized(w, r, "用户未登录")
			return
		}

		claims, ok := h.parseClaims(r)
		if !ok {
			h.unauthorized(w, r, "无效的令牌")
			return
		}

		// Parse 已经校验过 subject 是合法的 uuid
		id, _ := claims.UserID()
		ctx := withActor(r.Context(), id, claims.StaffRole())
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// optionalAuth 令牌缺失或无效时按匿名用户处理
func (h *Handler) optionalAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := h.parseClaims(r)
		if !ok {
			next.ServeHTTP(w, r)
			return
		}

		id, _ := claims.UserID()
		ctx := withActor(r.Context(), id, claims.StaffRole())
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
