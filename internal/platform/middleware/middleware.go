// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package middleware provides the cross-cutting HTTP processing chain.

It acts as a series of decorators around the standard http.Handler, injecting
traceability, safety, and security into every request lifecycle.

Standard Stack:

  - Trace: RequestID generation for log correlation.
  - Log: Structured activity logging (slog).
  - Guard: Rate limiting, CORS validation and bearer authentication.
  - Safe: Panic recovery to prevent server crashes.
*/
package middleware

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"runtime"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/taibuivan/gamelibrary/internal/platform/apperr"
	"github.com/taibuivan/gamelibrary/internal/platform/constants"
	"github.com/taibuivan/gamelibrary/internal/platform/ctxutil"
	"github.com/taibuivan/gamelibrary/internal/platform/respond"
)

// # Request Tracing

// RequestID attaches a correlation ID to every request for log tracing.
// A client supplied X-Request-ID is kept; otherwise a UUIDv7 is generated.
func RequestID() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			requestID := request.Header.Get(constants.HeaderXRequestID)
			if requestID == "" {
				requestID = newRequestID()
			}

			ctx := ctxutil.WithRequestID(request.Context(), requestID)
			writer.Header().Set(constants.HeaderXRequestID, requestID)

			next.ServeHTTP(writer, request.WithContext(ctx))
		})
	}
}

func newRequestID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

// # Activity Logging

// StatusRecorder captures the status code written by downstream handlers.
type StatusRecorder struct {
	http.ResponseWriter
	Status int
}

// NewStatusRecorder wraps writer with a default status of 200.
func NewStatusRecorder(writer http.ResponseWriter) *StatusRecorder {
	return &StatusRecorder{ResponseWriter: writer, Status: http.StatusOK}
}

func (recorder *StatusRecorder) WriteHeader(code int) {
	recorder.Status = code
	recorder.ResponseWriter.WriteHeader(code)
}

// Unwrap exposes the underlying writer to [http.ResponseController].
func (recorder *StatusRecorder) Unwrap() http.ResponseWriter {
	return recorder.ResponseWriter
}

// identitySlot lets [Authenticate], which runs deeper in the chain, report the
// caller back to [StructuredLogger].
type identitySlot struct{ userID int64 }

type identitySlotKey struct{}

func recordIdentity(ctx context.Context, userID int64) {
	if slot, ok := ctx.Value(identitySlotKey{}).(*identitySlot); ok {
		slot.userID = userID
	}
}

// StructuredLogger logs every request status and latency.
// It also injects a request-specific logger into the context.
func StructuredLogger(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			startTime := time.Now()

			requestLogger := logger.With(
				slog.String("request_id", ctxutil.GetRequestID(request.Context())),
				slog.String("method", request.Method),
				slog.String("path", request.URL.Path),
				slog.String("ip", RealIP(request)),
			)

			slot := &identitySlot{}
			ctx := ctxutil.WithLogger(request.Context(), requestLogger)
			ctx = context.WithValue(ctx, identitySlotKey{}, slot)
			recorder := NewStatusRecorder(writer)

			next.ServeHTTP(recorder, request.WithContext(ctx))

			logLevel := slog.LevelInfo
			switch {
			case recorder.Status >= http.StatusInternalServerError:
				logLevel = slog.LevelError
			case recorder.Status >= http.StatusBadRequest:
				logLevel = slog.LevelWarn
			}

			attributes := []any{
				slog.Int("status", recorder.Status),
				slog.Int64("latency_ms", time.Since(startTime).Milliseconds()),
				slog.String("user_agent", request.UserAgent()),
			}
			if slot.userID != 0 {
				attributes = append(attributes, slog.Int64("user_id", slot.userID))
			}

			requestLogger.Log(ctx, logLevel, "http_request_finished", attributes...)
		})
	}
}

// # Reliability & Safety

// PanicRecovery recovers from panics, logs the stack trace, and returns 500.
func PanicRecovery() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			defer func() {
				recovered := recover()
				if recovered == nil {
					return
				}
				if recovered == http.ErrAbortHandler {
					panic(recovered)
				}

				stackTrace := make([]byte, 4096)
				length := runtime.Stack(stackTrace, false)

				ctxutil.GetLogger(request.Context()).ErrorContext(request.Context(), "panic_recovered",
					slog.Any("error", recovered),
					slog.String("stack", string(stackTrace[:length])),
				)

				respond.Error(writer, request, apperr.Internal(fmt.Errorf("panic: %v", recovered)))
			}()

			next.ServeHTTP(writer, request)
		})
	}
}

// # Cross-Origin Resource Sharing

// OriginPolicy decides which browser origins may call the API.
type OriginPolicy interface {
	IsDevelopment() bool
	OriginAllowed(origin string) bool
}

// CORS handles Cross-Origin Resource Sharing. Development accepts every
// origin; other environments accept only origins the policy allows.
func CORS(policy OriginPolicy) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			origin := request.Header.Get(constants.HeaderOrigin)
			if origin == "" {
				next.ServeHTTP(writer, request)
				return
			}

			if policy.IsDevelopment() || policy.OriginAllowed(origin) {
				header := writer.Header()
				header.Set("Access-Control-Allow-Origin", origin)
				header.Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
				header.Set("Access-Control-Allow-Headers", "Accept, Content-Type, Authorization, X-Request-ID")
				header.Set("Access-Control-Expose-Headers", "X-Request-ID")
				header.Set("Access-Control-Max-Age", "300")
				header.Add("Vary", constants.HeaderOrigin)
			}

			if request.Method == http.MethodOptions {
				writer.WriteHeader(http.StatusNoContent)
				return
			}

			next.ServeHTTP(writer, request)
		})
	}
}

// # Middleware Helpers

// RealIP extracts client IP, respecting common proxy headers.
func RealIP(request *http.Request) string {
	if ip := request.Header.Get(constants.HeaderXRealIP); ip != "" {
		return ip
	}

	if forwarded := request.Header.Get(constants.HeaderXForwardedFor); forwarded != "" {
		first, _, _ := strings.Cut(forwarded, ",")
		return strings.TrimSpace(first)
	}

	host, _, err := net.SplitHostPort(request.RemoteAddr)
	if err != nil {
		return request.RemoteAddr
	}
	return host
}
