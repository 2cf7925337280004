package logger

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"storefront-be/internal/utils"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func observe(t *testing.T, level zapcore.Level) *observer.ObservedLogs {
	core, observed := observer.New(level)
	restore := Replace(zap.New(core))
	t.Cleanup(restore)
	return observed
}

func TestInit(t *testing.T) {
	originalLog := log
	defer func() { log = originalLog }()

	for _, env := range []string{"production", "development", "test"} {
		t.Run(env, func(t *testing.T) {
			Init(env)
			assert.NotNil(t, log)
		})
	}
}

func TestL(t *testing.T) {
	originalLog := log
	defer func() { log = originalLog }()

	log = nil
	t.Setenv("APP_ENV", "test")

	assert.NotNil(t, L())
	assert.NotNil(t, log)
}

func TestContextFunctions(t *testing.T) {
	ctx := context.Background()
	reqID := "test-request-id-123"

	t.Run("WithRequestID", func(t *testing.T) {
		newCtx := WithRequestID(ctx, reqID)
		assert.Equal(t, reqID, newCtx.Value(requestIDKey))
	})

	t.Run("RequestIDFrom", func(t *testing.T) {
		assert.Equal(t, reqID, RequestIDFrom(WithRequestID(ctx, reqID)))
		assert.Equal(t, "", RequestIDFrom(ctx))
	})
}

func TestFromCtx(t *testing.T) {
	observed := observe(t, zapcore.InfoLevel)

	t.Run("WithRequestID", func(t *testing.T) {
		FromCtx(WithRequestID(context.Background(), "req-abc-123")).Info("with id")

		logs := observed.TakeAll()
		assert.Len(t, logs, 1)
		assert.Equal(t, "req-abc-123", logs[0].ContextMap()["request_id"])
	})

	t.Run("WithoutRequestID", func(t *testing.T) {
		FromCtx(context.Background()).Info("without id")

		logs := observed.TakeAll()
		assert.Len(t, logs, 1)
		_, ok := logs[0].ContextMap()["request_id"]
		assert.False(t, ok)
	})
}

func TestSync(t *testing.T) {
	assert.NotPanics(t, Sync)
}

func TestRequestIDMiddleware(t *testing.T) {
	handler := RequestIDMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.NotEmpty(t, RequestIDFrom(r.Context()))
	}))

	t.Run("Generates ID when missing", func(t *testing.T) {
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/test", nil))

		assert.NotEmpty(t, w.Header().Get(RequestIDHeader))
	})

	t.Run("Preserves existing ID", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/test", nil)
		req.Header.Set(RequestIDHeader, "test-id-123")
		w := httptest.NewRecorder()

		handler.ServeHTTP(w, req)

		assert.Equal(t, "test-id-123", w.Header().Get(RequestIDHeader))
	})
}

func TestLoggingMiddleware(t *testing.T) {
	observed := observe(t, zapcore.InfoLevel)

	t.Run("Success", func(t *testing.T) {
		handler := LoggingMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		}))
		req := httptest.NewRequest(http.MethodGet, "/api/products", nil)
		req = req.WithContext(utils.SetUserContext(req.Context(), 7, "a@b.c", "USER"))

		handler.ServeHTTP(httptest.NewRecorder(), req)

		logs := observed.TakeAll()
		assert.Len(t, logs, 1)
		assert.Equal(t, zapcore.InfoLevel, logs[0].Level)
		assert.Equal(t, "/api/products", logs[0].ContextMap()["path"])
		assert.Equal(t, int64(http.StatusOK), logs[0].ContextMap()["status"])
		assert.Equal(t, uint64(7), logs[0].ContextMap()["user_id"])
	})

	t.Run("Server error is logged at error level", func(t *testing.T) {
		handler := LoggingMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		}))

		handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/x", nil))

		logs := observed.TakeAll()
		assert.Len(t, logs, 1)
		assert.Equal(t, zapcore.ErrorLevel, logs[0].Level)
	})
}
