package tracing

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/GriffinCanCode/AgentOS/filesystem/internal/shared/id"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func newObservedTracer() (*Tracer, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.DebugLevel)
	return New("filesystem", zap.New(core)), logs
}

func TestStartSpanInheritsRequest(t *testing.T) {
	tracer, _ := newObservedTracer()
	defer tracer.Close()

	parent, ctx := tracer.StartSpan(context.Background(), "outer")
	assert.True(t, strings.HasPrefix(parent.RequestID.String(), reqPrefix))
	assert.Empty(t, parent.ParentID)

	child, childCtx := tracer.StartSpan(ctx, "inner")
	assert.Equal(t, parent.RequestID, child.RequestID)
	assert.Equal(t, parent.SpanID, child.ParentID)
	assert.Equal(t, child.SpanID, GetSpanID(childCtx))
	assert.Equal(t, parent.RequestID, GetRequestID(childCtx))
}

func TestCloseDrainsSpans(t *testing.T) {
	tracer, logs := newObservedTracer()

	for i := 0; i < 5; i++ {
		span, _ := tracer.StartSpan(context.Background(), "op")
		span.Finish()
		tracer.Submit(span)
	}
	tracer.Close()
	tracer.Close()

	assert.Equal(t, 5, logs.FilterMessage("span completed").Len())
}

func TestHTTPMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tracer, logs := newObservedTracer()

	var seen id.RequestID
	router := gin.New()
	router.Use(HTTPMiddleware(tracer))
	router.GET("/ok", func(c *gin.Context) {
		seen = GetRequestID(c.Request.Context())
		c.Status(http.StatusOK)
	})
	router.GET("/boom", func(c *gin.Context) {
		c.Status(http.StatusInternalServerError)
	})

	t.Run("generates request id", func(t *testing.T) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ok", nil))

		header := w.Header().Get(RequestIDHeader)
		require.NotEmpty(t, header)
		assert.Equal(t, header, seen.String())
	})

	t.Run("keeps inbound request id", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/ok", nil)
		req.Header.Set(RequestIDHeader, "client-supplied")
		router.ServeHTTP(w, req)

		assert.Equal(t, "client-supplied", w.Header().Get(RequestIDHeader))
		assert.Equal(t, id.RequestID("client-supplied"), seen)
	})

	t.Run("replaces oversized inbound id", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/ok", nil)
		req.Header.Set(RequestIDHeader, strings.Repeat("x", maxInboundID+1))
		router.ServeHTTP(w, req)

		assert.True(t, strings.HasPrefix(w.Header().Get(RequestIDHeader), reqPrefix))
	})

	t.Run("server errors log at error level", func(t *testing.T) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/boom", nil))
		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})

	tracer.Close()

	assert.Equal(t, 3, logs.FilterMessage("span completed").Len())
	errs := logs.FilterMessage("span completed with error").All()
	require.Len(t, errs, 1)
	assert.Equal(t, zapcore.ErrorLevel, errs[0].Level)
	assert.Equal(t, "GET /boom", errs[0].ContextMap()["operation"])
}

const reqPrefix = id.RequestPrefix + "_"
