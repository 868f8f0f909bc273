package tracing

import (
	"github.com/GriffinCanCode/AgentOS/filesystem/internal/shared/id"
	"github.com/gin-gonic/gin"
)

// RequestIDHeader carries the request ID in both directions
const RequestIDHeader = "X-Request-ID"

// maxInboundID bounds client-supplied IDs so they cannot bloat log lines
const maxInboundID = 128

// HTTPMiddleware creates Gin middleware that assigns each request an ID,
// echoes it back in the response and logs one span per request.
func HTTPMiddleware(tracer *Tracer) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		if inbound := c.GetHeader(RequestIDHeader); inbound != "" && len(inbound) <= maxInboundID {
			ctx = WithRequestID(ctx, id.RequestID(inbound))
		}

		name := c.FullPath()
		if name == "" {
			name = "unmatched"
		}

		span, ctx := tracer.StartSpan(ctx, c.Request.Method+" "+name)
		span.SetTag("http.method", c.Request.Method)
		span.SetTag("http.path", c.Request.URL.Path)
		span.SetTag("http.client_ip", c.ClientIP())

		c.Request = c.Request.WithContext(ctx)
		c.Header(RequestIDHeader, span.RequestID.String())

		c.Next()

		span.SetStatus(c.Writer.Status())
		if len(c.Errors) > 0 {
			span.SetError(c.Errors.Last())
		}

		span.Finish()
		tracer.Submit(span)
	}
}
