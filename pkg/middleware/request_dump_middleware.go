package middleware

import (
	"bytes"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"tripify-backend/utilities"
)

// RequestDumpMiddleware logs every request in full. Credentials are masked.
func RequestDumpMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		var bodyBytes []byte
		if c.Request.Body != nil {
			bodyBytes, _ = io.ReadAll(c.Request.Body)
		}
		c.Request.Body = io.NopCloser(bytes.NewBuffer(bodyBytes))

		utilities.Info(
			"[Request]\n"+
				"\tMethod: %s\n"+
				"\tURL: %s\n"+
				"\tClient: %s\n"+
				"\tHeaders: %v\n"+
				"\tBody: %s",
			c.Request.Method,
			c.Request.URL.String(),
			c.ClientIP(),
			maskedHeaders(c.Request.Header),
			string(bodyBytes),
		)

		c.Next()
	}
}

func maskedHeaders(h http.Header) http.Header {
	out := h.Clone()
	for _, name := range []string{"Authorization", "Cookie"} {
		if out.Get(name) != "" {
			out.Set(name, "***")
		}
	}
	return out
}
