package rest

import (
	"net/http"
	"strings"
	"time"

	"github.com/dmitrijs2005/secretsvault/internal/common"
	"github.com/dmitrijs2005/secretsvault/internal/logging"
	"github.com/dmitrijs2005/secretsvault/internal/server/auth"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const userIDKey = "userID"

// requestID takes X-Request-ID from the request or mints one, echoes it
// back and puts it into the request context for logging and envelopes.
func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := strings.TrimSpace(c.GetHeader(common.RequestIDHeaderName))
		if id == "" || len(id) > 128 {
			id = uuid.NewString()
		}

		c.Header(common.RequestIDHeaderName, id)
		c.Request = c.Request.WithContext(logging.WithRequestID(c.Request.Context(), id))
		c.Next()
	}
}

// accessLog logs one line per request. The query string is left out since
// it may hold a share code.
func (s *Server) accessLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		s.logger.Info(c.Request.Context(), "request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"latency", time.Since(start).String(),
		)
	}
}

func (s *Server) recoverPanic(c *gin.Context, rec any) {
	s.logger.Error(c.Request.Context(), "panic while serving request", "panic", rec)
	writeError(c, http.StatusInternalServerError, CodeInternal, "internal server error")
}

// authenticate resolves the caller from an "Authorization: Bearer" JWT.
func (s *Server) authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader(common.AuthorizationHeaderName)
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || strings.TrimSpace(token) == "" {
			writeError(c, http.StatusUnauthorized, CodeUnauthorized, "missing bearer token")
			return
		}

		userID, err := auth.GetUserIDFromToken(strings.TrimSpace(token), s.jwtSecret)
		if err != nil {
			s.logger.Debug(c.Request.Context(), "token rejected", "error", err)
			writeError(c, http.StatusUnauthorized, CodeUnauthorized, "invalid token")
			return
		}

		c.Set(userIDKey, userID)
		c.Next()
	}
}

func userID(c *gin.Context) string {
	return c.GetString(userIDKey)
}
