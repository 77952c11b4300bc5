package rest

import (
	"time"

	"github.com/dmitrijs2005/secretsvault/internal/logging"
	"github.com/gin-gonic/gin"
)

const (
	CodeValidation    = "VALIDATION_ERROR"
	CodeUnauthorized  = "UNAUTHORIZED"
	CodeFileNotFound  = "FILE_NOT_FOUND"
	CodeAlreadyExists = "FILE_ALREADY_EXISTS"
	CodeNotFound      = "NOT_FOUND"
	CodeUnavailable   = "SERVICE_UNAVAILABLE"
	CodeInternal      = "INTERNAL_ERROR"
)

type Envelope struct {
	Success bool     `json:"success"`
	Data    any      `json:"data,omitempty"`
	Error   *Problem `json:"error,omitempty"`
	Meta    Meta     `json:"meta"`
}

type Problem struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type Meta struct {
	RequestID string    `json:"requestId"`
	Timestamp time.Time `json:"timestamp"`
}

func meta(c *gin.Context) Meta {
	return Meta{
		RequestID: logging.RequestID(c.Request.Context()),
		Timestamp: time.Now().UTC(),
	}
}

func writeData(c *gin.Context, status int, data any) {
	c.JSON(status, Envelope{Success: true, Data: data, Meta: meta(c)})
}

func writeError(c *gin.Context, status int, code, message string) {
	c.AbortWithStatusJSON(status, Envelope{
		Success: false,
		Error:   &Problem{Code: code, Message: message},
		Meta:    meta(c),
	})
}
