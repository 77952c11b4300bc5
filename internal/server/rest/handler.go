package rest

import (
	"errors"
	"net/http"

	"github.com/dmitrijs2005/secretsvault/internal/common"
	"github.com/dmitrijs2005/secretsvault/internal/cryptox"
	"github.com/gin-gonic/gin"
)

type fileURI struct {
	ID string `uri:"id" binding:"required,uuid"`
}

type addFileRequest struct {
	Name    string `json:"name" binding:"required"`
	Content string `json:"content" binding:"required"`
}

type shareQuery struct {
	Code string `form:"code" binding:"required"`
}

func (s *Server) live(c *gin.Context) {
	writeData(c, http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) ready(c *gin.Context) {
	res := s.health.Check(c.Request.Context())
	if !res.Healthy {
		s.logger.Warn(c.Request.Context(), "readiness check failed", "storage", res.Storage)
		c.AbortWithStatusJSON(http.StatusServiceUnavailable, Envelope{
			Success: false,
			Data:    res,
			Error:   &Problem{Code: CodeUnavailable, Message: "storage is not ready"},
			Meta:    meta(c),
		})
		return
	}
	writeData(c, http.StatusOK, res)
}

func (s *Server) listFiles(c *gin.Context) {
	list, err := s.files.GetUserFiles(c.Request.Context(), userID(c))
	if err != nil {
		s.writeServiceError(c, err)
		return
	}
	writeData(c, http.StatusOK, gin.H{"files": list})
}

func (s *Server) addFile(c *gin.Context) {
	var req addFileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, CodeValidation, "name and content are required")
		return
	}

	id, err := s.files.AddFile(c.Request.Context(), userID(c), req.Name, req.Content)
	if err != nil {
		s.writeServiceError(c, err)
		return
	}
	writeData(c, http.StatusCreated, gin.H{"id": id})
}

func (s *Server) getFile(c *gin.Context) {
	id, ok := bindFileID(c)
	if !ok {
		return
	}

	f, err := s.files.GetFile(c.Request.Context(), userID(c), id)
	if err != nil {
		s.writeServiceError(c, err)
		return
	}
	writeData(c, http.StatusOK, gin.H{"file": f})
}

func (s *Server) deleteFile(c *gin.Context) {
	id, ok := bindFileID(c)
	if !ok {
		return
	}

	f, err := s.files.DeleteFile(c.Request.Context(), userID(c), id)
	if err != nil {
		s.writeServiceError(c, err)
		return
	}
	writeData(c, http.StatusOK, gin.H{"id": f.ID, "name": f.Name})
}

func (s *Server) createShareLink(c *gin.Context) {
	id, ok := bindFileID(c)
	if !ok {
		return
	}

	code, err := s.files.GenerateShareLink(c.Request.Context(), userID(c), id)
	if err != nil {
		s.writeServiceError(c, err)
		return
	}
	writeData(c, http.StatusOK, gin.H{"id": id, "code": code})
}

func (s *Server) redeemShareLink(c *gin.Context) {
	id, ok := bindFileID(c)
	if !ok {
		return
	}

	var q shareQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		writeError(c, http.StatusBadRequest, CodeValidation, "code is required")
		return
	}

	f, err := s.files.GetFileByShareLink(c.Request.Context(), id, q.Code)
	if err != nil {
		s.writeServiceError(c, err)
		return
	}
	writeData(c, http.StatusOK, gin.H{"file": f})
}

func bindFileID(c *gin.Context) (string, bool) {
	var uri fileURI
	if err := c.ShouldBindUri(&uri); err != nil {
		writeError(c, http.StatusBadRequest, CodeValidation, "id must be a valid uuid")
		return "", false
	}
	return uri.ID, true
}

// writeServiceError maps a core error onto its fixed status. Anything not
// recognised is a 500 whose cause stays in the log.
func (s *Server) writeServiceError(c *gin.Context, err error) {
	var (
		notFound *common.FileNotFoundError
		exists   *common.FileAlreadyExistsError
	)

	switch {
	case errors.As(err, &notFound):
		writeError(c, http.StatusNotFound, CodeFileNotFound, notFound.Error())
	case errors.As(err, &exists):
		writeError(c, http.StatusConflict, CodeAlreadyExists, exists.Error())
	case errors.Is(err, common.ErrorUnauthorized):
		writeError(c, http.StatusUnauthorized, CodeUnauthorized, "unauthorized")
	case cryptox.IsCodecError(err):
		s.logger.Error(c.Request.Context(), "content integrity failure", "error", err)
		writeError(c, http.StatusInternalServerError, CodeInternal, "internal server error")
	default:
		s.logger.Error(c.Request.Context(), "request failed", "error", err)
		writeError(c, http.StatusInternalServerError, CodeInternal, "internal server error")
	}
}
