package handler

import (
	"fmt"
	"io"
	"mime"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/soujanya-006/intervuai/internal/filestore"
	"github.com/soujanya-006/intervuai/internal/model"
	"github.com/soujanya-006/intervuai/internal/pkg/errcode"
	"github.com/soujanya-006/intervuai/internal/pkg/response"
	"github.com/soujanya-006/intervuai/internal/service"
)

type ResumeHandler struct {
	resumes *service.ResumeService
	store   filestore.Store
	maxSize int64
}

func NewResumeHandler(resumes *service.ResumeService, store filestore.Store, maxSize int64) *ResumeHandler {
	if maxSize <= 0 {
		maxSize = 20 * 1024 * 1024
	}
	return &ResumeHandler{resumes: resumes, store: store, maxSize: maxSize}
}

func (h *ResumeHandler) Upload(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		response.Error(c, errcode.ErrInvalidFile, "file is required")
		return
	}
	if file.Size > h.maxSize {
		response.Error(c, errcode.ErrInvalidFile, "file too large")
		return
	}
	opened, err := file.Open()
	if err != nil {
		response.Error(c, errcode.ErrInvalidFile, "failed to open file")
		return
	}
	defer opened.Close()

	saved, err := h.resumes.Upload(c.Request.Context(), getUserID(c), file.Filename, opened, file.Size)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, gin.H{"file": saved})
}

func (h *ResumeHandler) List(c *gin.Context) {
	files, err := h.resumes.List(c.Request.Context(), getUserID(c))
	if err != nil {
		handleError(c, err)
		return
	}
	if files == nil {
		files = []model.ResumeFile{}
	}
	response.Success(c, gin.H{"files": files})
}

func (h *ResumeHandler) Delete(c *gin.Context) {
	name := c.Param("name")
	if err := h.resumes.Delete(c.Request.Context(), getUserID(c), name); err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, gin.H{"ok": true})
}

// Download streams a stored resume back to its owner. Only the local store
// serves bytes through the API.
func (h *ResumeHandler) Download(c *gin.Context) {
	if h.store.Type() != "local" {
		c.Status(404)
		return
	}
	key := c.Param("key")
	if key == "" || strings.Contains(key, "/") || strings.Contains(key, "\\") {
		c.Status(400)
		return
	}
	// keys are {userID}_{name}; only the owner may fetch
	if !strings.HasPrefix(key, fmt.Sprintf("%d_", getUserID(c))) {
		c.Status(404)
		return
	}
	file, err := h.store.Open(c.Request.Context(), key)
	if err != nil {
		c.Status(404)
		return
	}
	defer file.Close()
	contentType := mime.TypeByExtension(filepath.Ext(key))
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	c.Header("Content-Type", contentType)
	_, _ = io.Copy(c.Writer, file)
}
