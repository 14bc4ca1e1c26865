package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/soujanya-006/intervuai/internal/model"
	"github.com/soujanya-006/intervuai/internal/pkg/errcode"
	"github.com/soujanya-006/intervuai/internal/pkg/response"
	"github.com/soujanya-006/intervuai/internal/service"
)

type InterviewHandler struct {
	interviews *service.InterviewService
}

func NewInterviewHandler(interviews *service.InterviewService) *InterviewHandler {
	return &InterviewHandler{interviews: interviews}
}

type openSessionRequest struct {
	FileName string `json:"file_name"`
}

type sendMessageRequest struct {
	Message string `json:"message"`
}

// Open selects a resume and builds its retrieval index. This call blocks for
// the ingest and embedding work; the client waits.
func (h *InterviewHandler) Open(c *gin.Context) {
	var req openSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.FileName == "" {
		response.Error(c, errcode.ErrInvalid, "file_name is required")
		return
	}
	sess, err := h.interviews.Open(c.Request.Context(), getUserID(c), req.FileName)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, gin.H{
		"session_id": sess.ID,
		"file_name":  sess.FileName,
		"state":      sess.State(),
	})
}

func (h *InterviewHandler) Send(c *gin.Context) {
	var req sendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Message == "" {
		response.Error(c, errcode.ErrInvalid, "message is required")
		return
	}
	reply, err := h.interviews.Send(c.Request.Context(), getUserID(c), c.Param("id"), req.Message)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, gin.H{"reply": reply})
}

func (h *InterviewHandler) History(c *gin.Context) {
	turns, err := h.interviews.History(getUserID(c), c.Param("id"))
	if err != nil {
		handleError(c, err)
		return
	}
	if turns == nil {
		turns = []model.Turn{}
	}
	response.Success(c, gin.H{"messages": turns})
}

func (h *InterviewHandler) Close(c *gin.Context) {
	if err := h.interviews.Close(getUserID(c), c.Param("id")); err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, gin.H{"ok": true})
}
