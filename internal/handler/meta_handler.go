package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/soujanya-006/intervuai/internal/pkg/response"
)

// MetaHandler serves the landing page payload: what the product is and the
// steps to use it. Static content, no auth.
type MetaHandler struct{}

func NewMetaHandler() *MetaHandler {
	return &MetaHandler{}
}

func (h *MetaHandler) Landing(c *gin.Context) {
	response.Success(c, gin.H{
		"name":    "IntervuAI",
		"tagline": "Your Personal AI HR Interviewer",
		"features": []string{
			"Upload your resume",
			"Chat with an AI HR interviewer",
			"Get project and experience based questions",
			"Receive feedback on strengths and weaknesses",
		},
		"steps": []string{
			"Sign up or log in",
			"Upload a resume",
			"Open an interview session and start chatting",
		},
	})
}
