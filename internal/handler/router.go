package handler

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/soujanya-006/intervuai/internal/middleware"
)

type RouterDeps struct {
	Meta          *MetaHandler
	Auth          *AuthHandler
	Resumes       *ResumeHandler
	Interviews    *InterviewHandler
	JWTSecret     []byte
	AuthRateLimit time.Duration
}

func RegisterRoutes(api *gin.RouterGroup, deps RouterDeps) {
	api.GET("/meta/landing", deps.Meta.Landing)

	authLimited := api.Group("")
	authLimited.Use(middleware.RateLimit(deps.AuthRateLimit))
	authLimited.POST("/auth/register", deps.Auth.Register)
	authLimited.POST("/auth/login", deps.Auth.Login)
	api.POST("/auth/logout", deps.Auth.Logout)

	authGroup := api.Group("")
	authGroup.Use(middleware.JWTAuth(deps.JWTSecret))
	authGroup.POST("/resumes/upload", deps.Resumes.Upload)
	authGroup.GET("/resumes", deps.Resumes.List)
	authGroup.DELETE("/resumes/:name", deps.Resumes.Delete)
	authGroup.GET("/files/:key", deps.Resumes.Download)

	authGroup.POST("/interview/sessions", deps.Interviews.Open)
	authGroup.POST("/interview/sessions/:id/messages", deps.Interviews.Send)
	authGroup.GET("/interview/sessions/:id/messages", deps.Interviews.History)
	authGroup.DELETE("/interview/sessions/:id", deps.Interviews.Close)
}
