package controllers

import (
	"github.com/fsdevblog/shortlinks/internal/config"
	"github.com/fsdevblog/shortlinks/internal/controllers/middlewares"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type RouterParams struct {
	LinkService LinkShortener
	AppConf     config.Config
	Logger      *zap.Logger
}

func SetupRouter(params RouterParams) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middlewares.LoggerMiddleware(params.Logger))

	shortLinkController := NewShortLinkController(params.LinkService, params.AppConf.BaseURL)

	r.POST("/shorturls", shortLinkController.CreateShortLink)
	r.GET("/shorturls/:shortcode", shortLinkController.Stats)
	r.GET("/:shortcode", shortLinkController.Redirect)

	return r
}
