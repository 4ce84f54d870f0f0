package server

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/RecoveryAshes/WxCopyTrace/internal/core"
	"github.com/RecoveryAshes/WxCopyTrace/internal/utils"
)

// Server 分析服务的Web前端
type Server struct {
	config  *core.Config
	service *core.Service
	engine  *gin.Engine
}

// analyzeRequest POST /analyze 请求体
type analyzeRequest struct {
	URL string `json:"url" binding:"required"`
}

// NewServer 创建Web服务
func NewServer(config *core.Config, service *core.Service) *Server {
	if !config.Server.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.Use(requestLogger())
	engine.Use(gin.Recovery())

	s := &Server{
		config:  config,
		service: service,
		engine:  engine,
	}
	s.registerRoutes()
	return s
}

func (s *Server) registerRoutes() {
	s.engine.GET("/health", s.handleHealth)
	s.engine.POST("/analyze", s.handleAnalyze)
}

// Run 启动Web服务(阻塞)
func (s *Server) Run() error {
	utils.Infof("🌐 Web服务启动: %s", s.config.Server.Listen)
	return s.engine.Run(s.config.Server.Listen)
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// handleAnalyze 分析单个URL
//
// 分析失败不返回HTTP错误状态,统一返回200加success=false,
// 前端只需要看success字段
func (s *Server) handleAnalyze(c *gin.Context) {
	var req analyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusOK, gin.H{
			"success": false,
			"error":   "请求参数无效: 需要url字段",
		})
		return
	}

	result, _ := s.service.Analyze(req.URL)
	if result.Error != "" {
		c.JSON(http.StatusOK, gin.H{
			"success": false,
			"error":   result.Error,
			"url":     result.URL,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    result,
	})
}

// requestLogger 请求日志中间件
func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		method := c.Request.Method

		c.Next()

		utils.Infof("%s %s -> %d (%.0fms)", method, path, c.Writer.Status(),
			float64(time.Since(start).Microseconds())/1000)
	}
}
