package router

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"clinical-eval/backend/config"
	"clinical-eval/backend/internal/api/handler"
	"clinical-eval/backend/internal/api/middleware"
	"clinical-eval/backend/pkg/metrics"
	"clinical-eval/backend/pkg/observability"
	"clinical-eval/backend/pkg/response"
)

// Pinger 健康检查依赖（数据库连接），为 nil 时只报告进程存活
type Pinger interface {
	PingContext(ctx context.Context) error
}

// Setup 初始化并返回 Gin 路由引擎
func Setup(cfg *config.Config, h *handler.Handler, db Pinger, logger *zap.Logger) *gin.Engine {
	r := gin.New()

	// ── 全局中间件 ──
	r.Use(gin.CustomRecovery(func(c *gin.Context, recovered any) {
		observability.CaptureErr(fmt.Errorf("panic: %v", recovered))
		response.InternalError(c)
	}))
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Metrics())
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.BodyLimit(cfg.Server.BodyLimit))

	// ── 运维 ──
	r.GET("/health", func(c *gin.Context) {
		if db != nil {
			if err := db.PingContext(c.Request.Context()); err != nil {
				logger.Warn("数据库健康检查失败", zap.Error(err))
				c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	// ── 基础数据 ──
	r.GET("/health-units", h.HealthUnit.List)
	r.POST("/health-units", h.HealthUnit.Create)
	r.GET("/preceptors", h.Preceptor.List)
	r.POST("/preceptors", h.Preceptor.Create)
	r.GET("/students", h.Student.List)
	r.POST("/students", h.Student.Create)

	// ── 小组 ──
	groups := r.Group("/groups")
	{
		groups.GET("", h.Group.List)
		groups.POST("", h.Group.Create)
		groups.GET("/:id/students", h.Group.ListMembers)
		groups.POST("/:id/students", h.Group.AddMember)
		groups.GET("/:id/evaluation-dates", h.Group.ListEvaluationDates)
		groups.POST("/:id/evaluation-dates", h.Group.CreateEvaluationDate)
		groups.GET("/:id/evaluation-dates/calendar", h.Export.ExportEvaluationCalendar)
		groups.GET("/:id/report", h.Report.GetGroupReport)
		groups.GET("/:id/report/export", h.Export.ExportGroupReport)
	}

	// ── 评估 ──
	evaluations := r.Group("/evaluations")
	{
		evaluations.GET("", h.Evaluation.List)
		evaluations.POST("", h.Evaluation.Create)
		evaluations.GET("/:id", h.Evaluation.Get)
		evaluations.PUT("/:id", h.Evaluation.Update)
		evaluations.DELETE("/:id", h.Evaluation.Delete)
	}

	// ── 导入 ──
	r.POST("/import-spreadsheet", h.Import.ImportSpreadsheet)

	return r
}
