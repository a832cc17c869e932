package api

import (
	"net/http"

	"github.com/Abdu-Alim/Death-by-AI/internal/middleware"
	"github.com/Abdu-Alim/Death-by-AI/internal/service"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Router API路由器
type Router struct {
	engine             *gin.Engine
	db                 *gorm.DB
	services           *service.Services
	playerHandler      *PlayerHandler
	gameHandler        *GameHandler
	situationHandler   *SituationHandler
	leaderboardHandler *LeaderboardHandler
	log                *zap.Logger
}

// NewRouter 创建路由器
func NewRouter(db *gorm.DB, services *service.Services, log *zap.Logger) *Router {
	engine := gin.New()

	// 全局中间件
	engine.Use(middleware.Recovery(log))
	engine.Use(middleware.RequestLogger(log))

	router := &Router{
		engine:             engine,
		db:                 db,
		services:           services,
		playerHandler:      NewPlayerHandler(services.Player),
		gameHandler:        NewGameHandler(services.Game),
		situationHandler:   NewSituationHandler(services.Situation),
		leaderboardHandler: NewLeaderboardHandler(services.Leaderboard),
		log:                log,
	}

	router.setupRoutes()

	return router
}

// setupRoutes 设置路由
func (r *Router) setupRoutes() {
	// 健康检查
	r.engine.GET("/health", r.healthCheck)

	// API文档
	registerOpenAPIRoutes(r.engine)
	registerSwaggerRoutes(r.engine)

	// API v1路由组
	v1 := r.engine.Group("/api/v1")
	{
		// 玩家
		players := v1.Group("/players")
		{
			players.POST("", r.playerHandler.CreatePlayer)
			players.GET("/:name", r.playerHandler.GetPlayer)
			players.GET("/:name/sessions", r.playerHandler.GetPlayerSessions)
		}

		// 游戏会话
		sessions := v1.Group("/sessions")
		{
			sessions.POST("", r.gameHandler.StartSession)
			sessions.GET("/:id", r.gameHandler.GetSession)
			sessions.POST("/:id/plan", r.gameHandler.SubmitPlan)
			sessions.POST("/:id/advance", r.gameHandler.AdvanceSituation)
			sessions.POST("/:id/end", r.gameHandler.EndSession)
			sessions.GET("/:id/actions", r.gameHandler.ListActions)
		}

		// 情境
		situations := v1.Group("/situations")
		{
			situations.GET("", r.situationHandler.ListSituations)
			situations.POST("", r.situationHandler.CreateSituation)
			situations.POST("/generate", r.situationHandler.GenerateSituation)
		}

		// 排行榜
		v1.GET("/leaderboard", r.leaderboardHandler.Top)
	}

	// 404处理
	r.engine.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, ErrorResponse{
			Code:    1002,
			Message: "接口不存在",
		})
	})
}

// healthCheck 健康检查
func (r *Router) healthCheck(c *gin.Context) {
	sqlDB, err := r.db.DB()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "unhealthy",
			"message": "数据库连接失败",
		})
		return
	}

	if err := sqlDB.Ping(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "unhealthy",
			"message": "数据库ping失败",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"message": "服务运行正常",
	})
}

// Run 运行服务器
func (r *Router) Run(addr string) error {
	r.log.Info("Starting API server", zap.String("address", addr))
	return r.engine.Run(addr)
}

// GetEngine 获取Gin引擎（用于测试和自定义http.Server）
func (r *Router) GetEngine() *gin.Engine {
	return r.engine
}
