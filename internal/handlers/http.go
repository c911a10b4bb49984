package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"

	"skilldex/internal/config"
	"skilldex/internal/metrics"
	"skilldex/internal/middlewares"
	"skilldex/internal/services"
)

// Handler 聚合所有依赖（配置、服务、底层连接）并注册所有 HTTP 路由。
type Handler struct {
	cfg      config.Config
	topicSvc *services.TopicService
	skillSvc *services.SkillService
	// 底层连接仅用于就绪检查与写限流；业务访问一律经由 services
	db  *gorm.DB
	rdb *redis.Client
}

// New 构造 Handler，将各领域服务注入，用于后续路由注册与处理。
func New(cfg config.Config, ts *services.TopicService, ss *services.SkillService, db *gorm.DB, rdb *redis.Client) *Handler {
	return &Handler{cfg: cfg, topicSvc: ts, skillSvc: ss, db: db, rdb: rdb}
}

// RegisterRoutes 在 Gin 路由上挂载全部端点（健康检查、指标、Topic/Skill CRUD）。
func (h *Handler) RegisterRoutes(r *gin.Engine) {
	// 基础端点
	r.GET("/", h.root)
	r.GET("/healthz", h.healthz)
	r.GET("/readyz", h.readyz)
	r.GET("/metrics", metrics.Exposer())

	// OpenAPI 规范下载（受配置 docs.enable 控制）
	if h.cfg.Docs.Enable {
		r.GET("/openapi.json", func(c *gin.Context) {
			if p := config.FirstExisting(h.cfg.Docs.SpecPath, "docs/openapi.json", "../docs/openapi.json"); p != "" {
				c.File(p)
				return
			}
			c.String(404, "openapi spec not found")
		})
	}

	// 写操作限流（按客户端 IP）；无 Redis 时直接放行
	var writeGuard gin.HandlerFunc = func(c *gin.Context) { c.Next() }
	if h.rdb != nil && h.cfg.Limits.WritePerMinute > 0 {
		writeGuard = middlewares.RateLimit(h.rdb, "write", h.cfg.Limits.WritePerMinute, h.cfg.Limits.Window,
			func(c *gin.Context) string { return c.ClientIP() })
	}

	// Topic：CRUD + 搜索/过滤/分页 + 删除保护
	r.GET("/topics", h.listTopics)
	r.GET("/topics/:id", h.getTopic)
	r.POST("/topics", writeGuard, h.createTopic)
	r.PUT("/topics/:id", writeGuard, h.updateTopic)
	r.DELETE("/topics/:id", writeGuard, h.deleteTopic)

	// Skill：CRUD + 搜索/过滤/分页
	r.GET("/skills", h.listSkills)
	r.GET("/skills/:id", h.getSkill)
	r.POST("/skills", writeGuard, h.createSkill)
	r.PUT("/skills/:id", writeGuard, h.updateSkill)
	r.DELETE("/skills/:id", writeGuard, h.deleteSkill)
}
