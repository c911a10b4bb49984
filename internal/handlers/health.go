package handlers

import (
	"github.com/gin-gonic/gin"
)

// root 简单的欢迎端点（快速手工验证服务存活）。
func (h *Handler) root(c *gin.Context) {
	c.String(200, "Hello from Topic & Skill Service!")
}

// @Summary      存活检查
// @Tags         health
// @Produce      json
// @Success      200 {object} map[string]string
// @Router       /healthz [get]
func (h *Handler) healthz(c *gin.Context) {
	c.JSON(200, gin.H{"status": "ok"})
}

// @Summary      就绪检查（MySQL + Redis 可达）
// @Tags         health
// @Produce      json
// @Success      200 {object} map[string]string
// @Failure      503 {object} map[string]string
// @Router       /readyz [get]
func (h *Handler) readyz(c *gin.Context) {
	if h.db != nil {
		sqlDB, err := h.db.DB()
		if err != nil || sqlDB.PingContext(c.Request.Context()) != nil {
			c.JSON(503, gin.H{"status": "unavailable", "reason": "mysql"})
			return
		}
	}
	if h.rdb != nil {
		if err := h.rdb.Ping(c.Request.Context()).Err(); err != nil {
			c.JSON(503, gin.H{"status": "unavailable", "reason": "redis"})
			return
		}
	}
	c.JSON(200, gin.H{"status": "ok"})
}
