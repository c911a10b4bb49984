package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"skilldex/internal/services"
)

// pageParams 解析 limit/offset 查询参数；缺失时填入配置默认值。
// 非整数输入属于传输层输入错误，直接以 400 拒绝（数值截断交给服务层）。
func (h *Handler) pageParams(c *gin.Context) (limit, offset int, ok bool) {
	limit = h.cfg.Pagination.DefaultLimit
	offset = 0
	if v := c.Query("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			c.JSON(400, gin.H{"error": "limit must be an integer"})
			return 0, 0, false
		}
		limit = n
	}
	if v := c.Query("offset"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			c.JSON(400, gin.H{"error": "offset must be an integer"})
			return 0, 0, false
		}
		offset = n
	}
	return limit, offset, true
}

// listMeta 构造列表响应的 meta 段；limit/offset 回显截断后的生效值。
func (h *Handler) listMeta(total int64, limit, offset int) gin.H {
	page := services.NormalizePage(limit, offset, h.cfg.Pagination.MaxLimit)
	return gin.H{"total": total, "limit": page.Limit, "offset": page.Offset}
}

// writeError 将服务层错误映射为 HTTP 状态码与 {"error": ...} 响应体。
// 非领域错误按基础设施故障处理，记录日志并返回 500。
func writeError(c *gin.Context, err error) {
	if kind, ok := services.KindOf(err); ok {
		switch kind {
		case services.KindNotFound:
			c.JSON(404, gin.H{"error": err.Error()})
		case services.KindValidation:
			c.JSON(422, gin.H{"error": err.Error()})
		case services.KindConflict:
			c.JSON(409, gin.H{"error": err.Error()})
		}
		return
	}
	log.WithError(err).Error("storage error")
	c.JSON(500, gin.H{"error": "db"})
}
