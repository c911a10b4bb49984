package handlers

import (
	"github.com/gin-gonic/gin"

	"skilldex/internal/metrics"
	"skilldex/internal/services"
	"skilldex/internal/storage"
)

// topicCreateReq/topicUpdateReq 是 Topic 的请求体模型。
// 更新模型使用指针字段区分"未提供"与"显式置空"，以支持部分更新。
type topicCreateReq struct {
	Name          string `json:"name"`
	Description   string `json:"description"`
	ParentTopicID string `json:"parentTopicID"`
}

type topicUpdateReq struct {
	Name          *string `json:"name"`
	Description   *string `json:"description"`
	ParentTopicID *string `json:"parentTopicID"`
}

// @Summary      Topic 列表（搜索/过滤/分页）
// @Tags         topics
// @Produce      json
// @Param        q        query string false "名称子串（不区分大小写）"
// @Param        parentId query string false "父级 Topic ID 精确过滤"
// @Param        limit    query int    false "每页条数（默认 50，上限 200）"
// @Param        offset   query int    false "偏移量（默认 0）"
// @Success      200 {object} map[string]interface{}
// @Failure      400 {object} map[string]string
// @Router       /topics [get]
func (h *Handler) listTopics(c *gin.Context) {
	limit, offset, ok := h.pageParams(c)
	if !ok {
		return
	}
	items, total, err := h.topicSvc.List(c.Request.Context(), services.TopicQuery{
		Name:     c.Query("q"),
		ParentID: c.Query("parentId"),
		Limit:    limit,
		Offset:   offset,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	if items == nil {
		items = []storage.Topic{}
	}
	c.JSON(200, gin.H{"data": items, "meta": h.listMeta(total, limit, offset)})
}

// @Summary      按 ID 获取 Topic
// @Tags         topics
// @Produce      json
// @Param        id path string true "Topic ID"
// @Success      200 {object} storage.Topic
// @Failure      404 {object} map[string]string
// @Router       /topics/{id} [get]
func (h *Handler) getTopic(c *gin.Context) {
	t, err := h.topicSvc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(200, t)
}

// @Summary      创建 Topic
// @Tags         topics
// @Accept       json
// @Produce      json
// @Success      201 {object} storage.Topic
// @Failure      422 {object} map[string]string
// @Router       /topics [post]
func (h *Handler) createTopic(c *gin.Context) {
	var req topicCreateReq
	// 请求体缺失或非法时按空对象处理，由服务层校验兜底
	_ = c.ShouldBindJSON(&req)
	t, err := h.topicSvc.Create(c.Request.Context(), services.TopicCreate{
		Name:          req.Name,
		Description:   req.Description,
		ParentTopicID: req.ParentTopicID,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	metrics.EntityWrites.WithLabelValues("topic", "create").Inc()
	c.JSON(201, t)
}

// @Summary      更新 Topic（部分更新）
// @Tags         topics
// @Accept       json
// @Produce      json
// @Param        id path string true "Topic ID"
// @Success      200 {object} storage.Topic
// @Failure      404 {object} map[string]string
// @Failure      422 {object} map[string]string
// @Router       /topics/{id} [put]
func (h *Handler) updateTopic(c *gin.Context) {
	var req topicUpdateReq
	_ = c.ShouldBindJSON(&req)
	t, err := h.topicSvc.Update(c.Request.Context(), c.Param("id"), services.TopicUpdate{
		Name:          req.Name,
		Description:   req.Description,
		ParentTopicID: req.ParentTopicID,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	metrics.EntityWrites.WithLabelValues("topic", "update").Inc()
	c.JSON(200, t)
}

// @Summary      删除 Topic（有 Skill 引用时拒绝）
// @Tags         topics
// @Produce      json
// @Param        id path string true "Topic ID"
// @Success      204 {string} string "No Content"
// @Failure      404 {object} map[string]string
// @Failure      409 {object} map[string]string
// @Router       /topics/{id} [delete]
func (h *Handler) deleteTopic(c *gin.Context) {
	if err := h.topicSvc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	metrics.EntityWrites.WithLabelValues("topic", "delete").Inc()
	c.Status(204)
}
