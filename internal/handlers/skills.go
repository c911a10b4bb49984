package handlers

import (
	"github.com/gin-gonic/gin"

	"skilldex/internal/metrics"
	"skilldex/internal/services"
	"skilldex/internal/storage"
)

// skillCreateReq/skillUpdateReq 是 Skill 的请求体模型。
// 历史客户端同时使用 topicID 与 topicId 两种键名，两者都接受，前者优先。
type skillCreateReq struct {
	Name       string `json:"name"`
	TopicID    string `json:"topicID"`
	TopicIDAlt string `json:"topicId"`
	Difficulty string `json:"difficulty"`
}

type skillUpdateReq struct {
	Name       *string `json:"name"`
	TopicID    *string `json:"topicID"`
	TopicIDAlt *string `json:"topicId"`
	Difficulty *string `json:"difficulty"`
}

// @Summary      Skill 列表（搜索/过滤/分页）
// @Tags         skills
// @Produce      json
// @Param        q       query string false "名称子串（不区分大小写）"
// @Param        topicId query string false "所属 Topic ID 精确过滤"
// @Param        limit   query int    false "每页条数（默认 50，上限 200）"
// @Param        offset  query int    false "偏移量（默认 0）"
// @Success      200 {object} map[string]interface{}
// @Failure      400 {object} map[string]string
// @Router       /skills [get]
func (h *Handler) listSkills(c *gin.Context) {
	limit, offset, ok := h.pageParams(c)
	if !ok {
		return
	}
	items, total, err := h.skillSvc.List(c.Request.Context(), services.SkillQuery{
		Name:    c.Query("q"),
		TopicID: c.Query("topicId"),
		Limit:   limit,
		Offset:  offset,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	if items == nil {
		items = []storage.Skill{}
	}
	c.JSON(200, gin.H{"data": items, "meta": h.listMeta(total, limit, offset)})
}

// @Summary      按 ID 获取 Skill
// @Tags         skills
// @Produce      json
// @Param        id path string true "Skill ID"
// @Success      200 {object} storage.Skill
// @Failure      404 {object} map[string]string
// @Router       /skills/{id} [get]
func (h *Handler) getSkill(c *gin.Context) {
	s, err := h.skillSvc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(200, s)
}

// @Summary      创建 Skill
// @Tags         skills
// @Accept       json
// @Produce      json
// @Success      201 {object} storage.Skill
// @Failure      422 {object} map[string]string
// @Router       /skills [post]
func (h *Handler) createSkill(c *gin.Context) {
	var req skillCreateReq
	_ = c.ShouldBindJSON(&req)
	topicID := req.TopicID
	if topicID == "" {
		topicID = req.TopicIDAlt
	}
	s, err := h.skillSvc.Create(c.Request.Context(), services.SkillCreate{
		Name:       req.Name,
		TopicID:    topicID,
		Difficulty: req.Difficulty,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	metrics.EntityWrites.WithLabelValues("skill", "create").Inc()
	c.JSON(201, s)
}

// @Summary      更新 Skill（部分更新）
// @Tags         skills
// @Accept       json
// @Produce      json
// @Param        id path string true "Skill ID"
// @Success      200 {object} storage.Skill
// @Failure      404 {object} map[string]string
// @Failure      422 {object} map[string]string
// @Router       /skills/{id} [put]
func (h *Handler) updateSkill(c *gin.Context) {
	var req skillUpdateReq
	_ = c.ShouldBindJSON(&req)
	topicID := req.TopicID
	if topicID == nil {
		topicID = req.TopicIDAlt
	}
	s, err := h.skillSvc.Update(c.Request.Context(), c.Param("id"), services.SkillUpdate{
		Name:       req.Name,
		TopicID:    topicID,
		Difficulty: req.Difficulty,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	metrics.EntityWrites.WithLabelValues("skill", "update").Inc()
	c.JSON(200, s)
}

// @Summary      删除 Skill
// @Tags         skills
// @Produce      json
// @Param        id path string true "Skill ID"
// @Success      204 {string} string "No Content"
// @Failure      404 {object} map[string]string
// @Router       /skills/{id} [delete]
func (h *Handler) deleteSkill(c *gin.Context) {
	if err := h.skillSvc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	metrics.EntityWrites.WithLabelValues("skill", "delete").Inc()
	c.Status(204)
}
