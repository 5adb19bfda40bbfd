package handler

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/weibaohui/pagecraft/internal/service"
)

// InstanceHandler 模板实例 Handler
type InstanceHandler struct {
	instanceService service.InstanceService
}

func NewInstanceHandler(instanceService service.InstanceService) *InstanceHandler {
	return &InstanceHandler{instanceService: instanceService}
}

// Render 用请求数据渲染模板，每次请求生成一个新实例。
// 解析失败时实例以 error 状态保存，响应体同时带上错误与实例。
func (h *InstanceHandler) Render(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req service.RenderRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	instance, err := h.instanceService.Render(c.Request.Context(), id, req.Data)
	if err != nil {
		status, body := errorResponse(err)
		if instance != nil {
			body["data"] = instance
		}
		c.JSON(status, body)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"data": instance})
}

// ListByTemplate 获取模板最近的实例
func (h *InstanceHandler) ListByTemplate(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	instances, err := h.instanceService.ListByTemplate(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": instances})
}

// Get 获取实例详情
func (h *InstanceHandler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	instance, err := h.instanceService.Get(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": instance})
}

// Stats 获取实例统计
func (h *InstanceHandler) Stats(c *gin.Context) {
	stats, err := h.instanceService.Stats(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": stats})
}
