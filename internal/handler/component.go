package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/weibaohui/pagecraft/internal/component"
	"github.com/weibaohui/pagecraft/internal/service"
)

// ComponentHandler 组件目录 Handler，只读
type ComponentHandler struct {
	componentService service.ComponentService
}

func NewComponentHandler(componentService service.ComponentService) *ComponentHandler {
	return &ComponentHandler{componentService: componentService}
}

// List 获取组件列表，?category= 按分类过滤
func (h *ComponentHandler) List(c *gin.Context) {
	ctx := c.Request.Context()
	if category, ok := c.GetQuery("category"); ok {
		c.JSON(http.StatusOK, gin.H{"data": h.componentService.ListByCategory(ctx, category)})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": h.componentService.List(ctx)})
}

// ListCategories 获取分类列表
func (h *ComponentHandler) ListCategories(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"data": h.componentService.ListCategories(c.Request.Context())})
}

// Get 获取单个组件 schema
func (h *ComponentHandler) Get(c *gin.Context) {
	schema, err := h.componentService.Get(c.Request.Context(), c.Param("type"))
	if err != nil {
		if errors.Is(err, component.ErrUnknownComponentType) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": schema})
}
