package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/weibaohui/pagecraft/internal/component"
	"github.com/weibaohui/pagecraft/internal/document"
	"github.com/weibaohui/pagecraft/internal/resolver"
	"github.com/weibaohui/pagecraft/internal/service"
	"k8s.io/klog/v2"
)

// errorResponse 将业务错误映射为 HTTP 状态码与响应体
func errorResponse(err error) (int, gin.H) {
	body := gin.H{"error": err.Error()}

	var re *resolver.ResolutionError
	var invalid *document.InvalidTemplateError
	switch {
	case errors.Is(err, service.ErrInvalidDocument), errors.Is(err, service.ErrInvalidData):
		return http.StatusBadRequest, body
	case errors.Is(err, service.ErrTemplateNotFound):
		return http.StatusNotFound, gin.H{"error": "template not found"}
	case errors.Is(err, service.ErrInstanceNotFound):
		return http.StatusNotFound, gin.H{"error": "instance not found"}
	case errors.As(err, &re):
		if re.Kind == resolver.KindRenderFailed {
			return http.StatusInternalServerError, body
		}
		body["kind"] = re.Kind
		if re.NodeID != "" {
			body["node_id"] = re.NodeID
		}
		if re.Property != "" {
			body["property"] = re.Property
		}
		if errors.As(err, &invalid) {
			body["violations"] = invalid.Violations
		}
		return http.StatusUnprocessableEntity, body
	case errors.As(err, &invalid):
		body["kind"] = resolver.KindInvalidTemplate
		body["violations"] = invalid.Violations
		return http.StatusUnprocessableEntity, body
	case errors.Is(err, component.ErrPropertyConstraint):
		return http.StatusUnprocessableEntity, body
	}
	return http.StatusInternalServerError, body
}

func writeError(c *gin.Context, err error) {
	status, body := errorResponse(err)
	if status >= http.StatusInternalServerError {
		klog.Errorf("请求处理失败: %s %s, error=%v", c.Request.Method, c.Request.URL.Path, err)
	}
	c.JSON(status, body)
}

func parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return 0, false
	}
	return uint(id), true
}
